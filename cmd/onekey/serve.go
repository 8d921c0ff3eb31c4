package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/covenant-gov/1key/internal/api"
	"github.com/covenant-gov/1key/internal/client"
	"github.com/covenant-gov/1key/internal/logging"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP API",
	Long: `Start the HTTP API on localhost:ONEKEY_PORT.
Swagger UI is available at /swagger/index.html.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sidecar, err := newSidecarClient()
		if err != nil {
			return err
		}

		handler := api.SetupRouter(newWalletService(), client.NewAztecClient(sidecar))
		srv := &http.Server{
			Addr:              "127.0.0.1:" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logging.L.Info("server starting", "addr", srv.Addr, "data_dir", cfg.DataDir)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		logging.L.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
