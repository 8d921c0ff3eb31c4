// Command onekey runs the 1key wallet API and offers wallet and sidecar
// commands for the terminal.
//
// @title 1key API
// @version 1.0
// @description Local API for the 1key PIN-protected wallet and the Aztec sidecar bridge.
// @host localhost:8080
// @BasePath /
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/covenant-gov/1key/internal/client"
	"github.com/covenant-gov/1key/internal/config"
	"github.com/covenant-gov/1key/internal/crypto"
	"github.com/covenant-gov/1key/internal/logging"
	"github.com/covenant-gov/1key/internal/storage"
	"github.com/covenant-gov/1key/wallet"

	"github.com/spf13/cobra"
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "onekey",
	Short:         "PIN-protected wallet and Aztec sidecar bridge",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			loaded.LogLevel = "debug"
		}
		if err := logging.SetLevel(loaded.LogLevel); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (overrides ONEKEY_LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, walletCmd, sidecarCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newWalletService wires the file store in the configured data directory to
// the default cipher.
func newWalletService() *wallet.Service {
	return wallet.NewService(storage.NewDirStore(cfg.DataDir), crypto.NewCipher())
}

// newSidecarClient builds the sidecar client from configuration.
func newSidecarClient() (*client.SidecarClient, error) {
	if cfg.SidecarCommand == "" {
		return nil, errors.New("ONEKEY_SIDECAR_COMMAND is empty")
	}
	return client.NewSidecarClient(client.SidecarConfig{
		Command: cfg.SidecarCommand,
		Args:    cfg.SidecarArgs,
		Timeout: cfg.SidecarTimeout,
		IDs:     &client.Counter{},
	})
}
