package api

import (
	"net/http"

	_ "github.com/covenant-gov/1key/docs" // registers the swagger spec
	"github.com/covenant-gov/1key/internal/handler"
	"github.com/covenant-gov/1key/wallet"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(walletSvc *wallet.Service, aztec handler.AztecCaller) http.Handler {
	walletHandler := handler.NewWalletHandler(walletSvc)
	aztecHandler := handler.NewAztecHandler(aztec)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet", walletHandler.Delete)
	mux.HandleFunc("/wallet/exists", walletHandler.Exists)
	mux.HandleFunc("/wallet/generate", walletHandler.Generate)
	mux.HandleFunc("/wallet/store", walletHandler.Store)
	mux.HandleFunc("/wallet/unlock", walletHandler.Unlock)

	// Sidecar passthrough
	mux.HandleFunc("/aztec/", aztecHandler.Call)

	return mux
}
