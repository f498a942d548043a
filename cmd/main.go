// Package main is the entry point for the print-quote-service application.
//
// @title           Print Quote Service API
// @version         1.0.0
// @description     API for quoting print jobs from a shop's tiered rate card.
//
//	A quote resolves the selected pages of a document, picks the pricing tier
//	for the requested color and duplex mode, and prices the pages against it.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/print-quote-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Used when bearer tokens are not configured.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer token issued by the shop portal: "Bearer {token}".
//
// @tag.name        Quotes
// @tag.description Print cost quotes
//
// @tag.name        Pricing
// @tag.description Rate card inspection and management
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/config"
	_ "github.com/guttosm/print-quote-service/docs" // swagger docs
	"github.com/guttosm/print-quote-service/internal/app"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(application.Router, cfg.Server)
	runErr := server.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := application.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("Cleanup error")
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Server error")
	}
}
