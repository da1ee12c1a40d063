// Package main initializes and starts the OptiFin HTTP server, setting up
// configuration, logging, the credential store, session management, the
// page registry, and routes.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/optifin/optifin/internal/config"
	"github.com/optifin/optifin/internal/credstore"
	"github.com/optifin/optifin/internal/logger"
	"github.com/optifin/optifin/internal/models"
	"github.com/optifin/optifin/internal/pages"
	"github.com/optifin/optifin/internal/router"
	"github.com/optifin/optifin/internal/server/handler/http"
	"github.com/optifin/optifin/internal/session"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("auth secret is required (flag -s or JWT_SECRET)")
	}
	secret := []byte(options.JWTSecret)

	defaults := models.Profile{
		Currency: options.DefaultCurrency,
		Region:   options.DefaultRegion,
		Language: options.DefaultLanguage,
	}

	// Load the credential store; a missing or corrupt file starts empty.
	store := credstore.New(options.CredentialsFile, defaults, zapLogger)
	if err := store.Load(); err != nil {
		zapLogger.Fatal("cannot load credential store", zap.Error(err))
	}

	// Track sessions and expire idle ones in the background.
	sessions := session.NewManager(options.SessionTTL, defaults)
	session.StartSweeper(context.Background(), sessions,
		time.Minute, // interval
		zapLogger,
	)

	// Register the pages and build the router over them.
	pageRouter := router.New(zapLogger,
		pages.Consent{},
		&pages.Login{Store: store},
		pages.SegmentHub{},
		&pages.Goals{Store: store},
		pages.Chat{},
		pages.Upload{},
		pages.Dashboard{},
	)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: store, Secret: secret, TokenTTL: 24 * time.Hour}
	interactHandler := &http.InteractHandler{Router: pageRouter, Secret: secret, TokenTTL: 24 * time.Hour}
	uploadHandler := &http.UploadHandler{Interact: interactHandler, Log: zapLogger}
	exportHandler := &http.ExportHandler{}

	// Build the router with middleware and routes.
	handler := http.NewRouter(authHandler, interactHandler, uploadHandler, exportHandler,
		sessions, secret, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
