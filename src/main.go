package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"soundvault/src/features/albums"
	"soundvault/src/features/auth"
	"soundvault/src/features/config"
	"soundvault/src/features/hosting"
	"soundvault/src/features/logging"
	"soundvault/src/features/tracks"
	"soundvault/src/features/users"
	"soundvault/src/infra/database"
	"soundvault/src/infra/files"
	"soundvault/src/infra/password"
	"soundvault/src/infra/token"
)

func main() {
	// Load configuration
	cfgManager, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	// Connect to the database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := database.NewMongoStore(ctx, cfgManager.Get().Database.URI, cfgManager.Get().Database.Name)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// File storage with cover processing
	processor := files.NewCoverProcessor(cfgManager.Get().Artwork.MaxSize, cfgManager.Get().Artwork.Quality)
	fileStore := files.NewLocalFileStore(cfgManager.Get().UploadsPath, processor)

	// Auth primitives
	tokens := token.NewIssuer(cfgManager.Get().Auth.Secret, time.Duration(cfgManager.Get().Auth.TokenTTLHours)*time.Hour)
	hasher := password.NewArgon2Hasher()

	// Feature services
	usersService := users.NewService(store, fileStore, hasher, tokens)
	authService := auth.NewService(store, hasher, tokens)
	albumsService := albums.NewService(store, fileStore)
	tracksService := tracks.NewService(store, fileStore)

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, usersService, authService, albumsService, tracksService, tokens)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfgManager.Get().Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := store.Close(shutdownCtx); err != nil {
		slog.Error("failed to close database", "error", err)
	}
	slog.Info("Server gracefully shut down.")
}
