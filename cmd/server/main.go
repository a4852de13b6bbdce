package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lyricverse-api/internal/api"
	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/cache"
	"github.com/lyricverse-api/internal/config"
	"github.com/lyricverse-api/internal/database"
	"github.com/lyricverse-api/internal/repository"
	"github.com/lyricverse-api/internal/service"
	"github.com/lyricverse-api/internal/storage"
	"github.com/lyricverse-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting LyricVerse API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize listing cache (disabled when no address is configured)
	listings, err := cache.Open(context.Background(), &cfg.Cache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to cache")
	}
	defer listings.Close()

	// Initialize auth
	allow := auth.NewAllowlist(cfg.Auth.AdminEmails)
	sessions := auth.NewSessions(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	provider := auth.NewGoogleProvider(&cfg.Auth)

	// Initialize image storage
	blobs, err := storage.NewDiskStore(&cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize upload storage")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, allow, listings, log)

	// Initialize router
	router := api.NewRouter(services, sessions, allow, provider, blobs, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
