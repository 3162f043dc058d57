package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/message-board/internal/api"
	"github.com/message-board/internal/config"
	"github.com/message-board/internal/csrf"
	"github.com/message-board/internal/database"
	"github.com/message-board/internal/repository"
	"github.com/message-board/internal/service"
	"github.com/message-board/internal/web"
	"github.com/message-board/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting message board server...")

	config.LoadDotEnv(log)

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
	if err := db.RunMigrations(cfg.Server.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	repos := repository.New(db)
	services := service.NewServices(repos, log)

	csrfManager, err := csrf.New(cfg.CSRF, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize CSRF protection")
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load page templates")
	}

	router := api.NewRouter(api.Dependencies{
		Services: services,
		CSRF:     csrfManager,
		Renderer: renderer,
		Health:   db,
	}, log)

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
