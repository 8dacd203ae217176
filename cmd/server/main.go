package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cesargomez89/albumdays/internal/config"
	"github.com/cesargomez89/albumdays/internal/constants"
	"github.com/cesargomez89/albumdays/internal/handlers"
	"github.com/cesargomez89/albumdays/internal/logger"
	"github.com/cesargomez89/albumdays/internal/musicbrainz"
	"github.com/cesargomez89/albumdays/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if err := cfg.EnsureDataDir(); err != nil {
		appLogger.Error("Failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize MusicBrainz lookup backed by the SQLite cache
	mbClient := musicbrainz.NewClient(cfg.MusicBrainzURL, nil, appLogger)
	lookup := musicbrainz.NewCachedLookup(mbClient, db, constants.DefaultCacheTTL, appLogger)

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Routes
	h, err := handlers.NewHandler(lookup, appLogger)
	if err != nil {
		appLogger.Error("Failed to init handlers", "error", err)
		os.Exit(1)
	}
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
