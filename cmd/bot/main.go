package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cesargomez89/albumdays/internal/bot"
	"github.com/cesargomez89/albumdays/internal/config"
	"github.com/cesargomez89/albumdays/internal/logger"
	"github.com/cesargomez89/albumdays/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.TelegramToken == "" {
		log.Fatal("Configuration error: TELEGRAM_BOT_TOKEN is required")
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

	// Initialize Bot
	b, err := bot.New(cfg.TelegramToken, db, cfg.HorizonDays, appLogger)
	if err != nil {
		appLogger.Error("Failed to init bot", "error", err)
		os.Exit(1)
	}

	// Initialize Notifier
	notifier := bot.NewNotifier(db, b.Send, appLogger)
	notifier.Start()
	defer notifier.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b.Run(ctx)

	log.Println("Bot exiting")
}
