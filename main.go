package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mlefevre/diabecare/internal/config"
	"github.com/mlefevre/diabecare/internal/domain"
	"github.com/mlefevre/diabecare/internal/logger"
	"github.com/mlefevre/diabecare/internal/notify"
	"github.com/mlefevre/diabecare/internal/services"
	"github.com/mlefevre/diabecare/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Not an error: environments without a .env file are normal.
		os.Stderr.WriteString("Warning: .env file not found\n")
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Info("Starting DiabeCare...")

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to open storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer store.Close()
	logger.Info("Storage opened", "driver", cfg.Storage.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := services.EnsureInitialized(ctx, store); err != nil {
		logger.Fatal("Failed to initialize data", "error", err)
	}

	var scheduler domain.Scheduler
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		telegram, err := notify.NewTelegramScheduler(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			logger.Fatal("Failed to create Telegram scheduler", "error", err)
		}
		scheduler = telegram
		logger.Info("Telegram notifications enabled", "chat_id", cfg.Telegram.ChatID)
	} else {
		scheduler = notify.NopScheduler{}
		logger.Warn("Telegram not configured, reminder notifications disabled")
	}
	defer scheduler.CancelAll()

	reminderService := services.NewReminderService(store, scheduler)

	// Rebuild all notification triggers from the persisted reminders so they
	// survive restarts.
	if err := reminderService.RescheduleAll(ctx); err != nil {
		logger.Fatal("Failed to schedule reminders", "error", err)
	}

	logger.Info("DiabeCare is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	logger.Info("Shutting down")
}
