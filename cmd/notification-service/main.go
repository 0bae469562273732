package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourusername/shop-chatbot/config"
	"github.com/yourusername/shop-chatbot/internal/delivery/httpapi"
	"github.com/yourusername/shop-chatbot/internal/infrastructure/telegram"
	"github.com/yourusername/shop-chatbot/internal/log"
	"github.com/yourusername/shop-chatbot/internal/telemetry"
	"github.com/yourusername/shop-chatbot/internal/usecase"
)

const (
	serviceName = "notification-service"
	defaultPort = 5002
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running notification service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load[config.NotificationService]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log, serviceName)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel, serviceName)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(context.Background()); err != nil {
			logger.Error("error cleaning up tracer", slog.Any("error", err))
		}
	}()

	// plain client: Bot API URLs carry the token and must not end up in span attributes
	httpClient := &http.Client{Timeout: cfg.Telegram.Timeout}
	messenger, err := telegram.NewMessenger(cfg.Telegram, httpClient, logger)
	if err != nil {
		return fmt.Errorf("error creating telegram messenger: %w", err)
	}

	notificationUC := usecase.NewNotificationUseCase(messenger, logger)

	svc := httpapi.NewNotificationService(cfg.HTTP.Addr(defaultPort), logger, notificationUC)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "notification service started",
		slog.String("address", svc.Addr()),
		slog.Int64("chat_id", cfg.Telegram.ChatID),
	)

	<-ctx.Done()

	logger.Info("notification service is shutting down")
	if err := cleanup(context.Background()); err != nil {
		logger.Error("error shutting down http service", slog.Any("error", err))
	}
	logger.Info("notification service is stopped")

	return nil
}
