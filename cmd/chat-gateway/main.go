package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourusername/shop-chatbot/config"
	"github.com/yourusername/shop-chatbot/internal/delivery/httpapi"
	"github.com/yourusername/shop-chatbot/internal/infrastructure/gemini"
	"github.com/yourusername/shop-chatbot/internal/infrastructure/remote"
	"github.com/yourusername/shop-chatbot/internal/infrastructure/storage"
	"github.com/yourusername/shop-chatbot/internal/log"
	"github.com/yourusername/shop-chatbot/internal/telemetry"
	"github.com/yourusername/shop-chatbot/internal/usecase"
)

const (
	serviceName = "chat-gateway"
	defaultPort = 5000
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running chat gateway: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load[config.ChatGateway]()
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

	aiClient, err := gemini.NewClient(ctx, cfg.Gemini, logger)
	if err != nil {
		return fmt.Errorf("error creating gemini client: %w", err)
	}
	defer aiClient.Close()

	httpClient := remote.NewHTTPClient(cfg.Downstream.Timeout)
	lookupRepo := remote.NewLookupClient(cfg.Downstream.RAGServerURL, httpClient, logger)
	notificationRepo := remote.NewNotificationClient(cfg.Downstream.NotificationServerURL, httpClient, logger)
	sessionRepo := storage.NewMemorySessionRepository(cfg.Session.MaxSessions, cfg.Session.TTL)

	chatUC := usecase.NewChatUseCase(aiClient, lookupRepo, notificationRepo, sessionRepo, logger)

	svc := httpapi.NewChatService(cfg.HTTP.Addr(defaultPort), logger, chatUC)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "chat gateway started",
		slog.String("address", svc.Addr()),
		slog.String("rag_server", cfg.Downstream.RAGServerURL),
		slog.String("notification_server", cfg.Downstream.NotificationServerURL),
	)

	<-ctx.Done()

	logger.Info("chat gateway is shutting down")
	if err := cleanup(context.Background()); err != nil {
		logger.Error("error shutting down http service", slog.Any("error", err))
	}
	logger.Info("chat gateway is stopped")

	return nil
}
