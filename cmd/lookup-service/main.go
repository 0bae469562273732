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
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
	"github.com/yourusername/shop-chatbot/internal/infrastructure/parser"
	"github.com/yourusername/shop-chatbot/internal/infrastructure/storage"
	"github.com/yourusername/shop-chatbot/internal/log"
	"github.com/yourusername/shop-chatbot/internal/telemetry"
	"github.com/yourusername/shop-chatbot/internal/usecase"
)

const (
	serviceName = "lookup-service"
	defaultPort = 5001
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running lookup service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load[config.LookupService]()
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

	productRepo, err := newProductRepository(cfg.Lookup)
	if err != nil {
		return fmt.Errorf("error opening product store: %w", err)
	}
	defer productRepo.Close()

	lookupUC := usecase.NewLookupUseCase(productRepo, parser.NewExcelParser(logger), cfg.Lookup.CurrencySymbol, logger)
	if _, err := lookupUC.Seed(ctx, cfg.Lookup.CatalogPath); err != nil {
		return fmt.Errorf("error seeding product store: %w", err)
	}

	svc := httpapi.NewLookupService(cfg.HTTP.Addr(defaultPort), logger, lookupUC)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "lookup service started",
		slog.String("address", svc.Addr()),
		slog.String("store", cfg.Lookup.Store.String()),
	)

	<-ctx.Done()

	logger.Info("lookup service is shutting down")
	if err := cleanup(context.Background()); err != nil {
		logger.Error("error shutting down http service", slog.Any("error", err))
	}
	logger.Info("lookup service is stopped")

	return nil
}

func newProductRepository(cfg config.Lookup) (repository.ProductRepository, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryProductRepository(), nil
	default:
		return storage.NewSQLiteProductRepository(cfg.DBPath)
	}
}
