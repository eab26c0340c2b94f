// The catalog service serves the product HTTP API, stores product
// images in S3-compatible object storage, and announces product writes
// on the broker so downstream replicas can follow along.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/shopstream/backend/internal/application/catalog"
	"github.com/shopstream/backend/internal/domain/catalog"
	"github.com/shopstream/backend/internal/infrastructure/broker"
	"github.com/shopstream/backend/internal/infrastructure/config"
	"github.com/shopstream/backend/internal/infrastructure/logger"
	"github.com/shopstream/backend/internal/infrastructure/persistence"
	"github.com/shopstream/backend/internal/infrastructure/storage"
	"github.com/shopstream/backend/internal/infrastructure/telemetry"
	"github.com/shopstream/backend/internal/interfaces/http/handler"
	"github.com/shopstream/backend/internal/interfaces/http/router"
)

const serviceName = "catalog"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, zap.String("service", serviceName))
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.App.Name + "-" + serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	images, err := buildImageStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize image storage", zap.Error(err))
	}

	publisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers, log)
	defer publisher.Close() //nolint:errcheck

	productService := catalogapp.NewProductService(
		persistence.NewGormProductRepository(db.DB),
		images,
		publisher,
		log,
	)

	engine := router.New(cfg, log)
	api := engine.Group("/api/v1")
	handler.NewCatalogHandler(productService).Register(api)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("catalog service listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down catalog service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}
}

// buildImageStorage selects the image backend. A configured bucket means
// S3; without one the service keeps images in memory, which is only
// suitable for local development.
func buildImageStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (catalog.ImageStorage, error) {
	if cfg.Storage.Bucket == "" {
		log.Warn("no storage bucket configured, product images are kept in memory")
		return storage.NewMemoryImageStorage(), nil
	}

	s3Storage, err := storage.NewS3ImageStorage(&cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return s3Storage, nil
}
