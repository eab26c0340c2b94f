// The basket service serves the shopping cart HTTP API. Carts live in
// Postgres behind a Redis cache-aside layer, discounts come from the
// external discount service, and checkouts are published to the broker.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	basketapp "github.com/shopstream/backend/internal/application/basket"
	"github.com/shopstream/backend/internal/infrastructure/broker"
	"github.com/shopstream/backend/internal/infrastructure/cache"
	"github.com/shopstream/backend/internal/infrastructure/config"
	"github.com/shopstream/backend/internal/infrastructure/discount"
	"github.com/shopstream/backend/internal/infrastructure/logger"
	"github.com/shopstream/backend/internal/infrastructure/persistence"
	"github.com/shopstream/backend/internal/infrastructure/telemetry"
	"github.com/shopstream/backend/internal/interfaces/http/handler"
	"github.com/shopstream/backend/internal/interfaces/http/router"
)

const serviceName = "basket"

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

	cartCache, err := cache.NewRedisCartCache(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cache.WithCartTTL(cfg.Basket.CartCacheTTL))
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer cartCache.Close() //nolint:errcheck

	cartStore := cache.NewCachedCartStore(persistence.NewGormCartStore(db.DB), cartCache, log)

	discounts := discount.NewClient(cfg.Discount.BaseURL, log,
		discount.WithHTTPClient(&http.Client{Timeout: cfg.Discount.Timeout}))

	publisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers, log)
	defer publisher.Close() //nolint:errcheck

	basketService := basketapp.NewBasketService(cartStore, discounts, publisher, log)

	engine := router.New(cfg, log)
	api := engine.Group("/api/v1")
	handler.NewBasketHandler(basketService).Register(api)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("basket service listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down basket service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}
}
