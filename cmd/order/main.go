// The order service owns the order aggregate. It serves the order HTTP
// API, consumes basket checkouts and replica events from the broker, and
// bridges order domain events back to the broker when fulfillment is
// enabled.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	orderapp "github.com/shopstream/backend/internal/application/order"
	"github.com/shopstream/backend/internal/infrastructure/broker"
	"github.com/shopstream/backend/internal/infrastructure/cache"
	"github.com/shopstream/backend/internal/infrastructure/config"
	"github.com/shopstream/backend/internal/infrastructure/event"
	"github.com/shopstream/backend/internal/infrastructure/featureflag"
	"github.com/shopstream/backend/internal/infrastructure/logger"
	"github.com/shopstream/backend/internal/infrastructure/persistence"
	"github.com/shopstream/backend/internal/infrastructure/telemetry"
	"github.com/shopstream/backend/internal/integration"
	"github.com/shopstream/backend/internal/interfaces/http/handler"
	"github.com/shopstream/backend/internal/interfaces/http/router"
)

const serviceName = "order"

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

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productReplicas := persistence.NewGormProductReplicaRepository(db.DB)
	customerReplicas := persistence.NewGormCustomerReplicaRepository(db.DB)

	publisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers, log)
	defer publisher.Close() //nolint:errcheck

	flags := featureflag.NewCachedFlags(
		featureflag.NewStaticFlags(cfg.FeatureFlags, log),
		time.Minute,
	)

	// domain event bridge: dispatch after commit, publish when enabled
	bus := event.NewInMemoryEventBus(log)
	createdHandler := orderapp.NewOrderCreatedHandler(flags, publisher, log)
	updatedHandler := orderapp.NewOrderUpdatedHandler(flags, publisher, log)
	bus.Subscribe(createdHandler, createdHandler.EventTypes()...)
	bus.Subscribe(updatedHandler, updatedHandler.EventTypes()...)
	dispatcher := event.NewDispatcher(bus, log)

	orderService := orderapp.NewOrderService(orderRepo, dispatcher, log)

	idempotencyStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}

	consumers := buildConsumers(cfg, log, orderService, idempotencyStore, productReplicas, customerReplicas)
	for _, c := range consumers {
		go func() {
			if err := c.Start(ctx); err != nil {
				log.Error("consumer stopped with error", zap.Error(err))
			}
		}()
	}

	engine := router.New(cfg, log)
	api := engine.Group("/api/v1")
	handler.NewOrderHandler(orderService).Register(api)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("order service listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down order service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	for _, c := range consumers {
		if err := c.Close(); err != nil {
			log.Error("consumer close failed", zap.Error(err))
		}
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}
}

// buildConsumers wires the three broker subscriptions of the order
// service. The replica consumers are idempotency-wrapped; the checkout
// consumer is not, every delivery creates an order.
func buildConsumers(
	cfg *config.Config,
	log *zap.Logger,
	orderService *orderapp.OrderService,
	idempotencyStore *cache.RedisIdempotencyStore,
	productReplicas *persistence.GormProductReplicaRepository,
	customerReplicas *persistence.GormCustomerReplicaRepository,
) []*broker.Consumer {
	checkout := orderapp.NewBasketCheckoutConsumer(orderService, log)

	productUpserted := orderapp.NewProductUpsertedConsumer(
		event.NewIdempotentHandler(orderapp.NewProductReplicaHandler(productReplicas, log), idempotencyStore, log),
	)
	userRegistered := orderapp.NewUserRegisteredConsumer(
		event.NewIdempotentHandler(orderapp.NewCustomerReplicaHandler(customerReplicas, log), idempotencyStore, log),
	)

	consumerConfig := func(eventType string) broker.ConsumerConfig {
		return broker.ConsumerConfig{
			Brokers:     cfg.Kafka.Brokers,
			Topic:       integration.TopicFor(eventType),
			GroupID:     integration.GroupFor(serviceName, eventType),
			MaxAttempts: cfg.Kafka.ConsumerMaxRetries,
			BackoffBase: cfg.Kafka.ConsumerBackoff,
		}
	}

	return []*broker.Consumer{
		broker.NewConsumer(consumerConfig(integration.EventTypeBasketCheckout), checkout.Handle, log),
		broker.NewConsumer(consumerConfig(integration.EventTypeProductUpserted), productUpserted.Handle, log),
		broker.NewConsumer(consumerConfig(integration.EventTypeUserRegistered), userRegistered.Handle, log),
	}
}
