package bootstrap

import (
	"campaign-gateway/internal/config"
	"campaign-gateway/internal/observability"
	"campaign-gateway/internal/store"
	"context"
	"fmt"

	"campaign-gateway/internal/auth/handler"
	"campaign-gateway/internal/auth/processor"
	campaignHandler "campaign-gateway/internal/campaign/handler"
	campaignProcessor "campaign-gateway/internal/campaign/processor"
	"campaign-gateway/internal/campaign/targeting"
	kafkaClient "campaign-gateway/internal/clients/kafka"
	redisClient "campaign-gateway/internal/clients/redis"
	"campaign-gateway/internal/clients/vendor"
	"campaign-gateway/internal/events"
	"campaign-gateway/internal/lock"

	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Campaign core, shared by the API server and the worker
	CampaignProcessor *campaignProcessor.CampaignProcessor
	VendorClient      *vendor.Client

	// Handlers
	AuthHandler     handler.Handler
	CampaignHandler campaignHandler.Handler

	// Clients (for cleanup)
	KafkaProducer *kafkaClient.Producer
	RedisClient   *redisClient.Client
}

// Initialize sets up all application dependencies. reg receives the vendor
// metrics; pass prometheus.DefaultRegisterer to expose them on /metrics.
func Initialize(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	connectionString := cfg.Database.ConnectionString()
	var err error
	deps.Store, err = store.New(connectionString, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize vendor client; a missing key for the active environment is fatal
	deps.VendorClient, err = vendor.NewClient(vendor.Config{
		Environment: vendor.ParseEnvironment(cfg.Vendor.Environment),
		DevBaseURL:  cfg.Vendor.DevBaseURL,
		DevAPIKey:   cfg.Vendor.DevAPIKey,
		ProdBaseURL: cfg.Vendor.ProdBaseURL,
		ProdAPIKey:  cfg.Vendor.ProdAPIKey,
		Timeout:     cfg.Vendor.Timeout,
	}, logger, vendor.NewMetrics(reg))
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to create vendor client: %w", err)
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "vendor_env", Value: string(deps.VendorClient.Environment())})
	logger.Info(ctx, "vendor client initialized")

	// Initialize targeting compiler over the cached category catalog
	catalog := targeting.NewCachedCatalog(&deps.Store, cfg.Catalog.TTL)
	var compilerOpts []targeting.Option
	if cfg.Vendor.LenientRegions {
		compilerOpts = append(compilerOpts, targeting.WithLenientRegions())
	}
	compiler := targeting.New(catalog, deps.VendorClient, compilerOpts...)

	// Initialize campaign lock: Redis when enabled, in-process otherwise
	deps.RedisClient, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	var locker lock.Locker = lock.NewMemoryLocker()
	if deps.RedisClient != nil {
		locker = lock.NewRedisLocker(deps.RedisClient, lock.RedisConfig{
			TTL:  cfg.Lock.TTL,
			Wait: cfg.Lock.Wait,
		}, logger)
	} else {
		logger.Warn(ctx, "redis disabled, campaign lock is process-local")
	}

	// Initialize status event publisher
	var publisher campaignProcessor.EventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)
		publisher = events.NewPublisher(deps.KafkaProducer, logger)
	} else {
		logger.Warn(ctx, "kafka brokers not configured, status events are dropped")
	}

	// Initialize campaign processor and handler
	campaignProc := campaignProcessor.New(
		&deps.Store,
		deps.VendorClient,
		compiler,
		locker,
		publisher,
		campaignProcessor.Config{CostPerMessage: cfg.Billing.CostPerMessage},
		logger,
	)
	deps.CampaignProcessor = &campaignProc
	deps.CampaignHandler = campaignHandler.New(deps.CampaignProcessor, logger)

	// Initialize auth processor and handler
	authProc := processor.New(cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = handler.New(authProc, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if d.KafkaProducer != nil {
		d.KafkaProducer.Close()
	}
	if d.RedisClient != nil {
		d.RedisClient.Close()
	}
	d.Store.Close()
}
