package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Vendor   VendorConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Billing  BillingConfig
	Catalog  CatalogConfig
	Lock     LockConfig
	Sync     SyncConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret string
}

// VendorConfig holds both vendor environments. Only the one selected by
// Environment is required to carry an API key.
type VendorConfig struct {
	Environment string
	DevBaseURL  string
	DevAPIKey   string
	ProdBaseURL string
	ProdAPIKey  string
	Timeout     time.Duration
	// LenientRegions drops unknown region names instead of rejecting the request.
	LenientRegions bool
}

// RedisConfig holds Redis connection settings. Redis backs the distributed
// campaign lock and the job queue.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// KafkaConfig holds event streaming configuration. Empty brokers disable
// status events.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether at least one broker is configured
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// BillingConfig holds the balance check settings
type BillingConfig struct {
	CostPerMessage int64
}

// CatalogConfig holds the category catalog cache settings
type CatalogConfig struct {
	TTL time.Duration
}

// LockConfig tunes the distributed campaign lock
type LockConfig struct {
	TTL  time.Duration
	Wait time.Duration
}

// SyncConfig drives the periodic vendor status sync
type SyncConfig struct {
	Cron       string
	StaleAfter time.Duration
	BatchSize  int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment
func FromEnv() (*Config, error) {
	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Auth configuration
	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	if err := loadVendor(&cfg.Vendor); err != nil {
		return nil, err
	}

	// Redis configuration
	if cfg.Redis.Enabled, err = parseBool("REDIS_ENABLED", "false"); err != nil {
		return nil, err
	}
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = parseInt("REDIS_PORT", "6379"); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = parseInt("REDIS_DB", "0"); err != nil {
		return nil, err
	}

	// Kafka configuration
	cfg.Kafka.Brokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "campaign-gateway.campaign.events")

	// Billing configuration
	cost, err := parseInt("COST_PER_MESSAGE", "0")
	if err != nil {
		return nil, err
	}
	if cost < 0 {
		return nil, fmt.Errorf("COST_PER_MESSAGE must not be negative")
	}
	cfg.Billing.CostPerMessage = int64(cost)

	if cfg.Catalog.TTL, err = parseDuration("CATALOG_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.Lock.TTL, err = parseDuration("LOCK_TTL", "1m"); err != nil {
		return nil, err
	}
	if cfg.Lock.Wait, err = parseDuration("LOCK_WAIT", "5s"); err != nil {
		return nil, err
	}

	cfg.Sync.Cron = getEnvWithDefault("SYNC_CRON", "@every 5m")
	if cfg.Sync.StaleAfter, err = parseDuration("SYNC_STALE_AFTER", "5m"); err != nil {
		return nil, err
	}
	if cfg.Sync.BatchSize, err = parseInt("SYNC_BATCH_SIZE", "200"); err != nil {
		return nil, err
	}

	// Server configuration
	if cfg.Server.Port, err = parseInt("SERVER_PORT", "8080"); err != nil {
		return nil, err
	}
	cfg.Server.AllowedOrigins = splitList(getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:3000"))

	return cfg, nil
}

func loadVendor(v *VendorConfig) error {
	v.Environment = getEnvWithDefault("VENDOR_ENV", "development")
	v.DevBaseURL = os.Getenv("VENDOR_DEV_BASE_URL")
	v.DevAPIKey = os.Getenv("VENDOR_DEV_API_KEY")
	v.ProdBaseURL = os.Getenv("VENDOR_PROD_BASE_URL")
	v.ProdAPIKey = os.Getenv("VENDOR_PROD_API_KEY")

	// only the active environment's key is required
	key := "VENDOR_DEV_API_KEY"
	if strings.EqualFold(strings.TrimSpace(v.Environment), "production") {
		key = "VENDOR_PROD_API_KEY"
	}
	if _, err := requireEnv(key); err != nil {
		return err
	}

	var err error
	if v.Timeout, err = parseDuration("VENDOR_TIMEOUT", "10s"); err != nil {
		return err
	}
	if v.LenientRegions, err = parseBool("VENDOR_LENIENT_REGIONS", "false"); err != nil {
		return err
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseInt(key, defaultValue string) (int, error) {
	n, err := strconv.Atoi(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return n, nil
}

func parseBool(key, defaultValue string) (bool, error) {
	b, err := strconv.ParseBool(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return b, nil
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
