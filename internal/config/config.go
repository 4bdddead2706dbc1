package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store and session drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Store     StoreConfig
	Session   SessionConfig
	Redis     RedisConfig
	Fixtures  FixtureConfig
	S3        S3Config
	Gateway   GatewayConfig
	Assistant AssistantConfig
	Kiosk     KioskConfig
	Auth      AuthConfig
	Support   SupportConfig
	Metrics   MetricsConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// StoreConfig selects where fixture data is read from.
type StoreConfig struct {
	Driver string // "memory" or "postgres"
}

// SessionConfig selects the session backend.
type SessionConfig struct {
	Driver string // "memory" or "redis"
	TTL    time.Duration
}

// RedisConfig holds Redis connection settings for the session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// FixtureConfig holds the paths of the pharmacy and catalog documents.
type FixtureConfig struct {
	PharmacyPath string
	CatalogPath  string
}

// S3Config holds AWS S3 configuration for fixture documents.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "fixtures/")
}

// GatewayConfig holds the simulated latencies of the mock gateway.
type GatewayConfig struct {
	OTPDelay    time.Duration
	ReadDelay   time.Duration
	LogoutDelay time.Duration
}

// AssistantConfig holds assistant settings.
type AssistantConfig struct {
	RulesPath string // optional YAML rule file
	Delay     time.Duration
}

// KioskConfig holds kiosk cart settings.
type KioskConfig struct {
	ClearDelay time.Duration
}

// AuthConfig holds login settings.
type AuthConfig struct {
	OTPResendInterval time.Duration
}

// SupportConfig holds the customer support contact.
type SupportConfig struct {
	Phone string
}

// MetricsConfig holds OpenTelemetry exporter settings.
type MetricsConfig struct {
	Enabled      bool
	Endpoint     string
	Insecure     bool
	ServiceName  string
	ExportPeriod time.Duration
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "farmafacil"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 2),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", DriverMemory),
		},
		Session: SessionConfig{
			Driver: getEnv("SESSION_DRIVER", DriverMemory),
			TTL:    getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Fixtures: FixtureConfig{
			PharmacyPath: getEnv("FIXTURE_PHARMACY_PATH", "data/pharmacy.json"),
			CatalogPath:  getEnv("FIXTURE_CATALOG_PATH", "data/catalog.json"),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "eu-west-1"),
			Prefix:  getEnv("S3_PREFIX", "fixtures/"),
		},
		Gateway: GatewayConfig{
			OTPDelay:    getEnvAsDuration("GATEWAY_OTP_DELAY", time.Second),
			ReadDelay:   getEnvAsDuration("GATEWAY_READ_DELAY", 500*time.Millisecond),
			LogoutDelay: getEnvAsDuration("GATEWAY_LOGOUT_DELAY", 300*time.Millisecond),
		},
		Assistant: AssistantConfig{
			RulesPath: getEnv("ASSISTANT_RULES_PATH", ""),
			Delay:     getEnvAsDuration("ASSISTANT_DELAY", 1500*time.Millisecond),
		},
		Kiosk: KioskConfig{
			ClearDelay: getEnvAsDuration("KIOSK_CLEAR_DELAY", 2*time.Second),
		},
		Auth: AuthConfig{
			OTPResendInterval: getEnvAsDuration("OTP_RESEND_INTERVAL", 30*time.Second),
		},
		Support: SupportConfig{
			Phone: getEnv("SUPPORT_PHONE", "34612345678"),
		},
		Metrics: MetricsConfig{
			Enabled:      getEnvAsBool("METRICS_ENABLED", false),
			Endpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			Insecure:     getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "farmafacil-api"),
			ExportPeriod: getEnvAsDuration("OTEL_METRIC_EXPORT_INTERVAL", 10*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be memory or postgres)", c.Store.Driver)
	}

	switch c.Session.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required when session driver is redis")
		}
	default:
		return fmt.Errorf("invalid session driver: %s (must be memory or redis)", c.Session.Driver)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	if c.Fixtures.PharmacyPath == "" || c.Fixtures.CatalogPath == "" {
		return fmt.Errorf("fixture document paths are required")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	delays := map[string]time.Duration{
		"gateway OTP delay":    c.Gateway.OTPDelay,
		"gateway read delay":   c.Gateway.ReadDelay,
		"gateway logout delay": c.Gateway.LogoutDelay,
		"assistant delay":      c.Assistant.Delay,
		"kiosk clear delay":    c.Kiosk.ClearDelay,
		"OTP resend interval":  c.Auth.OTPResendInterval,
	}
	for name, d := range delays {
		if d < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	if c.Support.Phone == "" {
		return fmt.Errorf("support phone is required")
	}

	if c.Metrics.Enabled && c.Metrics.Endpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when metrics are enabled")
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("1.5s") or plain milliseconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
