package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/platinummonkey/todos/pkg/auth"
	"github.com/platinummonkey/todos/pkg/observability"
	"github.com/platinummonkey/todos/pkg/storage"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage configuration
	Storage storage.Config

	// Auth configuration
	Auth AuthConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// AuthConfig holds the signing key and password hashing settings
type AuthConfig struct {
	// JWTSecret signs session tokens; process-wide, loaded once here.
	JWTSecret string

	// BcryptCost is the password hashing work factor. Each increment
	// roughly doubles hashing latency, so the valid range is bounded and
	// an out-of-range value is a configuration error, not a security
	// tradeoff.
	BcryptCost int
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from an optional YAML file and the
// environment. Environment variables win over file values.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: storage.DefaultConfig(),
		Auth: AuthConfig{
			BcryptCost: auth.DefaultCost,
		},
		Observability: ObservabilityConfig{
			LogLevel:       observability.InfoLevel,
			MetricsEnabled: true,
		},
	}

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnv overlays TODOS_-prefixed environment variables
func (c *Config) applyEnv() {
	c.Server.Host = getEnv("TODOS_HOST", c.Server.Host)
	c.Server.Port = getEnv("TODOS_PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvDuration("TODOS_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvDuration("TODOS_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getEnvDuration("TODOS_IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.ShutdownTimeout = getEnvDuration("TODOS_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Storage.Type = getEnv("TODOS_STORAGE_TYPE", c.Storage.Type)
	c.Storage.SQLitePath = getEnv("TODOS_SQLITE_PATH", c.Storage.SQLitePath)
	c.Storage.PostgresURL = getEnv("TODOS_POSTGRES_URL", c.Storage.PostgresURL)
	c.Storage.PostgresMaxConns = getEnvInt("TODOS_POSTGRES_MAX_CONNS", c.Storage.PostgresMaxConns)
	c.Storage.PostgresMinConns = getEnvInt("TODOS_POSTGRES_MIN_CONNS", c.Storage.PostgresMinConns)
	c.Storage.PostgresTimeout = getEnvDuration("TODOS_POSTGRES_TIMEOUT", c.Storage.PostgresTimeout)

	c.Auth.JWTSecret = getEnv("TODOS_JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.BcryptCost = getEnvInt("TODOS_BCRYPT_COST", c.Auth.BcryptCost)

	c.Observability.LogLevel = observability.ParseLogLevel(getEnv("TODOS_LOG_LEVEL", c.Observability.LogLevel.String()))
	c.Observability.MetricsEnabled = getEnvBool("TODOS_METRICS_ENABLED", c.Observability.MetricsEnabled)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (set TODOS_JWT_SECRET)")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > auth.MaxCost {
		return fmt.Errorf("bcrypt cost must be between 4 and %d, got %d", auth.MaxCost, c.Auth.BcryptCost)
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
