package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/platinummonkey/todos/pkg/todos"
	"github.com/platinummonkey/todos/pkg/users"
)

// Store is the full persistence surface of the service
type Store interface {
	users.Store
	todos.Store

	// Ping verifies the backend is reachable
	Ping(ctx context.Context) error

	// Close releases the backend connection
	Close() error
}

// Config for the storage backend
type Config struct {
	Type string // "memory", "sqlite", "postgres"

	// SQLite config
	SQLitePath string

	// PostgreSQL config
	PostgresURL      string
	PostgresMaxConns int
	PostgresMinConns int
	PostgresTimeout  time.Duration
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Type:             "sqlite",
		SQLitePath:       "todos.db",
		PostgresMaxConns: 20,
		PostgresMinConns: 2,
		PostgresTimeout:  5 * time.Second,
	}
}

// Validate checks the configuration for the selected backend
func (c Config) Validate() error {
	switch c.Type {
	case "memory":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for sqlite storage")
		}
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("postgres URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("invalid storage type: %s (must be memory, sqlite, or postgres)", c.Type)
	}
	return nil
}

// Open creates the storage backend selected by the configuration. SQL
// backends are migrated before being returned.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return openSQLite(ctx, cfg)
	case "postgres":
		return openPostgres(ctx, cfg)
	}
	return nil, fmt.Errorf("invalid storage type: %s", cfg.Type)
}
