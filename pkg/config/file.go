package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/todos/pkg/observability"
)

// fileConfig mirrors Config with YAML tags. Zero values mean "not set" and
// leave the existing value untouched.
type fileConfig struct {
	Server struct {
		Host            string `yaml:"host"`
		Port            string `yaml:"port"`
		ReadTimeout     string `yaml:"read_timeout"`
		WriteTimeout    string `yaml:"write_timeout"`
		IdleTimeout     string `yaml:"idle_timeout"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Storage struct {
		Type             string `yaml:"type"`
		SQLitePath       string `yaml:"sqlite_path"`
		PostgresURL      string `yaml:"postgres_url"`
		PostgresMaxConns int    `yaml:"postgres_max_conns"`
		PostgresMinConns int    `yaml:"postgres_min_conns"`
		PostgresTimeout  string `yaml:"postgres_timeout"`
	} `yaml:"storage"`
	Auth struct {
		JWTSecret  string `yaml:"jwt_secret"`
		BcryptCost int    `yaml:"bcrypt_cost"`
	} `yaml:"auth"`
	Observability struct {
		LogLevel       string `yaml:"log_level"`
		MetricsEnabled *bool  `yaml:"metrics_enabled"`
	} `yaml:"observability"`
}

// applyFile overlays values from a YAML config file
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	setString(&c.Server.Host, fc.Server.Host)
	setString(&c.Server.Port, fc.Server.Port)
	if err := setDuration(&c.Server.ReadTimeout, fc.Server.ReadTimeout); err != nil {
		return err
	}
	if err := setDuration(&c.Server.WriteTimeout, fc.Server.WriteTimeout); err != nil {
		return err
	}
	if err := setDuration(&c.Server.IdleTimeout, fc.Server.IdleTimeout); err != nil {
		return err
	}
	if err := setDuration(&c.Server.ShutdownTimeout, fc.Server.ShutdownTimeout); err != nil {
		return err
	}

	setString(&c.Storage.Type, fc.Storage.Type)
	setString(&c.Storage.SQLitePath, fc.Storage.SQLitePath)
	setString(&c.Storage.PostgresURL, fc.Storage.PostgresURL)
	setInt(&c.Storage.PostgresMaxConns, fc.Storage.PostgresMaxConns)
	setInt(&c.Storage.PostgresMinConns, fc.Storage.PostgresMinConns)
	if err := setDuration(&c.Storage.PostgresTimeout, fc.Storage.PostgresTimeout); err != nil {
		return err
	}

	setString(&c.Auth.JWTSecret, fc.Auth.JWTSecret)
	setInt(&c.Auth.BcryptCost, fc.Auth.BcryptCost)

	if fc.Observability.LogLevel != "" {
		c.Observability.LogLevel = observability.ParseLogLevel(fc.Observability.LogLevel)
	}
	if fc.Observability.MetricsEnabled != nil {
		c.Observability.MetricsEnabled = *fc.Observability.MetricsEnabled
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// setDuration parses a "15s"-style duration string; empty means "not set"
func setDuration(dst *time.Duration, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid duration %q in config file: %w", v, err)
	}
	*dst = d
	return nil
}
