// Package config provides configuration loading for alignd.
//
// Configuration is loaded from a YAML file, then overridden with
// environment variables. Defaults cover everything, so alignd runs with
// no config file at all.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the complete alignd configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Store         StoreConfig         `koanf:"store"`
	Generation    GenerationConfig    `koanf:"generation"`
	Observability ObservabilityConfig `koanf:"observability"`
	Logging       LoggingConfig       `koanf:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int           `koanf:"http_port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StoreConfig holds persistent store configuration.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// GenerationConfig holds reflection generation configuration.
type GenerationConfig struct {
	Model             string  `koanf:"model"`
	Temperature       float64 `koanf:"temperature"`
	RequestsPerMinute int     `koanf:"requests_per_minute"`
}

// ObservabilityConfig holds metrics configuration.
type ObservabilityConfig struct {
	ServiceName string `koanf:"service_name"`
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate validates the configuration.
//
// Returns an error if:
//   - Server port is not between 1 and 65535
//   - Shutdown timeout is not positive
//   - Store path is empty
//   - Temperature is outside [0, 2]
//   - Requests per minute is not positive
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	if c.Store.Path == "" {
		return errors.New("store path is required")
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return fmt.Errorf("invalid temperature: %g (must be 0-2)", c.Generation.Temperature)
	}
	if c.Generation.RequestsPerMinute <= 0 {
		return errors.New("requests per minute must be positive")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %q (must be json or console)", c.Logging.Format)
	}
	return nil
}
