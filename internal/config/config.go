package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Engine names accepted for DB_ENGINE
const (
	EngineSurreal = "surreal"
	EngineMemory  = "memory"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string        `env:"SERVER_PORT" env-default:"8080"`
	Env            string        `env:"SERVER_ENV" env-default:"development"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

// DatabaseConfig holds engine selection and SurrealDB connection settings
type DatabaseConfig struct {
	Engine    string `env:"DB_ENGINE" env-default:"surreal"`
	Host      string `env:"DB_HOST" env-default:"localhost"`
	Port      string `env:"DB_PORT" env-default:"8000"`
	Namespace string `env:"DB_NAMESPACE" env-default:"directory"`
	Database  string `env:"DB_DATABASE" env-default:"main"`
	User      string `env:"DB_USER" env-default:"root"`
	Password  string `env:"DB_PASSWORD" env-default:"root"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	switch c.Database.Engine {
	case EngineSurreal:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
	case EngineMemory:
		// No connection settings needed
	default:
		errs = append(errs, fmt.Errorf("DB_ENGINE must be '%s' or '%s', got '%s'", EngineSurreal, EngineMemory, c.Database.Engine))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
