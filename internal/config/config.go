// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Binding store drivers accepted in BINDING_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds all configuration values for the planner CLI and companion API.
type Config struct {
	// Port is the TCP port the companion API listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins,
	// comma-separated in CORS_ORIGINS. Defaults to the Expo dev server.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:8081"`

	// PlannerAPIURL is the base URL of the remote planner API. Required.
	PlannerAPIURL string `env:"PLANNER_API_URL,required,notEmpty"`

	// RemoteTimeout bounds every call to the remote API.
	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT" envDefault:"30s"`

	// DeviceID names this device in the binding store, so one shared
	// postgres or redis store can serve many devices.
	DeviceID string `env:"DEVICE_ID" envDefault:"local"`

	// BindingDriver selects where the current trip is remembered.
	BindingDriver string `env:"BINDING_DRIVER" envDefault:"sqlite"`

	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"planner.db"`

	// DatabaseURL is the Postgres connection string. Required for the postgres driver.
	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// LinkScheme is the deep link scheme, e.g. planner://trip/<id>.
	LinkScheme string `env:"LINK_SCHEME" envDefault:"planner"`

	// MaxBodyBytes caps request bodies on the companion API.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads an optional .env file from the working directory, then
// configuration from environment variables. Variables already set in the
// environment win over the file. Returns an error naming any required
// variable that is not set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	cfg.BindingDriver = strings.ToLower(strings.TrimSpace(cfg.BindingDriver))

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	switch c.BindingDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			missing = append(missing, "SQLITE_PATH")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("BINDING_DRIVER %q is not one of sqlite, postgres, redis, memory", c.BindingDriver)
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables not set for %s: %s", c.BindingDriver, strings.Join(missing, ", "))
	}
	if c.RemoteTimeout <= 0 {
		return errors.New("REMOTE_TIMEOUT must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be positive")
	}
	return nil
}

// trimAll trims each entry and drops empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
