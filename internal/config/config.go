// Package config centralises configuration parsing for fitlog.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prefix is prepended to every environment variable, e.g. FITLOG_STORE_DRIVER.
const Prefix = "FITLOG"

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config captures runtime configuration values.
type Config struct {
	StoreDriver   string `envconfig:"STORE_DRIVER" default:"sqlite"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"fitlog.db"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	PostgresURL   string `envconfig:"POSTGRES_URL" default:""`
	HTTPAddress   string `envconfig:"HTTP_ADDRESS" default:":8080"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"console"`
	SaveQueueSize int    `envconfig:"SAVE_QUEUE_SIZE" default:"16"`
}

// Load reads environment variables into Config and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown drivers and missing driver settings.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%s_SQLITE_PATH is required for the sqlite driver", Prefix)
		}
	case DriverRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("%s_REDIS_ADDR is required for the redis driver", Prefix)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.PostgresURL) == "" {
			return fmt.Errorf("%s_POSTGRES_URL is required for the postgres driver", Prefix)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported %s_STORE_DRIVER: %q", Prefix, c.StoreDriver)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid %s_LOG_LEVEL: %w", Prefix, err)
	}
	return nil
}

// InitLogger configures the global zerolog logger from LogLevel and LogFormat.
func (c Config) InitLogger(out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.LogFormat == "json" {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		NoColor:    true,
	})
}
