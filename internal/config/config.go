// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	DB        DBConfig
	Analytics AnalyticsConfig
	Metrics   MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"AGROLEDGER_APP_ENV" default:"development"`
	Port     string `envconfig:"AGROLEDGER_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"AGROLEDGER_LOG_LEVEL" default:"info"`
	Store    string `envconfig:"AGROLEDGER_STORE" default:"postgres"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UsesMemoryStore reports whether the server runs on the in-process demo snapshot.
func (a AppConfig) UsesMemoryStore() bool {
	return strings.EqualFold(a.Store, StoreMemory)
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"AGROLEDGER_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"AGROLEDGER_HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"AGROLEDGER_HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"AGROLEDGER_HTTP_SHUTDOWN_TIMEOUT" default:"30s"`
	Gzip            bool          `envconfig:"AGROLEDGER_HTTP_GZIP" default:"true"`
}

type DBConfig struct {
	DSN             string        `envconfig:"AGROLEDGER_DB_DSN"`
	MaxConns        int32         `envconfig:"AGROLEDGER_DB_MAX_CONNS" default:"20"`
	MinConns        int32         `envconfig:"AGROLEDGER_DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `envconfig:"AGROLEDGER_DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `envconfig:"AGROLEDGER_DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

type AnalyticsConfig struct {
	TimelineLimit int    `envconfig:"AGROLEDGER_ANALYTICS_TIMELINE_LIMIT" default:"500"`
	Timezone      string `envconfig:"AGROLEDGER_ANALYTICS_TIMEZONE" default:"UTC"`
}

// Location resolves the zone used for the hour-of-day histogram.
func (a AnalyticsConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvAnalyticsTimezone, err)
	}
	return loc, nil
}

type MetricsConfig struct {
	Enabled bool `envconfig:"AGROLEDGER_METRICS_ENABLED" default:"true"`
}

func (c *Config) validate() error {
	switch strings.ToLower(c.App.Store) {
	case StorePostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvStore, StorePostgres)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvStore, StorePostgres, StoreMemory, c.App.Store)
	}
	if c.DB.MinConns > c.DB.MaxConns {
		return fmt.Errorf("%s must not exceed %s", EnvDBMinConns, EnvDBMaxConns)
	}
	if c.Analytics.TimelineLimit <= 0 {
		return fmt.Errorf("%s must be positive", EnvAnalyticsTimelineLimit)
	}
	if _, err := c.Analytics.Location(); err != nil {
		return err
	}
	return nil
}
