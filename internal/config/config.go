// internal/config/config.go
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"campaignhub/internal/config/configs"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config aggregates every configuration section. Sections are populated from
// environment variables; see the configs package for names and defaults.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	HTTP  configs.HTTP     `envPrefix:"HTTP_"`
	Log   configs.Logger   `envPrefix:"LOG_"`
	Store configs.Store    `envPrefix:"STORE_"`
	Mongo configs.Mongo    `envPrefix:"MONGODB_"`
	Psql  configs.Postgres `envPrefix:"PSQL_"`
	Redis configs.Redis    `envPrefix:"REDIS_"`
	Auth  configs.Auth     `envPrefix:"AUTH_"`
	CORS  configs.CORS     `envPrefix:"CORS_"`
}

// Load reads the configuration from the environment and checks the settings
// the selected store driver depends on.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("invalid/missing environment variable: MONGODB_URI")
		}
	case DriverPostgres:
		if c.Psql.Addr == "" {
			return errors.New("invalid/missing environment variable: PSQL_ADDRESS")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}
