package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
)

type Config struct {
	App struct {
		Name    string        `envconfig:"APP_NAME" default:"PettyCash"`
		Port    int           `envconfig:"PORT" default:"8080"`
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Store struct {
		Backend Backend `envconfig:"STORE_BACKEND" default:"memory"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"pettycash"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Auth struct {
		Secret string `envconfig:"AUTH_SECRET"`
	}

	Receipts struct {
		Token string `envconfig:"RECEIPT_TOKEN"`
	}

	CORS struct {
		Origins []string `envconfig:"CORS_ORIGINS"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// Normalize before validating so downstream comparisons against the
	// Backend consts see canonical casing.
	backend := Backend(strings.ToLower(string(cfg.Store.Backend)))

	switch backend {
	case BackendMemory, BackendPostgres:
		cfg.Store.Backend = backend
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	return &cfg, nil
}
