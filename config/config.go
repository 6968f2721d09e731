// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds the catalog server settings.
type Config struct {
	HTTPAddr        string        `env:"CATALOG_HTTP_ADDR"        envDefault:":8080"`
	Storage         string        `env:"CATALOG_STORAGE"          envDefault:"postgres"`
	ShutdownTimeout time.Duration `env:"CATALOG_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SQLitePath      string        `env:"CATALOG_SQLITE_PATH"      envDefault:"catalog.db"`
	Postgres        Postgres
}

// Postgres holds the connection components of the PostgreSQL database.
type Postgres struct {
	Host     string `env:"POSTGRES_HOST"     envDefault:"localhost"`
	Port     string `env:"POSTGRES_PORT"     envDefault:"5432"`
	User     string `env:"POSTGRES_USER"     envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB"       envDefault:"catalog"`
	SSLMode  string `env:"POSTGRES_SSLMODE"  envDefault:"disable"`
}

// DSN returns the connection URL. Credentials are percent-encoded so any
// password survives.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.DBName,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads envFile, when it exists, into the process environment and parses
// the settings. Variables already set in the environment take precedence.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Storage != StoragePostgres && cfg.Storage != StorageSQLite {
		return Config{}, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
	return cfg, nil
}
