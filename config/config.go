// Package config loads application configuration from environment
// variables, with defaults suitable for local development.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Host         string `envconfig:"HTTP_HOST" default:""`
	Port         int    `envconfig:"PORT" default:"3001"`
	ReadTimeout  int    `envconfig:"READ_TIMEOUT" default:"15"`  // seconds
	WriteTimeout int    `envconfig:"WRITE_TIMEOUT" default:"15"` // seconds
	IdleTimeout  int    `envconfig:"IDLE_TIMEOUT" default:"60"`  // seconds
}

// DatabaseConfig selects the driver and carries the connection
// parameters. The sqlite3 driver uses Path; the postgres driver uses
// Host/Port/User/Password/Name. The credentials are treated as opaque
// strings.
type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"sqlite3"`
	Path     string `envconfig:"DB_PATH" default:"books.db"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:""`
	Password string `envconfig:"DB_PASSWORD" default:""`
	Name     string `envconfig:"DB_NAME" default:""`

	MaxOpenConns    int `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int `envconfig:"DB_MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime int `envconfig:"DB_CONN_MAX_LIFETIME" default:"300"` // seconds
}

// Load creates a Config from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}

// DriverName returns the database/sql driver name to open with.
func (c DatabaseConfig) DriverName() string {
	switch c.Driver {
	case "postgres", "pgx":
		return "pgx"
	default:
		return "sqlite3"
	}
}

// DSN builds the data source name for the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.DriverName() == "pgx" {
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:   "/" + c.Name,
		}
		if c.User != "" {
			u.User = url.UserPassword(c.User, c.Password)
		}
		return u.String()
	}
	return "file:" + c.Path + "?cache=shared&mode=rwc&_journal_mode=WAL"
}
