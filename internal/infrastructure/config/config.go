package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/dwstyles/internal/adapters/otel"
)

// Database holds catalog database configuration. A file: URL opens a local
// SQLite file; a libsql:// URL connects to Turso with AuthToken.
type Database struct {
	URL       string `envconfig:"DWSTYLES_DATABASE_URL" default:"file:dwstyles.db"`
	AuthToken string `envconfig:"DWSTYLES_AUTH_TOKEN"`
}

type Log struct {
	Level  string `envconfig:"DWSTYLES_LOG_LEVEL" default:"info"`
	Format string `envconfig:"DWSTYLES_LOG_FORMAT" default:"console"`
}

// Server holds configuration for the HTTP API.
type Server struct {
	Addr            string        `envconfig:"DWSTYLES_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"DWSTYLES_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Batch holds configuration for offline maintenance jobs.
type Batch struct {
	Workers int `envconfig:"DWSTYLES_WORKERS" default:"0"`
}

type Config struct {
	Database Database
	Log      Log
	Server   Server
	Batch    Batch
	Otel     otel.Config
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	for _, spec := range []any{&cfg.Database, &cfg.Log, &cfg.Server, &cfg.Batch, &cfg.Otel} {
		if err := envconfig.Process("", spec); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
