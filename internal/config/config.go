package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store drivers understood by the server.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port           string   `envconfig:"PORT" default:"5000"`
	DatabaseDriver string   `envconfig:"DATABASE_DRIVER" default:"postgres"`
	DatabaseURL    string   `envconfig:"DATABASE_URL"`
	CORSOrigins    []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Console client.
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:5000/api"`
	NoticeTTL  time.Duration `envconfig:"NOTICE_TTL" default:"3s"`

	Log LogConfig `envconfig:"LOG"`
}

// LogConfig configures the zap logger and its optional rotated file output.
// Keys are read with the LOG_ prefix, e.g. LOG_LEVEL.
type LogConfig struct {
	Level      string `envconfig:"LEVEL" default:"info"`
	File       string `envconfig:"FILE"`
	MaxSizeMB  int    `envconfig:"MAX_SIZE_MB" default:"100"`
	MaxBackups int    `envconfig:"MAX_BACKUPS" default:"3"`
	MaxAgeDays int    `envconfig:"MAX_AGE_DAYS" default:"28"`
	Compress   bool   `envconfig:"COMPRESS" default:"true"`
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.CORSOrigins = normalizeOrigins(cfg.CORSOrigins)

	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverMySQL, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if cfg.NoticeTTL <= 0 {
		return Config{}, errors.New("NOTICE_TTL must be positive")
	}

	return cfg, nil
}

// RequireDatabase reports a missing DATABASE_URL for the drivers that need one.
// Only commands that open the store call it, so the console runs without database settings.
func (c Config) RequireDatabase() error {
	if c.DatabaseDriver != DriverMemory && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func normalizeOrigins(input []string) []string {
	var out []string
	for _, part := range input {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
