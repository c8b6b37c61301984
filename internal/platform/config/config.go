package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName    string `env:"SERVICE_NAME" envDefault:"electoral"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	PostgresDSN    string `env:"POSTGRES_DSN"`

	NATSURL            string `env:"NATS_URL"`
	EventSubjectPrefix string `env:"EVENT_SUBJECT_PREFIX" envDefault:"electoral"`

	AdminIdentity   string `env:"ADMIN_IDENTITY,required"`
	ReportsIdentity string `env:"REPORTS_IDENTITY"`

	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"2s"`
	OutboxBatchSize    int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	EnableOutboxRelay  bool          `env:"ENABLE_OUTBOX_RELAY" envDefault:"true"`
}

// Load reads an optional .env file (ENV_FILE or ./.env) and then parses the
// process environment. Variables already set in the environment win.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}
	if strings.TrimSpace(c.AdminIdentity) == "" {
		return errors.New("ADMIN_IDENTITY is required")
	}
	if c.OutboxBatchSize <= 0 {
		return errors.New("OUTBOX_BATCH_SIZE must be positive")
	}
	if c.OutboxPollInterval <= 0 {
		return errors.New("OUTBOX_POLL_INTERVAL must be positive")
	}
	return nil
}

func loadDotEnv() error {
	path := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
