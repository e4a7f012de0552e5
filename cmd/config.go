package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Backend names accepted in BACKEND.
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Session store names accepted in SESSION_STORE.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	BotToken       string        `env:"BOT_TOKEN"`
	WebhookSecret  string        `env:"WEBHOOK_SECRET"`
	PublicURL      string        `env:"PUBLIC_URL"`
	HTTPPort       string        `env:"HTTP_PORT" envDefault:"8080"`
	AdminIDs       []int64       `env:"ADMIN_IDS" envSeparator:","`
	PollInterval   time.Duration `env:"POLL_INTERVAL" envDefault:"3m"`
	TelegramAPIURL string        `env:"TELEGRAM_API_URL"`
	SendTimeout    time.Duration `env:"SEND_TIMEOUT" envDefault:"10s"`

	Backend               string        `env:"BACKEND" envDefault:"sheets"`
	BackendTimeout        time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
	GoogleSheetsID        string        `env:"GOOGLE_SHEETS_ID"`
	GoogleCredentialsJSON string        `env:"GOOGLE_CREDENTIALS_JSON"`
	GoogleCredentialsFile string        `env:"GOOGLE_CREDENTIALS_FILE"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	SessionStore  string        `env:"SESSION_STORE" envDefault:"memory"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`

	SweepPersistBeforeSend bool `env:"SWEEP_PERSIST_BEFORE_SEND" envDefault:"false"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogEncoding string `env:"LOG_ENCODING" envDefault:"json"`
}

// LoadConfig reads .env files when present and then the process environment.
// Variables already set in the environment win over .env values.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings that depend on each other.
func (c Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendSheets:
		if c.GoogleSheetsID == "" {
			errs = append(errs, errors.New("GOOGLE_SHEETS_ID is required for the sheets backend"))
		}
	case BackendPostgres:
		if c.DBName == "" {
			errs = append(errs, errors.New("DB_NAME is required for the postgres backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown BACKEND %q", c.Backend))
	}

	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_STORE %q", c.SessionStore))
	}

	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("POLL_INTERVAL must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

// ValidateBot checks what every command that talks to the chat API needs.
func (c Config) ValidateBot() error {
	if c.BotToken == "" {
		return errors.New("BOT_TOKEN is required")
	}
	return nil
}
