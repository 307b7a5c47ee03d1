package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ListenAddr  string
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWTSecret []byte
	TokenTTL  time.Duration

	HashCost          int
	HashWorkers       int
	HashQueue         int
	PasswordMinLength int

	KafkaAddress string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

type loader struct {
	errs []error
}

func (l *loader) must(name string) string {
	v := os.Getenv(name)
	if v == "" {
		l.errs = append(l.errs, fmt.Errorf("missing required env %s", name))
	}
	return v
}

func (l *loader) int(name string, def int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("env %s: %w", name, err))
		return def
	}
	return v
}

func (l *loader) duration(name string, def time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("env %s: %w", name, err))
		return def
	}
	return v
}

// Load reads the given env files (default ".env") and then the process
// environment. Missing files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			slog.Debug("env file not loaded", "file", f, "error", err)
		}
	}

	l := &loader{}
	cfg := &Config{
		ServiceName: getenv("SERVICE_NAME", "shop-catalog"),
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		DBDriver:    getenv("DB_DRIVER", "postgres"),
		DatabaseURL: l.must("DATABASE_URL"),

		JWTSecret: []byte(l.must("JWT_SECRET")),
		TokenTTL:  l.duration("TOKEN_TTL", 24*time.Hour),

		HashCost:          l.int("HASH_COST", 10),
		HashWorkers:       l.int("HASH_WORKERS", 4),
		HashQueue:         l.int("HASH_QUEUE", 64),
		PasswordMinLength: l.int("PASSWORD_MIN_LENGTH", 8),

		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    getenv("ES_INDEX", "products"),
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		l.errs = append(l.errs, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}
	if cfg.HashWorkers < 1 {
		l.errs = append(l.errs, fmt.Errorf("HASH_WORKERS must be positive, got %d", cfg.HashWorkers))
	}

	if err := errors.Join(l.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}
