package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gallery-backend/internal/infrastructure/database"
)

// PostgresConfig builds the pool settings used when Driver is postgres.
// Connection lifetime and idle limits are left at pgxpool's defaults.
func (d DatabaseConfig) PostgresConfig() (*database.DBConfig, error) {
	var env envReader

	cfg := &database.DBConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           env.int("DB_PORT", 5432),
		Username:       getEnv("DB_USER", "gallery"),
		Password:       d.Password,
		DBName:         getEnv("DB_NAME", "gallery_dev"),
		SSLMode:        getEnv("DB_SSLMODE", "disable"),
		MaxConns:       int32(env.int("DB_MAX_CONNECTIONS", 10)),
		MinConns:       int32(env.int("DB_MIN_CONNECTIONS", 1)),
		MaxRetries:     env.int("DB_MAX_RETRIES", 5),
		RetryDelay:     env.duration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: env.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}
	if err := env.err(); err != nil {
		return nil, err
	}

	if cfg.MaxConns < 1 || cfg.MinConns < 0 || cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("invalid pool size: min=%d max=%d", cfg.MinConns, cfg.MaxConns)
	}
	return cfg, nil
}

// envReader parses typed variables and collects every parse failure.
type envReader struct {
	errs []error
}

func (r *envReader) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}
