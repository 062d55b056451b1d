package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration, populated from environment
// variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Gallery  GalleryConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

// DatabaseConfig selects the store. Pool settings for PostgreSQL are read
// by PostgresConfig.
type DatabaseConfig struct {
	Driver     string // postgres, sqlite
	Password   string
	SQLitePath string
}

type GalleryConfig struct {
	// Category that unlinked artworks are moved to
	DefaultCategoryID int64
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Gallery API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", DriverPostgres),
			Password:   getEnv("DB_PASSWORD", ""),
			SQLitePath: getEnv("SQLITE_PATH", "gallery.db"),
		},
		Gallery: GalleryConfig{
			DefaultCategoryID: int64(getEnvInt("GALLERY_DEFAULT_CATEGORY_ID", 1)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if c.Database.Driver == DriverSQLite && c.Database.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH must be set when DB_DRIVER=sqlite")
	}

	if c.Gallery.DefaultCategoryID <= 0 {
		return fmt.Errorf("GALLERY_DEFAULT_CATEGORY_ID must be positive")
	}

	if c.App.Environment == "production" {
		if c.Database.Driver == DriverPostgres && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
