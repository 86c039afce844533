package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration.
type Config struct {
	// API contains API server configuration
	API APIConfig
	// Database contains database configuration
	Database DatabaseConfig
	// Auth contains session configuration
	Auth AuthConfig
	// Retention contains audit trail retention configuration
	Retention RetentionConfig

	// Rate Limiting Configuration
	RateLimit struct {
		Requests int // Number of requests allowed per window
		Window   int // Time window in seconds
		Burst    int // Maximum burst size
	}
}

// APIConfig contains API server settings.
type APIConfig struct {
	// Port is the server port to listen on
	Port string
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

// AuthConfig contains session settings.
type AuthConfig struct {
	// SessionSecret signs the session cookie tokens
	SessionSecret string
	// SessionDuration is how long a session cookie stays valid
	SessionDuration time.Duration
	// SecureCookies marks session cookies Secure (HTTPS only)
	SecureCookies bool
}

// RetentionConfig controls the nightly change-log pruning job.
type RetentionConfig struct {
	// ChangeLogDays is how many days of audit rows to keep; 0 disables
	// pruning
	ChangeLogDays int
	// Schedule is the cron expression the pruning job runs on
	Schedule string
}

// LoadFromEnv retrieves configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	c.API = APIConfig{
		Port: getEnvOrDefault("API_PORT", "8080"),
	}
	c.Database = DatabaseConfig{
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvAsInt("DB_PORT", 5432),
		User:           getEnvOrDefault("DB_USER", "postgres"),
		Password:       getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:         getEnvOrDefault("DB_NAME", "houndtrack"),
		SSLMode:        getEnvOrDefault("DB_SSL_MODE", "disable"),
		MigrationsPath: getEnvOrDefault("DB_MIGRATIONS_PATH", "migrations"),
	}
	c.Auth = AuthConfig{
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionDuration: time.Duration(getEnvAsInt("SESSION_DURATION_HOURS", 12)) * time.Hour,
		SecureCookies:   getEnvAsBool("SECURE_COOKIES", false),
	}
	c.Retention = RetentionConfig{
		ChangeLogDays: getEnvAsInt("CHANGE_LOG_RETENTION_DAYS", 365),
		Schedule:      getEnvOrDefault("CHANGE_LOG_PRUNE_SCHEDULE", "0 3 * * *"),
	}

	c.RateLimit.Requests = getEnvAsInt("RATE_LIMIT_REQUESTS", 1000)
	c.RateLimit.Window = getEnvAsInt("RATE_LIMIT_WINDOW", 60)
	c.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 50)

	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	return nil
}

// getEnvAsInt retrieves an environment variable and converts it to an integer.
func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvAsBool retrieves an environment variable and converts it to a boolean.
func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
