package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Queue    QueueConfig
	API      APIConfig
	LogLevel slog.Level
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// QueueConfig holds queue configuration (Redis). An empty RedisURL
// disables event publishing.
type QueueConfig struct {
	RedisURL  string
	QueueName string
}

// Enabled reports whether a Redis URL was configured
func (q QueueConfig) Enabled() bool {
	return q.RedisURL != ""
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port        int
	BaseURL     string
	PageSize    int
	MaxPageSize int
}

// Load reads configuration from environment variables, after loading a
// .env file from the working directory if there is one
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	ints := map[string]int{}
	for key, def := range map[string]string{
		"DB_PORT":           "5432",
		"DB_MAX_OPEN_CONNS": "25",
		"DB_MAX_IDLE_CONNS": "5",
		"API_PORT":          "8080",
		"PAGE_SIZE":         "10",
		"MAX_PAGE_SIZE":     "100",
	} {
		n, err := strconv.Atoi(getEnv(key, def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		ints[key] = n
	}

	logLevel, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         ints["DB_PORT"],
			User:         getEnv("DB_USER", "customers"),
			Password:     getEnv("DB_PASSWORD", "customers"),
			DBName:       getEnv("DB_NAME", "customers"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: ints["DB_MAX_OPEN_CONNS"],
			MaxIdleConns: ints["DB_MAX_IDLE_CONNS"],
		},
		Queue: QueueConfig{
			RedisURL:  os.Getenv("REDIS_URL"),
			QueueName: getEnv("EVENTS_QUEUE", "customer_events"),
		},
		API: APIConfig{
			Port:        ints["API_PORT"],
			BaseURL:     strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
			PageSize:    ints["PAGE_SIZE"],
			MaxPageSize: ints["MAX_PAGE_SIZE"],
		},
		LogLevel: logLevel,
	}, nil
}

// DSN returns the database connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
