package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Env           string
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Calendar      CalendarConfig
	Notifications NotificationConfig
	Availability  AvailabilityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CalendarConfig holds external calendar API configuration
type CalendarConfig struct {
	BaseURL     string
	AccessToken string
}

// NotificationConfig holds the transactional message API configuration
type NotificationConfig struct {
	BaseURL     string
	APIKey      string
	FromAddress string
}

// AvailabilityConfig holds availability query tuning
type AvailabilityConfig struct {
	BusyCacheTTLSeconds int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "booking_backend"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Calendar: CalendarConfig{
			BaseURL:     getEnv("CALENDAR_API_BASE_URL", "https://www.googleapis.com/calendar/v3"),
			AccessToken: getEnv("CALENDAR_API_TOKEN", ""),
		},
		Notifications: NotificationConfig{
			BaseURL:     getEnv("NOTIFY_API_BASE_URL", "https://api.notify.example.com/v1"),
			APIKey:      getEnv("NOTIFY_API_KEY", ""),
			FromAddress: getEnv("NOTIFY_FROM_ADDRESS", "bookings@velora.studio"),
		},
		Availability: AvailabilityConfig{
			BusyCacheTTLSeconds: getEnvAsInt("AVAILABILITY_BUSY_CACHE_TTL", 60),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv gets an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as an integer with a fallback default
func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
