package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	RateLimit  RateLimitConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds verification settings for access tokens issued by the
// identity subsystem. This service never issues credentials itself.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the attendance engine thresholds. The defaults
// match the documented behavior (30s QR window, 5 minute cancellation
// grace, 50m geofence) but are configurable, not hard-coded.
type AttendanceConfig struct {
	QRTokenSecret       string
	QRTokenTTL          time.Duration
	CancellationWindow  time.Duration
	DefaultRadiusMeters float64
}

type RateLimitConfig struct {
	StatusRequestsPerMinute int
}

func Load() (*Config, error) {
	// .env is optional; real deployments configure via environment.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dot_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance engine configuration
	qrTTL, err := time.ParseDuration(getEnv("QR_TOKEN_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid QR_TOKEN_TTL: %w", err)
	}

	cancelWindow, err := time.ParseDuration(getEnv("CANCELLATION_WINDOW", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CANCELLATION_WINDOW: %w", err)
	}

	defaultRadius, err := strconv.ParseFloat(getEnv("GEOFENCE_DEFAULT_RADIUS_METERS", "50"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_DEFAULT_RADIUS_METERS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		QRTokenSecret:       getEnv("QR_TOKEN_SECRET", ""),
		QRTokenTTL:          qrTTL,
		CancellationWindow:  cancelWindow,
		DefaultRadiusMeters: defaultRadius,
	}

	// Rate limiter configuration
	statusPerMinute, err := strconv.Atoi(getEnv("RATE_LIMIT_STATUS_PER_MINUTE", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_STATUS_PER_MINUTE: %w", err)
	}

	config.RateLimit = RateLimitConfig{
		StatusRequestsPerMinute: statusPerMinute,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.QRTokenSecret == "" {
		return fmt.Errorf("QR_TOKEN_SECRET is required")
	}
	if c.Attendance.QRTokenTTL <= 0 {
		return fmt.Errorf("QR_TOKEN_TTL must be positive")
	}
	if c.Attendance.CancellationWindow <= 0 {
		return fmt.Errorf("CANCELLATION_WINDOW must be positive")
	}
	if c.RateLimit.StatusRequestsPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_STATUS_PER_MINUTE must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
