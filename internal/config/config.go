package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/mongodb"
)

// Config holds the full service configuration
type Config struct {
	ServiceName string
	Environment string
	ServerAddr  string
	LogLevel    logging.LogLevel

	Mongo *mongodb.Config

	Redis RedisConfig
	Auth  AuthConfig
	SMTP  SMTPConfig
	Tax   TaxConfig

	Report ReportConfig
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// AuthConfig holds authentication settings
type AuthConfig struct {
	JWTSecret     string
	JWTIssuer     string
	JWTExpiry     time.Duration
	AdminUsername string
	// Bcrypt hash of the admin password
	AdminPasswordHash string
}

// SMTPConfig holds outbound email settings
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
	Enabled    bool
}

// TaxConfig holds the GST component rates as percentages
type TaxConfig struct {
	CGSTPercent string
	SGSTPercent string
}

// ReportConfig holds daily report scheduler settings
type ReportConfig struct {
	Enabled bool
	// Hour of day (0-23, server local time) at which the daily report fires
	Hour int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "garage-api"),
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		LogLevel:    logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Mongo: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "garage"),
			ConnectTimeout: getDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
			MaxPoolSize:    uint64(getInt("MONGODB_MAX_POOL_SIZE", 100)),
			MinPoolSize:    uint64(getInt("MONGODB_MIN_POOL_SIZE", 10)),
			Username:       getEnv("MONGODB_USERNAME", ""),
			Password:       getEnv("MONGODB_PASSWORD", ""),
			AuthDB:         getEnv("MONGODB_AUTH_DB", "admin"),
			ReplicaSet:     getEnv("MONGODB_REPLICA_SET", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
			Enabled:  getBool("REDIS_ENABLED", false),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			JWTIssuer:         getEnv("JWT_ISSUER", "garage-api"),
			JWTExpiry:         getDuration("JWT_EXPIRY", 24*time.Hour),
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", "localhost"),
			Port:       getInt("SMTP_PORT", 587),
			Username:   getEnv("SMTP_USERNAME", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			From:       getEnv("SMTP_FROM", "noreply@garage.local"),
			Recipients: splitList(getEnv("REPORT_RECIPIENTS", "")),
			Enabled:    getBool("SMTP_ENABLED", false),
		},
		Tax: TaxConfig{
			CGSTPercent: getEnv("TAX_CGST_PERCENT", "9"),
			SGSTPercent: getEnv("TAX_SGST_PERCENT", "9"),
		},
		Report: ReportConfig{
			Enabled: getBool("REPORT_ENABLED", false),
			Hour:    getInt("REPORT_HOUR", 20),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Report.Hour < 0 || c.Report.Hour > 23 {
		return fmt.Errorf("REPORT_HOUR must be between 0 and 23, got %d", c.Report.Hour)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
