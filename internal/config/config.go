package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kapelokal/pos/pkg/database"
	"github.com/kapelokal/pos/pkg/logger"
)

// Config holds all service configuration loaded from the environment
type Config struct {
	ServiceName  string
	Environment  string
	LogLevel     string
	HTTPPort     string
	Database     database.Config
	Timezone     *time.Location
	KafkaBrokers []string
	RedisAddr    string
}

// Load reads configuration from the environment, with an optional .env file
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Logger.Debug().Msg("No .env file found, using environment")
	}

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "pos-backoffice"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "posdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	tzName := getEnv("APP_TIMEZONE", "Asia/Manila")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		logger.Logger.Warn().Str("timezone", tzName).Msg("Unknown timezone, falling back to UTC")
		tz = time.UTC
	}
	cfg.Timezone = tz

	return cfg
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
