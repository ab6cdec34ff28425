// Package config centralises configuration parsing for the fittracker binaries.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration values for the training summary API.
type Config struct {
	HTTPAddress        string
	MetricsAddress     string
	JWTSecret          string
	JWTIssuer          string
	AuthDisabled       bool
	KafkaBrokers       []string
	SummaryTopic       string
	SchemaRegistryURL  string
	PublishTimeout     time.Duration
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	RateLimitBurst     int
	ShutdownTimeout    time.Duration
}

// PublishingEnabled reports whether summary events should be written to Kafka.
func (c Config) PublishingEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads an optional .env file and then environment variables into Config,
// applying defaults suited to local development.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv reads Config from the process environment only.
func FromEnv() Config {
	return Config{
		HTTPAddress:        getEnv("HTTP_ADDRESS", ":8080"),
		MetricsAddress:     getEnv("METRICS_ADDRESS", ":9195"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:          getEnv("JWT_ISSUER", "i5e.identity"),
		AuthDisabled:       getBoolEnv("AUTH_DISABLED", false),
		KafkaBrokers:       splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		SummaryTopic:       getEnv("SUMMARY_TOPIC", "training_summaries"),
		SchemaRegistryURL:  getEnv("SCHEMA_REGISTRY_URL", ""),
		PublishTimeout:     getDurationEnv("PUBLISH_TIMEOUT", 2*time.Second),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 20),
		ShutdownTimeout:    getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
