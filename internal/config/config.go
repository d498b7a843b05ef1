package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/SAP-F-2025/lms-assessment-service/internal/utils"
)

const (
	IDStrategyUUID     = "uuid"
	IDStrategySequence = "sequence"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Empty DatabaseURL selects the in-memory store
	DatabaseURL string
	RedisURL    string

	// Empty KafkaBrokers publishes events on an in-process channel
	KafkaBrokers []string
	EventsTopic  string

	SeedDemoData bool
	IDStrategy   string
}

// LoadConfig reads configuration from the environment after loading an optional .env file
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     utils.ParseLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		EventsTopic:  getEnv("EVENTS_TOPIC", "assessment-events"),
		IDStrategy:   strings.ToLower(getEnv("ID_STRATEGY", IDStrategyUUID)),
	}

	seed, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO_DATA: %w", err)
	}
	cfg.SeedDemoData = seed

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}
	switch c.IDStrategy {
	case IDStrategyUUID, IDStrategySequence:
	default:
		return fmt.Errorf("invalid ID_STRATEGY %q: want %s or %s", c.IDStrategy, IDStrategyUUID, IDStrategySequence)
	}
	// the sequence restarts at 1 in every process
	if c.IDStrategy == IDStrategySequence && c.DatabaseURL != "" {
		return fmt.Errorf("ID_STRATEGY %s requires the in-memory store; unset DATABASE_URL or use %s", IDStrategySequence, IDStrategyUUID)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
