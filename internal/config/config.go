package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	ReminderWorkerCount int
	ReminderQueueSize   int
	ReminderScanMinutes int
	SessionTokenTTL     int // hours
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:readmemory.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		ReminderWorkerCount: envIntOr("REMINDER_WORKER_COUNT", 2),
		ReminderQueueSize:   envIntOr("REMINDER_QUEUE_SIZE", 64),
		ReminderScanMinutes: envIntOr("REMINDER_SCAN_INTERVAL_MINUTES", 5),
		SessionTokenTTL:     envIntOr("SESSION_TOKEN_TTL_HOURS", 720),
	}
}

// Validate checks the configuration and reports every violation at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	if c.ReminderWorkerCount <= 0 {
		problems = append(problems, "REMINDER_WORKER_COUNT must be positive")
	}
	if c.ReminderQueueSize <= 0 {
		problems = append(problems, "REMINDER_QUEUE_SIZE must be positive")
	}
	if c.ReminderScanMinutes <= 0 {
		problems = append(problems, "REMINDER_SCAN_INTERVAL_MINUTES must be positive")
	}
	if c.SessionTokenTTL <= 0 {
		problems = append(problems, "SESSION_TOKEN_TTL_HOURS must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
