package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBPath    string
	LogLevel  string
	LogFormat string

	// AMQPURL empty disables broker publishing.
	AMQPURL   string
	AMQPQueue string

	MonthlyPrice        float64
	ReminderHorizonDays int
	WriteRateLimit      int
	WSOrigins           []string

	// CORSOrigins empty disables CORS handling.
	CORSOrigins []string
}

// Load reads configuration from the environment after loading envFiles (or
// .env when none are given). Missing env files are skipped; variables already
// set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:      getEnv("HUDSON_PORT", "8080"),
		DBPath:    getEnv("HUDSON_DB_PATH", "hudson.db"),
		LogLevel:  getEnv("HUDSON_LOG_LEVEL", "info"),
		LogFormat: getEnv("HUDSON_LOG_FORMAT", "text"),
		AMQPURL:   getEnv("HUDSON_AMQP_URL", ""),
		AMQPQueue: getEnv("HUDSON_AMQP_QUEUE", "hudson.events"),
		WSOrigins: splitList(getEnv("HUDSON_WS_ORIGINS", "")),

		CORSOrigins: splitList(getEnv("HUDSON_CORS_ORIGINS", "")),
	}

	var err error
	if cfg.MonthlyPrice, err = getFloat("HUDSON_MONTHLY_PRICE", 49.99); err != nil {
		return nil, err
	}
	if cfg.ReminderHorizonDays, err = getInt("HUDSON_REMINDER_HORIZON_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.WriteRateLimit, err = getInt("HUDSON_WRITE_RATE_LIMIT", 120); err != nil {
		return nil, err
	}

	if cfg.MonthlyPrice < 0 {
		return nil, fmt.Errorf("HUDSON_MONTHLY_PRICE must not be negative")
	}
	if cfg.ReminderHorizonDays < 1 {
		return nil, fmt.Errorf("HUDSON_REMINDER_HORIZON_DAYS must be at least 1")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return f, nil
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
