package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBPath != "hudson.db" || cfg.LogFormat != "text" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MonthlyPrice != 49.99 || cfg.ReminderHorizonDays != 30 || cfg.WriteRateLimit != 120 {
		t.Errorf("numbers = %v/%d/%d", cfg.MonthlyPrice, cfg.ReminderHorizonDays, cfg.WriteRateLimit)
	}
	if cfg.AMQPURL != "" || cfg.AMQPQueue != "hudson.events" {
		t.Errorf("amqp = %q/%q", cfg.AMQPURL, cfg.AMQPQueue)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	data := "HUDSON_PORT=9090\nHUDSON_REMINDER_HORIZON_DAYS=14\nHUDSON_WS_ORIGINS=app.example.com, *.example.org\nHUDSON_CORS_ORIGINS=https://app.example.com\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set
	t.Setenv("HUDSON_PORT", "")
	os.Unsetenv("HUDSON_PORT")
	t.Setenv("HUDSON_LOG_LEVEL", "debug")
	t.Cleanup(func() {
		os.Unsetenv("HUDSON_REMINDER_HORIZON_DAYS")
		os.Unsetenv("HUDSON_WS_ORIGINS")
		os.Unsetenv("HUDSON_CORS_ORIGINS")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.ReminderHorizonDays != 14 || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.WSOrigins) != 2 || cfg.WSOrigins[1] != "*.example.org" {
		t.Errorf("origins = %v", cfg.WSOrigins)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://app.example.com" {
		t.Errorf("cors origins = %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("HUDSON_MONTHLY_PRICE", "cheap")
	if _, err := Load(missing); err == nil {
		t.Error("expected parse error for price")
	}

	t.Setenv("HUDSON_MONTHLY_PRICE", "")
	t.Setenv("HUDSON_REMINDER_HORIZON_DAYS", "0")
	if _, err := Load(missing); err == nil {
		t.Error("expected error for zero horizon")
	}
}
