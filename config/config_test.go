package config

import (
	"strings"
	"testing"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("APT_API_PG_DSN", "host=localhost user=apt dbname=apt")

	cfg := &Config{}
	if err := cfg.loadFromEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerPort != "3000" {
		t.Errorf("expected default port 3000, got %q", cfg.ServerPort)
	}
	if cfg.SessionTTLHours != "24" {
		t.Errorf("expected default session TTL 24, got %q", cfg.SessionTTLHours)
	}
	if cfg.RedisURL != "" {
		t.Errorf("expected Redis URL to default to empty, got %q", cfg.RedisURL)
	}
}

func TestLoadFromEnvRequired(t *testing.T) {
	t.Setenv("APT_API_PG_DSN", "")

	cfg := &Config{}
	err := cfg.loadFromEnv()
	if err == nil {
		t.Fatal("expected error for missing APT_API_PG_DSN")
	}
	if !strings.Contains(err.Error(), "APT_API_PG_DSN") {
		t.Errorf("error should name the missing variable, got: %v", err)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("APT_API_PG_DSN", "host=db")
	t.Setenv("APT_API_SERVER_PORT", "8081")
	t.Setenv("APT_API_SEED_USERNAME", "ops")

	cfg := &Config{}
	if err := cfg.loadFromEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerPort != "8081" {
		t.Errorf("expected port 8081, got %q", cfg.ServerPort)
	}
	if cfg.SeedUsername != "ops" {
		t.Errorf("expected seed username ops, got %q", cfg.SeedUsername)
	}
}

func TestStringMasksSensitiveValues(t *testing.T) {
	cfg := &Config{
		PostgresDsn:  "host=localhost password=topsecret",
		SeedPassword: "hunter2",
		ServerPort:   "3000",
	}

	s := cfg.String()
	if strings.Contains(s, "topsecret") {
		t.Error("DSN should be masked in String()")
	}
	if strings.Contains(s, "hunter2") {
		t.Error("seed password should be masked in String()")
	}
	if !strings.Contains(s, "3000") {
		t.Error("non-sensitive values should be visible")
	}
}
