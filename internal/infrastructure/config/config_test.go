package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Fatalf("expected default token TTL 1h, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.LockoutThreshold != 5 {
		t.Fatalf("expected default lockout threshold 5, got %d", cfg.Auth.LockoutThreshold)
	}
	if cfg.Auth.RefreshGrace != 336*time.Hour {
		t.Fatalf("expected default refresh grace 336h, got %v", cfg.Auth.RefreshGrace)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("LOCKOUT_THRESHOLD", "3")
	t.Setenv("MONGO_DB", "auth_test")

	cfg := Load()

	if cfg.Auth.TokenTTL != 15*time.Minute {
		t.Fatalf("expected token TTL 15m, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.LockoutThreshold != 3 {
		t.Fatalf("expected lockout threshold 3, got %d", cfg.Auth.LockoutThreshold)
	}
	if cfg.Mongo.Database != "auth_test" {
		t.Fatalf("expected mongo db auth_test, got %q", cfg.Mongo.Database)
	}
}
