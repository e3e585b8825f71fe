package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DefaultSlotLength != 30*time.Minute {
		t.Errorf("expected default slot length 30m, got %s", cfg.DefaultSlotLength)
	}
	if cfg.DefaultBuffer != 10*time.Minute {
		t.Errorf("expected default buffer 10m, got %s", cfg.DefaultBuffer)
	}
	if cfg.LLMProvider != "openai" {
		t.Errorf("expected default LLM provider openai, got %s", cfg.LLMProvider)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_SLOT_LENGTH", "45m")
	t.Setenv("DEFAULT_BUFFER", "0s")
	t.Setenv("RATE_LIMIT_RPM", "120")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.DefaultSlotLength != 45*time.Minute {
		t.Errorf("expected slot length 45m, got %s", cfg.DefaultSlotLength)
	}
	if cfg.DefaultBuffer != 0 {
		t.Errorf("expected buffer 0, got %s", cfg.DefaultBuffer)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.LLMProvider != "gemini" {
		t.Errorf("expected provider normalized to gemini, got %s", cfg.LLMProvider)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
}
