package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"API_BASE_URL", "AUTH_TIMEOUT", "REQUEST_TIMEOUT", "UPLOAD_TIMEOUT", "REDIS_ADDR", "SESSION_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8501" {
		t.Errorf("expected default base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.AuthTimeout != 10*time.Second {
		t.Errorf("expected 10s auth timeout, got %v", cfg.API.AuthTimeout)
	}
	if cfg.API.RequestTimeout != 20*time.Second {
		t.Errorf("expected 20s request timeout, got %v", cfg.API.RequestTimeout)
	}
	if cfg.API.UploadTimeout != 30*time.Second {
		t.Errorf("expected 30s upload timeout, got %v", cfg.API.UploadTimeout)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("expected redis disabled by default, got %q", cfg.Redis.Addr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:4000/")
	t.Setenv("UPLOAD_TIMEOUT", "45s")
	t.Setenv("SESSION_CACHE_CAPACITY", "16")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:4000" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.UploadTimeout != 45*time.Second {
		t.Errorf("expected 45s, got %v", cfg.API.UploadTimeout)
	}
	if cfg.Session.CacheCapacity != 16 {
		t.Errorf("expected capacity 16, got %d", cfg.Session.CacheCapacity)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("expected invalid int to fall back to 0, got %d", cfg.Redis.DB)
	}
	if cfg.Log.Level != "DEBUG" {
		t.Errorf("expected log level DEBUG, got %q", cfg.Log.Level)
	}
}
