package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StorageBackend != BackendMemory || cfg.PromotionBackend != BackendMemory {
		t.Errorf("backends = %q/%q, want memory/memory", cfg.StorageBackend, cfg.PromotionBackend)
	}
	if cfg.Roster.PageSize != 10 {
		t.Errorf("Roster.PageSize = %d, want 10", cfg.Roster.PageSize)
	}
	if cfg.Roster.BaseURL != "https://dummyjson.com" {
		t.Errorf("Roster.BaseURL = %q", cfg.Roster.BaseURL)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":               "production",
		"JWT_SECRET":        "s3cret",
		"STORAGE_BACKEND":   "redis",
		"PROMOTION_BACKEND": "mongo",
		"ROSTER_PAGE_SIZE":  "25",
		"ROSTER_CACHE_TTL":  "1m",
		"PROMOTION_WORKERS": "8",
		"LOG_PRETTY":        "true",
		"REDIS_PASSWORD":    "hunter2",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.StorageBackend != BackendRedis || cfg.PromotionBackend != BackendMongo {
		t.Errorf("backends = %q/%q", cfg.StorageBackend, cfg.PromotionBackend)
	}
	if cfg.Roster.PageSize != 25 || cfg.Roster.CacheTTL != time.Minute {
		t.Errorf("roster = %+v", cfg.Roster)
	}
	if cfg.Promotions.Workers != 8 {
		t.Errorf("Promotions.Workers = %d, want 8", cfg.Promotions.Workers)
	}
	if cfg.Redis.Password != "hunter2" {
		t.Errorf("Redis.Password = %q, want hunter2", cfg.Redis.Password)
	}
	if !cfg.LogPretty {
		t.Error("LogPretty = false, want true")
	}
}

func TestValidate_RejectsUnknownBackend(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_BACKEND": "etcd",
	}))
	if err == nil || !strings.Contains(err.Error(), "STORAGE_BACKEND") {
		t.Fatalf("expected STORAGE_BACKEND error, got %v", err)
	}

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PROMOTION_BACKEND": "redis",
	}))
	if err == nil || !strings.Contains(err.Error(), "PROMOTION_BACKEND") {
		t.Fatalf("expected PROMOTION_BACKEND error, got %v", err)
	}
}

func TestValidate_SecretRequiredOutsideDevelopment(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV": "production",
	}))
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}

	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err != nil {
		t.Fatalf("development without secret should load, got %v", err)
	}
}
