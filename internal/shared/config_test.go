package shared_test

import (
	"testing"
	"time"

	"review_analyzer/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "CACHE_TTL_SECONDS", "HF_RPS", "IMPORT_WORKERS", "MIGRATIONS_DIR"} {
		t.Setenv(k, "")
	}
	c := shared.Load()
	if c.AppEnv != "prod" || c.HTTPAddr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.CacheTTL != 5*time.Minute || c.HFRPS != 5 || c.ImportWorkers != 4 {
		t.Fatalf("unexpected numeric defaults: %+v", c)
	}
	if c.MigrationsDir != "" {
		t.Fatalf("migrations should be opt-in")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("IMPORT_WORKERS", "not-a-number")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")

	c := shared.Load()
	if c.AppEnv != "dev" || c.CacheTTL != 30*time.Second || c.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.ImportWorkers != 4 {
		t.Fatalf("bad integer should fall back to default, got %d", c.ImportWorkers)
	}
}
