package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("API_KEY", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("TRUST_ALPHA", "")
	t.Setenv("MATERIALITY_PNL_PCT", "")
	t.Setenv("RESOLVER_BATCH", "")

	cfg := Load()
	if cfg.RedisURL != "localhost:6379" {
		t.Fatalf("expected default redis url, got %s", cfg.RedisURL)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.TrustAlpha != 0.10 {
		t.Fatalf("expected default trust alpha 0.10, got %f", cfg.TrustAlpha)
	}
	if cfg.MaterialityPnLPct != 0.5 {
		t.Fatalf("expected default materiality 0.5, got %f", cfg.MaterialityPnLPct)
	}
	if cfg.ResolverBatchSize != 40 {
		t.Fatalf("expected default resolver batch 40, got %d", cfg.ResolverBatchSize)
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis:6379")
	t.Setenv("API_KEY", "secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TRUST_ALPHA", "0.25")
	t.Setenv("OUTCOME_DEADLINE_HOURS", "48")

	cfg := Load()
	if cfg.DatabaseURL != "postgres://example" || cfg.RedisURL != "redis:6379" || cfg.APIKey != "secret" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.HTTPPort != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.HTTPPort)
	}
	if cfg.TrustAlpha != 0.25 {
		t.Fatalf("expected trust alpha 0.25, got %f", cfg.TrustAlpha)
	}
	if cfg.OutcomeDeadlineHrs != 48 {
		t.Fatalf("expected deadline 48h, got %d", cfg.OutcomeDeadlineHrs)
	}

	t.Setenv("TRUST_ALPHA", "1.5")
	cfg = Load()
	if cfg.TrustAlpha != 0.10 {
		t.Fatalf("out-of-range alpha should fall back to default, got %f", cfg.TrustAlpha)
	}

	t.Setenv("HTTP_PORT", "bad")
	cfg = Load()
	if cfg.HTTPPort != 8080 {
		t.Fatalf("invalid port should fall back to default, got %d", cfg.HTTPPort)
	}
}
