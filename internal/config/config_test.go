package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SEED_CATEGORIES", "")
	t.Setenv("RESET_DRINKS", "")

	cfg := Load("5001")
	if cfg.DBDriver != "postgres" {
		t.Fatalf("unexpected driver: got=%q want=%q", cfg.DBDriver, "postgres")
	}
	if cfg.ServerPort != "5001" {
		t.Fatalf("unexpected port: got=%q want=%q", cfg.ServerPort, "5001")
	}
	if !cfg.SeedCategories {
		t.Fatalf("expected category seeding on by default")
	}
	if cfg.ResetDrinks {
		t.Fatalf("expected drink reset off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SEED_CATEGORIES", "false")
	t.Setenv("RESET_DRINKS", "not-a-bool")

	cfg := Load("5000")
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected driver: got=%q want=%q", cfg.DBDriver, "sqlite")
	}
	if cfg.ServerPort != "9090" {
		t.Fatalf("unexpected port: got=%q want=%q", cfg.ServerPort, "9090")
	}
	if cfg.SeedCategories {
		t.Fatalf("expected category seeding disabled")
	}
	if cfg.ResetDrinks {
		t.Fatalf("invalid bool should fall back to default")
	}
}

func TestLoadTracingSettings(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", " collector:4318 ")

	cfg := Load("5000")
	if !cfg.OtelEnabled {
		t.Fatalf("expected tracing enabled")
	}
	if cfg.OtelSampleRatio != 0.5 {
		t.Fatalf("unexpected ratio: got=%v want=%v", cfg.OtelSampleRatio, 0.5)
	}
	if cfg.OtelEndpoint != "collector:4318" {
		t.Fatalf("unexpected endpoint: got=%q", cfg.OtelEndpoint)
	}

	t.Setenv("OTEL_SAMPLER_RATIO", "lots")
	if got := Load("5000").OtelSampleRatio; got != 0.1 {
		t.Fatalf("invalid ratio should fall back: got=%v", got)
	}
}
