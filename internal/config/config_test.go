package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SiteName != "Inkwave" {
		t.Fatalf("site name = %q", cfg.SiteName)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if len(cfg.Locales) != 2 || cfg.Locales[0] != "en" {
		t.Fatalf("locales = %v", cfg.Locales)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("INKWAVE_BASE_URL", "https://inkwave.example/")
	t.Setenv("INKWAVE_PORT", "9090")
	t.Setenv("INKWAVE_DEV", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "https://inkwave.example" {
		t.Fatalf("trailing slash should be trimmed, got %q", cfg.BaseURL)
	}
	if cfg.Port != "9090" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if !cfg.Dev {
		t.Fatal("dev should be set")
	}
}
