package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load returned error for a missing file: %v", err)
	}
	if cfg.Gateway.BaseURL != "http://127.0.0.1:8013" {
		t.Errorf("BaseURL = %q, want default", cfg.Gateway.BaseURL)
	}
	if cfg.Gateway.TimeoutSeconds != 8 {
		t.Errorf("TimeoutSeconds = %d, want 8", cfg.Gateway.TimeoutSeconds)
	}
	if cfg.HUD.HoverDelayMS != 2000 || cfg.HUD.MinWidth != 60 {
		t.Errorf("HUD defaults = %+v", cfg.HUD)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
gateway:
  base_url: http://gw.internal:9000
  timeout_seconds: 3
storage:
  sqlite_path: /var/lib/hud/history.db
logging:
  level: debug
hud:
  hover_delay_ms: 500
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Gateway.BaseURL != "http://gw.internal:9000" {
		t.Errorf("BaseURL = %q", cfg.Gateway.BaseURL)
	}
	if cfg.Gateway.TimeoutSeconds != 3 {
		t.Errorf("TimeoutSeconds = %d, want 3", cfg.Gateway.TimeoutSeconds)
	}
	if cfg.Storage.SQLitePath != "/var/lib/hud/history.db" {
		t.Errorf("SQLitePath = %q", cfg.Storage.SQLitePath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.HUD.HoverDelayMS != 500 {
		t.Errorf("HoverDelayMS = %d, want 500", cfg.HUD.HoverDelayMS)
	}
	// Fields absent from the file keep their defaults.
	if cfg.HUD.MinWidth != 60 {
		t.Errorf("MinWidth = %d, want default 60", cfg.HUD.MinWidth)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gateway: [not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HUD_GATEWAY_URL", "http://override:8080")
	t.Setenv("GATEWAY_TIMEOUT_S", "15")
	t.Setenv("HUD_SQLITE_PATH", "/tmp/override.db")
	t.Setenv("HUD_LOG_LEVEL", "error")
	t.Setenv("HUD_LOG_PATH", "/tmp/hud.log")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Gateway.BaseURL != "http://override:8080" {
		t.Errorf("BaseURL = %q", cfg.Gateway.BaseURL)
	}
	if cfg.Gateway.TimeoutSeconds != 15 {
		t.Errorf("TimeoutSeconds = %d, want 15", cfg.Gateway.TimeoutSeconds)
	}
	if cfg.Storage.SQLitePath != "/tmp/override.db" {
		t.Errorf("SQLitePath = %q", cfg.Storage.SQLitePath)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Path != "/tmp/hud.log" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestEnvOverrideRejectsBadTimeout(t *testing.T) {
	for _, bad := range []string{"abc", "0", "-2"} {
		t.Setenv("GATEWAY_TIMEOUT_S", bad)
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.Gateway.TimeoutSeconds != 8 {
			t.Errorf("GATEWAY_TIMEOUT_S=%q: TimeoutSeconds = %d, want default 8", bad, cfg.Gateway.TimeoutSeconds)
		}
	}
}
