package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the MIDAS HUD.
type Config struct {
	Gateway Gateway `yaml:"gateway"`
	Storage Storage `yaml:"storage"`
	Logging Logging `yaml:"logging"`
	HUD     HUD     `yaml:"hud"`
}

// Gateway holds the upstream snapshot API endpoint.
type Gateway struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Storage holds paths for local persistence.
type Storage struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// Logging configures the application logger. The TUI owns stdout, so logs
// go to a file.
type Logging struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// HUD holds display tuning knobs.
type HUD struct {
	HoverDelayMS int `yaml:"hover_delay_ms"`
	MinWidth     int `yaml:"min_width"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns the built-in configuration pointing at a local gateway.
func Default() *Config {
	return &Config{
		Gateway: Gateway{
			BaseURL:        "http://127.0.0.1:8013",
			TimeoutSeconds: 8,
		},
		Storage: Storage{SQLitePath: "midas-hud.db"},
		Logging: Logging{Level: "info", Path: ""},
		HUD:     HUD{HoverDelayMS: 2000, MinWidth: 60},
	}
}

// Load reads the YAML configuration file at the given path when it exists,
// applies it over the defaults, and then applies environment variable
// overrides. A missing file is not an error; the HUD runs fine on defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults
	default:
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HUD_GATEWAY_URL"); v != "" {
		cfg.Gateway.BaseURL = v
	}

	// Same knob the gateway itself honours.
	if v := os.Getenv("GATEWAY_TIMEOUT_S"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Gateway.TimeoutSeconds = n
		}
	}

	if v := os.Getenv("HUD_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("HUD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("HUD_LOG_PATH"); v != "" {
		cfg.Logging.Path = v
	}
}
