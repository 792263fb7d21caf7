// Package config loads application configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	// APIURL is the backend base URL. The /auth endpoints hang off it.
	APIURL string `yaml:"api_url" env:"PAINEL_API_URL" env-default:"http://localhost:8080/api"`

	RequestTimeout time.Duration `yaml:"request_timeout" env:"PAINEL_REQUEST_TIMEOUT" env-default:"10s"`

	// KeepaliveInterval controls the background session check. Zero disables it.
	KeepaliveInterval time.Duration `yaml:"keepalive_interval" env:"PAINEL_KEEPALIVE_INTERVAL" env-default:"5m"`

	ProfileTTL time.Duration `yaml:"profile_ttl" env:"PAINEL_PROFILE_TTL" env-default:"10m"`

	// StateDir holds the session file, profile cache and debug log.
	StateDir string `yaml:"state_dir" env:"PAINEL_STATE_DIR"`

	// Derived from StateDir, never configured directly.
	SessionPath string `yaml:"-"`
	CachePath   string `yaml:"-"`
	LogPath     string `yaml:"-"`
}

// Load reads configuration from path (if non-empty), then overlays
// environment variables. An empty path means env-plus-defaults only.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("reading config from environment: %w", err)
		}
	}

	if cfg.StateDir == "" {
		cfg.StateDir = filepath.Join(userConfigDir(), "painel")
	}
	cfg.SessionPath = filepath.Join(cfg.StateDir, "session.json")
	cfg.CachePath = filepath.Join(cfg.StateDir, "cache.db")
	cfg.LogPath = filepath.Join(cfg.StateDir, "debug.log")

	return cfg, nil
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
