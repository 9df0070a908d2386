// Package config loads the deck configuration file. The file is JSONC
// (JSON with comments and trailing commas), standardized via hujson before
// decoding, so hand-edited configs with comments keep working.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Mode selects where mutations are persisted.
type Mode string

const (
	// ModeLocal persists into a SQLite database on this machine.
	ModeLocal Mode = "local"
	// ModeRemote persists by calling a deck server over HTTP.
	ModeRemote Mode = "remote"
)

// Config holds all configuration options.
type Config struct {
	Mode Mode `json:"mode"`
	// ServerURL is the base URL of the deck server; remote mode only.
	ServerURL string `json:"server_url,omitempty"`
	// DatabasePath overrides the default SQLite location; local mode only.
	DatabasePath string `json:"database_path,omitempty"`
	// ListenAddr is where `deck serve` binds. Defaults to ":8080".
	ListenAddr string `json:"listen_addr,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Mode: ModeLocal, ListenAddr: ":8080"}
}

// DefaultPath returns the config location under the user's home.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".deck", "config.json"), nil
}

// Load reads the config at path. A missing file yields Default() without
// error; a malformed or invalid file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes JSONC config data and validates it.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Mode {
	case ModeLocal:
	case ModeRemote:
		if c.ServerURL == "" {
			return fmt.Errorf("remote mode requires server_url")
		}
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", c.Mode, ModeLocal, ModeRemote)
	}
	return nil
}
