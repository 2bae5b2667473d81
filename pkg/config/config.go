// Package config loads Wayfare configuration from a TOML file.
//
// All settings have working defaults, so a config file is optional. The CLI
// looks for wayfare.toml in the XDG config directory
// (~/.config/wayfare/wayfare.toml) unless an explicit path is given.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/wayfare/wayfare/pkg/errors"
	"github.com/wayfare/wayfare/pkg/workflow"
)

// appName is used for the XDG config directory.
const appName = "wayfare"

// Config is the full application configuration.
type Config struct {
	Validator ValidatorConfig `toml:"validator"`
	Layout    LayoutConfig    `toml:"layout"`
	Editor    EditorConfig    `toml:"editor"`
	Server    ServerConfig    `toml:"server"`
	Store     StoreConfig     `toml:"store"`
	Session   SessionConfig   `toml:"session"`
}

// ValidatorConfig tunes validation thresholds.
type ValidatorConfig struct {
	// CostOutlierMultiplier flags activities costing more than this multiple
	// of the day's average. A tunable default, not a contract.
	CostOutlierMultiplier float64 `toml:"cost_outlier_multiplier"`
}

// LayoutConfig tunes auto-layout geometry.
type LayoutConfig struct {
	OriginX  float64 `toml:"origin_x"`
	OriginY  float64 `toml:"origin_y"`
	SpacingX float64 `toml:"spacing_x"`
}

// EditorConfig tunes editing behavior.
type EditorConfig struct {
	// HistoryLimit bounds the undo stack depth.
	HistoryLimit int `toml:"history_limit"`
}

// ServerConfig configures the HTTP editor API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StoreConfig selects the schedule persistence backend.
type StoreConfig struct {
	// Backend is "memory" or "mongo".
	Backend       string `toml:"backend"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// SessionConfig selects the editor session backend.
type SessionConfig struct {
	// Backend is "memory" or "redis".
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTLMinutes    int    `toml:"ttl_minutes"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Validator: ValidatorConfig{CostOutlierMultiplier: workflow.DefaultCostOutlierMultiplier},
		Layout: LayoutConfig{
			OriginX:  workflow.DefaultLayoutOriginX,
			OriginY:  workflow.DefaultLayoutOriginY,
			SpacingX: workflow.DefaultLayoutSpacingX,
		},
		Editor:  EditorConfig{HistoryLimit: 100},
		Server:  ServerConfig{Addr: ":8080"},
		Store:   StoreConfig{Backend: "memory", MongoURI: "mongodb://localhost:27017", MongoDatabase: "wayfare"},
		Session: SessionConfig{Backend: "memory", RedisAddr: "localhost:6379", TTLMinutes: 240},
	}
}

// Load reads configuration from the given TOML file, layered over defaults.
// An empty path selects the default location; a missing file at the default
// location is not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, apperrors.New(apperrors.ErrCodeInvalidConfig, "config file %s not found", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// DefaultPath returns the XDG-standard config file path
// (~/.config/wayfare/wayfare.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "wayfare.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "wayfare.toml"), nil
}

// ValidateOptions converts the validator section to workflow options.
func (c Config) ValidateOptions() workflow.ValidateOptions {
	return workflow.ValidateOptions{CostOutlierMultiplier: c.Validator.CostOutlierMultiplier}
}

// LayoutOptions converts the layout section to workflow options.
func (c Config) LayoutOptions() workflow.LayoutOptions {
	return workflow.LayoutOptions{
		OriginX:  c.Layout.OriginX,
		OriginY:  c.Layout.OriginY,
		SpacingX: c.Layout.SpacingX,
	}
}

// SessionTTL returns the configured session lifetime.
func (c Config) SessionTTL() time.Duration {
	if c.Session.TTLMinutes <= 0 {
		return 4 * time.Hour
	}
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}
