package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/wayfare/wayfare/pkg/errors"
	"github.com/wayfare/wayfare/pkg/workflow"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Validator.CostOutlierMultiplier != workflow.DefaultCostOutlierMultiplier {
		t.Errorf("multiplier = %v", cfg.Validator.CostOutlierMultiplier)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Backend != "memory" || cfg.Session.Backend != "memory" {
		t.Errorf("backends = %q/%q, want memory/memory", cfg.Store.Backend, cfg.Session.Backend)
	}
	if cfg.SessionTTL() != 4*time.Hour {
		t.Errorf("ttl = %v", cfg.SessionTTL())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayfare.toml")
	content := `
[validator]
cost_outlier_multiplier = 2.5

[layout]
spacing_x = 250.0

[server]
addr = ":9090"

[session]
backend = "redis"
redis_addr = "redis.internal:6379"
ttl_minutes = 30
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Validator.CostOutlierMultiplier != 2.5 {
		t.Errorf("multiplier = %v", cfg.Validator.CostOutlierMultiplier)
	}
	if cfg.Layout.SpacingX != 250.0 {
		t.Errorf("spacing = %v", cfg.Layout.SpacingX)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Session.Backend != "redis" || cfg.Session.RedisAddr != "redis.internal:6379" {
		t.Errorf("session = %+v", cfg.Session)
	}
	if cfg.SessionTTL() != 30*time.Minute {
		t.Errorf("ttl = %v", cfg.SessionTTL())
	}

	// Unset sections keep their defaults.
	if cfg.Store.Backend != "memory" {
		t.Errorf("store backend = %q, want default", cfg.Store.Backend)
	}
	if cfg.Layout.OriginX != workflow.DefaultLayoutOriginX {
		t.Errorf("origin x = %v, want default", cfg.Layout.OriginX)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\naddr="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestOptionConversions(t *testing.T) {
	cfg := Default()
	cfg.Validator.CostOutlierMultiplier = 5
	cfg.Layout.OriginX = 10

	if got := cfg.ValidateOptions(); got.CostOutlierMultiplier != 5 {
		t.Errorf("validate options = %+v", got)
	}
	if got := cfg.LayoutOptions(); got.OriginX != 10 {
		t.Errorf("layout options = %+v", got)
	}
}
