package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/hornet/pkg/hornet/internalerr"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hornet.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
max_passes: 8
match: positional
rule_files:
  - food.rules
db_path: /tmp/hornet.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxPasses != 8 {
		t.Errorf("MaxPasses = %d, want 8", cfg.MaxPasses)
	}
	if cfg.Match != "positional" {
		t.Errorf("Match = %q", cfg.Match)
	}
	if len(cfg.RuleFiles) != 1 || cfg.RuleFiles[0] != "food.rules" {
		t.Errorf("RuleFiles = %v", cfg.RuleFiles)
	}
	if cfg.DBPath != "/tmp/hornet.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeFile(t, `rule_files: [a.rules]`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxPasses != Default().MaxPasses {
		t.Errorf("MaxPasses default not applied: %d", cfg.MaxPasses)
	}
}

func TestLoadRejectsBadMatch(t *testing.T) {
	path := writeFile(t, `match: sideways`)
	if _, err := Load(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeFile(t, "max_passes: [not a number")
	if _, err := Load(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidateMaxPasses(t *testing.T) {
	cfg := Default()
	cfg.MaxPasses = 0
	if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("zero max_passes must be rejected, got %v", err)
	}
}
