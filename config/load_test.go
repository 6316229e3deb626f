package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

const minimalYAML = `
long:
  nPositions: 3
  totalWalletExposureLimit: 1.5
  ema:
    span0: 200
    span1: 600
  closeGrid:
    markupStart: 0.005
    markupEnd: 0.02
short:
  nPositions: 3
  totalWalletExposureLimit: 1.5
  closeGrid:
    markupStart: 0.005
    markupEnd: 0.02
backtest:
  startingBalance: 1000
  feeMultiplier: 1.0
overrides:
  BTCUSDT:
    long:
      nPositions: 1
`

func TestLoadAndOverrides(t *testing.T) {
	path := writeTempConfig(t, minimalYAML)
	cfg, overrides, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Long.NPositions != 3 {
		t.Fatalf("expected 3 positions, got %d", cfg.Long.NPositions)
	}
	resolved := Resolve(cfg, overrides, "BTCUSDT")
	if resolved.Long.NPositions != 1 {
		t.Fatalf("expected override to set nPositions=1, got %d", resolved.Long.NPositions)
	}
	unaffected := Resolve(cfg, overrides, "ETHUSDT")
	if unaffected.Long.NPositions != 3 {
		t.Fatalf("expected unrelated symbol to keep base nPositions=3, got %d", unaffected.Long.NPositions)
	}
}

func TestValidateRejectsNegativeNPositions(t *testing.T) {
	path := writeTempConfig(t, `
long:
  nPositions: -1
short:
  nPositions: 1
  closeGrid:
    markupStart: 0.01
backtest:
  startingBalance: 1000
`)
	if _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for negative nPositions")
	}
}

func TestValidateRejectsZeroMarkupRange(t *testing.T) {
	path := writeTempConfig(t, `
long:
  nPositions: 1
short:
  nPositions: 1
  closeGrid:
    markupStart: 0.01
backtest:
  startingBalance: 1000
`)
	if _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error when long closeGrid markup is all zero with nPositions > 0")
	}
}
