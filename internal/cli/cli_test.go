package cli

import (
	"testing"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
	"github.com/kojima2223-star/Fumotoppara/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagURL = ""
		flagCategory = ""
		flagDateLabel = ""
		flagPolicy = ""
		flagCacheFile = ""
		flagNoBrowser = false
	})
}

func TestApplyFlagOverrides(t *testing.T) {
	resetFlags(t)
	flagCategory = "デイキャンプ"
	flagDateLabel = "1/2"
	flagPolicy = "reopened"
	flagNoBrowser = true

	cfg := &config.Config{
		CategoryLabel: "キャンプ宿泊",
		DateLabel:     "12/31",
		Policy:        availability.PolicyAlways,
		UseBrowser:    true,
	}
	if err := applyFlagOverrides(cfg); err != nil {
		t.Fatalf("applyFlagOverrides() error: %v", err)
	}

	if cfg.CategoryLabel != "デイキャンプ" {
		t.Errorf("CategoryLabel = %q", cfg.CategoryLabel)
	}
	if cfg.DateLabel != "1/2" {
		t.Errorf("DateLabel = %q", cfg.DateLabel)
	}
	if cfg.Policy != availability.PolicyReopened {
		t.Errorf("Policy = %v, want reopened", cfg.Policy)
	}
	if cfg.UseBrowser {
		t.Error("UseBrowser should be false after --no-browser")
	}
}

func TestApplyFlagOverrides_InvalidPolicy(t *testing.T) {
	resetFlags(t)
	flagPolicy = "sometimes"

	if err := applyFlagOverrides(&config.Config{}); err == nil {
		t.Error("expected error for invalid policy flag")
	}
}

func TestApplyFlagOverrides_KeepsConfigWhenUnset(t *testing.T) {
	resetFlags(t)

	cfg := &config.Config{
		CategoryLabel: "キャンプ宿泊",
		DateLabel:     "12/31",
		Policy:        availability.PolicyOnChange,
		UseBrowser:    true,
	}
	if err := applyFlagOverrides(cfg); err != nil {
		t.Fatalf("applyFlagOverrides() error: %v", err)
	}

	if cfg.CategoryLabel != "キャンプ宿泊" || cfg.DateLabel != "12/31" {
		t.Errorf("labels changed: %q %q", cfg.CategoryLabel, cfg.DateLabel)
	}
	if cfg.Policy != availability.PolicyOnChange {
		t.Errorf("Policy = %v, want on-change", cfg.Policy)
	}
	if !cfg.UseBrowser {
		t.Error("UseBrowser should stay true")
	}
}
