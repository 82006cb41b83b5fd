package config

import (
	"os"
	"path/filepath"
	"testing"

	"credit_appraisal/pkg/core/risk"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	def := Default()
	if cfg.DefaultUnit != def.DefaultUnit || cfg.RoundingPrecision != def.RoundingPrecision {
		t.Errorf("got %+v, want defaults %+v", cfg, def)
	}
	if cfg.CurrentYear() != "2025" || cfg.HistoricalYear() != "2023" {
		t.Errorf("year accessors: current %s, historical %s", cfg.CurrentYear(), cfg.HistoricalYear())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appraisal.yaml")
	data := `
years: ["2024", "2023"]
suppress_zero_as_missing: false
rounding_precision: 4
qualitative_scoring: seeded_random
seed: 7
current_block: "2023-24"
prior_block: "2022-23"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RoundingPrecision != 4 {
		t.Errorf("precision = %d", cfg.RoundingPrecision)
	}
	if cfg.NormalizeOptions().SuppressZero {
		t.Error("suppress_zero_as_missing: false not honored")
	}
	rc := cfg.RiskConfig()
	if rc.Mode != risk.ModeSeededRandom || rc.Seed != 7 {
		t.Errorf("risk config = %+v", rc)
	}
	// Unset keys keep their defaults.
	if cfg.DefaultUnit != "₹ crore" {
		t.Errorf("default unit = %q", cfg.DefaultUnit)
	}
	if cfg.CurrentYear() != "2024" || cfg.HistoricalYear() != "2023" {
		t.Errorf("years = %v", cfg.Years)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad precision": "rounding_precision: 3\n",
		"bad mode":      "qualitative_scoring: coin_flip\n",
		"no years":      "years: []\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
