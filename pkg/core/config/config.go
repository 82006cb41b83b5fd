// Package config loads the appraisal configuration. Policies that differ
// between historical deployments (zero suppression, rounding precision,
// qualitative scoring) are explicit settings here so behavior is
// reproducible per deployment instead of baked into the code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"credit_appraisal/pkg/core/normalize"
	"credit_appraisal/pkg/core/ratio"
	"credit_appraisal/pkg/core/risk"
)

// Config is the full appraisal configuration.
type Config struct {
	// Years are the tracked fiscal year tags, most recent first.
	Years []string `yaml:"years"`
	// DefaultUnit fills blank unit fields at snapshot finalization.
	DefaultUnit string `yaml:"default_unit"`
	// SuppressZeroAsMissing treats extracted zeros as the missing sentinel.
	SuppressZeroAsMissing bool `yaml:"suppress_zero_as_missing"`
	// RoundingPrecision is the ratio rounding precision, 2 or 4.
	RoundingPrecision int `yaml:"rounding_precision"`
	// QualitativeScoring is "fixed" or "seeded_random".
	QualitativeScoring string `yaml:"qualitative_scoring"`
	// Seed feeds the seeded_random qualitative mode.
	Seed int64 `yaml:"seed"`
	// CurrentBlock and PriorBlock name the statement folders for the
	// current reporting pair and the historical backfill pass.
	CurrentBlock string `yaml:"current_block"`
	PriorBlock   string `yaml:"prior_block"`
}

// Default returns the configuration the production deployment runs with.
func Default() Config {
	return Config{
		Years:                 []string{"2025", "2024", "2023"},
		DefaultUnit:           "₹ crore",
		SuppressZeroAsMissing: true,
		RoundingPrecision:     2,
		QualitativeScoring:    string(risk.ModeFixed),
		Seed:                  42,
		CurrentBlock:          "2024-25",
		PriorBlock:            "2023-24",
	}
}

// Load reads a YAML configuration file over the defaults. A missing path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if len(c.Years) == 0 {
		return fmt.Errorf("config: at least one year tag required")
	}
	if c.RoundingPrecision != 2 && c.RoundingPrecision != 4 {
		return fmt.Errorf("config: rounding_precision must be 2 or 4, got %d", c.RoundingPrecision)
	}
	switch risk.Mode(c.QualitativeScoring) {
	case risk.ModeFixed, risk.ModeSeededRandom:
	default:
		return fmt.Errorf("config: qualitative_scoring must be %q or %q", risk.ModeFixed, risk.ModeSeededRandom)
	}
	return nil
}

// NormalizeOptions derives the normalizer policy.
func (c Config) NormalizeOptions() normalize.Options {
	return normalize.Options{SuppressZero: c.SuppressZeroAsMissing}
}

// RatioConfig derives the ratio engine policy.
func (c Config) RatioConfig() ratio.Config {
	return ratio.Config{Precision: c.RoundingPrecision}
}

// RiskConfig derives the risk grader policy.
func (c Config) RiskConfig() risk.Config {
	return risk.Config{Mode: risk.Mode(c.QualitativeScoring), Seed: c.Seed}
}

// CurrentYear returns the most recent tracked year tag.
func (c Config) CurrentYear() string { return c.Years[0] }

// HistoricalYear returns the earliest tracked year tag, the one the
// backfill passes inject.
func (c Config) HistoricalYear() string { return c.Years[len(c.Years)-1] }
