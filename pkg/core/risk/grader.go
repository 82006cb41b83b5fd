// Package risk aggregates per-ratio outcomes into a weighted credit score
// and a coarse risk bucket. Stateless: every run recomputes from the full
// ratios document, with no smoothing or carry-over between years.
package risk

import (
	"math"
	"math/rand"
	"sort"

	"credit_appraisal/pkg/core/ratio"
)

// Category weights. The financial-strength weight is split equally across
// the 13 ratios; the management and industry weights cap their subscores.
const (
	FinancialStrengthWeight = 50.0
	ManagementWeight        = 30.0
	IndustryWeight          = 20.0
)

// Fixed qualitative subscores used in ModeFixed.
const (
	ManagementScore = 25.0
	IndustryScore   = 15.0
)

// PerRatioMax is the contribution of one unflagged ratio.
var PerRatioMax = FinancialStrengthWeight / float64(len(ratio.Names))

// Mode selects how the qualitative subscores are produced.
type Mode string

const (
	// ModeFixed uses the fixed management/industry subscores.
	ModeFixed Mode = "fixed"
	// ModeSeededRandom draws the subscores from a seeded generator bounded
	// by the category weight. Placeholder/demo deployments only — never
	// where qualitative scores are actually assessed.
	ModeSeededRandom Mode = "seeded_random"
)

// Config selects the qualitative scoring mode.
type Config struct {
	Mode Mode
	Seed int64 // used only by ModeSeededRandom
}

// Weights echoes the category weights into the report.
type Weights struct {
	FinancialStrength float64 `json:"financial_strength"`
	ManagementQuality float64 `json:"management_quality"`
	IndustryRisk      float64 `json:"industry_risk"`
}

// FinancialStrength is the per-ratio scoring section of the report.
type FinancialStrength struct {
	PerRatioMax float64                `json:"per_ratio_max"`
	Scores      map[string]*RatioScore `json:"scores"`
	Subtotals   map[string]float64     `json:"subtotals"`
}

// CategoryScores holds a qualitative subscore per year.
type CategoryScores struct {
	Scores map[string]float64 `json:"scores"`
}

// Report is the full risk document for one appraisal run.
type Report struct {
	Weights           Weights             `json:"weights"`
	FinancialStrength FinancialStrength   `json:"financial_strength"`
	ManagementQuality CategoryScores      `json:"management_quality"`
	IndustryRisk      CategoryScores      `json:"industry_risk"`
	TotalScore        map[string]float64  `json:"total_score"`
	RiskBucket        map[string]string   `json:"risk_bucket"`
	RedFlags          map[string][]string `json:"red_flags"`
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

// Bucket classifies a total score. The upper bound is strict (a total of
// exactly 80 is Medium) and the lower bound inclusive (exactly 50 is
// Medium).
func Bucket(total float64) string {
	switch {
	case total > 80:
		return "Low Risk"
	case total >= 50:
		return "Medium Risk"
	default:
		return "High Risk"
	}
}

// Compute grades the merged ratios document across the given years. A
// ratio missing from the document, or missing a year, counts as flagged —
// the conservative default for absent evidence.
func Compute(ratios map[string]*ratio.MultiYear, years []string, cfg Config) *Report {
	rep := &Report{
		Weights: Weights{
			FinancialStrength: FinancialStrengthWeight,
			ManagementQuality: ManagementWeight,
			IndustryRisk:      IndustryWeight,
		},
		FinancialStrength: FinancialStrength{
			PerRatioMax: round2(PerRatioMax),
			Scores:      make(map[string]*RatioScore, len(ratio.Names)),
			Subtotals:   make(map[string]float64, len(years)),
		},
		ManagementQuality: CategoryScores{Scores: make(map[string]float64, len(years))},
		IndustryRisk:      CategoryScores{Scores: make(map[string]float64, len(years))},
		TotalScore:        make(map[string]float64, len(years)),
		RiskBucket:        make(map[string]string, len(years)),
		RedFlags:          make(map[string][]string, len(years)),
	}

	subtotals := make(map[string]float64, len(years))
	for _, year := range years {
		rep.RedFlags[year] = []string{}
	}

	for _, name := range ratio.Names {
		rec := ratios[name]
		entry := &RatioScore{
			Max:      round2(PerRatioMax),
			Values:   make(map[string]float64, len(years)),
			RedFlags: make(map[string]bool, len(years)),
			Scores:   make(map[string]float64, len(years)),
		}
		if rec != nil {
			entry.Threshold = rec.Threshold
		}
		for _, year := range years {
			flagged := true
			if rec != nil {
				if f, ok := rec.RedFlags[year]; ok {
					flagged = f
				}
				entry.Values[year] = rec.Values[year]
			}
			score := 0.0
			if !flagged {
				score = PerRatioMax
			}
			entry.RedFlags[year] = flagged
			entry.Scores[year] = round2(score)
			subtotals[year] += score
			if flagged {
				rep.RedFlags[year] = append(rep.RedFlags[year], name)
			}
		}
		rep.FinancialStrength.Scores[name] = entry
	}

	mgmt, industry := qualitativeScores(years, cfg)
	for _, year := range years {
		fs := round2(subtotals[year])
		rep.FinancialStrength.Subtotals[year] = fs
		rep.ManagementQuality.Scores[year] = mgmt[year]
		rep.IndustryRisk.Scores[year] = industry[year]
		total := round2(fs + mgmt[year] + industry[year])
		rep.TotalScore[year] = total
		rep.RiskBucket[year] = Bucket(total)
	}
	return rep
}

// qualitativeScores produces the management/industry subscores per year.
// The seeded mode draws in sorted year order so reruns are reproducible.
func qualitativeScores(years []string, cfg Config) (map[string]float64, map[string]float64) {
	mgmt := make(map[string]float64, len(years))
	industry := make(map[string]float64, len(years))
	if cfg.Mode != ModeSeededRandom {
		for _, year := range years {
			mgmt[year] = ManagementScore
			industry[year] = IndustryScore
		}
		return mgmt, industry
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	for _, year := range sortedCopy(years) {
		mgmt[year] = round2(rng.Float64() * ManagementWeight)
		industry[year] = round2(rng.Float64() * IndustryWeight)
	}
	return mgmt, industry
}

func sortedCopy(years []string) []string {
	out := make([]string, len(years))
	copy(out, years)
	sort.Strings(out)
	return out
}
