package risk

import (
	"testing"

	"credit_appraisal/pkg/core/ratio"
)

func ratiosDoc(flags map[string]map[string]bool, years []string) map[string]*ratio.MultiYear {
	out := make(map[string]*ratio.MultiYear, len(ratio.Names))
	for _, name := range ratio.Names {
		rec := ratio.NewMultiYear("<1.0")
		for _, year := range years {
			rec.Values[year] = 1.0
			rec.RedFlags[year] = flags[name][year]
		}
		out[name] = rec
	}
	return out
}

func TestBucket(t *testing.T) {
	cases := []struct {
		total float64
		want  string
	}{
		{90, "Low Risk"},
		{80.01, "Low Risk"},
		{80, "Medium Risk"}, // upper bound is strict
		{50, "Medium Risk"}, // lower bound is inclusive
		{49.99, "High Risk"},
		{0, "High Risk"},
	}
	for _, c := range cases {
		if got := Bucket(c.total); got != c.want {
			t.Errorf("Bucket(%v) = %q, want %q", c.total, got, c.want)
		}
	}
}

func TestComputeAllClean(t *testing.T) {
	years := []string{"2025", "2024"}
	doc := ratiosDoc(map[string]map[string]bool{}, years)

	rep := Compute(doc, years, Config{Mode: ModeFixed})

	// 13 unflagged ratios fill the financial-strength weight exactly:
	// 13 * (50/13) = 50. Plus fixed 25 + 15 = 90 -> Low Risk.
	for _, year := range years {
		if got := rep.FinancialStrength.Subtotals[year]; got != 50 {
			t.Errorf("%s subtotal = %v, want 50", year, got)
		}
		if got := rep.TotalScore[year]; got != 90 {
			t.Errorf("%s total = %v, want 90", year, got)
		}
		if got := rep.RiskBucket[year]; got != "Low Risk" {
			t.Errorf("%s bucket = %q, want Low Risk", year, got)
		}
		if len(rep.RedFlags[year]) != 0 {
			t.Errorf("%s red flags = %v, want none", year, rep.RedFlags[year])
		}
	}
	if rep.Weights.FinancialStrength != 50 || rep.Weights.ManagementQuality != 30 || rep.Weights.IndustryRisk != 20 {
		t.Errorf("weights = %+v", rep.Weights)
	}
	if len(rep.FinancialStrength.Scores) != len(ratio.Names) {
		t.Errorf("expected %d scored ratios, got %d", len(ratio.Names), len(rep.FinancialStrength.Scores))
	}
}

func TestComputeFlaggedRatios(t *testing.T) {
	years := []string{"2025"}
	doc := ratiosDoc(map[string]map[string]bool{
		ratio.NameDSCR:        {"2025": true},
		ratio.NamePayableDays: {"2025": true},
	}, years)

	rep := Compute(doc, years, Config{Mode: ModeFixed})

	// Two flagged ratios: 11 * (50/13) = 42.307... -> 42.31 subtotal.
	if got := rep.FinancialStrength.Subtotals["2025"]; got != 42.31 {
		t.Errorf("subtotal = %v, want 42.31", got)
	}
	// Total = 42.31 + 25 + 15 = 82.31 -> still Low Risk.
	if got := rep.TotalScore["2025"]; got != 82.31 {
		t.Errorf("total = %v, want 82.31", got)
	}

	flags := rep.RedFlags["2025"]
	if len(flags) != 2 {
		t.Fatalf("red flags = %v, want 2 entries", flags)
	}
	// Names surface in catalogue order.
	if flags[0] != ratio.NameDSCR || flags[1] != ratio.NamePayableDays {
		t.Errorf("red flags = %v", flags)
	}

	dscr := rep.FinancialStrength.Scores[ratio.NameDSCR]
	if dscr.Scores["2025"] != 0 || !dscr.RedFlags["2025"] {
		t.Errorf("flagged DSCR entry = %+v", dscr)
	}
}

func TestComputeMissingRatioIsFlagged(t *testing.T) {
	years := []string{"2025"}
	doc := ratiosDoc(map[string]map[string]bool{}, years)
	delete(doc, ratio.NameQuickRatio)
	// And one ratio present but missing the year entirely.
	doc[ratio.NameDSCR] = ratio.NewMultiYear("<1.2")

	rep := Compute(doc, years, Config{Mode: ModeFixed})

	qr := rep.FinancialStrength.Scores[ratio.NameQuickRatio]
	if qr == nil || !qr.RedFlags["2025"] || qr.Scores["2025"] != 0 {
		t.Errorf("absent ratio should score 0 flagged, got %+v", qr)
	}
	dscr := rep.FinancialStrength.Scores[ratio.NameDSCR]
	if !dscr.RedFlags["2025"] {
		t.Error("ratio without the year should flag")
	}
	// 11 clean ratios remain.
	if got := rep.FinancialStrength.Subtotals["2025"]; got != 42.31 {
		t.Errorf("subtotal = %v, want 42.31", got)
	}
}

func TestSeededRandomReproducible(t *testing.T) {
	years := []string{"2025", "2024"}
	doc := ratiosDoc(map[string]map[string]bool{}, years)
	cfg := Config{Mode: ModeSeededRandom, Seed: 42}

	a := Compute(doc, years, cfg)
	b := Compute(doc, years, cfg)
	for _, year := range years {
		if a.TotalScore[year] != b.TotalScore[year] {
			t.Errorf("%s: same seed diverged: %v vs %v", year, a.TotalScore[year], b.TotalScore[year])
		}
		if m := a.ManagementQuality.Scores[year]; m < 0 || m > ManagementWeight {
			t.Errorf("%s management score %v outside [0, %v]", year, m, ManagementWeight)
		}
		if i := a.IndustryRisk.Scores[year]; i < 0 || i > IndustryWeight {
			t.Errorf("%s industry score %v outside [0, %v]", year, i, IndustryWeight)
		}
	}

	// Year order in the input must not change the draw.
	c := Compute(doc, []string{"2024", "2025"}, cfg)
	for _, year := range years {
		if a.TotalScore[year] != c.TotalScore[year] {
			t.Errorf("%s: year order changed the seeded draw", year)
		}
	}
}
