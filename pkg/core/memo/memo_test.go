package memo

import (
	"context"
	"strings"
	"testing"

	"credit_appraisal/pkg/core/canonical"
	"credit_appraisal/pkg/core/llm"
	"credit_appraisal/pkg/core/normalize"
	"credit_appraisal/pkg/core/ratio"
	"credit_appraisal/pkg/core/risk"
)

type fakeProvider struct {
	lastPrompt string
	response   string
}

func (p *fakeProvider) GenerateResponse(_ context.Context, prompt, _ string, _ llm.Options) (string, error) {
	p.lastPrompt = prompt
	return p.response, nil
}

func TestGenerate(t *testing.T) {
	provider := &fakeProvider{response: "```json\n" + `{
		"financial_summary_&_ratios": "Revenue of 12000 with healthy margins.",
		"executive_summary": "Established services exporter.",
		"loan_purpose": "Working capital facility.",
		"swot_analysis": "S: margins. W: concentration.",
		"security_offered": "Book debts.",
		"recommendation": "Approve."
	}` + "\n```"}

	snapshot := canonical.Snapshot{
		"Revenue from operations": &canonical.LineItem{
			Values: map[string]normalize.Cell{"2025": normalize.Monetary(12000)},
			Source: "pl",
			Unit:   "₹ crore",
		},
	}
	ratios := map[string]*ratio.MultiYear{
		ratio.NameDSCR: ratio.NewMultiYear("<1.2"),
	}
	report := risk.Compute(ratios, []string{"2025"}, risk.Config{Mode: risk.ModeFixed})

	g := NewGenerator(provider, "")
	m, err := g.Generate(context.Background(), snapshot, ratios, report)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if m.Recommendation != "Approve." {
		t.Errorf("recommendation = %q", m.Recommendation)
	}
	if m.FinancialSummary == "" {
		t.Error("financial summary empty")
	}

	// The model sees all three documents, never raw statement text.
	for _, marker := range []string{"EXTRACTED_VALUES_JSON:", "RATIOS_JSON:", "RISK_RATING_JSON:", "Revenue from operations"} {
		if !strings.Contains(provider.lastPrompt, marker) {
			t.Errorf("prompt missing %q", marker)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	m := &Memo{
		FinancialSummary: "Revenue grew 10%.",
		ExecutiveSummary: "Stable business.",
		LoanPurpose:      "Capex.",
		SWOTAnalysis:     "Balanced.",
		SecurityOffered:  "Plant and machinery.",
		Recommendation:   "Approve.",
	}
	md := m.RenderMarkdown("Acme Services Ltd")

	if !strings.HasPrefix(md, "# Credit Memo — Acme Services Ltd") {
		t.Errorf("header: %q", strings.SplitN(md, "\n", 2)[0])
	}
	// Executive summary leads; the six sections all render.
	order := []string{
		"## Executive Summary",
		"## Financial Summary & Ratios",
		"## Loan Purpose",
		"## SWOT Analysis",
		"## Security Offered",
		"## Recommendation",
	}
	last := -1
	for _, h := range order {
		idx := strings.Index(md, h)
		if idx < 0 {
			t.Errorf("missing section %q", h)
			continue
		}
		if idx < last {
			t.Errorf("section %q out of order", h)
		}
		last = idx
	}

	html, err := m.RenderHTML("Acme Services Ltd")
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(html, "<h2>Executive Summary</h2>") {
		t.Errorf("html missing section heading:\n%s", html)
	}
}
