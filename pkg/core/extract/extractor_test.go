package extract

import (
	"context"
	"strings"
	"testing"

	"credit_appraisal/pkg/core/canonical"
	"credit_appraisal/pkg/core/llm"
	"credit_appraisal/pkg/core/normalize"
)

type scriptedProvider struct {
	responses []string
	prompts   []string
}

func (p *scriptedProvider) GenerateResponse(_ context.Context, prompt, _ string, opts llm.Options) (string, error) {
	p.prompts = append(p.prompts, prompt)
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp, nil
}

var years = []string{"2025", "2024", "2023"}

func TestCurrentPairUnion(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		// BS/PL pass
		`{
			"Revenue from operations": {"value_2025": "12,000", "value_2024": "11,000", "source": "pl", "unit": "₹ crore"},
			"Total assets": {"value_2025": "10,000", "value_2024": "9,500", "source": "bs", "unit": "₹ crore"}
		}`,
		// CF pass, with a label colliding against the BS/PL result
		`{
			"Net cash flow from operating activities": {"value_2025": "(900)", "value_2024": "800", "source": "cf", "unit": ""},
			"Total assets": {"value_2025": "1", "source": "cf", "unit": ""}
		}`,
	}}

	e := New(provider, "", years, normalize.Options{SuppressZero: true})
	snap, err := e.CurrentPair(context.Background(), "bs text", "pl text", "cf text")
	if err != nil {
		t.Fatalf("current pair: %v", err)
	}
	if len(provider.prompts) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(provider.prompts))
	}

	// BS/PL wins the union on collision.
	assets := snap["Total assets"]
	if v, _ := assets.Value("2025").MonetaryValue(); v != 10000 {
		t.Errorf("total assets 2025 = %s, want the BS/PL value", assets.Value("2025"))
	}
	if assets.Source != normalize.SourceBalanceSheet {
		t.Errorf("total assets source = %q", assets.Source)
	}

	cf := snap["Net cash flow from operating activities"]
	if digits, ok := cf.Value("2025").ParenDigits(); !ok || digits != "900" {
		t.Errorf("cf 2025 = %s, want (900)", cf.Value("2025"))
	}
}

func TestCurrentPairSkipsEmptyCashFlow(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"Revenue from operations": {"value_2025": "12,000", "source": "pl", "unit": "₹ crore"}}`,
	}}
	e := New(provider, "", years, normalize.Options{})
	if _, err := e.CurrentPair(context.Background(), "bs", "pl", "   "); err != nil {
		t.Fatalf("current pair: %v", err)
	}
	if len(provider.prompts) != 1 {
		t.Errorf("blank CF text should skip the cash-flow pass, got %d calls", len(provider.prompts))
	}
}

func TestHistoricalCashFlowSchemaSlice(t *testing.T) {
	base := canonical.Snapshot{
		"Revenue from operations": &canonical.LineItem{
			Values: map[string]normalize.Cell{"2025": normalize.Monetary(12000)},
			Source: normalize.SourceProfitLoss,
		},
		"Net cash flow from operating activities": &canonical.LineItem{
			Values: map[string]normalize.Cell{"2025": normalize.Monetary(900)},
			Source: normalize.SourceCashFlow,
		},
	}
	provider := &scriptedProvider{responses: []string{
		`{"Net cash flow from operating activities": {"value_2023": "700"}}`,
	}}

	e := New(provider, "", years, normalize.Options{})
	fragment, err := e.HistoricalCashFlow(context.Background(), "old cf text", base, "2023")
	if err != nil {
		t.Fatalf("historical cf: %v", err)
	}

	// Only cash-flow labels go into the prompt schema.
	prompt := provider.prompts[0]
	if !strings.Contains(prompt, "Net cash flow from operating activities") {
		t.Error("cf label missing from prompt schema")
	}
	if strings.Contains(prompt, "Revenue from operations") {
		t.Error("non-cf label leaked into the cash-flow schema")
	}

	if v, _ := fragment["Net cash flow from operating activities"].Value("2023").MonetaryValue(); v != 700 {
		t.Errorf("fragment value = %s", fragment["Net cash flow from operating activities"].Value("2023"))
	}
}
