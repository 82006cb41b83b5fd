// Package memo generates the narrative credit memo from the canonical
// snapshot, the ratios document, and the risk report. Generation is an
// external LLM call; only the fixed six-section document shape is owned
// here.
package memo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"credit_appraisal/pkg/core/canonical"
	"credit_appraisal/pkg/core/llm"
	"credit_appraisal/pkg/core/ratio"
	"credit_appraisal/pkg/core/risk"
	"credit_appraisal/pkg/core/utils"
)

// Memo is the fixed-shape narrative document. Every field is prose; the
// shape never varies between runs.
type Memo struct {
	FinancialSummary string `json:"financial_summary_&_ratios"`
	ExecutiveSummary string `json:"executive_summary"`
	LoanPurpose      string `json:"loan_purpose"`
	SWOTAnalysis     string `json:"swot_analysis"`
	SecurityOffered  string `json:"security_offered"`
	Recommendation   string `json:"recommendation"`
}

// Generator produces memos through a completion provider.
type Generator struct {
	provider llm.Provider
	model    string
}

// NewGenerator builds a generator. model may be empty for the provider
// default.
func NewGenerator(provider llm.Provider, model string) *Generator {
	return &Generator{provider: provider, model: model}
}

// Generate builds the memo from the three structured documents. The model
// sees them verbatim as JSON; it never sees upstream raw statement text.
func (g *Generator) Generate(ctx context.Context, snapshot canonical.Snapshot, ratios map[string]*ratio.MultiYear, report *risk.Report) (*Memo, error) {
	snapJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	ratiosJSON, err := json.Marshal(ratios)
	if err != nil {
		return nil, fmt.Errorf("marshal ratios: %w", err)
	}
	riskJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal risk report: %w", err)
	}

	userPrompt := "EXTRACTED_VALUES_JSON:\n" + string(snapJSON) +
		"\n\nRATIOS_JSON:\n" + string(ratiosJSON) +
		"\n\nRISK_RATING_JSON:\n" + string(riskJSON)

	resp, err := g.provider.GenerateResponse(ctx, userPrompt, memoSystemPrompt, llm.Options{
		"json":  true,
		"model": g.model,
	})
	if err != nil {
		return nil, fmt.Errorf("memo generation: %w", err)
	}

	var m Memo
	if err := utils.DecodeModelJSON(resp, &m); err != nil {
		return nil, fmt.Errorf("memo response: %w", err)
	}
	return &m, nil
}

// RenderMarkdown lays the memo out as a reviewable Markdown document.
func (m *Memo) RenderMarkdown(customerName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Credit Memo — %s\n\n", customerName)
	sections := []struct {
		title string
		body  string
	}{
		{"Executive Summary", m.ExecutiveSummary},
		{"Financial Summary & Ratios", m.FinancialSummary},
		{"Loan Purpose", m.LoanPurpose},
		{"SWOT Analysis", m.SWOTAnalysis},
		{"Security Offered", m.SecurityOffered},
		{"Recommendation", m.Recommendation},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.title, strings.TrimSpace(s.body))
	}
	return b.String()
}

// RenderHTML renders the Markdown memo as HTML for export.
func (m *Memo) RenderHTML(customerName string) (string, error) {
	return utils.MarkdownToHTML(m.RenderMarkdown(customerName))
}
