package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"credit_appraisal/pkg/core/canonical"
	"credit_appraisal/pkg/core/llm"
	"credit_appraisal/pkg/core/normalize"
	"credit_appraisal/pkg/core/utils"
)

// Extractor runs the statement-extraction passes against one provider and
// normalizes each raw payload into a canonical snapshot.
type Extractor struct {
	provider llm.Provider
	model    string
	years    []string
	opts     normalize.Options
}

// New builds an extractor. model may be empty for the provider default.
func New(provider llm.Provider, model string, years []string, opts normalize.Options) *Extractor {
	return &Extractor{provider: provider, model: model, years: years, opts: opts}
}

func (e *Extractor) call(ctx context.Context, prompt string) (canonical.RawPayload, error) {
	resp, err := e.provider.GenerateResponse(ctx, prompt, systemPrompt, llm.Options{
		"json":  true,
		"model": e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction call: %w", err)
	}
	var payload canonical.RawPayload
	if err := utils.DecodeModelJSON(resp, &payload); err != nil {
		return nil, fmt.Errorf("extraction response: %w", err)
	}
	return payload, nil
}

// CurrentPair extracts the current reporting pair (the two most recent
// tracked years) from the BS/PL texts, plus the cash-flow statement when
// its text is available, and returns the normalized canonical snapshot.
func (e *Extractor) CurrentPair(ctx context.Context, bsText, plText, cfText string) (canonical.Snapshot, error) {
	currentYear, priorYear := e.years[0], e.years[0]
	if len(e.years) > 1 {
		priorYear = e.years[1]
	}

	payload, err := e.call(ctx, currentPairPrompt(bsText, plText, currentYear, priorYear))
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfText) != "" {
		cfPayload, err := e.call(ctx, cashFlowPrompt(cfText, currentYear, priorYear))
		if err != nil {
			return nil, err
		}
		// Raw-payload union: BS/PL labels win on collision.
		for label, rec := range cfPayload {
			if _, ok := payload[label]; !ok {
				payload[label] = rec
			}
		}
	}

	return canonical.Build(payload, e.years, e.opts), nil
}

// HistoricalStatements extracts one historical year for the BS/PL labels
// of an existing snapshot. The returned snapshot fragment carries only
// that year's values; the caller injects it into the base.
func (e *Extractor) HistoricalStatements(ctx context.Context, bsText, plText string, base canonical.Snapshot, year string) (canonical.Snapshot, error) {
	schema, err := json.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("marshal base schema: %w", err)
	}
	payload, err := e.call(ctx, historicalStatementsPrompt(bsText, plText, string(schema), year))
	if err != nil {
		return nil, err
	}
	return canonical.Build(payload, []string{year}, e.opts), nil
}

// HistoricalCashFlow extracts one historical year for the cash-flow labels
// of an existing snapshot.
func (e *Extractor) HistoricalCashFlow(ctx context.Context, cfText string, base canonical.Snapshot, year string) (canonical.Snapshot, error) {
	cfSlice := make(canonical.Snapshot, len(base))
	for label, rec := range base {
		if rec.Source == normalize.SourceCashFlow {
			cfSlice[label] = rec
		}
	}
	schema, err := json.Marshal(cfSlice)
	if err != nil {
		return nil, fmt.Errorf("marshal cash-flow schema: %w", err)
	}
	payload, err := e.call(ctx, historicalCashFlowPrompt(cfText, string(schema), year))
	if err != nil {
		return nil, err
	}
	return canonical.Build(payload, []string{year}, e.opts), nil
}
