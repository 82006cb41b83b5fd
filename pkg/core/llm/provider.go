// Package llm abstracts the completion providers the pipeline calls for
// statement extraction and memo generation.
package llm

import "context"

// Options are provider-specific knobs passed per call. Recognized keys:
// "model" (string override), "json" (bool, request a JSON-object response).
type Options map[string]interface{}

// Provider is the interface every completion backend implements.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt, systemPrompt string, options Options) (string, error)
}

// WantJSON reads the "json" option.
func (o Options) WantJSON() bool {
	v, _ := o["json"].(bool)
	return v
}

// Model reads the "model" option, or fallback when unset.
func (o Options) Model(fallback string) string {
	if v, ok := o["model"].(string); ok && v != "" {
		return v
	}
	return fallback
}
