package agent

import (
	"context"
	"testing"

	"credit_appraisal/pkg/core/llm"
)

type stubProvider struct{ name string }

func (p *stubProvider) GenerateResponse(context.Context, string, string, llm.Options) (string, error) {
	return p.name, nil
}

func TestProviderRouting(t *testing.T) {
	m := NewManager(Config{
		ActiveProvider: "deepseek",
		Tasks: map[string]TaskConfig{
			TaskMemo: {Provider: "gemini", Model: "gemini-2.5-pro"},
		},
	})
	fake := &stubProvider{name: "fake"}
	m.Register("fake", fake)

	// Task override wins over the active provider.
	if _, ok := m.ProviderFor(TaskMemo).(*llm.GeminiProvider); !ok {
		t.Errorf("memo task should route to gemini, got %T", m.ProviderFor(TaskMemo))
	}
	// No override: the active provider.
	if _, ok := m.ProviderFor(TaskExtraction).(*llm.DeepSeekProvider); !ok {
		t.Errorf("extraction task should route to deepseek, got %T", m.ProviderFor(TaskExtraction))
	}

	if got := m.ModelFor(TaskMemo); got != "gemini-2.5-pro" {
		t.Errorf("memo model = %q", got)
	}
	if got := m.ModelFor(TaskExtraction); got != "" {
		t.Errorf("extraction model = %q, want provider default", got)
	}
}

func TestProviderFallbacks(t *testing.T) {
	// Unknown active provider falls back to gemini.
	m := NewManager(Config{ActiveProvider: "unknown"})
	if _, ok := m.ProviderFor(TaskExtraction).(*llm.GeminiProvider); !ok {
		t.Errorf("unknown active provider should fall back to gemini, got %T", m.ProviderFor(TaskExtraction))
	}

	// A registered fake replaces the default registry entry.
	fake := &stubProvider{name: "fake"}
	m.Register("gemini", fake)
	if m.ProviderFor(TaskExtraction) != fake {
		t.Error("registered provider not used")
	}

	// Task override naming an unregistered provider falls through.
	m2 := NewManager(Config{
		ActiveProvider: "deepseek",
		Tasks:          map[string]TaskConfig{TaskMemo: {Provider: "nope"}},
	})
	if _, ok := m2.ProviderFor(TaskMemo).(*llm.DeepSeekProvider); !ok {
		t.Errorf("unregistered override should fall back to active, got %T", m2.ProviderFor(TaskMemo))
	}
}
