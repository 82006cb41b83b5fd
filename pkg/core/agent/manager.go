// Package agent routes pipeline tasks to configured LLM providers.
package agent

import (
	"credit_appraisal/pkg/core/llm"
)

// Task names used by the pipeline.
const (
	TaskExtraction = "extraction"
	TaskMemo       = "memo"
)

// Config is loaded from models.yaml.
type Config struct {
	ActiveProvider string                `yaml:"active_provider"`
	Tasks          map[string]TaskConfig `yaml:"tasks"`
}

// TaskConfig optionally overrides the provider or model for one task.
type TaskConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// Manager resolves a provider per task.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

// NewManager builds the default provider registry around the config.
func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
}

// Register adds or replaces a named provider. Tests use this to install
// fakes.
func (m *Manager) Register(name string, p llm.Provider) {
	m.providers[name] = p
}

// ProviderFor returns the provider for a task: task override first, then
// the globally active provider, then gemini.
func (m *Manager) ProviderFor(task string) llm.Provider {
	if tc, ok := m.config.Tasks[task]; ok && tc.Provider != "" {
		if p, ok := m.providers[tc.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// ModelFor returns the per-task model override, or empty for the provider
// default.
func (m *Manager) ModelFor(task string) string {
	if tc, ok := m.config.Tasks[task]; ok {
		return tc.Model
	}
	return ""
}
