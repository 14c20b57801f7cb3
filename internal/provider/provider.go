// Package provider holds the LLM transport layer: one adapter per provider,
// a registry that constructs clients from configuration, and the bridge that
// adapts the registry to the collaboration core's Caller interface.
package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Cloud-Dark/anyany/internal/collab"
)

// Client is a single provider+model endpoint. Each adapter owns its own
// request construction and response parsing.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings holds what is needed to construct a client for one provider.
type Settings struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"` // optional override for OpenAI-compatible and ollama endpoints
	Model   string `json:"model,omitempty"`    // default model when a spec leaves it empty
}

// Registry constructs and caches clients per provider+model pair. It is
// built from explicit configuration; there is no package-level instance.
type Registry struct {
	mu       sync.Mutex
	settings map[string]Settings
	clients  map[string]Client
}

// NewRegistry builds a registry from per-provider settings keyed by
// provider name ("anthropic", "openai", "gemini", "ollama").
func NewRegistry(settings map[string]Settings) *Registry {
	if settings == nil {
		settings = map[string]Settings{}
	}
	return &Registry{
		settings: settings,
		clients:  make(map[string]Client),
	}
}

// Providers returns the configured provider names, sorted.
func (r *Registry) Providers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.settings))
	for name := range r.settings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Configured reports whether a provider has settings.
func (r *Registry) Configured(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.settings[name]
	return ok
}

// ClientFor returns the client for one agent spec, constructing it on first
// use. The spec's model wins over the configured default model.
func (r *Registry) ClientFor(spec collab.AgentSpec) (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.settings[spec.Provider]
	if !ok {
		return nil, fmt.Errorf("provider %q not configured", spec.Provider)
	}
	model := spec.Model
	if model == "" {
		model = s.Model
	}

	key := spec.Provider + "/" + model
	if c, ok := r.clients[key]; ok {
		return c, nil
	}
	c, err := newClient(spec.Provider, model, s)
	if err != nil {
		return nil, err
	}
	r.clients[key] = c
	return c, nil
}

// newClient creates the appropriate adapter based on provider name.
func newClient(name, model string, s Settings) (Client, error) {
	switch name {
	case "anthropic":
		return NewAnthropicClient(s.APIKey, model), nil
	case "openai":
		return NewOpenAIClient(s.APIKey, model, s.BaseURL), nil
	case "gemini", "google":
		return NewGeminiClient(s.APIKey, model), nil
	case "ollama":
		return NewOllamaClient(s.BaseURL, model), nil
	case "":
		return nil, fmt.Errorf("no provider named in agent spec")
	default:
		return nil, fmt.Errorf("unknown provider: %q (supported: anthropic, openai, gemini, ollama)", name)
	}
}
