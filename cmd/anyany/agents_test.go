package main

import (
	"strings"
	"testing"

	"github.com/Cloud-Dark/anyany/internal/collab"
	"github.com/Cloud-Dark/anyany/internal/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Providers["openai"] = config.ProviderConfig{APIKey: "sk-test", Model: "gpt-4o"}
	cfg.Providers["anthropic"] = config.ProviderConfig{APIKey: "sk-ant", Model: "claude-sonnet-4-20250514"}
	return cfg
}

func TestParseAgent(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		in   string
		want collab.AgentSpec
	}{
		{"openai", collab.AgentSpec{Provider: "openai", Model: "gpt-4o"}},
		{"openai/gpt-4o-mini", collab.AgentSpec{Provider: "openai", Model: "gpt-4o-mini"}},
		{" ollama ", collab.AgentSpec{Provider: "ollama", Model: "llama3"}},
	}
	for _, tt := range tests {
		got, err := parseAgent(tt.in, cfg)
		if err != nil {
			t.Errorf("parseAgent(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAgent(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAgentErrors(t *testing.T) {
	cfg := testConfig()

	for _, in := range []string{"", "  ", "doesnotexist", "/gpt-4o"} {
		if _, err := parseAgent(in, cfg); err == nil {
			t.Errorf("parseAgent(%q) should fail", in)
		}
	}
}

func TestSelectAgentsRejectsDuplicates(t *testing.T) {
	cfg := testConfig()

	_, err := selectAgents([]string{"openai", "openai/gpt-4o"}, cfg)
	if err == nil {
		t.Fatal("duplicate provider+model should be rejected")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("unexpected error: %v", err)
	}

	// Same provider with different models is two distinct agents.
	agents, err := selectAgents([]string{"openai/gpt-4o", "openai/gpt-4o-mini"}, cfg)
	if err != nil {
		t.Fatalf("selectAgents: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(agents))
	}
}

func TestSelectAgentsDefaultsToUsableProviders(t *testing.T) {
	cfg := testConfig()

	agents, err := selectAgents(nil, cfg)
	if err != nil {
		t.Fatalf("selectAgents: %v", err)
	}
	// anthropic and openai have keys, ollama never needs one.
	want := []string{"anthropic", "ollama", "openai"}
	if len(agents) != len(want) {
		t.Fatalf("expected %d agents, got %v", len(want), agents)
	}
	for i, a := range agents {
		if a.Provider != want[i] {
			t.Errorf("agent %d = %s, want provider %s", i, a, want[i])
		}
	}
}

func TestSelectAgentsNoUsableProviders(t *testing.T) {
	cfg := config.DefaultConfig()
	delete(cfg.Providers, "ollama")

	if _, err := selectAgents(nil, cfg); err == nil {
		t.Fatal("expected error when nothing is configured")
	}
}

func TestAgentList(t *testing.T) {
	got := agentList([]collab.AgentSpec{
		{Provider: "openai", Model: "gpt-4o"},
		{Provider: "ollama", Model: "llama3"},
	})
	if got != "openai/gpt-4o, ollama/llama3" {
		t.Errorf("agentList = %q", got)
	}
}
