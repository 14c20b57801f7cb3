package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Cloud-Dark/anyany/internal/collab"
	"github.com/Cloud-Dark/anyany/internal/config"
)

// parseAgent turns "provider" or "provider/model" into an AgentSpec, filling
// the model from the provider's configured default when omitted.
func parseAgent(s string, cfg *config.Config) (collab.AgentSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return collab.AgentSpec{}, fmt.Errorf("empty agent")
	}

	var spec collab.AgentSpec
	if idx := strings.Index(s, "/"); idx >= 0 {
		spec.Provider = s[:idx]
		spec.Model = s[idx+1:]
	} else {
		spec.Provider = s
	}
	if spec.Provider == "" {
		return collab.AgentSpec{}, fmt.Errorf("invalid agent %q (want provider or provider/model)", s)
	}

	pc, ok := cfg.Providers[spec.Provider]
	if !ok {
		return collab.AgentSpec{}, fmt.Errorf("unknown provider %q", spec.Provider)
	}
	if spec.Model == "" {
		spec.Model = pc.Model
	}
	if spec.Model == "" {
		return collab.AgentSpec{}, fmt.Errorf("no model for provider %q (set providers.%s.model or use provider/model)", spec.Provider, spec.Provider)
	}
	return spec, nil
}

// selectAgents resolves the --agent flags into a validated, duplicate-free
// agent list. With no flags it falls back to every usable configured
// provider: those with an API key, plus ollama.
func selectAgents(agentStrs []string, cfg *config.Config) ([]collab.AgentSpec, error) {
	if len(agentStrs) == 0 {
		agentStrs = usableProviders(cfg)
		if len(agentStrs) == 0 {
			return nil, fmt.Errorf("no agents selected and no providers configured with an API key; edit anyany.json or pass --agent")
		}
	}

	seen := make(map[collab.AgentSpec]bool, len(agentStrs))
	agents := make([]collab.AgentSpec, 0, len(agentStrs))
	for _, s := range agentStrs {
		spec, err := parseAgent(s, cfg)
		if err != nil {
			return nil, err
		}
		if seen[spec] {
			return nil, fmt.Errorf("duplicate agent %s", spec)
		}
		seen[spec] = true
		agents = append(agents, spec)
	}
	return agents, nil
}

// usableProviders lists providers that can be called without further setup,
// in stable order. Ollama needs no key; everything else does.
func usableProviders(cfg *config.Config) []string {
	var names []string
	for name, pc := range cfg.Providers {
		if pc.APIKey != "" || name == "ollama" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func sortedProviderNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func agentList(agents []collab.AgentSpec) string {
	parts := make([]string, len(agents))
	for i, a := range agents {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
