package collab

import (
	"context"
	"io"
	"log"
	"sync"
)

// testLogger returns a logger that discards everything.
func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newTestOrchestrator builds an orchestrator with a discarded logger.
func newTestOrchestrator(c Caller, rounds int) *Orchestrator {
	return New(c, Options{DebateRounds: rounds, Logger: testLogger()})
}

// mockCall records one invocation of the mock caller.
type mockCall struct {
	Agent AgentSpec
	Input string
}

// mockCaller is a configurable Caller for tests. Responses can be queued
// per agent; unqueued calls succeed with a canned reply.
type mockCaller struct {
	mu        sync.Mutex
	calls     []mockCall
	responses map[string][]CallResult
	fallback  func(agent AgentSpec, input string) CallResult
}

func newMockCaller() *mockCaller {
	return &mockCaller{responses: make(map[string][]CallResult)}
}

func ok(text string) CallResult {
	return CallResult{Success: true, Text: text}
}

func fail(msg string) CallResult {
	return CallResult{Success: false, Err: msg}
}

// queue adds scripted results for an agent, consumed in order.
func (m *mockCaller) queue(agent AgentSpec, results ...CallResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := agent.String()
	m.responses[key] = append(m.responses[key], results...)
}

func (m *mockCaller) Call(_ context.Context, agent AgentSpec, input string) CallResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, mockCall{Agent: agent, Input: input})

	key := agent.String()
	if rs := m.responses[key]; len(rs) > 0 {
		m.responses[key] = rs[1:]
		return rs[0]
	}
	if m.fallback != nil {
		return m.fallback(agent, input)
	}
	return CallResult{Success: true, Text: "reply from " + key}
}

func (m *mockCaller) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockCaller) allCalls() []mockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// agentsFixture returns n distinct agent specs.
func agentsFixture(n int) []AgentSpec {
	all := []AgentSpec{
		{Provider: "openai", Model: "gpt-4o"},
		{Provider: "anthropic", Model: "claude-sonnet-4"},
		{Provider: "gemini", Model: "gemini-2.5-flash"},
		{Provider: "ollama", Model: "llama3"},
	}
	return all[:n]
}
