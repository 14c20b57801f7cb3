package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/Cloud-Dark/anyany/internal/collab"
)

// stubClient is a canned Client for caller tests.
type stubClient struct {
	text string
	err  error
}

func (s *stubClient) Complete(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

// registryWith pre-seeds the client cache so no real adapter is built.
func registryWith(spec collab.AgentSpec, c Client) *Registry {
	reg := NewRegistry(map[string]Settings{spec.Provider: {}})
	reg.clients[spec.Provider+"/"+spec.Model] = c
	return reg
}

func TestCallerSuccess(t *testing.T) {
	spec := collab.AgentSpec{Provider: "openai", Model: "gpt-4o"}
	caller := NewCaller(registryWith(spec, &stubClient{text: "answer"}), CallerOptions{})

	res := caller.Call(context.Background(), spec, "question")
	if !res.Success || res.Text != "answer" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Err != "" {
		t.Errorf("successful call should carry no error, got %q", res.Err)
	}
}

func TestCallerConvertsTransportErrorToValue(t *testing.T) {
	spec := collab.AgentSpec{Provider: "openai", Model: "gpt-4o"}
	caller := NewCaller(registryWith(spec, &stubClient{err: errors.New("invalid api key")}), CallerOptions{})

	res := caller.Call(context.Background(), spec, "question")
	if res.Success {
		t.Fatal("transport error should yield a failed result")
	}
	if res.Err != "invalid api key" {
		t.Errorf("error text should be carried in the result, got %q", res.Err)
	}
}

func TestCallerUnconfiguredProviderIsFailedResult(t *testing.T) {
	caller := NewCaller(NewRegistry(nil), CallerOptions{})

	res := caller.Call(context.Background(), collab.AgentSpec{Provider: "gemini", Model: "m"}, "q")
	if res.Success {
		t.Fatal("unconfigured provider should yield a failed result, not a panic or error")
	}
	if res.Err == "" {
		t.Error("failed result should explain the failure")
	}
}
