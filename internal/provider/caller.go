package provider

import (
	"context"
	"log"

	"github.com/Cloud-Dark/anyany/internal/collab"
)

// CallerOptions tunes the registry-to-core bridge.
type CallerOptions struct {
	// MaxRetries is the retry attempt count per call for retryable
	// transport errors. Zero means one attempt, no retries.
	MaxRetries int
	// Logger receives retry notices. May be nil.
	Logger *log.Logger
}

// NewCaller adapts a Registry to collab.Caller. Every transport error,
// including an unconfigured provider, comes back as a failed CallResult;
// no error crosses into the collaboration core.
func NewCaller(reg *Registry, opts CallerOptions) collab.Caller {
	return collab.CallerFunc(func(ctx context.Context, agent collab.AgentSpec, input string) collab.CallResult {
		client, err := reg.ClientFor(agent)
		if err != nil {
			return collab.CallResult{Success: false, Err: err.Error()}
		}

		text, err := Retry(ctx, opts.MaxRetries, opts.Logger, func() (string, error) {
			return client.Complete(ctx, input)
		})
		if err != nil {
			return collab.CallResult{Success: false, Err: err.Error()}
		}
		return collab.CallResult{Success: true, Text: text}
	})
}
