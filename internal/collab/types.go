package collab

import (
	"context"
	"fmt"
	"time"
)

// Mode selects the collaboration strategy.
type Mode string

const (
	ModeDebate    Mode = "debate"
	ModePipeline  Mode = "pipeline"
	ModeConsensus Mode = "consensus"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDebate, ModePipeline, ModeConsensus:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown collaboration mode %q (supported: debate, pipeline, consensus)", s)
	}
}

// AgentSpec identifies one callable agent. Immutable once selected;
// uniqueness within a run is enforced by the selection step, not here.
type AgentSpec struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

func (a AgentSpec) String() string {
	return a.Provider + "/" + a.Model
}

// CallResult is the outcome of a single agent call. Transport and parse
// failures from the provider layer arrive here as Success=false with a
// human-readable Err; they are never surfaced as Go errors to executors.
type CallResult struct {
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Caller invokes one configured agent with the given text. Exactly one
// outbound request per call; retry policy, if any, belongs to the
// implementation behind this interface.
type Caller interface {
	Call(ctx context.Context, agent AgentSpec, input string) CallResult
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, agent AgentSpec, input string) CallResult

func (f CallerFunc) Call(ctx context.Context, agent AgentSpec, input string) CallResult {
	return f(ctx, agent, input)
}

// Record is one intermediate result of a collaboration run. The fields
// populated depend on the strategy: debate sets Round, pipeline sets Step
// and Input (a truncated preview of the step's prompt), consensus sets
// Confidence. Records are owned by the executor that created them and are
// read-only input to synthesis.
type Record struct {
	Round      int       `json:"round,omitempty"`
	Step       int       `json:"step,omitempty"`
	Agent      AgentSpec `json:"agent"`
	Input      string    `json:"input,omitempty"`
	Response   string    `json:"response"`
	Confidence int       `json:"confidence,omitempty"`
}

// CallEvent is the structured log entry for one attempted agent call,
// successful or not. The full sequence is returned with the report so the
// session store can persist what happened.
type CallEvent struct {
	Agent   AgentSpec     `json:"agent"`
	Round   int           `json:"round,omitempty"`
	Step    int           `json:"step,omitempty"`
	Success bool          `json:"success"`
	Err     string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Report is the final product of a collaboration run: the synthesized
// summary plus the full ordered record sequence and call log for
// transparency. Created once per run; the orchestrator keeps no reference
// after returning it.
type Report struct {
	Mode    Mode        `json:"mode"`
	Input   string      `json:"input"`
	Summary string      `json:"summary"`
	Records []Record    `json:"records"`
	Calls   []CallEvent `json:"calls"`
}
