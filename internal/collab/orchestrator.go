package collab

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Cloud-Dark/anyany/internal/bus"
)

const defaultDebateRounds = 2

// Options configures an Orchestrator. The zero value is usable.
type Options struct {
	// DebateRounds is the number of debate rounds (min 1). Defaults to 2.
	DebateRounds int
	// Logger receives progress lines. Defaults to log.Default().
	Logger *log.Logger
	// Bus, if set, receives progress messages for the printer/TUI.
	Bus *bus.MessageBus
}

// Orchestrator dispatches a collaboration run to the strategy executor
// matching the requested mode and synthesizes the result. It holds no
// state between runs; every run owns its own record sequence.
type Orchestrator struct {
	caller Caller
	rounds int
	logger *log.Logger
	bus    *bus.MessageBus
}

// New creates an Orchestrator around the given transport Caller.
func New(caller Caller, opts Options) *Orchestrator {
	rounds := opts.DebateRounds
	if rounds < 1 {
		rounds = defaultDebateRounds
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		caller: caller,
		rounds: rounds,
		logger: logger,
		bus:    opts.Bus,
	}
}

// Run executes one collaboration over input with the given agents.
// An unknown mode or an empty agent list is a caller contract violation
// and fails before any agent call is made.
func (o *Orchestrator) Run(ctx context.Context, input string, mode Mode, agents []AgentSpec) (*Report, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("collab: no agents selected")
	}

	var (
		records []Record
		calls   []CallEvent
		summary string
	)

	switch mode {
	case ModeDebate:
		o.publish(bus.Message{Type: bus.MsgRunStarted, Payload: string(mode)})
		records, calls = o.runDebate(ctx, agents, input, o.rounds)
		summary = SynthesizeDebate(records)
	case ModePipeline:
		o.publish(bus.Message{Type: bus.MsgRunStarted, Payload: string(mode)})
		records, calls = o.runPipeline(ctx, agents, input)
		summary = SynthesizePipeline(records)
	case ModeConsensus:
		o.publish(bus.Message{Type: bus.MsgRunStarted, Payload: string(mode)})
		records, calls = o.runConsensus(ctx, agents, input)
		summary = SynthesizeConsensus(records)
	default:
		return nil, fmt.Errorf("collab: unknown mode %q", mode)
	}

	o.publish(bus.Message{Type: bus.MsgSynthesisDone, Payload: len(records)})
	o.publish(bus.Message{Type: bus.MsgRunCompleted, Payload: string(mode)})

	return &Report{
		Mode:    mode,
		Input:   input,
		Summary: summary,
		Records: records,
		Calls:   calls,
	}, nil
}

// call performs one agent invocation and returns the result with its
// call-log entry. Failures are logged, never returned as errors.
func (o *Orchestrator) call(ctx context.Context, agent AgentSpec, prompt string, round, step int) (CallResult, CallEvent) {
	o.publish(bus.Message{Type: bus.MsgCallStarted, Agent: agent.String(), Round: round, Step: step})

	start := time.Now()
	res := o.caller.Call(ctx, agent, prompt)
	ev := CallEvent{
		Agent:   agent,
		Round:   round,
		Step:    step,
		Success: res.Success,
		Err:     res.Err,
		Elapsed: time.Since(start),
	}

	if res.Success {
		o.publish(bus.Message{Type: bus.MsgCallCompleted, Agent: agent.String(), Round: round, Step: step})
	} else {
		o.logger.Printf("call failed: %s: %s", agent, res.Err)
		o.publish(bus.Message{Type: bus.MsgCallFailed, Agent: agent.String(), Round: round, Step: step, Payload: res.Err})
	}
	return res, ev
}

func (o *Orchestrator) publish(msg bus.Message) {
	if o.bus != nil {
		o.bus.Publish(msg)
	}
}
