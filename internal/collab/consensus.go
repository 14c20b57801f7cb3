package collab

import (
	"context"
	"sync"
	"time"

	"github.com/Cloud-Dark/anyany/internal/bus"
)

// runConsensus calls every agent independently with the same unmodified
// input. Calls run concurrently since there is no cross-agent dependency;
// results are normalized back to the input agent order regardless of
// completion order, and one agent's failure never cancels the others.
// Failed calls are skipped entirely (no record), because consensus
// synthesis only makes sense over actually-produced opinions.
func (o *Orchestrator) runConsensus(ctx context.Context, agents []AgentSpec, input string) ([]Record, []CallEvent) {
	results := make([]CallResult, len(agents))
	elapsed := make([]time.Duration, len(agents))

	var wg sync.WaitGroup
	for i, agent := range agents {
		o.publish(bus.Message{Type: bus.MsgCallStarted, Agent: agent.String()})
		wg.Add(1)
		go func(i int, agent AgentSpec) {
			defer wg.Done()
			start := time.Now()
			results[i] = o.caller.Call(ctx, agent, input)
			elapsed[i] = time.Since(start)
		}(i, agent)
	}
	wg.Wait()

	var records []Record
	calls := make([]CallEvent, 0, len(agents))
	for i, agent := range agents {
		res := results[i]
		calls = append(calls, CallEvent{
			Agent:   agent,
			Success: res.Success,
			Err:     res.Err,
			Elapsed: elapsed[i],
		})
		if !res.Success {
			o.logger.Printf("call failed: %s: %s", agent, res.Err)
			o.publish(bus.Message{Type: bus.MsgCallFailed, Agent: agent.String(), Payload: res.Err})
			continue
		}
		o.publish(bus.Message{Type: bus.MsgCallCompleted, Agent: agent.String()})
		records = append(records, Record{
			Agent:      agent,
			Response:   res.Text,
			Confidence: EstimateConfidence(res.Text),
		})
	}

	return records, calls
}
