package collab

import (
	"context"
	"fmt"

	"github.com/Cloud-Dark/anyany/internal/bus"
)

// runPipeline executes a strictly sequential refinement chain. Step 1
// receives the raw input; step k>1 receives the previous step's full
// output wrapped in a refine/extend instruction. The chain halts on the
// first failed call, because each step's input is a hard dependency on
// the prior step's output; records for completed steps are still returned.
func (o *Orchestrator) runPipeline(ctx context.Context, agents []AgentSpec, input string) ([]Record, []CallEvent) {
	var records []Record
	var calls []CallEvent

	prompt := input
	for i, agent := range agents {
		step := i + 1
		o.publish(bus.Message{Type: bus.MsgStepStarted, Agent: agent.String(), Step: step})

		res, ev := o.call(ctx, agent, prompt, 0, step)
		calls = append(calls, ev)
		if !res.Success {
			o.logger.Printf("pipeline halted at step %d of %d", step, len(agents))
			break
		}

		records = append(records, Record{
			Step:     step,
			Agent:    agent,
			Input:    previewText(prompt),
			Response: res.Text,
		})
		prompt = pipelinePrompt(res.Text)
	}

	return records, calls
}

// pipelinePrompt wraps the previous step's full output with an instruction
// to refine and extend it.
func pipelinePrompt(previous string) string {
	return fmt.Sprintf(
		"Refine and extend the draft below. Keep what is correct, improve what is weak, and fill in missing detail.\n\nDraft:\n%s",
		previous,
	)
}
