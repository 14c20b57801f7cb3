package collab

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cloud-Dark/anyany/internal/bus"
)

// debateContextRunes is the fixed-length prefix of each prior response
// included in later-round prompts. Bounding the digest to the two most
// recent records caps prompt growth across rounds while keeping each agent
// aware of the immediately preceding discussion.
const debateContextRunes = 300

// runDebate runs `rounds` sequential rounds; within each round agents are
// called in list order. A failed call keeps its error in the call log but
// does not abort the round. Output ordering is round-major, then agent
// order within round; debate synthesis relies on this.
func (o *Orchestrator) runDebate(ctx context.Context, agents []AgentSpec, input string, rounds int) ([]Record, []CallEvent) {
	var records []Record
	var calls []CallEvent

	for round := 1; round <= rounds; round++ {
		o.publish(bus.Message{Type: bus.MsgRoundStarted, Round: round})

		// The digest is frozen at round start: every round-1 agent gets
		// the raw input, and no agent ever sees same-round responses.
		prompt := debatePrompt(input, records)

		for _, agent := range agents {
			res, ev := o.call(ctx, agent, prompt, round, 0)
			calls = append(calls, ev)
			if !res.Success {
				continue
			}
			records = append(records, Record{
				Round:    round,
				Agent:    agent,
				Response: res.Text,
			})
		}
	}

	return records, calls
}

// debatePrompt builds the prompt for one debate turn: the original input,
// plus a digest of the two most recent prior records when any exist.
func debatePrompt(input string, prior []Record) string {
	if len(prior) == 0 {
		return input
	}

	recent := prior
	if len(recent) > 2 {
		recent = recent[len(recent)-2:]
	}

	var b strings.Builder
	b.WriteString(input)
	b.WriteString("\n\nPrevious perspectives:\n")
	for _, r := range recent {
		fmt.Fprintf(&b, "[%s] %s\n", r.Agent, prefixRunes(r.Response, debateContextRunes))
	}
	b.WriteString("\nNow respond to the original question, considering the perspectives above.")
	return b.String()
}

// prefixRunes returns at most n runes of s.
func prefixRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
