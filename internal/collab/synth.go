package collab

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// consensusThreshold is the confidence a single response must exceed to be
// promoted as the consensus answer.
const consensusThreshold = 75

// previewWidth is the display width intermediate outputs are truncated to
// in synthesized reports.
const previewWidth = 160

// previewText truncates s to the preview display width.
func previewText(s string) string {
	return runewidth.Truncate(strings.ReplaceAll(s, "\n", " "), previewWidth, "...")
}

// SynthesizeDebate reduces debate records to a report. Records are grouped
// by agent; only each agent's last response is reported, with the number
// of iterations it went through. Relies on the round-major ordering the
// debate executor produces.
func SynthesizeDebate(records []Record) string {
	if len(records) == 0 {
		return "Debate produced no responses."
	}

	var order []AgentSpec
	last := make(map[string]Record)
	iterations := make(map[string]int)
	for _, r := range records {
		key := r.Agent.String()
		if _, seen := last[key]; !seen {
			order = append(order, r.Agent)
		}
		last[key] = r
		iterations[key]++
	}

	var b strings.Builder
	b.WriteString("## Debate Summary\n")
	for _, agent := range order {
		key := agent.String()
		fmt.Fprintf(&b, "\n### %s (%d iterations)\n%s\n", key, iterations[key], last[key].Response)
	}
	fmt.Fprintf(&b, "\nThe debate collected %d responses in total.", len(records))
	return b.String()
}

// SynthesizePipeline reduces pipeline records to a report: every completed
// step in order with a truncated preview, then the full output of the
// final completed step as the headline result. Handles chains that halted
// early and so have fewer records than agents.
func SynthesizePipeline(records []Record) string {
	if len(records) == 0 {
		return "Pipeline completed no steps."
	}

	var b strings.Builder
	b.WriteString("## Pipeline Summary\n\n")
	for _, r := range records {
		fmt.Fprintf(&b, "Step %d [%s]: %s\n", r.Step, r.Agent, previewText(r.Response))
	}

	final := records[len(records)-1]
	fmt.Fprintf(&b, "\n### Final output (step %d, %s)\n", final.Step, final.Agent)
	b.WriteString(final.Response)
	return b.String()
}

// SynthesizeConsensus reduces consensus records to a report. The first
// record whose confidence exceeds the threshold is promoted as the
// consensus answer; note this is first-above-threshold in agent order, not
// the maximum. That literal behavior is carried from the original
// implementation and pinned by tests. With no record above the threshold,
// all responses are presented with attribution as a balanced
// multi-perspective view.
func SynthesizeConsensus(records []Record) string {
	if len(records) == 0 {
		return "No responses collected."
	}

	for _, r := range records {
		if r.Confidence > consensusThreshold {
			return fmt.Sprintf("## Consensus (%s, confidence %d)\n\n%s", r.Agent, r.Confidence, r.Response)
		}
	}

	var b strings.Builder
	b.WriteString("## Balanced multi-perspective view\n\nNo single response crossed the confidence threshold; all perspectives follow.\n")
	for _, r := range records {
		fmt.Fprintf(&b, "\n### %s (confidence %d)\n%s\n", r.Agent, r.Confidence, r.Response)
	}
	return strings.TrimRight(b.String(), "\n")
}
