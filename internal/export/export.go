// Package export writes collaboration reports to files in Markdown, JSON,
// or plain text.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Cloud-Dark/anyany/internal/collab"
)

// Format is an export output format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatText     Format = "txt"
)

// ParseFormat accepts the common spellings of each format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "txt", "text", "plain":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown export format %q (supported: md, json, txt)", s)
	}
}

// Write renders the report in the given format and writes it to path,
// creating parent directories as needed.
func Write(report *collab.Report, format Format, path string) error {
	var data []byte
	var err error

	switch format {
	case FormatMarkdown:
		data = []byte(Markdown(report))
	case FormatJSON:
		data, err = JSON(report)
		if err != nil {
			return fmt.Errorf("render json: %w", err)
		}
	case FormatText:
		data = []byte(Text(report))
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Markdown renders the report as a standalone document: header, summary,
// then the full record sequence.
func Markdown(report *collab.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Collaboration report (%s)\n\n", report.Mode)
	fmt.Fprintf(&b, "Exported %s\n\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "## Prompt\n\n%s\n\n", report.Input)
	fmt.Fprintf(&b, "## Result\n\n%s\n", report.Summary)

	if len(report.Records) > 0 {
		b.WriteString("\n## Responses\n")
		for i, r := range report.Records {
			fmt.Fprintf(&b, "\n### %d. %s", i+1, r.Agent)
			if r.Round > 0 {
				fmt.Fprintf(&b, " (round %d)", r.Round)
			}
			if r.Step > 0 {
				fmt.Fprintf(&b, " (step %d)", r.Step)
			}
			if r.Confidence > 0 {
				fmt.Fprintf(&b, " (confidence %d)", r.Confidence)
			}
			fmt.Fprintf(&b, "\n\n%s\n", r.Response)
		}
	}

	if failed := failedCalls(report); len(failed) > 0 {
		b.WriteString("\n## Failed calls\n\n")
		for _, ev := range failed {
			fmt.Fprintf(&b, "- %s: %s\n", ev.Agent, ev.Err)
		}
	}

	return b.String()
}

// JSON renders the full report, records and call log included.
func JSON(report *collab.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// Text renders a minimal plain-text version: prompt, then summary.
func Text(report *collab.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mode: %s\n", report.Mode)
	fmt.Fprintf(&b, "Prompt: %s\n\n", report.Input)
	b.WriteString(report.Summary)
	b.WriteString("\n")
	return b.String()
}

func failedCalls(report *collab.Report) []collab.CallEvent {
	var out []collab.CallEvent
	for _, ev := range report.Calls {
		if !ev.Success {
			out = append(out, ev)
		}
	}
	return out
}
