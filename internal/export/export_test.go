package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cloud-Dark/anyany/internal/collab"
)

func sampleReport() *collab.Report {
	return &collab.Report{
		Mode:    collab.ModeConsensus,
		Input:   "which database",
		Summary: "## Consensus (openai/gpt-4o, confidence 80)\n\npostgres",
		Records: []collab.Record{
			{Agent: collab.AgentSpec{Provider: "openai", Model: "gpt-4o"}, Response: "postgres", Confidence: 80},
			{Agent: collab.AgentSpec{Provider: "gemini", Model: "gemini-2.5-flash"}, Response: "sqlite", Confidence: 55},
		},
		Calls: []collab.CallEvent{
			{Agent: collab.AgentSpec{Provider: "openai", Model: "gpt-4o"}, Success: true},
			{Agent: collab.AgentSpec{Provider: "gemini", Model: "gemini-2.5-flash"}, Success: true},
			{Agent: collab.AgentSpec{Provider: "ollama", Model: "llama3"}, Success: false, Err: "unreachable"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"MD", FormatMarkdown},
		{"json", FormatJSON},
		{"txt", FormatText},
		{"text", FormatText},
		{"plain", FormatText},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestMarkdownContainsEverything(t *testing.T) {
	md := Markdown(sampleReport())

	for _, want := range []string{
		"# Collaboration report (consensus)",
		"which database",
		"## Consensus",
		"openai/gpt-4o",
		"gemini/gemini-2.5-flash",
		"(confidence 80)",
		"## Failed calls",
		"ollama/llama3: unreachable",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownNoFailuresSection(t *testing.T) {
	r := sampleReport()
	r.Calls = r.Calls[:2]
	if strings.Contains(Markdown(r), "## Failed calls") {
		t.Error("failed calls section should be omitted when every call succeeded")
	}
}

func TestJSONRoundtrip(t *testing.T) {
	data, err := JSON(sampleReport())
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var back collab.Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if back.Mode != collab.ModeConsensus || len(back.Records) != 2 || len(back.Calls) != 3 {
		t.Errorf("roundtrip lost data: %+v", back)
	}
}

func TestText(t *testing.T) {
	txt := Text(sampleReport())
	if !strings.Contains(txt, "Mode: consensus") || !strings.Contains(txt, "which database") {
		t.Errorf("text export missing header: %q", txt)
	}
	if !strings.Contains(txt, "postgres") {
		t.Error("text export missing summary")
	}
}

func TestWriteCreatesFileAndDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exports", "run.md")

	if err := Write(sampleReport(), FormatMarkdown, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("exported file not readable: %v", err)
	}
	if !strings.Contains(string(data), "# Collaboration report") {
		t.Error("exported file missing content")
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(sampleReport(), Format("pdf"), filepath.Join(t.TempDir(), "x")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
