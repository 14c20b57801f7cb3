package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Cloud-Dark/anyany/internal/bus"
	"github.com/Cloud-Dark/anyany/internal/collab"
)

func TestParseOutputMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModeTUI},
		{"tui", ModeTUI},
		{"plain", ModePlain},
		{"json", ModeJSON},
		{"quiet", ModeQuiet},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseMode("verbose"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestPrinterActiveOnlyInPlainMode(t *testing.T) {
	modes := []struct {
		mode   Mode
		name   string
		active bool
	}{
		{ModePlain, "plain", true},
		{ModeTUI, "tui", false},
		{ModeJSON, "json", false},
		{ModeQuiet, "quiet", false},
	}

	for _, m := range modes {
		t.Run(m.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinterWithWriter(m.mode, &buf)
			p.Info("hello %s", "world")
			hasOutput := buf.Len() > 0
			if hasOutput != m.active {
				t.Errorf("mode=%s: expected active=%v, got output=%v (len=%d)",
					m.name, m.active, hasOutput, buf.Len())
			}
		})
	}
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(ModePlain, &buf)
	p.Table(
		[]string{"Provider", "Model"},
		[][]string{
			{"openai", "gpt-4o"},
			{"ollama", "llama3"},
		},
	)
	if buf.Len() == 0 {
		t.Error("Table produced no output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("openai")) {
		t.Error("Table missing openai row")
	}
	if !bytes.Contains(buf.Bytes(), []byte("llama3")) {
		t.Error("Table missing llama3 value")
	}
}

func TestPrinterKeyValue(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(ModePlain, &buf)
	p.KeyValue([][]string{
		{"Session", "abc123"},
		{"Mode", "debate"},
	})
	out := buf.String()
	if !strings.Contains(out, "abc123") || !strings.Contains(out, "debate") {
		t.Errorf("KeyValue missing values: %q", out)
	}
}

func sampleReport() *collab.Report {
	return &collab.Report{
		Mode:    collab.ModeDebate,
		Input:   "q",
		Summary: "the final summary",
		Records: []collab.Record{
			{Agent: collab.AgentSpec{Provider: "openai", Model: "gpt-4o"}, Response: "r"},
		},
		Calls: []collab.CallEvent{
			{Agent: collab.AgentSpec{Provider: "openai", Model: "gpt-4o"}, Success: true},
			{Agent: collab.AgentSpec{Provider: "ollama", Model: "llama3"}, Success: false, Err: "down"},
		},
	}
}

func TestPrinterReportQuietPrintsOnlySummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(ModeQuiet, &buf)
	p.Report(sampleReport())
	if strings.TrimSpace(buf.String()) != "the final summary" {
		t.Errorf("quiet mode should print exactly the summary, got %q", buf.String())
	}
}

func TestPrinterReportJSONSilent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(ModeJSON, &buf)
	p.Report(sampleReport())
	if buf.Len() != 0 {
		t.Errorf("json mode printer should stay silent, got %q", buf.String())
	}
}

func TestPrinterReportPlainIncludesCallCounts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(ModePlain, &buf)
	p.Report(sampleReport())
	out := buf.String()
	if !strings.Contains(out, "the final summary") {
		t.Error("plain report missing summary")
	}
	if !strings.Contains(out, "1 responses from 2 calls (1 failed)") {
		t.Errorf("plain report missing call counts: %q", out)
	}
}

func TestPrinterAttachEchoesBusProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithWriter(ModePlain, &buf)
	b := bus.New(0)
	p.Attach(b)

	b.Publish(bus.Message{Type: bus.MsgCallStarted, Agent: "openai/gpt-4o"})
	b.Publish(bus.Message{Type: bus.MsgCallFailed, Agent: "ollama/llama3", Payload: "down"})

	out := buf.String()
	if !strings.Contains(out, "openai/gpt-4o") {
		t.Errorf("missing call start line: %q", out)
	}
	if !strings.Contains(out, "down") {
		t.Errorf("missing failure line: %q", out)
	}
}

func TestJSONWriterEvents(t *testing.T) {
	var buf bytes.Buffer
	jw := NewJSONWriter(&buf, "session-1")

	if err := jw.WriteRunStart("debate", "the question"); err != nil {
		t.Fatalf("WriteRunStart: %v", err)
	}
	if err := jw.WriteCall("openai/gpt-4o", true, ""); err != nil {
		t.Fatalf("WriteCall: %v", err)
	}
	if err := jw.WriteRunEnd(sampleReport()); err != nil {
		t.Fatalf("WriteRunEnd: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 JSON lines, got %d", len(lines))
	}

	var first JSONEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 does not parse: %v", err)
	}
	if first.Type != EventRunStart || first.SessionID != "session-1" {
		t.Errorf("unexpected first event: %+v", first)
	}

	var last JSONEvent
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("line 3 does not parse: %v", err)
	}
	if last.Type != EventRunEnd || last.Report == nil || last.Report.Summary != "the final summary" {
		t.Errorf("final event should carry the report: %+v", last)
	}
}

func TestJSONWriterAttach(t *testing.T) {
	var buf bytes.Buffer
	jw := NewJSONWriter(&buf, "s1")
	b := bus.New(0)
	jw.Attach(b)

	b.Publish(bus.Message{Type: bus.MsgCallCompleted, Agent: "openai/gpt-4o"})
	b.Publish(bus.Message{Type: bus.MsgCallFailed, Agent: "ollama/llama3", Payload: "down"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d", len(lines))
	}
	var ev JSONEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("line does not parse: %v", err)
	}
	if ev.Success == nil || *ev.Success || ev.Message != "down" {
		t.Errorf("failure event wrong: %+v", ev)
	}
}
