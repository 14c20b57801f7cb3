package tui

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cloud-Dark/anyany/internal/bus"
)

// Program wraps a Bubble Tea program with helper methods for sending events.
type Program struct {
	program *tea.Program
}

// NewProgram creates a TUI program for one run.
func NewProgram(mode, input string) *Program {
	model := New(mode, input)
	p := tea.NewProgram(model, tea.WithAltScreen())
	return &Program{program: p}
}

// Run starts the TUI (blocking).
func (p *Program) Run() (tea.Model, error) {
	return p.program.Run()
}

// Send sends a message to the TUI.
func (p *Program) Send(msg tea.Msg) {
	p.program.Send(msg)
}

// SendDone sends the completion message with the summary or error.
func (p *Program) SendDone(success bool, summary, errMsg string) {
	p.program.Send(DoneMsg{Success: success, Summary: summary, Error: errMsg})
}

// AttachBus subscribes the TUI to run progress so orchestrator events show
// up in the feed as they happen.
func (p *Program) AttachBus(b *bus.MessageBus) {
	if b == nil {
		return
	}
	b.Subscribe(bus.MsgRunStarted, func(m bus.Message) {
		mode, _ := m.Payload.(string)
		p.Send(RunStartedMsg{Mode: mode})
	})
	b.Subscribe(bus.MsgCallStarted, func(m bus.Message) {
		p.Send(CallStartedMsg{Agent: m.Agent, Round: m.Round, Step: m.Step})
	})
	b.Subscribe(bus.MsgCallCompleted, func(m bus.Message) {
		p.Send(CallCompletedMsg{Agent: m.Agent})
	})
	b.Subscribe(bus.MsgCallFailed, func(m bus.Message) {
		errMsg, _ := m.Payload.(string)
		p.Send(CallFailedMsg{Agent: m.Agent, Err: errMsg})
	})
}

// LogWriter returns an io.Writer that sends each line to the TUI as a
// LogMsg. Use this as the output for log.New() so logger output lands in
// the feed instead of corrupting the alternate screen.
func (p *Program) LogWriter() io.Writer {
	return &tuiWriter{p: p}
}

type tuiWriter struct {
	p   *Program
	buf []byte
}

func (w *tuiWriter) Write(data []byte) (int, error) {
	w.buf = append(w.buf, data...)
	for {
		nl := strings.IndexByte(string(w.buf), '\n')
		if nl == -1 {
			break
		}
		line := stripLogPrefix(string(w.buf[:nl]))
		w.buf = w.buf[nl+1:]
		if line == "" {
			continue
		}
		w.p.Send(LogMsg{Text: line})
	}
	return len(data), nil
}

// stripLogPrefix removes the standard log prefix "2026/02/14 20:30:59 ".
func stripLogPrefix(line string) string {
	if len(line) > 20 && line[4] == '/' && line[7] == '/' && line[10] == ' ' {
		return strings.TrimSpace(line[20:])
	}
	if len(line) > 27 && line[4] == '/' && line[7] == '/' && line[19] == '.' {
		return strings.TrimSpace(line[27:])
	}
	if strings.HasPrefix(line, "[") {
		if idx := strings.Index(line, "] "); idx != -1 {
			return stripLogPrefix(line[idx+2:])
		}
	}
	return strings.TrimSpace(line)
}
