package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	maxFeedLines = 200
	tickInterval = time.Second
)

type feedLine struct {
	text  string
	style string // "call", "result", "error", "info"
}

// Model is the Bubble Tea model for a live collaboration run. It shows a
// feed of agent calls while the run is in flight and a scrollable summary
// viewport once the run finishes.
type Model struct {
	// Content
	mode      string
	input     string
	feed      []feedLine
	summary   string
	pending   int // calls in flight
	completed int
	failed    int

	// State
	startTime time.Time
	done      bool
	success   bool
	finalErr  string

	// UI
	width    int
	height   int
	spin     spinner.Model
	view     viewport.Model
	ready    bool
	quitting bool
}

// New creates a TUI model for one run.
func New(mode, input string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle
	return Model{
		mode:      mode,
		input:     input,
		startTime: time.Now(),
		spin:      sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tickCmd(), tea.WindowSize())
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k", "down", "j", "pgup", "pgdown":
			if m.done {
				var cmd tea.Cmd
				m.view, cmd = m.view.Update(msg)
				return m, cmd
			}
		default:
			if m.done {
				m.quitting = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case TickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case RunStartedMsg:
		if msg.Mode != "" {
			m.mode = msg.Mode
		}
		if msg.Input != "" {
			m.input = msg.Input
		}
		m.addLine(fmt.Sprintf("run started (%s)", m.mode), "info")

	case CallStartedMsg:
		m.pending++
		label := msg.Agent
		if msg.Round > 0 {
			label += fmt.Sprintf(" (round %d)", msg.Round)
		}
		if msg.Step > 0 {
			label += fmt.Sprintf(" (step %d)", msg.Step)
		}
		m.addLine("→ "+label, "call")

	case CallCompletedMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.completed++
		m.addLine("  ✔ "+msg.Agent, "result")

	case CallFailedMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.failed++
		m.addLine(fmt.Sprintf("  ✖ %s: %s", msg.Agent, msg.Err), "error")

	case DoneMsg:
		m.done = true
		m.success = msg.Success
		if msg.Error != "" {
			m.finalErr = msg.Error
			m.addLine("❌ "+msg.Error, "error")
		} else {
			m.summary = msg.Summary
			m.resizeViewport()
			m.view.SetContent(msg.Summary)
		}
		m.addLine("", "info")
		m.addLine("Press q to exit, arrows to scroll.", "info")
		return m, tickCmd()

	case LogMsg:
		m.addLine(msg.Text, "info")
	}

	return m, nil
}

func (m *Model) resizeViewport() {
	w := m.width
	if w < 40 {
		w = 80
	}
	h := m.summaryHeight()
	if !m.ready {
		m.view = viewport.New(w-4, h)
		m.ready = true
	} else {
		m.view.Width = w - 4
		m.view.Height = h
	}
	if m.summary != "" {
		m.view.SetContent(m.summary)
	}
}

// summaryHeight is the inner height of the summary viewport.
func (m Model) summaryHeight() int {
	h := m.height
	if h < 10 {
		h = 24
	}
	sh := h - m.feedHeight() - 7
	if sh < 3 {
		sh = 3
	}
	return sh
}

// feedHeight is the number of feed lines shown; the summary gets the rest.
func (m Model) feedHeight() int {
	h := m.height
	if h < 10 {
		h = 24
	}
	if m.done && m.summary != "" {
		return h / 4
	}
	return h - 6
}

func (m *Model) addLine(text, style string) {
	m.feed = append(m.feed, feedLine{text: text, style: style})
	if len(m.feed) > maxFeedLines {
		m.feed = m.feed[len(m.feed)-maxFeedLines:]
	}
}
