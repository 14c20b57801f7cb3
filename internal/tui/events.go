package tui

// TUI event types. Sent from the run loop to the TUI via tea.Program.Send(),
// usually through the bus bridge.

// RunStartedMsg announces the collaboration run.
type RunStartedMsg struct {
	Mode  string
	Input string
}

// CallStartedMsg is an agent call going out.
type CallStartedMsg struct {
	Agent string
	Round int
	Step  int
}

// CallCompletedMsg is a successful agent call.
type CallCompletedMsg struct {
	Agent string
}

// CallFailedMsg is a failed agent call.
type CallFailedMsg struct {
	Agent string
	Err   string
}

// DoneMsg carries the final summary (or the error that stopped the run).
type DoneMsg struct {
	Success bool
	Summary string
	Error   string
}

// LogMsg is a raw log line (fallback for non-structured output).
type LogMsg struct {
	Text string
}

// TickMsg is a periodic timer for updating elapsed time.
type TickMsg struct{}
