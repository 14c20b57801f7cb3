package output

import "fmt"

// Mode represents the output mode.
type Mode int

const (
	// ModeTUI is the interactive terminal UI mode.
	ModeTUI Mode = iota
	// ModePlain is the plain text log mode.
	ModePlain
	// ModeJSON is the structured JSON output mode.
	ModeJSON
	// ModeQuiet suppresses everything except the final result.
	ModeQuiet
)

// ParseMode converts a CLI flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "tui", "":
		return ModeTUI, nil
	case "plain":
		return ModePlain, nil
	case "json":
		return ModeJSON, nil
	case "quiet":
		return ModeQuiet, nil
	default:
		return ModeTUI, fmt.Errorf("unknown output mode %q (supported: tui, plain, json, quiet)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	case ModeQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}
