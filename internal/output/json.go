package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Cloud-Dark/anyany/internal/bus"
	"github.com/Cloud-Dark/anyany/internal/collab"
)

// EventType represents the type of JSON output event.
type EventType string

const (
	// EventRunStart marks the beginning of a collaboration run.
	EventRunStart EventType = "run_start"
	// EventRunEnd carries the final report.
	EventRunEnd EventType = "run_end"
	// EventCall is emitted per attempted agent call.
	EventCall EventType = "call"
	// EventError is emitted when an error occurs.
	EventError EventType = "error"
)

// JSONEvent is the wrapper for all JSON output events, one per line.
type JSONEvent struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"session_id,omitempty"`
	Mode      string         `json:"mode,omitempty"`
	Agent     string         `json:"agent,omitempty"`
	Success   *bool          `json:"success,omitempty"`
	Message   string         `json:"message,omitempty"`
	Report    *collab.Report `json:"report,omitempty"`
}

// JSONWriter emits machine-readable run progress as JSON lines.
type JSONWriter struct {
	mu        sync.Mutex
	w         io.Writer
	sessionID string
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer, sessionID string) *JSONWriter {
	return &JSONWriter{
		w:         w,
		sessionID: sessionID,
	}
}

func (jw *JSONWriter) writeEvent(event JSONEvent) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	event.Timestamp = time.Now()
	if jw.sessionID != "" {
		event.SessionID = jw.sessionID
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(jw.w, string(data))
	return err
}

// WriteRunStart emits a run start event.
func (jw *JSONWriter) WriteRunStart(mode, input string) error {
	return jw.writeEvent(JSONEvent{
		Type:    EventRunStart,
		Mode:    mode,
		Message: input,
	})
}

// WriteRunEnd emits the final report.
func (jw *JSONWriter) WriteRunEnd(report *collab.Report) error {
	return jw.writeEvent(JSONEvent{
		Type:   EventRunEnd,
		Mode:   string(report.Mode),
		Report: report,
	})
}

// WriteCall emits one agent call outcome.
func (jw *JSONWriter) WriteCall(agent string, success bool, errMsg string) error {
	return jw.writeEvent(JSONEvent{
		Type:    EventCall,
		Agent:   agent,
		Success: &success,
		Message: errMsg,
	})
}

// WriteError emits an error event.
func (jw *JSONWriter) WriteError(message string) error {
	return jw.writeEvent(JSONEvent{
		Type:    EventError,
		Message: message,
	})
}

// Attach subscribes the writer to call outcomes on the bus.
func (jw *JSONWriter) Attach(b *bus.MessageBus) {
	if b == nil {
		return
	}
	b.Subscribe(bus.MsgCallCompleted, func(m bus.Message) {
		jw.WriteCall(m.Agent, true, "") //nolint:errcheck
	})
	b.Subscribe(bus.MsgCallFailed, func(m bus.Message) {
		errMsg, _ := m.Payload.(string)
		jw.WriteCall(m.Agent, false, errMsg) //nolint:errcheck
	})
}
