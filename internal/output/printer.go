package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/Cloud-Dark/anyany/internal/bus"
	"github.com/Cloud-Dark/anyany/internal/collab"
)

// Printer wraps pterm for styled output. Styled methods are active only in
// plain mode; the TUI and JSON surfaces render runs their own way. Result
// still prints in quiet mode, which exists to suppress progress, not output.
type Printer struct {
	mode   Mode
	writer io.Writer
}

// NewPrinter creates a Printer for the given output mode.
func NewPrinter(mode Mode) *Printer {
	return &Printer{
		mode:   mode,
		writer: os.Stdout,
	}
}

// NewPrinterWithWriter creates a Printer with a custom writer (for testing).
func NewPrinterWithWriter(mode Mode, w io.Writer) *Printer {
	return &Printer{
		mode:   mode,
		writer: w,
	}
}

// active returns true if this printer should produce styled output.
func (p *Printer) active() bool {
	return p.mode == ModePlain
}

// Header prints a large styled header.
func (p *Printer) Header(text string) {
	if !p.active() {
		return
	}
	pterm.DefaultHeader.
		WithWriter(p.writer).
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack, pterm.Bold)).
		Println(text)
}

// Section prints a section header.
func (p *Printer) Section(text string) {
	if !p.active() {
		return
	}
	pterm.DefaultSection.
		WithWriter(p.writer).
		Println(text)
}

// Info prints an informational message.
func (p *Printer) Info(format string, args ...interface{}) {
	if !p.active() {
		return
	}
	pterm.Info.WithWriter(p.writer).Printfln(format, args...)
}

// Success prints a success message.
func (p *Printer) Success(format string, args ...interface{}) {
	if !p.active() {
		return
	}
	pterm.Success.WithWriter(p.writer).Printfln(format, args...)
}

// Warning prints a warning message.
func (p *Printer) Warning(format string, args ...interface{}) {
	if !p.active() {
		return
	}
	pterm.Warning.WithWriter(p.writer).Printfln(format, args...)
}

// Error prints an error message.
func (p *Printer) Error(format string, args ...interface{}) {
	if !p.active() {
		return
	}
	pterm.Error.WithWriter(p.writer).Printfln(format, args...)
}

// Table prints a table with headers and rows.
func (p *Printer) Table(headers []string, rows [][]string) {
	if !p.active() {
		return
	}
	data := pterm.TableData{headers}
	data = append(data, rows...)
	pterm.DefaultTable.
		WithWriter(p.writer).
		WithHasHeader().
		WithData(data).
		Render() //nolint:errcheck
}

// KeyValue prints key-value pairs in a formatted way.
func (p *Printer) KeyValue(pairs [][]string) {
	if !p.active() {
		return
	}
	for _, pair := range pairs {
		if len(pair) == 2 {
			fmt.Fprintf(p.writer, "  %s  %s\n",
				pterm.LightCyan(pair[0]+":"),
				pair[1])
		}
	}
}

// Println prints a plain line.
func (p *Printer) Println(text string) {
	if !p.active() {
		return
	}
	fmt.Fprintln(p.writer, text)
}

// Printf prints a plain formatted line.
func (p *Printer) Printf(format string, args ...interface{}) {
	if !p.active() {
		return
	}
	fmt.Fprintf(p.writer, format, args...)
}

// Divider prints a horizontal rule.
func (p *Printer) Divider() {
	if !p.active() {
		return
	}
	fmt.Fprintln(p.writer, pterm.Gray(strings.Repeat("─", 50)))
}

// Attach subscribes progress handlers on the bus so agent calls show up as
// they happen. No-op outside plain mode.
func (p *Printer) Attach(b *bus.MessageBus) {
	if !p.active() || b == nil {
		return
	}
	b.Subscribe(bus.MsgCallStarted, func(m bus.Message) {
		p.Info("calling %s", m.Agent)
	})
	b.Subscribe(bus.MsgCallCompleted, func(m bus.Message) {
		p.Success("%s responded", m.Agent)
	})
	b.Subscribe(bus.MsgCallFailed, func(m bus.Message) {
		p.Warning("%s failed: %v", m.Agent, m.Payload)
	})
}

// Report prints a finished collaboration report. The summary body prints in
// every mode except JSON; the call log detail only in plain mode.
func (p *Printer) Report(report *collab.Report) {
	if p.mode == ModeJSON {
		return
	}
	if p.mode == ModeQuiet || p.mode == ModeTUI {
		fmt.Fprintln(p.writer, report.Summary)
		return
	}

	p.Section(fmt.Sprintf("Result (%s)", report.Mode))
	fmt.Fprintln(p.writer, report.Summary)

	failed := 0
	for _, ev := range report.Calls {
		if !ev.Success {
			failed++
		}
	}
	p.Divider()
	p.Info("%d responses from %d calls (%d failed)", len(report.Records), len(report.Calls), failed)
}

// CallIcon returns a colored icon for a call outcome.
func CallIcon(success bool) string {
	if success {
		return pterm.Green("✔")
	}
	return pterm.Red("✖")
}
