package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 40 {
		w = 80 // sensible default before WindowSizeMsg
	}
	innerW := w - 2

	feed := m.renderFeed(innerW)
	sbar := m.renderStatusBar(w)

	if m.done && m.summary != "" {
		summary := m.renderSummary(innerW)
		return feed + "\n" + summary + "\n" + sbar
	}
	return feed + "\n" + sbar
}

func (m Model) renderFeed(w int) string {
	title := titleStyle.Render("anyany")
	title += subtleStyle.Render("  " + m.mode)
	if !m.done {
		title += "  " + m.spin.View()
	}

	visibleH := m.feedHeight() - 1
	if visibleH < 1 {
		visibleH = 1
	}

	start := len(m.feed) - visibleH
	if start < 0 {
		start = 0
	}

	var rendered []string
	for _, line := range m.feed[start:] {
		for _, wl := range wrapText(line.text, w-2) {
			switch line.style {
			case "call":
				rendered = append(rendered, callStyle.Render(wl))
			case "result":
				rendered = append(rendered, successStyle.Render(wl))
			case "error":
				rendered = append(rendered, errorStyle.Render(wl))
			default:
				rendered = append(rendered, subtleStyle.Render(wl))
			}
		}
	}

	if len(rendered) > visibleH {
		rendered = rendered[len(rendered)-visibleH:]
	}
	for len(rendered) < visibleH {
		rendered = append(rendered, "")
	}

	content := title + "\n" + strings.Join(rendered, "\n")
	return feedBorder.Width(w).Render(content)
}

func (m Model) renderSummary(w int) string {
	title := titleStyle.Render("Result")
	if m.view.TotalLineCount() > m.view.Height {
		title += subtleStyle.Render(fmt.Sprintf("  %d%%", int(m.view.ScrollPercent()*100)))
	}
	content := title + "\n" + m.view.View()
	return summaryBorder.Width(w).Render(content)
}

func (m Model) renderStatusBar(w int) string {
	elapsed := time.Since(m.startTime).Round(time.Second)

	var left string
	switch {
	case m.done && m.success:
		left = successStyle.Render("✓ Complete") + subtleStyle.Render("  press q to exit")
	case m.done:
		left = errorStyle.Render("✗ Failed")
		if m.finalErr != "" {
			left += subtleStyle.Render("  " + m.finalErr)
		}
	default:
		prompt := m.input
		maxP := w/2 - 5
		if maxP > 0 && runewidth.StringWidth(prompt) > maxP {
			prompt = runewidth.Truncate(prompt, maxP, "…")
		}
		left = feedTextStyle.Render(prompt)
	}

	right := fmt.Sprintf("%d ok · %d failed · %s", m.completed, m.failed, elapsed)
	if m.pending > 0 {
		right = fmt.Sprintf("%d in flight · %s", m.pending, right)
	}

	leftW := runewidth.StringWidth(stripANSI(left))
	rightW := runewidth.StringWidth(right)
	spare := w - leftW - rightW - 4
	if spare < 1 {
		spare = 1
	}
	return statusBar.Width(w - 2).Render(left + strings.Repeat(" ", spare) + subtleStyle.Render(right))
}

// stripANSI gives a rough printable width for styled text by dropping
// escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			if r == 'm' {
				inEsc = false
			}
		case r == '\x1b':
			inEsc = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// wrapText wraps a string to fit within maxWidth display columns,
// correctly handling emoji and CJK characters.
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		maxWidth = 80
	}
	if len(text) == 0 {
		return []string{""}
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return []string{text}
	}

	var lines []string
	for runewidth.StringWidth(text) > maxWidth {
		colW := 0
		byteOff := 0
		for i, r := range text {
			rw := runewidth.RuneWidth(r)
			if colW+rw > maxWidth {
				break
			}
			colW += rw
			byteOff = i + len(string(r))
		}
		if byteOff == 0 {
			byteOff = len(string([]rune(text)[0]))
		}
		cut := byteOff
		if idx := strings.LastIndex(text[:byteOff], " "); idx > byteOff/3 {
			cut = idx
		}
		lines = append(lines, text[:cut])
		text = strings.TrimLeft(text[cut:], " ")
	}
	if text != "" {
		lines = append(lines, text)
	}
	return lines
}
