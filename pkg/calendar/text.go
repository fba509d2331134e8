package calendar

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const ellipsis = "…"

// EventLines wraps the entry label to width characters and caps it at
// MaxEventLines. Overflowing lines are joined onto the last kept line,
// which is then cut to width with an ellipsis.
func EventLines(entry EventEntry, width int) []string {
	wrapped := wordwrap.String(entry.Label(), width)

	var lines []string
	for _, line := range strings.Split(wrapped, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) <= MaxEventLines {
		return lines
	}

	kept := append([]string{}, lines[:MaxEventLines-1]...)
	rest := strings.Join(lines[MaxEventLines-1:], " ")
	return append(kept, truncateWithEllipsis(rest, width))
}

func truncateWithEllipsis(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return ellipsis
	}
	return string(runes[:width-1]) + ellipsis
}
