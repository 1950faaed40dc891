package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine flattens a field's text to a single line no wider than w
// cells. textinput views may carry cursor styling; a newline there would
// break the column layout.
func renderInputLine(w int, view string) string {
	if w < 2 {
		w = 2
	}
	view = strings.ReplaceAll(view, "\n", "")
	view = strings.ReplaceAll(view, "\r", "")
	if xansi.StringWidth(view) > w {
		// Terminate ANSI styling so a cut sequence does not bleed.
		return xansi.Cut(view, 0, w) + "\x1b[0m"
	}
	if pad := w - xansi.StringWidth(view); pad > 0 {
		view += strings.Repeat(" ", pad)
	}
	return view
}
