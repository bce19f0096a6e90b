package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateWidth shortens s to at most width terminal cells, ending with an
// ellipsis when cut. Wide runes (CJK, emoji) count as two cells.
func TruncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// FirstLine returns s up to its first newline.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// PadRight pads s with spaces to width cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
