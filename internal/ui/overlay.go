// Package ui provides shared UI components and helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle greys out background content behind modals. Existing ANSI codes
// are stripped first because faint does not combine reliably with colors.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// maxLineWidth returns the widest visual width among lines.
func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, ansi.StringWidth(line))
	}
	return widest
}

// compositeRow places fg over bg starting at column x. The visible parts of
// bg on either side are dimmed.
func compositeRow(bg, fg string, x, fgWidth, totalWidth int) string {
	plain := ansi.Strip(bg)
	bgWidth := ansi.StringWidth(plain)

	var b strings.Builder
	if x > 0 {
		left := ansi.Truncate(plain, x, "")
		b.WriteString(DimStyle.Render(left))
		if pad := x - ansi.StringWidth(left); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	b.WriteString(fg)

	if right := x + fgWidth; right < totalWidth && bgWidth > right {
		b.WriteString(DimStyle.Render(ansi.Cut(plain, right, bgWidth)))
	}
	return b.String()
}

// OverlayModal centers modal over a dimmed copy of background.
func OverlayModal(background, modal string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	fgLines := strings.Split(modal, "\n")

	fgWidth := maxLineWidth(fgLines)
	x := max((width-fgWidth)/2, 0)
	y := max((height-len(fgLines))/2, 0)

	out := make([]string, height)
	for row := range height {
		bg := ""
		if row < len(bgLines) {
			bg = bgLines[row]
		}
		if i := row - y; i >= 0 && i < len(fgLines) {
			out[row] = compositeRow(bg, fgLines[i], x, fgWidth, width)
		} else {
			out[row] = DimStyle.Render(ansi.Strip(bg))
		}
	}
	return strings.Join(out, "\n")
}
