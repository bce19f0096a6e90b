package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/stickies/internal/styles"
)

// Render draws the modal sized to fit the screen. The caller composites it
// over the background (see ui.OverlayModal).
func (m *Modal) Render(screenW, screenH int) string {
	width := m.width
	if width > screenW-4 {
		width = screenW - 4
	}
	if width < 20 {
		width = 20
	}

	// Border (2) plus horizontal padding (4).
	contentWidth := width - 6
	focusID := m.currentFocusID()

	var b strings.Builder
	b.WriteString(renderTitleLine(m.title, m.variant))
	b.WriteString("\n")
	for i, s := range m.sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Render(contentWidth, focusID))
	}
	if m.showHints {
		b.WriteString("\n\n")
		b.WriteString(renderHintLine(m.primaryAction != ""))
	}

	style := m.modalStyle(width)
	if screenH > 0 {
		style = style.MaxHeight(screenH)
	}
	return style.Render(b.String())
}

func (m *Modal) modalStyle(width int) lipgloss.Style {
	style := styles.ModalBox.Width(width - 2)
	if m.variant == VariantDanger {
		style = style.BorderForeground(styles.Error)
	}
	return style
}

func renderTitleLine(title string, variant Variant) string {
	style := styles.ModalTitle
	if variant == VariantDanger {
		style = style.Foreground(styles.Error)
	}
	return style.Render(title)
}

func renderHintLine(hasPrimary bool) string {
	hint := "tab switch · enter select · esc cancel"
	if hasPrimary {
		hint = "tab switch · ctrl+s save · esc cancel"
	}
	return styles.Muted.Render(hint)
}
