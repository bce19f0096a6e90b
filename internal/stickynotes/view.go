package stickynotes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/stickies/internal/styles"
	"github.com/marcus/stickies/internal/ui"
)

const (
	emptyText = "No notes."

	// separator + label + title + body field
	formHeight = 3 + formBodyHeight
)

// View renders the plugin.
func (p *Plugin) View(width, height int) string {
	p.width = width
	p.height = height

	var lines []string
	lines = append(lines, p.renderHeading(width))

	listHeight := height - 1 - formHeight
	if listHeight < 1 {
		listHeight = 1
	}
	lines = append(lines, p.renderList(width, listHeight)...)
	for len(lines) < 1+listHeight {
		lines = append(lines, "")
	}
	lines = append(lines, p.renderForm(width)...)
	if len(lines) > height {
		lines = lines[:height]
	}

	out := strings.Join(lines, "\n")
	if p.edit != nil {
		out = ui.OverlayModal(out, p.edit.modal.Render(width, height), width, height)
	}
	return out
}

// renderHeading draws the configured heading with the note count on the right.
func (p *Plugin) renderHeading(width int) string {
	if len(p.notes) == 0 {
		return styles.Heading.Render(ui.TruncateWidth(p.heading, width))
	}
	count := fmt.Sprintf("%d", len(p.notes))
	avail := width - len(count) - 1
	title := ui.TruncateWidth(p.heading, avail)
	return styles.Heading.Render(ui.PadRight(title, avail)) + " " + styles.Muted.Render(count)
}

func (p *Plugin) renderList(width, height int) []string {
	switch {
	case p.loadErr != nil:
		return []string{
			styles.ErrorMsg.Render(ui.TruncateWidth("Could not load notes: "+p.loadErr.Error(), width)),
			styles.Muted.Render("press r to retry"),
		}
	case p.loading && len(p.notes) == 0:
		return []string{styles.Muted.Render("Loading…")}
	case len(p.notes) == 0:
		return []string{styles.Muted.Render(emptyText)}
	}

	cards := make([][]string, len(p.notes))
	for i := range p.notes {
		cards[i] = strings.Split(p.renderCard(i, width), "\n")
	}
	p.ensureCursorVisible(cards, height)

	var lines []string
	for i := p.scrollOff; i < len(cards); i++ {
		if len(lines)+len(cards[i]) > height && len(lines) > 0 {
			break
		}
		lines = append(lines, cards[i]...)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return lines
}

// ensureCursorVisible adjusts scrollOff so the selected card fits in height.
func (p *Plugin) ensureCursorVisible(cards [][]string, height int) {
	if p.scrollOff > p.cursor {
		p.scrollOff = p.cursor
	}
	for p.scrollOff < p.cursor {
		used := 0
		for i := p.scrollOff; i <= p.cursor; i++ {
			used += len(cards[i])
		}
		if used <= height {
			break
		}
		p.scrollOff++
	}
	if p.scrollOff >= len(cards) {
		p.scrollOff = max(len(cards)-1, 0)
	}
}

// renderCard draws one note as a bordered card.
func (p *Plugin) renderCard(i, width int) string {
	note := p.notes[i]
	style := styles.NoteCard
	if i == p.cursor && p.pane == paneList {
		style = styles.NoteCardSelected
	}
	// Border (2) plus padding (2).
	inner := max(width-4, 1)

	var parts []string
	if note.Title != "" {
		parts = append(parts, styles.NoteTitle.Render(ui.TruncateWidth(ui.FirstLine(note.Title), inner)))
	}
	parts = append(parts, p.renderBody(note.Body, inner))
	return style.Width(max(width-2, 1)).Render(strings.Join(parts, "\n"))
}

// renderBody wraps the note body, through glamour when markdown is enabled.
func (p *Plugin) renderBody(body string, width int) string {
	if p.renderMarkdown {
		if r := p.markdownRenderer(width); r != nil {
			if out, err := r.Render(body); err == nil {
				return strings.Trim(out, "\n")
			}
		}
	}
	return styles.Body.Width(width).Render(body)
}

// markdownRenderer returns a renderer wrapping at width, built on first use.
func (p *Plugin) markdownRenderer(width int) *glamour.TermRenderer {
	if p.renderer != nil && p.rendererWidth == width {
		return p.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.CurrentMarkdownTheme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		p.logger().Debug("sticky-notes: markdown renderer", "error", err)
		p.renderMarkdown = false
		return nil
	}
	p.renderer = r
	p.rendererWidth = width
	return r
}

func (p *Plugin) renderForm(width int) []string {
	p.titleInput.Width = max(width-1, 1)
	p.bodyInput.SetWidth(max(width, 1))

	label := "New note"
	if p.submitting {
		label = "Saving…"
	}
	labelStyle := styles.Muted
	if p.pane == paneForm {
		labelStyle = styles.Title
	}

	lines := []string{
		styles.Subtle.Render(strings.Repeat("─", max(width, 0))),
		labelStyle.Render(label),
		p.titleInput.View(),
	}
	body := lipgloss.NewStyle().MaxHeight(formBodyHeight).Render(p.bodyInput.View())
	lines = append(lines, strings.Split(body, "\n")...)
	return lines
}
