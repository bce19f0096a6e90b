package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestNewConfirmDialog(t *testing.T) {
	d := NewConfirmDialog("Test Title", "Test message")

	if d.Title != "Test Title" {
		t.Errorf("expected title 'Test Title', got %q", d.Title)
	}
	if d.ConfirmLabel != " Confirm " {
		t.Errorf("expected default confirm label ' Confirm ', got %q", d.ConfirmLabel)
	}
	if d.Width != ModalWidthMedium {
		t.Errorf("expected width %d, got %d", ModalWidthMedium, d.Width)
	}
}

func TestConfirmDialog_ToModal(t *testing.T) {
	d := NewConfirmDialog("Quit stickies?", "Unsaved form text will be lost.")
	d.ConfirmLabel = " Quit "
	d.Danger = true

	output := ansi.Strip(d.ToModal().Render(80, 24))

	for _, want := range []string{"Quit stickies?", "Unsaved form text", "Quit", "Cancel"} {
		if !strings.Contains(output, want) {
			t.Errorf("render should contain %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "esc cancel") {
		t.Error("render should not include modal hint line")
	}
}

func TestConfirmDialog_ToModalActions(t *testing.T) {
	m := NewConfirmDialog("Test", "Message").ToModal()

	action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "confirm" {
		t.Errorf("expected confirm action, got %q", action)
	}

	m.SetFocus("cancel")
	action, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "cancel" {
		t.Errorf("expected cancel action, got %q", action)
	}

	action, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if action != "cancel" {
		t.Errorf("expected cancel on esc, got %q", action)
	}
}
