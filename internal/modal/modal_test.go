package modal

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestNew(t *testing.T) {
	m := New("Test Modal")
	if m.title != "Test Modal" {
		t.Errorf("expected title 'Test Modal', got %q", m.title)
	}
	if m.width != DefaultWidth {
		t.Errorf("expected default width %d, got %d", DefaultWidth, m.width)
	}
	if m.variant != VariantDefault {
		t.Errorf("expected VariantDefault, got %v", m.variant)
	}
}

func TestNewWithOptions(t *testing.T) {
	m := New("Test",
		WithWidth(40),
		WithVariant(VariantDanger),
		WithHints(false),
		WithPrimaryAction("save"),
	)

	if m.width != 40 {
		t.Errorf("expected width 40, got %d", m.width)
	}
	if m.variant != VariantDanger {
		t.Errorf("expected VariantDanger, got %v", m.variant)
	}
	if m.showHints {
		t.Error("expected showHints false")
	}
	if m.primaryAction != "save" {
		t.Errorf("expected primaryAction 'save', got %q", m.primaryAction)
	}
}

func editModal() (*Modal, *textinput.Model, *textarea.Model) {
	ti := textinput.New()
	ta := textarea.New()
	m := New("Edit note", WithPrimaryAction("save")).
		AddSection(Input("title", &ti, "Title")).
		AddSection(Textarea("body", &ta, "Body")).
		AddSection(Buttons(Btn(" Save ", "save"), Btn(" Cancel ", "cancel")))
	m.FocusFirst()
	return m, &ti, &ta
}

func TestFocusCycling(t *testing.T) {
	m, ti, ta := editModal()

	if m.FocusedID() != "title" {
		t.Fatalf("initial focus = %q, want title", m.FocusedID())
	}
	if !ti.Focused() {
		t.Error("title input should be focused")
	}

	want := []string{"body", "save", "cancel", "title"}
	for _, id := range want {
		m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
		if m.FocusedID() != id {
			t.Errorf("after tab focus = %q, want %q", m.FocusedID(), id)
		}
	}

	m.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedID() != "cancel" {
		t.Errorf("after shift+tab focus = %q, want cancel", m.FocusedID())
	}
	if ti.Focused() || ta.Focused() {
		t.Error("inputs should be blurred while a button is focused")
	}
}

func TestHandleKey_Actions(t *testing.T) {
	m, _, _ := editModal()

	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); action != "cancel" {
		t.Errorf("esc action = %q, want cancel", action)
	}

	// Enter on the title input submits.
	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); action != "save" {
		t.Errorf("enter on input = %q, want save", action)
	}

	// Enter in the body inserts a newline instead.
	m.SetFocus("body")
	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); action != "" {
		t.Errorf("enter in textarea = %q, want no action", action)
	}
	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlS}); action != "save" {
		t.Errorf("ctrl+s = %q, want save", action)
	}

	m.SetFocus("cancel")
	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); action != "cancel" {
		t.Errorf("enter on cancel = %q, want cancel", action)
	}
}

func TestTypingGoesToFocusedInput(t *testing.T) {
	m, ti, ta := editModal()
	ti.SetValue("")

	m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	if ti.Value() != "hi" {
		t.Errorf("title = %q, want hi", ti.Value())
	}

	m.SetFocus("body")
	m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if ta.Value() != "a\nb" {
		t.Errorf("body = %q, want %q", ta.Value(), "a\nb")
	}
	if ti.Value() != "hi" {
		t.Errorf("title changed to %q", ti.Value())
	}
}

func TestRender(t *testing.T) {
	m := New("Quit?", WithHints(false)).
		AddSection(Text("Really quit?")).
		AddSection(Spacer()).
		AddSection(Buttons(Btn(" Quit ", "quit"), Btn(" Cancel ", "cancel")))

	out := ansi.Strip(m.Render(100, 30))
	for _, want := range []string{"Quit?", "Really quit?", "Quit", "Cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > DefaultWidth {
			t.Errorf("line width %d exceeds %d: %q", w, DefaultWidth, line)
		}
	}
}

func TestRender_NarrowScreen(t *testing.T) {
	m := New("Narrow").AddSection(Text("content"))
	out := m.Render(30, 10)
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 26 {
			t.Errorf("line width %d exceeds screen: %q", w, line)
		}
	}
}
