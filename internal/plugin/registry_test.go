package plugin

import (
	"errors"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type fakePlugin struct {
	id       string
	initErr  error
	panics   bool
	started  bool
	stopped  *[]string
	focused  bool
	startCmd tea.Cmd
}

func (f *fakePlugin) ID() string   { return f.id }
func (f *fakePlugin) Name() string { return f.id }
func (f *fakePlugin) Icon() string { return "F" }
func (f *fakePlugin) Init(*Context) error {
	if f.panics {
		panic("boom")
	}
	return f.initErr
}
func (f *fakePlugin) Start() tea.Cmd {
	f.started = true
	return f.startCmd
}
func (f *fakePlugin) Stop() {
	if f.stopped != nil {
		*f.stopped = append(*f.stopped, f.id)
	}
}
func (f *fakePlugin) Update(tea.Msg) (Plugin, tea.Cmd) { return f, nil }
func (f *fakePlugin) View(int, int) string             { return f.id }
func (f *fakePlugin) IsFocused() bool                  { return f.focused }
func (f *fakePlugin) SetFocused(v bool)                { f.focused = v }
func (f *fakePlugin) Commands() []Command              { return nil }
func (f *fakePlugin) FocusContext() string             { return f.id }

func TestRegistry_RegisterAndOrder(t *testing.T) {
	r := NewRegistry(&Context{Logger: slog.New(slog.DiscardHandler)})

	for _, id := range []string{"a", "b", "c"} {
		if err := r.Register(&fakePlugin{id: id}); err != nil {
			t.Fatalf("Register(%s): %v", id, err)
		}
	}

	plugins := r.Plugins()
	if len(plugins) != 3 {
		t.Fatalf("got %d plugins, want 3", len(plugins))
	}
	for i, want := range []string{"a", "b", "c"} {
		if plugins[i].ID() != want {
			t.Errorf("plugins[%d] = %s, want %s", i, plugins[i].ID(), want)
		}
	}
	if r.Get("b") == nil {
		t.Error("Get(b) returned nil")
	}
	if r.Get("zzz") != nil {
		t.Error("Get(zzz) should be nil")
	}
}

func TestRegistry_DuplicateID(t *testing.T) {
	r := NewRegistry(&Context{})
	_ = r.Register(&fakePlugin{id: "a"})
	if err := r.Register(&fakePlugin{id: "a"}); err == nil {
		t.Error("expected error for duplicate id")
	}
}

func TestRegistry_FailedInitIsUnavailable(t *testing.T) {
	r := NewRegistry(&Context{Logger: slog.New(slog.DiscardHandler)})

	if err := r.Register(&fakePlugin{id: "bad", initErr: errors.New("nope")}); err != nil {
		t.Fatalf("Register should not fail: %v", err)
	}
	if err := r.Register(&fakePlugin{id: "panicky", panics: true}); err != nil {
		t.Fatalf("Register should not fail: %v", err)
	}

	if len(r.Plugins()) != 0 {
		t.Errorf("got %d plugins, want 0", len(r.Plugins()))
	}
	unavailable := r.Unavailable()
	if _, ok := unavailable["bad"]; !ok {
		t.Error("bad should be unavailable")
	}
	if _, ok := unavailable["panicky"]; !ok {
		t.Error("panicky should be unavailable")
	}
}

func TestRegistry_StartStop(t *testing.T) {
	var stopped []string
	a := &fakePlugin{id: "a", stopped: &stopped, startCmd: func() tea.Msg { return nil }}
	b := &fakePlugin{id: "b", stopped: &stopped}

	r := NewRegistry(&Context{})
	_ = r.Register(a)
	_ = r.Register(b)

	cmds := r.Start()
	if len(cmds) != 1 {
		t.Errorf("got %d start cmds, want 1", len(cmds))
	}
	if !a.started || !b.started {
		t.Error("all plugins should be started")
	}

	r.Stop()
	if len(stopped) != 2 || stopped[0] != "b" || stopped[1] != "a" {
		t.Errorf("stop order = %v, want [b a]", stopped)
	}
}

type epochMsg uint64

func (m epochMsg) GetEpoch() uint64 { return uint64(m) }

func TestIsStale(t *testing.T) {
	if IsStale(3, epochMsg(3)) {
		t.Error("same epoch should not be stale")
	}
	if !IsStale(4, epochMsg(3)) {
		t.Error("older epoch should be stale")
	}
}
