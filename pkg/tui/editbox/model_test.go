package editbox

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/gridsheet/pkg/tui/events"
	"tableflip.dev/gridsheet/pkg/tui/surface"
	"tableflip.dev/gridsheet/pkg/tui/theme"
)

func newOpen(t *testing.T, initial string) *Model {
	t.Helper()
	m := New("edit", theme.Default().Editor)
	m.Open(initial, surface.Rect{X: 2, Y: 1, W: 6, H: 1}, surface.Rect{W: 40, H: 10})
	if !m.IsOpen() {
		t.Fatalf("editor not open")
	}
	return m
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestEnterCommitsChangedText(t *testing.T) {
	m := newOpen(t, "ab")
	typeText(m, "c")
	cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter returned no command")
	}
	msg, ok := cmd().(events.EditCommitMsg)
	if !ok {
		t.Fatalf("unexpected message %T", cmd())
	}
	if msg.Text != "abc" || !msg.Changed || msg.Component != "edit" {
		t.Fatalf("commit = %+v", msg)
	}
	if m.IsOpen() {
		t.Fatalf("editor still open after commit")
	}
}

func TestCommitUnchanged(t *testing.T) {
	m := newOpen(t, "same")
	msg := m.Commit()().(events.EditCommitMsg)
	if msg.Changed {
		t.Fatalf("unchanged text reported as changed")
	}
	if m.Commit() != nil {
		t.Fatalf("second commit should be a no-op")
	}
}

func TestEscapeCancels(t *testing.T) {
	m := newOpen(t, "x")
	typeText(m, "yz")
	cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(events.EditCancelMsg); !ok {
		t.Fatalf("escape did not cancel")
	}
	if m.IsOpen() || m.Value() != "" {
		t.Fatalf("cancel left state behind: open=%t value=%q", m.IsOpen(), m.Value())
	}
}

func TestAltEnterInsertsNewline(t *testing.T) {
	m := newOpen(t, "one")
	if cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModAlt}); cmd != nil {
		t.Fatalf("alt+enter should not commit")
	}
	typeText(m, "two")
	if got := m.Value(); got != "one\ntwo" {
		t.Fatalf("value = %q", got)
	}
	if r := m.Rect(); r.H != 2 {
		t.Fatalf("box height = %d, want 2", r.H)
	}

	for range "two" {
		m.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	if got := m.Value(); got != "one" {
		t.Fatalf("backspace across the line break = %q", got)
	}
}

func TestOpenSplitsMultilineContent(t *testing.T) {
	m := newOpen(t, "a\r\nb")
	if got := m.Value(); got != "a\nb" {
		t.Fatalf("value = %q", got)
	}
	m.Replace("typed")
	if got := m.Value(); got != "typed" {
		t.Fatalf("replace = %q", got)
	}
	if got := m.Rect(); got.X != 2 || got.Y != 1 || got.W != 6 {
		t.Fatalf("rect = %+v", got)
	}
}
