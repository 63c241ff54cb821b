package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/gridsheet/pkg/clipboard"
	"tableflip.dev/gridsheet/pkg/config"
	"tableflip.dev/gridsheet/pkg/sheet"
	"tableflip.dev/gridsheet/pkg/source"
	"tableflip.dev/gridsheet/pkg/tui/events"
)

func newApp(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Sheet == nil {
		opts.Sheet = sheet.FromRecords("grid", [][]string{{"a", "b"}, {"c", "d"}}, sheet.Options{})
	}
	opts.Config = config.Default()
	m := New(opts)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	return m
}

func update(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

// pump feeds every message produced by cmd back into the model.
func pump(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			pump(m, c)
		}
		return
	}
	if msg != nil {
		pump(m, update(m, msg))
	}
}

func TestViewFillsWindow(t *testing.T) {
	m := newApp(t, Options{})
	view, cursor := m.View()
	if lines := strings.Count(view, "\n") + 1; lines != 12 {
		t.Fatalf("view has %d lines", lines)
	}
	if cursor != nil {
		t.Fatalf("cursor shown without an edit")
	}
	if !strings.Contains(view, "A1") {
		t.Fatalf("status line missing reference:\n%s", view)
	}
}

func TestSelectionUpdatesStatus(t *testing.T) {
	m := newApp(t, Options{})
	pump(m, update(m, tea.KeyPressMsg{Code: tea.KeyDown}))
	if m.status.ref != "A2" || m.status.value != "c" || m.status.extent != "1×1" {
		t.Fatalf("status = %+v", m.status)
	}
}

func TestQuit(t *testing.T) {
	m := newApp(t, Options{})
	cmd := update(m, tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatalf("ctrl+q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+q did not quit")
	}
}

func TestHelpCapturesKeys(t *testing.T) {
	m := newApp(t, Options{})
	update(m, tea.KeyPressMsg{Code: tea.KeyF1})
	if !m.helpOpen {
		t.Fatalf("help not open")
	}
	pump(m, update(m, tea.KeyPressMsg{Code: tea.KeyDown}))
	if got := m.Table().DataSet().Selected().From.Row; got != 0 {
		t.Fatalf("grid moved to row %d behind the help overlay", got)
	}
	view, _ := m.View()
	if !strings.Contains(view, "gridsheet keys") {
		t.Fatalf("help missing title:\n%s", view)
	}
	update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.helpOpen || !m.Table().Focused() {
		t.Fatalf("escape did not close help")
	}
}

func TestEventLogToggle(t *testing.T) {
	m := newApp(t, Options{})
	update(m, tea.KeyPressMsg{Code: tea.KeyF12})
	update(m, events.StatusMsg{Component: "grid", Text: "hello"})
	if len(m.log.Entries()) == 0 {
		t.Fatalf("event log recorded nothing")
	}
	view, _ := m.View()
	if !strings.Contains(view, "Events") {
		t.Fatalf("event log not shown:\n%s", view)
	}
}

func TestSourceChangeReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.tsv")
	if err := os.WriteFile(path, []byte("x\ty\tz\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ch := make(chan source.Event, 1)
	m := newApp(t, Options{Path: path, Changes: ch})

	cmd := update(m, events.SourceChangedMsg{Path: path})
	if cmd == nil {
		t.Fatalf("reload returned no command")
	}
	ds := m.Table().DataSet()
	if ds.Columns() != 3 || ds.Cell(0, 2) != "z" || ds.Rows() != 2 {
		t.Fatalf("after reload cols=%d rows=%d", ds.Columns(), ds.Rows())
	}
	if !strings.Contains(m.status.message, "reloaded") || m.status.isErr {
		t.Fatalf("status = %+v", m.status)
	}
}

func TestSourceErrorKeepsGrid(t *testing.T) {
	m := newApp(t, Options{Path: filepath.Join(t.TempDir(), "missing.tsv")})
	update(m, events.SourceChangedMsg{Path: "missing.tsv"})
	if !m.status.isErr {
		t.Fatalf("missing file not reported")
	}
	if got := m.Table().DataSet().Cell(0, 0); got != "a" {
		t.Fatalf("grid replaced: %q", got)
	}

	update(m, events.SourceChangedMsg{Path: "x", Err: errors.New("boom")})
	if !strings.Contains(m.status.message, "boom") {
		t.Fatalf("status = %+v", m.status)
	}
}

func TestWaitForChange(t *testing.T) {
	if waitForChange(nil) != nil {
		t.Fatalf("nil channel should not wait")
	}
	ch := make(chan source.Event, 1)
	ch <- source.Event{Path: "p"}
	msg, ok := waitForChange(ch)().(events.SourceChangedMsg)
	if !ok || msg.Path != "p" {
		t.Fatalf("msg = %+v", msg)
	}
	close(ch)
	if msg := waitForChange(ch)(); msg != nil {
		t.Fatalf("closed channel produced %v", msg)
	}
}

type emptyClipboard struct{}

func (emptyClipboard) ReadText(context.Context) (string, error) { return "", clipboard.ErrEmpty }

func (emptyClipboard) WriteText(context.Context, string) error { return clipboard.ErrUnavailable }

func TestClipboardFailureShownOnStatus(t *testing.T) {
	m := newApp(t, Options{Clipboard: emptyClipboard{}})
	pump(m, update(m, tea.KeyPressMsg{Code: tea.KeyDown}))
	pump(m, update(m, tea.KeyPressMsg{Code: 'v', Mod: tea.ModCtrl}))

	if !m.status.isErr || !strings.Contains(m.status.message, "clipboard read") {
		t.Fatalf("status = %+v", m.status)
	}
	ds := m.Table().DataSet()
	if ds.Rows() != 3 || ds.Cell(1, 0) != "c" || ds.Selected().From.Row != 1 {
		t.Fatalf("grid changed: rows=%d A2=%q sel=%s", ds.Rows(), ds.Cell(1, 0), ds.Selected())
	}
	view, _ := m.View()
	if !strings.Contains(view, "clipboard") {
		t.Fatalf("error missing from view:\n%s", view)
	}
}

func TestHelpCommitsOpenEdit(t *testing.T) {
	m := newApp(t, Options{})
	update(m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	if !m.Table().Editing() {
		t.Fatalf("typing did not start an edit")
	}
	pump(m, update(m, tea.KeyPressMsg{Code: tea.KeyF1}))
	if m.Table().Editing() {
		t.Fatalf("edit still open behind help")
	}
	if got := m.Table().DataSet().Cell(0, 0); got != "x" {
		t.Fatalf("A1 = %q", got)
	}
	if m.status.value != "x" {
		t.Fatalf("status not refreshed: %+v", m.status)
	}
}
