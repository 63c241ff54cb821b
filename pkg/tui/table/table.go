// Package table is the grid controller: it owns a data set, a drawing
// surface, two scrollbars and an edit box, maps terminal input to data set
// operations and repaints the visible window of the sheet.
package table

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/gridsheet/pkg/clipboard"
	"tableflip.dev/gridsheet/pkg/dataset"
	"tableflip.dev/gridsheet/pkg/selection"
	"tableflip.dev/gridsheet/pkg/tui/editbox"
	"tableflip.dev/gridsheet/pkg/tui/events"
	"tableflip.dev/gridsheet/pkg/tui/scroll"
	"tableflip.dev/gridsheet/pkg/tui/surface"
	"tableflip.dev/gridsheet/pkg/tui/theme"
	"tableflip.dev/gridsheet/pkg/tui/ui"
)

// Options configure a table.
type Options struct {
	ID           events.ComponentID
	HeaderHeight int
	WheelStep    int
	Throttle     time.Duration
	DoubleClick  time.Duration
	Clipboard    clipboard.Clipboard
	Theme        *theme.Theme
}

func (o Options) withDefaults() Options {
	if o.ID == "" {
		o.ID = "table"
	}
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = 1
	}
	if o.WheelStep <= 0 {
		o.WheelStep = 3
	}
	if o.Throttle < 0 {
		o.Throttle = 0
	}
	if o.DoubleClick <= 0 {
		o.DoubleClick = 400 * time.Millisecond
	}
	if o.Clipboard == nil {
		o.Clipboard = &clipboard.Memory{}
	}
	if o.Theme == nil {
		th := theme.Default()
		o.Theme = &th
	}
	return o
}

type lineNoMemo struct {
	rows  int
	width int
}

type click struct {
	at  time.Time
	pos selection.Position
	ok  bool
}

// wheelFlushMsg closes a wheel throttle window.
type wheelFlushMsg struct {
	id events.ComponentID
}

// Model is the grid component.
type Model struct {
	id   events.ComponentID
	opts Options
	th   theme.Theme

	ds     *dataset.DataSet
	surf   *surface.Surface
	vbar   *scroll.Bar
	hbar   *scroll.Bar
	editor *editbox.Model
	cb     clipboard.Clipboard

	unsubscribe []func()

	width, height int
	focused       bool

	lineNo *lineNoMemo

	dragging  bool
	lastClick click
	editAt    selection.Position

	wheelOpen bool
	wheelRows int
	wheelCols int

	dirty   bool
	renders int
	view    string

	now      func() time.Time
	debugLog io.Writer
}

var _ ui.Component = (*Model)(nil)

// New constructs a table over ds.
func New(ds *dataset.DataSet, opts Options) *Model {
	opts = opts.withDefaults()
	m := &Model{
		id:     opts.ID,
		opts:   opts,
		th:     *opts.Theme,
		ds:     ds,
		surf:   surface.New(0, 0),
		vbar:   scroll.New(scroll.Vertical),
		hbar:   scroll.New(scroll.Horizontal),
		editor: editbox.New(opts.ID+".edit", opts.Theme.Editor),
		cb:     opts.Clipboard,
		now:    time.Now,
		dirty:  true,
	}
	for _, b := range []*scroll.Bar{m.vbar, m.hbar} {
		b.Track = m.th.Scroll.Track
		b.Thumb = m.th.Scroll.Thumb
	}
	m.unsubscribe = append(m.unsubscribe,
		m.vbar.OnPositionChanged(m.onVerticalScroll),
		m.hbar.OnPositionChanged(m.onHorizontalScroll),
	)
	return m
}

// ID exposes the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// DataSet exposes the model the table drives.
func (m *Model) DataSet() *dataset.DataSet { return m.ds }

// SetDebugWriter configures an optional writer for diagnostic output.
func (m *Model) SetDebugWriter(w io.Writer) {
	m.debugLog = w
	m.editor.SetDebugWriter(w)
	m.ds.SetDebugWriter(w)
}

func (m *Model) logf(format string, args ...any) {
	if m.debugLog == nil {
		return
	}
	fmt.Fprintf(m.debugLog, "%s table."+format+"\n",
		append([]any{time.Now().Format("2006-01-02T15:04:05")}, args...)...)
}

// Close removes the scrollbar listeners. The table must not be used after.
func (m *Model) Close() {
	for _, fn := range m.unsubscribe {
		fn()
	}
	m.unsubscribe = nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Focus gives the grid keyboard input.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	m.dirty = true
	return nil
}

// Blur removes keyboard input and commits any open edit. The returned
// command reports the commit.
func (m *Model) Blur() tea.Cmd {
	m.focused = false
	m.dirty = true
	return m.commitEdit()
}

// commitEdit closes an open edit session and applies its result right away,
// for focus loss where no message round trip is possible.
func (m *Model) commitEdit() tea.Cmd {
	cmd := m.editor.Commit()
	if cmd == nil {
		return nil
	}
	return m.update(cmd())
}

// Focused reports whether the grid receives keys.
func (m *Model) Focused() bool { return m.focused }

// Editing reports whether the edit box is open.
func (m *Model) Editing() bool { return m.editor.IsOpen() }

// SetSize resizes the container. The surface is the container minus one
// column and one row for the scrollbars.
func (m *Model) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width, m.height = max(width, 0), max(height, 0)
	m.syncScrollbars()
	m.dirty = true
	m.logf("SetSize width=%d height=%d", m.width, m.height)
}

// Reload swaps in new rows, keeping the header. Selection and viewport reset.
func (m *Model) Reload(data []dataset.Row) tea.Cmd {
	if m.editor.IsOpen() {
		m.editor.Cancel()
	}
	m.ds.SetData(data)
	m.lastClick = click{}
	m.vbar.SetPosition(0)
	m.hbar.SetPosition(0)
	m.syncScrollbars()
	m.dirty = true
	return tea.Batch(
		events.DataChangedCmd(m.id, events.ChangeReload, m.ds.Rows()),
		m.selectionCmd(),
	)
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	cmd := m.update(msg)
	if m.dirty {
		m.render()
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return nil

	case wheelFlushMsg:
		if msg.id != m.id {
			return nil
		}
		return m.flushWheel()

	case events.EditCommitMsg:
		if msg.Component != m.editor.ID() {
			return nil
		}
		m.dirty = true
		if !msg.Changed {
			return nil
		}
		m.ds.SetCellData(m.editAt.Row, m.editAt.Col, msg.Text)
		m.syncScrollbars()
		m.logf("commit at=%v len=%d", m.editAt, len(msg.Text))
		return tea.Batch(
			events.DataChangedCmd(m.id, events.ChangeCells, m.ds.Rows()),
			m.selectionCmd(),
		)

	case events.EditCancelMsg:
		if msg.Component == m.editor.ID() {
			m.dirty = true
		}
		return nil

	case events.ClipboardReadMsg:
		if msg.Component != m.id {
			return nil
		}
		return m.paste(msg.Mode, msg.Text)

	case events.ClipboardErrorMsg:
		if msg.Component == m.id {
			m.logf("clipboard %s failed: %v", msg.Op, msg.Err)
		}
		return nil

	case tea.PasteMsg:
		if !m.focused {
			return nil
		}
		if m.editor.IsOpen() {
			m.dirty = true
			return m.editor.Update(msg)
		}
		return m.paste(events.PasteCells, string(msg))

	case tea.KeyPressMsg:
		if !m.focused {
			return nil
		}
		if m.editor.IsOpen() {
			m.dirty = true
			return m.editor.Update(msg)
		}
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.handleClick(msg.Mouse())
	case tea.MouseMotionMsg:
		return m.handleMotion(msg.Mouse())
	case tea.MouseReleaseMsg:
		m.dragging = false
		return nil
	case tea.MouseWheelMsg:
		return m.handleWheel(msg.Mouse())
	}

	if m.editor.IsOpen() {
		return m.editor.Update(msg)
	}
	return nil
}

func (m *Model) selectionCmd() tea.Cmd {
	r := m.ds.Selected()
	anchor := r.Anchor()
	return events.SelectionChangedCmd(m.id, r, anchor, m.ds.Cell(anchor.Row, anchor.Col))
}

func (m *Model) clipboardContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}
