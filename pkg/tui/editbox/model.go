// Package editbox implements the in-place cell editor: a single-line text
// input that may grow extra lines with Alt+Enter and ends in either a commit
// or a cancellation.
package editbox

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/gridsheet/pkg/tui/events"
	"tableflip.dev/gridsheet/pkg/tui/surface"
	"tableflip.dev/gridsheet/pkg/tui/theme"
)

// Model is an edit session. The zero value is not usable; call New.
type Model struct {
	id    events.ComponentID
	input textinput.Model
	style theme.EditorTheme

	// lines holds the finished lines above the one being typed.
	lines   []string
	initial string
	open    bool

	rect   surface.Rect
	bounds surface.Rect

	debugLog io.Writer
}

// New constructs a closed editor.
func New(id events.ComponentID, th theme.EditorTheme) *Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = ""
	ti.VirtualCursor = false
	return &Model{id: id, input: ti, style: th}
}

// ID is the component id carried by commit and cancel messages.
func (m *Model) ID() events.ComponentID { return m.id }

// SetDebugWriter configures an optional writer for diagnostic output.
func (m *Model) SetDebugWriter(w io.Writer) {
	m.debugLog = w
}

func (m *Model) logf(format string, args ...any) {
	if m.debugLog == nil {
		return
	}
	fmt.Fprintf(m.debugLog, "%s editbox."+format+"\n",
		append([]any{time.Now().Format("2006-01-02T15:04:05")}, args...)...)
}

// Open starts a session over rect with the cell's current content. bounds
// limits how far the box may grow.
func (m *Model) Open(initial string, rect, bounds surface.Rect) tea.Cmd {
	m.open = true
	m.initial = initial
	m.rect = rect
	m.bounds = bounds
	m.setText(initial)
	m.logf("Open rect=%+v len=%d", rect, len(initial))
	return m.input.Focus()
}

// Replace swaps the buffer contents, used when typing starts an edit.
func (m *Model) Replace(text string) {
	m.setText(text)
}

func (m *Model) setText(text string) {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	m.lines = append(m.lines[:0], parts[:len(parts)-1]...)
	m.input.SetValue(parts[len(parts)-1])
	m.input.CursorEnd()
	m.resize()
}

// IsOpen reports whether a session is active.
func (m *Model) IsOpen() bool { return m.open }

// Value is the buffer with embedded newlines.
func (m *Model) Value() string {
	if len(m.lines) == 0 {
		return m.input.Value()
	}
	return strings.Join(append(append([]string(nil), m.lines...), m.input.Value()), "\n")
}

// Commit ends the session and reports the buffer. It is a no-op when closed.
func (m *Model) Commit() tea.Cmd {
	if !m.open {
		return nil
	}
	text := m.Value()
	changed := text != m.initial
	m.close()
	m.logf("Commit changed=%t", changed)
	return events.EditCommitCmd(m.id, text, changed)
}

// Cancel ends the session without reporting a value.
func (m *Model) Cancel() tea.Cmd {
	if !m.open {
		return nil
	}
	m.close()
	m.logf("Cancel")
	return events.EditCancelCmd(m.id)
}

func (m *Model) close() {
	m.open = false
	m.lines = m.lines[:0]
	m.input.SetValue("")
	m.input.Blur()
}

// Update routes key and paste input while the session is open.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.open {
		return nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			return m.Commit()
		case "esc":
			return m.Cancel()
		case "alt+enter":
			m.lines = append(m.lines, m.input.Value())
			m.input.SetValue("")
			m.resize()
			return nil
		case "backspace":
			if m.input.Value() == "" && len(m.lines) > 0 {
				last := m.lines[len(m.lines)-1]
				m.lines = m.lines[:len(m.lines)-1]
				m.input.SetValue(last)
				m.input.CursorEnd()
				m.resize()
				return nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.resize()
	return cmd
}

// Rect is where the box currently sits, grown to fit its text and clipped
// to the bounds.
func (m *Model) Rect() surface.Rect {
	r := m.rect
	want := surface.MeasureText(m.input.Value()) + 1
	for _, l := range m.lines {
		want = max(want, surface.MeasureText(l)+1)
	}
	r.W = max(r.W, want)
	r.H = max(r.H, len(m.lines)+1)
	if !m.bounds.Empty() {
		r.W = min(r.W, m.bounds.X+m.bounds.W-r.X)
		r.H = min(r.H, m.bounds.Y+m.bounds.H-r.Y)
	}
	return r
}

func (m *Model) resize() {
	m.input.SetWidth(max(m.Rect().W-1, 1))
}

// View renders the box, one row per buffer line, and the cursor relative to
// the box's top-left corner.
func (m *Model) View() (string, *tea.Cursor) {
	if !m.open {
		return "", nil
	}
	r := m.Rect()
	line := m.style.Text.Width(r.W).MaxHeight(1)
	rows := make([]string, 0, len(m.lines)+1)
	for _, l := range m.lines {
		rows = append(rows, line.Render(l))
	}
	rows = append(rows, line.Render(m.input.View()))
	if len(rows) > r.H && r.H > 0 {
		rows = rows[len(rows)-r.H:]
	}

	var cursor *tea.Cursor
	if c := m.input.Cursor(); c != nil {
		clone := *c
		clone.Position.Y += len(rows) - 1
		cursor = &clone
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...), cursor
}
