// Package eventlog renders a passive, newest-first log of the messages
// flowing through the program. It is toggled from the app for debugging.
package eventlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/gridsheet/pkg/tui/events"
)

// Level indicates the severity of a logged event.
type Level int

const (
	// LevelInfo is the default severity.
	LevelInfo Level = iota
	// LevelError highlights failures.
	LevelError
)

// Entry captures a rendered event.
type Entry struct {
	Timestamp time.Time
	Source    string
	Summary   string
	Detail    string
	Level     Level
}

// Styles controls the log's presentation.
type Styles struct {
	Frame     lipgloss.Style
	Header    lipgloss.Style
	Info      lipgloss.Style
	Error     lipgloss.Style
	Timestamp lipgloss.Style
	Source    lipgloss.Style
}

// DefaultStyles returns the stock styling.
func DefaultStyles() Styles {
	return Styles{
		Frame:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Model renders a streaming event log.
type Model struct {
	viewport viewport.Model
	entries  []Entry

	maxEntries int
	width      int
	height     int

	styles Styles
}

// New constructs a log capped at maxEntries.
func New(maxEntries int) *Model {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &Model{
		viewport:   viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		maxEntries: maxEntries,
		styles:     DefaultStyles(),
	}
}

// SetSize resizes the viewport inside the border and header.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 4), max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width, m.height = width, height
	m.viewport.SetWidth(max(1, width-2))
	m.viewport.SetHeight(max(1, height-3))
	m.refresh()
}

// View renders the bordered viewport.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.styles.Header.Render("Events")
	body := lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
	return m.styles.Frame.Width(m.width).Height(m.height).Render(body)
}

// Entries returns the logged entries, newest first.
func (m *Model) Entries() []Entry { return m.entries }

// Append inserts a new entry at the top of the log.
func (m *Model) Append(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Source == "" {
		entry.Source = "tea"
	}
	if entry.Summary == "" {
		entry.Summary = "event"
	}
	m.entries = append([]Entry{entry}, m.entries...)
	if len(m.entries) > m.maxEntries {
		m.entries = m.entries[:m.maxEntries]
	}
	m.refresh()
	m.viewport.SetYOffset(0)
}

// Note records msg when it is worth showing. Key and mouse noise is skipped
// unless it carries a description.
func (m *Model) Note(msg tea.Msg) {
	entry := Entry{Summary: strings.TrimPrefix(fmt.Sprintf("%T", msg), "events.")}
	switch v := msg.(type) {
	case events.ClipboardErrorMsg:
		entry.Source, entry.Detail, entry.Level = string(v.Component), v.Describe(), LevelError
	case events.SourceChangedMsg:
		entry.Source, entry.Detail = "source", v.Describe()
		if v.Err != nil {
			entry.Level = LevelError
		}
	case events.Describer:
		entry.Detail = v.Describe()
		entry.Source = componentOf(msg)
	case tea.KeyPressMsg:
		entry.Detail = fmt.Sprintf("key=%q", v.String())
	case tea.WindowSizeMsg:
		entry.Detail = fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	default:
		return
	}
	m.Append(entry)
}

func componentOf(msg tea.Msg) string {
	switch v := msg.(type) {
	case events.SelectionChangedMsg:
		return string(v.Component)
	case events.DataChangedMsg:
		return string(v.Component)
	case events.EditCommitMsg:
		return string(v.Component)
	case events.EditCancelMsg:
		return string(v.Component)
	case events.ClipboardReadMsg:
		return string(v.Component)
	case events.ClipboardWrittenMsg:
		return string(v.Component)
	case events.StatusMsg:
		return string(v.Component)
	}
	return ""
}

func (m *Model) refresh() {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, m.renderEntry(e))
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = m.styles.Timestamp.Render("No events yet")
	}
	m.viewport.SetContent(content)
}

func (m *Model) renderEntry(e Entry) string {
	ts := m.styles.Timestamp.Render(e.Timestamp.Format("15:04:05.000"))
	source := m.styles.Source.Render(fmt.Sprintf("[%s]", e.Source))
	msg := e.Summary
	if e.Detail != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Detail)
	}
	if e.Level == LevelError {
		msg = m.styles.Error.Render(msg)
	} else {
		msg = m.styles.Info.Render(msg)
	}
	return fmt.Sprintf("%s %s %s", ts, source, msg)
}
