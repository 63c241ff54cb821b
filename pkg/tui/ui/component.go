package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component defines the contract for widgets hosted by the root program.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Focusable components receive keyboard input only while focused.
type Focusable interface {
	Focus() tea.Cmd
	Blur() tea.Cmd
	Focused() bool
}

// CursorProvider exposes a real terminal cursor position, relative to the
// component's own view, or nil to hide it.
type CursorProvider interface {
	Cursor() *tea.Cursor
}
