package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/gridsheet/pkg/selection"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// ChangeType enumerates the structural edits a grid can report.
type ChangeType string

const (
	// ChangeCells indicates cell values were written.
	ChangeCells ChangeType = "cells"
	// ChangeInsert indicates rows were inserted.
	ChangeInsert ChangeType = "insert"
	// ChangeDelete indicates rows were removed.
	ChangeDelete ChangeType = "delete"
	// ChangeReload indicates the whole data set was replaced.
	ChangeReload ChangeType = "reload"
)

// SelectionChangedMsg is emitted whenever the active selection moves.
type SelectionChangedMsg struct {
	Component ComponentID
	Range     selection.Range
	Anchor    selection.Position
	Value     string
}

// Describe renders the selection for logs.
func (m SelectionChangedMsg) Describe() string {
	return fmt.Sprintf(`component:%q range:%q anchor:%s`, m.Component, m.Range.String(), m.Anchor)
}

// SelectionChangedCmd wraps SelectionChangedMsg in a tea.Cmd.
func SelectionChangedCmd(component ComponentID, r selection.Range, anchor selection.Position, value string) tea.Cmd {
	return func() tea.Msg {
		return SelectionChangedMsg{
			Component: component,
			Range:     r,
			Anchor:    anchor,
			Value:     value,
		}
	}
}

// DataChangedMsg announces a mutation of the grid contents.
type DataChangedMsg struct {
	Component ComponentID
	Action    ChangeType
	Rows      int
}

// Describe implements the logging helper.
func (m DataChangedMsg) Describe() string {
	return fmt.Sprintf(`component:%q action:%q rows:%d`, m.Component, m.Action, m.Rows)
}

// DataChangedCmd wraps DataChangedMsg in a tea.Cmd.
func DataChangedCmd(component ComponentID, action ChangeType, rows int) tea.Cmd {
	return func() tea.Msg {
		return DataChangedMsg{Component: component, Action: action, Rows: rows}
	}
}

// EditCommitMsg is emitted when an edit session ends with Enter or focus loss.
type EditCommitMsg struct {
	Component ComponentID
	Text      string
	Changed   bool
}

// Describe implements the logging helper.
func (m EditCommitMsg) Describe() string {
	return fmt.Sprintf(`component:%q changed:%t len:%d`, m.Component, m.Changed, len(m.Text))
}

// EditCommitCmd wraps EditCommitMsg in a tea.Cmd.
func EditCommitCmd(component ComponentID, text string, changed bool) tea.Cmd {
	return func() tea.Msg {
		return EditCommitMsg{Component: component, Text: text, Changed: changed}
	}
}

// EditCancelMsg is emitted when an edit session is discarded with Escape.
type EditCancelMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m EditCancelMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// EditCancelCmd wraps EditCancelMsg in a tea.Cmd.
func EditCancelCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return EditCancelMsg{Component: component}
	}
}

// PasteMode selects how clipboard text is applied to the grid.
type PasteMode string

const (
	// PasteCells writes over the selection.
	PasteCells PasteMode = "cells"
	// PasteInsert inserts new rows above a single selected row.
	PasteInsert PasteMode = "insert"
)

// ClipboardReadMsg carries text read from the clipboard.
type ClipboardReadMsg struct {
	Component ComponentID
	Mode      PasteMode
	Text      string
}

// Describe implements the logging helper.
func (m ClipboardReadMsg) Describe() string {
	return fmt.Sprintf(`component:%q mode:%q len:%d`, m.Component, m.Mode, len(m.Text))
}

// ClipboardWrittenMsg reports a completed copy.
type ClipboardWrittenMsg struct {
	Component ComponentID
	Rows      int
	Cols      int
}

// Describe implements the logging helper.
func (m ClipboardWrittenMsg) Describe() string {
	return fmt.Sprintf(`component:%q rows:%d cols:%d`, m.Component, m.Rows, m.Cols)
}

// ClipboardErrorMsg reports a failed clipboard read or write. The grid is
// left untouched.
type ClipboardErrorMsg struct {
	Component ComponentID
	Op        string
	Err       error
}

// Describe implements the logging helper.
func (m ClipboardErrorMsg) Describe() string {
	return fmt.Sprintf(`component:%q op:%q err:%q`, m.Component, m.Op, m.Err)
}

// Error satisfies the error interface so the message can be surfaced as-is.
func (m ClipboardErrorMsg) Error() string {
	return fmt.Sprintf("clipboard %s: %v", m.Op, m.Err)
}

// StatusMsg asks the app to show a transient status line message.
type StatusMsg struct {
	Component ComponentID
	Text      string
}

// Describe implements the logging helper.
func (m StatusMsg) Describe() string {
	return fmt.Sprintf(`component:%q text:%q`, m.Component, m.Text)
}

// StatusCmd wraps StatusMsg in a tea.Cmd.
func StatusCmd(component ComponentID, text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Component: component, Text: text}
	}
}

// SourceChangedMsg reports that the file backing the grid changed on disk.
type SourceChangedMsg struct {
	Path string
	Err  error
}

// Describe implements the logging helper.
func (m SourceChangedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`path:%q err:%q`, m.Path, m.Err)
	}
	return fmt.Sprintf(`path:%q`, m.Path)
}

// Describer is implemented by every message in this package.
type Describer interface {
	Describe() string
}
