package table

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/gridsheet/pkg/dataset"
	"tableflip.dev/gridsheet/pkg/selection"
	"tableflip.dev/gridsheet/pkg/tsv"
	"tableflip.dev/gridsheet/pkg/tui/events"
	"tableflip.dev/gridsheet/pkg/tui/surface"
)

func arrowDirection(code rune) (dataset.Direction, bool) {
	switch code {
	case tea.KeyUp:
		return dataset.Up, true
	case tea.KeyDown:
		return dataset.Down, true
	case tea.KeyLeft:
		return dataset.Left, true
	case tea.KeyRight:
		return dataset.Right, true
	}
	return 0, false
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if dir, ok := arrowDirection(msg.Code); ok && msg.Mod&^(tea.ModShift|tea.ModCtrl) == 0 {
		before := m.ds.Selected()
		p := m.ds.MoveTo(dir, msg.Mod&tea.ModShift != 0, msg.Mod&tea.ModCtrl != 0)
		after := m.ds.Selected()
		if after == before {
			return nil
		}
		// Bands only scroll along their own axis.
		switch after.Kind {
		case selection.KindRow:
			m.scrollToRow(p.Row)
		case selection.KindColumn:
			m.scrollToColumn(p.Col)
		case selection.KindCell:
			m.ensureVisible(p)
		}
		m.dirty = true
		return m.selectionCmd()
	}

	switch msg.String() {
	case "f2":
		return m.openEditor("", false)
	case "delete":
		m.ds.FillToSelected("")
		return m.changed(events.ChangeCells)
	case "ctrl+d":
		m.ds.FillFromAnchor()
		return m.changed(events.ChangeCells)
	case "ctrl+a":
		m.ds.SelectAll()
		m.dirty = true
		return m.selectionCmd()
	case "ctrl+c":
		return m.copySelection()
	case "ctrl+v":
		return m.readClipboard(events.PasteCells)
	case "alt+v":
		return m.readClipboard(events.PasteInsert)
	case "alt+-":
		if m.ds.Selected().Kind != selection.KindRow {
			return events.StatusCmd(m.id, "select rows to delete")
		}
		m.ds.DeleteSelectedRows()
		m.syncScrollbars()
		return m.changed(events.ChangeDelete)
	}

	if msg.Text != "" && msg.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
		return m.openEditor(msg.Text, true)
	}
	return nil
}

// changed marks the grid for repaint and reports the edit and selection.
func (m *Model) changed(action events.ChangeType) tea.Cmd {
	m.dirty = true
	return tea.Batch(
		events.DataChangedCmd(m.id, action, m.ds.Rows()),
		m.selectionCmd(),
	)
}

// openEditor starts an edit session on the anchor of a single-cell
// selection. With replace set the typed text replaces the cell content.
func (m *Model) openEditor(text string, replace bool) tea.Cmd {
	r := m.ds.Selected()
	if !r.IsSingleCell() || !m.ds.InBounds(r.From) {
		return nil
	}
	m.editAt = r.From
	m.ensureVisible(r.From)

	data := m.dataRect()
	rect := m.cellRect(r.From)
	rect.W = max(rect.W-1, 1)
	rect = rect.Intersect(data)
	if rect.Empty() {
		return nil
	}
	cmd := m.editor.Open(m.ds.Cell(r.From.Row, r.From.Col), rect, data)
	if replace {
		m.editor.Replace(text)
	}
	m.dirty = true
	m.logf("edit at=%v replace=%t", r.From, replace)
	return cmd
}

func (m *Model) copySelection() tea.Cmd {
	text := m.ds.SelectedText()
	span := m.ds.SelectedSpan()
	cb, id := m.cb, m.id
	return func() tea.Msg {
		ctx, cancel := m.clipboardContext()
		defer cancel()
		if err := cb.WriteText(ctx, text); err != nil {
			return events.ClipboardErrorMsg{Component: id, Op: "write", Err: err}
		}
		return events.ClipboardWrittenMsg{Component: id, Rows: span.Rows(), Cols: span.Cols()}
	}
}

func (m *Model) readClipboard(mode events.PasteMode) tea.Cmd {
	cb, id := m.cb, m.id
	return func() tea.Msg {
		ctx, cancel := m.clipboardContext()
		defer cancel()
		text, err := cb.ReadText(ctx)
		if err != nil {
			return events.ClipboardErrorMsg{Component: id, Op: "read", Err: err}
		}
		return events.ClipboardReadMsg{Component: id, Mode: mode, Text: text}
	}
}

// paste applies decoded clipboard text. A single value fills the whole
// selection; a block is written from the selection's top-left cell.
func (m *Model) paste(mode events.PasteMode, text string) tea.Cmd {
	rows := tsv.Decode(text)
	if len(rows) == 0 {
		return nil
	}
	action := events.ChangeCells
	switch {
	case mode == events.PasteInsert:
		if !m.ds.Selected().IsSingleRow() {
			return events.StatusCmd(m.id, "select a single row to insert above")
		}
		m.ds.InsertAndPaste(rows)
		action = events.ChangeInsert
	case len(rows) == 1 && len(rows[0]) == 1:
		m.ds.FillToSelected(rows[0][0])
	default:
		m.ds.PasteToSelected(rows)
	}
	m.syncScrollbars()
	m.logf("paste mode=%s rows=%d", mode, len(rows))
	return m.changed(action)
}

func (m *Model) handleClick(mouse tea.Mouse) tea.Cmd {
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	var cmds []tea.Cmd
	if m.editor.IsOpen() {
		if m.editor.Rect().Contains(surface.Point{X: mouse.X, Y: mouse.Y}) {
			return nil
		}
		cmds = append(cmds, m.commitEdit())
	}
	m.focused = true
	m.dirty = true

	sw, sh := m.surfaceSize()
	shift := mouse.Mod&tea.ModShift != 0
	cur := m.ds.Selected()

	switch m.regionAt(mouse.X, mouse.Y) {
	case regionVBar:
		m.vbar.SetPosition(m.vbar.PositionAt(mouse.Y, sh))
		return tea.Batch(cmds...)
	case regionHBar:
		m.hbar.SetPosition(m.hbar.PositionAt(mouse.X, sw))
		return tea.Batch(cmds...)
	case regionCorner:
		m.ds.SelectAll()
	case regionHeader:
		col, ok := m.columnAt(mouse.X)
		if !ok {
			return tea.Batch(cmds...)
		}
		if shift && cur.Kind == selection.KindColumn {
			m.ds.Select(cur.Extend(selection.Position{Col: col}))
		} else {
			m.ds.Select(selection.Columns(col, col, m.ds.LastRow()))
		}
	case regionLineNo:
		row, ok := m.rowAt(mouse.Y)
		if !ok {
			return tea.Batch(cmds...)
		}
		if shift && cur.Kind == selection.KindRow {
			m.ds.Select(cur.Extend(selection.Position{Row: row}))
		} else {
			m.ds.Select(selection.Rows(row, row, m.ds.LastColumn()))
		}
	case regionData:
		p, ok := m.getIndex(mouse.X, mouse.Y)
		if !ok {
			return tea.Batch(cmds...)
		}
		if shift {
			m.ds.Select(cur.Extend(p))
			break
		}
		m.ds.Select(selection.Cell(p, p))
		now := m.now()
		double := m.lastClick.ok && m.lastClick.pos == p && now.Sub(m.lastClick.at) <= m.opts.DoubleClick
		m.lastClick = click{at: now, pos: p, ok: !double}
		if double {
			cmds = append(cmds, m.selectionCmd(), m.openEditor("", false))
			return tea.Batch(cmds...)
		}
	default:
		return tea.Batch(cmds...)
	}
	m.dragging = true
	cmds = append(cmds, m.selectionCmd())
	return tea.Batch(cmds...)
}

// handleMotion extends the selection while the left button is held. The
// selection kind chosen on press is kept for the whole drag.
func (m *Model) handleMotion(mouse tea.Mouse) tea.Cmd {
	if !m.dragging {
		return nil
	}
	cur := m.ds.Selected()
	var p selection.Position
	switch cur.Kind {
	case selection.KindFull:
		return nil
	case selection.KindColumn:
		col, ok := m.columnAt(mouse.X)
		if !ok || mouse.X < m.lineNoWidth() {
			return nil
		}
		p = selection.Position{Col: col}
	case selection.KindRow:
		row, ok := m.rowAt(mouse.Y)
		if !ok || mouse.Y < m.headerHeight() {
			return nil
		}
		p = selection.Position{Row: row}
	default:
		var ok bool
		if p, ok = m.getIndex(mouse.X, mouse.Y); !ok {
			return nil
		}
	}
	next := cur.Extend(p)
	if next == cur {
		return nil
	}
	m.ds.Select(next)
	m.dirty = true
	return m.selectionCmd()
}

func (m *Model) handleWheel(mouse tea.Mouse) tea.Cmd {
	step := m.opts.WheelStep
	dr, dc := 0, 0
	switch mouse.Button {
	case tea.MouseWheelUp:
		dr = -step
	case tea.MouseWheelDown:
		dr = step
	case tea.MouseWheelLeft:
		dc = -1
	case tea.MouseWheelRight:
		dc = 1
	default:
		return nil
	}
	if mouse.Mod&tea.ModShift != 0 && dr != 0 {
		dr, dc = 0, dr/step
	}

	if m.opts.Throttle == 0 {
		m.applyWheel(dr, dc)
		return nil
	}
	if m.wheelOpen {
		m.wheelRows += dr
		m.wheelCols += dc
		return nil
	}
	m.wheelOpen = true
	m.applyWheel(dr, dc)
	id := m.id
	return tea.Tick(m.opts.Throttle, func(time.Time) tea.Msg {
		return wheelFlushMsg{id: id}
	})
}

// flushWheel closes the throttle window and applies what accumulated in it.
func (m *Model) flushWheel() tea.Cmd {
	m.wheelOpen = false
	dr, dc := m.wheelRows, m.wheelCols
	m.wheelRows, m.wheelCols = 0, 0
	m.applyWheel(dr, dc)
	return nil
}

// applyWheel moves the first visible row and column. Axes whose content
// already fits are left alone.
func (m *Model) applyWheel(dr, dc int) {
	first := m.ds.ViewportOrigin()
	if dr != 0 && m.vbar.Scrollable() {
		row := min(max(first.Row+dr, 0), max(m.ds.LastRow(), 0))
		m.vbar.SetPosition(m.ds.Heights().Offset(row))
	}
	if dc != 0 && m.hbar.Scrollable() {
		col := min(max(first.Col+dc, 0), max(m.ds.LastColumn(), 0))
		m.hbar.SetPosition(m.ds.Widths().Offset(col))
	}
}
