package table

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/gridsheet/pkg/dataset"
	"tableflip.dev/gridsheet/pkg/selection"
	"tableflip.dev/gridsheet/pkg/tui/surface"
	"tableflip.dev/gridsheet/pkg/tui/ui/overlay"
)

// render repaints the surface and caches the composed view.
func (m *Model) render() {
	m.dirty = false
	m.renders++
	sw, sh := m.surfaceSize()
	if sw == 0 || sh == 0 {
		m.view = ""
		return
	}
	m.surf.Resize(sw, sh)
	m.surf.Clear(m.th.Grid.Cell)

	span := m.ds.SelectedSpan()
	m.paintHeader(span)
	m.paintLineNumbers(span)
	m.paintCells()
	m.paintGridlines()
	m.paintSelection(span)

	m.view = m.compose(sw, sh)
}

type visible struct {
	first, last int
}

// visibleColumns is the inclusive range of columns intersecting the data band.
func (m *Model) visibleColumns() (visible, bool) {
	data := m.dataRect()
	first := m.ds.ViewportOrigin().Col
	if data.W <= 0 || first > m.ds.LastColumn() {
		return visible{}, false
	}
	last := first
	for last < m.ds.LastColumn() && m.colX(last+1) < data.X+data.W {
		last++
	}
	return visible{first: first, last: last}, true
}

// visibleRows is the inclusive range of rows intersecting the data band.
func (m *Model) visibleRows() (visible, bool) {
	data := m.dataRect()
	first := m.ds.ViewportOrigin().Row
	if data.H <= 0 || first > m.ds.LastRow() {
		return visible{}, false
	}
	last := first
	for last < m.ds.LastRow() && m.rowY(last+1) < data.Y+data.H {
		last++
	}
	return visible{first: first, last: last}, true
}

func (m *Model) paintHeader(span selection.Span) {
	sw, _ := m.surfaceSize()
	hh := m.headerHeight()
	lw := m.lineNoWidth()
	m.surf.FillRect(surface.Rect{W: sw, H: hh}, m.th.Grid.Header)
	m.surf.FillRect(surface.Rect{W: lw, H: hh}, m.th.Grid.Corner)

	cols, ok := m.visibleColumns()
	if !ok {
		return
	}
	header := m.ds.Header()
	band := surface.Rect{X: lw, W: max(sw-lw, 0), H: hh}
	for col := cols.first; col <= cols.last; col++ {
		x := m.colX(col)
		w := m.ds.Widths().Size(col)
		pen := m.th.Grid.Header
		if span.From.Col <= col && col <= span.To.Col {
			pen = m.th.Grid.HeaderActive
		}
		clip := band.Intersect(surface.Rect{X: x, W: w - 1, H: hh})
		m.surf.FillRect(clip, pen)
		m.surf.FillText(header[col].Title, surface.Point{X: x + (w-1)/2, Y: (hh - 1) / 2}, surface.AlignCenter, pen, &clip)
	}
}

func (m *Model) paintLineNumbers(span selection.Span) {
	_, sh := m.surfaceSize()
	hh := m.headerHeight()
	lw := m.lineNoWidth()
	band := surface.Rect{Y: hh, W: lw, H: max(sh-hh, 0)}
	m.surf.FillRect(band, m.th.Grid.LineNo)

	rows, ok := m.visibleRows()
	if !ok {
		return
	}
	for row := rows.first; row <= rows.last; row++ {
		if m.ds.IsPlaceholder(row) {
			continue
		}
		y := m.rowY(row)
		pen := m.th.Grid.LineNo
		if span.From.Row <= row && row <= span.To.Row {
			pen = m.th.Grid.LineNoActive
			clip := band.Intersect(surface.Rect{Y: y, W: lw, H: m.ds.Heights().Size(row)})
			m.surf.FillRect(clip, pen)
		}
		m.surf.FillText(strconv.Itoa(row+1), surface.Point{X: lw - 1, Y: y}, surface.AlignRight, pen, &band)
	}
}

func (m *Model) paintCells() {
	rows, ok := m.visibleRows()
	if !ok {
		return
	}
	cols, ok := m.visibleColumns()
	if !ok {
		return
	}
	data := m.dataRect()
	header := m.ds.Header()
	for row := rows.first; row <= rows.last; row++ {
		pen := m.th.Grid.Cell
		if m.ds.IsPlaceholder(row) {
			pen = m.th.Grid.Placeholder
		}
		y := m.rowY(row)
		for col := cols.first; col <= cols.last; col++ {
			text := m.ds.Cell(row, col)
			if text == "" {
				continue
			}
			x := m.colX(col)
			w := m.ds.Widths().Size(col)
			clip := data.Intersect(surface.Rect{X: x, Y: y, W: w - 1, H: 1})
			at, align := textAnchor(x, w, header[col].Align)
			m.surf.FillText(text, surface.Point{X: at, Y: y}, align, pen, &clip)
		}
	}
}

// textAnchor positions a cell's text inside a column of width w whose last
// cell is the gridline.
func textAnchor(x, w int, align dataset.Align) (int, surface.Align) {
	switch align.Normalize() {
	case dataset.AlignLeft:
		return x, surface.AlignLeft
	case dataset.AlignRight:
		return x + w - 1, surface.AlignRight
	default:
		return x + (w-1)/2, surface.AlignCenter
	}
}

func (m *Model) paintGridlines() {
	data := m.dataRect()
	pen := m.th.Grid.Gridline
	bottom := data.Y + data.H - 1
	if rows, ok := m.visibleRows(); ok {
		last := m.rowY(rows.last) + m.ds.Heights().Size(rows.last) - 1
		bottom = min(bottom, last)
	}

	m.surf.Clip(data)
	defer m.surf.Unclip()

	if cols, ok := m.visibleColumns(); ok && bottom >= data.Y {
		for col := cols.first; col <= cols.last; col++ {
			x := m.colX(col) + m.ds.Widths().Size(col) - 1
			m.surf.Line(pen, surface.Point{X: x, Y: data.Y}, surface.Point{X: x, Y: bottom})
		}
	}
	if rows, ok := m.visibleRows(); ok {
		right := data.X + min(data.W, m.ds.Widths().Total()-m.ds.Widths().Offset(m.ds.ViewportOrigin().Col)) - 1
		for row := rows.first; row <= rows.last; row++ {
			h := m.ds.Heights().Size(row)
			if h < 2 {
				continue
			}
			y := m.rowY(row) + h - 1
			m.surf.Line(pen, surface.Point{X: data.X, Y: y}, surface.Point{X: right, Y: y})
		}
	}
}

// selectionRect is the surface rectangle covered by span, before clipping.
func (m *Model) selectionRect(span selection.Span) surface.Rect {
	a := m.cellRect(span.From)
	b := m.cellRect(span.To)
	return surface.Rect{X: a.X, Y: a.Y, W: b.X + b.W - a.X, H: b.Y + b.H - a.Y}
}

func (m *Model) paintSelection(span selection.Span) {
	if m.ds.Rows() == 0 || m.ds.Columns() == 0 {
		return
	}
	data := m.dataRect()
	m.surf.Highlight(m.selectionRect(span).Intersect(data), m.th.Grid.Selection)
	if m.focused {
		anchor := m.ds.Selected().Anchor()
		if m.ds.InBounds(anchor) {
			m.surf.Highlight(m.cellRect(anchor).Intersect(data), m.th.Grid.Anchor)
		}
	}
}

// compose joins the surface with the scrollbar column and row.
func (m *Model) compose(sw, sh int) string {
	grid := strings.Split(m.surf.Render(), "\n")
	bar := strings.Split(m.vbar.View(sh), "\n")
	var b strings.Builder
	for i, line := range grid {
		b.WriteString(line)
		if i < len(bar) {
			b.WriteString(bar[i])
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.hbar.View(sw))
	b.WriteByte(' ')
	return b.String()
}

// View implements ui.Component. An open edit box is drawn over the grid.
func (m *Model) View() string {
	if m.dirty {
		m.render()
	}
	if !m.editor.IsOpen() || m.view == "" {
		return m.view
	}
	box, _ := m.editor.View()
	r := m.editor.Rect()
	return overlay.Compose(m.view, m.width, m.height, box, overlay.At(r.X, r.Y, r.W, r.H))
}

// Cursor places the terminal cursor inside the edit box while it is open.
func (m *Model) Cursor() *tea.Cursor {
	if !m.editor.IsOpen() {
		return nil
	}
	_, c := m.editor.View()
	if c == nil {
		return nil
	}
	r := m.editor.Rect()
	c.Position.X += r.X
	c.Position.Y += r.Y
	return c
}
