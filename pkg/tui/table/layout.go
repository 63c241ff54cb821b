package table

import (
	"strconv"

	"tableflip.dev/gridsheet/pkg/geometry"
	"tableflip.dev/gridsheet/pkg/selection"
	"tableflip.dev/gridsheet/pkg/tui/surface"
)

type region int

const (
	regionNone region = iota
	regionCorner
	regionHeader
	regionLineNo
	regionData
	regionVBar
	regionHBar
)

// surfaceSize is the container minus the scrollbar row and column.
func (m *Model) surfaceSize() (int, int) {
	return max(m.width-1, 0), max(m.height-1, 0)
}

// lineNoWidth is the width of the row-number band: the digits of the row
// count plus one cell of padding on each side. It is memoised per row count.
func (m *Model) lineNoWidth() int {
	rows := m.ds.Rows()
	if m.lineNo != nil && m.lineNo.rows == rows {
		return m.lineNo.width
	}
	w := len(strconv.Itoa(max(rows, 1))) + 2
	m.lineNo = &lineNoMemo{rows: rows, width: w}
	return w
}

func (m *Model) headerHeight() int { return m.opts.HeaderHeight }

// dataRect is the part of the surface showing cells.
func (m *Model) dataRect() surface.Rect {
	sw, sh := m.surfaceSize()
	lw, hh := m.lineNoWidth(), m.headerHeight()
	return surface.Rect{X: lw, Y: hh, W: max(sw-lw, 0), H: max(sh-hh, 0)}
}

// colX is the surface x of a column's left edge given the current viewport.
func (m *Model) colX(col int) int {
	w := m.ds.Widths()
	return m.lineNoWidth() + w.Offset(col) - w.Offset(m.ds.ViewportOrigin().Col)
}

// rowY is the surface y of a row's top edge given the current viewport.
func (m *Model) rowY(row int) int {
	h := m.ds.Heights()
	return m.headerHeight() + h.Offset(row) - h.Offset(m.ds.ViewportOrigin().Row)
}

// cellRect is the rectangle of a cell including its gridline column.
func (m *Model) cellRect(p selection.Position) surface.Rect {
	return surface.Rect{
		X: m.colX(p.Col),
		Y: m.rowY(p.Row),
		W: m.ds.Widths().Size(p.Col),
		H: m.ds.Heights().Size(p.Row),
	}
}

// columnAt maps a surface x inside the data band to a column.
func (m *Model) columnAt(x int) (int, bool) {
	first := m.ds.ViewportOrigin().Col
	w := m.ds.Widths()
	return w.IndexAt(x-m.lineNoWidth()+w.Offset(first), first)
}

// rowAt maps a surface y inside the data band to a row.
func (m *Model) rowAt(y int) (int, bool) {
	first := m.ds.ViewportOrigin().Row
	h := m.ds.Heights()
	return h.IndexAt(y-m.headerHeight()+h.Offset(first), first)
}

// getIndex maps a surface coordinate over the data band to a cell. It
// reports false when either axis lands outside the content.
func (m *Model) getIndex(x, y int) (selection.Position, bool) {
	if x < m.lineNoWidth() || y < m.headerHeight() {
		return selection.Position{}, false
	}
	col, ok := m.columnAt(x)
	if !ok {
		return selection.Position{}, false
	}
	row, ok := m.rowAt(y)
	if !ok {
		return selection.Position{}, false
	}
	return selection.Position{Row: row, Col: col}, true
}

func (m *Model) regionAt(x, y int) region {
	sw, sh := m.surfaceSize()
	switch {
	case x < 0 || y < 0 || x > sw || y > sh:
		return regionNone
	case x == sw && y < sh:
		return regionVBar
	case y == sh && x < sw:
		return regionHBar
	case x == sw || y == sh:
		return regionNone
	}
	lw, hh := m.lineNoWidth(), m.headerHeight()
	switch {
	case x < lw && y < hh:
		return regionCorner
	case y < hh:
		return regionHeader
	case x < lw:
		return regionLineNo
	default:
		return regionData
	}
}

// syncScrollbars pushes content and viewport sizes into both bars.
func (m *Model) syncScrollbars() {
	data := m.dataRect()
	m.vbar.SetViewport(data.H)
	m.vbar.SetContentSize(m.ds.Height())
	m.hbar.SetViewport(data.W)
	m.hbar.SetContentSize(m.ds.Width())
}

// firstIndexAt turns a scroll position into the first visible index,
// scanning forward from the current first index when possible.
func firstIndexAt(p *geometry.Prefix, pos, current int) int {
	if i, ok := p.IndexAt(pos, current); ok {
		return i
	}
	return p.Floor(pos)
}

func (m *Model) onVerticalScroll(pos int) {
	first := m.ds.ViewportOrigin()
	row := firstIndexAt(m.ds.Heights(), pos, first.Row)
	if row == first.Row {
		return
	}
	first.Row = row
	m.ds.SetViewportOrigin(first)
	m.dirty = true
	m.logf("scroll vertical pos=%d first=%v", pos, first)
}

func (m *Model) onHorizontalScroll(pos int) {
	first := m.ds.ViewportOrigin()
	col := firstIndexAt(m.ds.Widths(), pos, first.Col)
	if col == first.Col {
		return
	}
	first.Col = col
	m.ds.SetViewportOrigin(first)
	m.dirty = true
	m.logf("scroll horizontal pos=%d first=%v", pos, first)
}

// ensureVisible scrolls so the cell p is fully inside the data band when
// it fits.
func (m *Model) ensureVisible(p selection.Position) {
	m.scrollToRow(p.Row)
	m.scrollToColumn(p.Col)
}

// scrollToRow moves the vertical scrollbar only as far as needed to show row.
func (m *Model) scrollToRow(row int) {
	data := m.dataRect()
	if data.Empty() {
		return
	}
	first := m.ds.ViewportOrigin()
	h := m.ds.Heights()
	switch {
	case row < first.Row:
		m.vbar.SetPosition(h.Offset(row))
	case h.Offset(row+1)-h.Offset(first.Row) > data.H:
		m.vbar.SetPosition(alignedStart(h, h.Offset(row+1)-data.H))
	}
}

// scrollToColumn is scrollToRow for the horizontal axis.
func (m *Model) scrollToColumn(col int) {
	data := m.dataRect()
	if data.Empty() {
		return
	}
	first := m.ds.ViewportOrigin()
	w := m.ds.Widths()
	switch {
	case col < first.Col:
		m.hbar.SetPosition(w.Offset(col))
	case w.Offset(col+1)-w.Offset(first.Col) > data.W:
		m.hbar.SetPosition(alignedStart(w, w.Offset(col+1)-data.W))
	}
}

// alignedStart rounds pos up to the next entry boundary so the first
// visible entry is never cut.
func alignedStart(p *geometry.Prefix, pos int) int {
	if pos <= 0 {
		return 0
	}
	i := p.Floor(pos)
	if p.Offset(i) < pos {
		i++
	}
	return p.Offset(i)
}
