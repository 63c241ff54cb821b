package dataset

import (
	"fmt"
	"io"
	"time"

	"tableflip.dev/gridsheet/pkg/geometry"
	"tableflip.dev/gridsheet/pkg/selection"
	"tableflip.dev/gridsheet/pkg/tsv"
)

// DataSet owns the header, the rows, the geometry caches and the active
// selection of one loaded table.
//
// The last row is always a placeholder: writing into it promotes it to a
// real row and appends a fresh placeholder.
type DataSet struct {
	opts Options

	header []Field
	data   []Row

	widths  *geometry.Prefix
	heights *geometry.Prefix

	selected selection.Range
	first    selection.Position

	debugLog io.Writer
}

// New constructs a data set and loads header and rows.
func New(header []Field, data []Row, opts Options) *DataSet {
	ds := &DataSet{
		opts:    opts.withDefaults(),
		widths:  geometry.New(nil),
		heights: geometry.New(nil),
	}
	ds.SetHeader(header)
	ds.SetData(data)
	return ds
}

// SetDebugWriter configures an optional writer for diagnostic output.
func (ds *DataSet) SetDebugWriter(w io.Writer) {
	ds.debugLog = w
}

func (ds *DataSet) logf(format string, args ...any) {
	if ds.debugLog == nil {
		return
	}
	fmt.Fprintf(ds.debugLog, "%s dataset."+format+"\n",
		append([]any{time.Now().Format("2006-01-02T15:04:05")}, args...)...)
}

// Options returns the geometry defaults in effect.
func (ds *DataSet) Options() Options { return ds.opts }

// Header returns the column fields.
func (ds *DataSet) Header() []Field { return ds.header }

// Data returns the rows, placeholder included.
func (ds *DataSet) Data() []Row { return ds.data }

// SetHeader replaces the columns and resets caches and selection.
func (ds *DataSet) SetHeader(header []Field) {
	ds.header = make([]Field, len(header))
	for i, f := range header {
		f.Align = f.Align.Normalize()
		ds.header[i] = f
	}
	ds.rebuildWidths()
	for i := range ds.data {
		ds.data[i].Cells = fitCells(ds.data[i].Cells, len(ds.header))
	}
	ds.resetSelection()
	ds.logf("SetHeader columns=%d width=%d", len(ds.header), ds.widths.Total())
}

// SetData replaces every row, appends the placeholder, and resets caches and
// selection.
func (ds *DataSet) SetData(data []Row) {
	ds.data = make([]Row, 0, len(data)+1)
	for _, r := range data {
		ds.data = append(ds.data, Row{
			Height: r.Height,
			Cells:  fitCells(append([]string(nil), r.Cells...), len(ds.header)),
		})
	}
	ds.data = append(ds.data, ds.placeholder())
	ds.rebuildHeights()
	ds.resetSelection()
	ds.logf("SetData rows=%d height=%d", len(ds.data), ds.heights.Total())
}

func (ds *DataSet) placeholder() Row {
	return Row{Cells: make([]string, len(ds.header)), PlaceHolder: true}
}

func (ds *DataSet) rebuildWidths() {
	sizes := make([]int, len(ds.header))
	for i, f := range ds.header {
		sizes[i] = ds.columnWidth(f)
	}
	ds.widths.Reset(sizes)
}

func (ds *DataSet) rebuildHeights() {
	sizes := make([]int, len(ds.data))
	for i, r := range ds.data {
		sizes[i] = ds.rowHeight(r)
	}
	ds.heights.Reset(sizes)
}

func (ds *DataSet) columnWidth(f Field) int {
	if f.Width > 0 {
		return f.Width
	}
	return ds.opts.ColumnWidth
}

func (ds *DataSet) rowHeight(r Row) int {
	if r.Height > 0 {
		return r.Height
	}
	return ds.opts.RowHeight
}

func (ds *DataSet) resetSelection() {
	ds.selected = selection.Cell(selection.Position{}, selection.Position{})
	ds.first = selection.Position{}
}

// Columns is the header length.
func (ds *DataSet) Columns() int { return len(ds.header) }

// Rows is the data length, placeholder included.
func (ds *DataSet) Rows() int { return len(ds.data) }

// LastRow is the index of the placeholder row.
func (ds *DataSet) LastRow() int { return len(ds.data) - 1 }

// LastColumn is the index of the last column, -1 without columns.
func (ds *DataSet) LastColumn() int { return len(ds.header) - 1 }

// Widths exposes the column offset cache.
func (ds *DataSet) Widths() *geometry.Prefix { return ds.widths }

// Heights exposes the row offset cache.
func (ds *DataSet) Heights() *geometry.Prefix { return ds.heights }

// Width is the scrollable content width: every column plus the blank margin.
func (ds *DataSet) Width() int { return ds.widths.Total() + ds.opts.BlankMargin }

// Height is the scrollable content height: every row plus the blank margin.
func (ds *DataSet) Height() int { return ds.heights.Total() + ds.opts.BlankMargin }

// InBounds reports whether p addresses an existing cell.
func (ds *DataSet) InBounds(p selection.Position) bool {
	return p.Row >= 0 && p.Row < len(ds.data) && p.Col >= 0 && p.Col < len(ds.header)
}

// Cell returns the value at row, col, or "" when out of bounds.
func (ds *DataSet) Cell(row, col int) string {
	if row < 0 || row >= len(ds.data) {
		return ""
	}
	return ds.data[row].Cell(col)
}

// IsPlaceholder reports whether row is the synthetic trailing row.
func (ds *DataSet) IsPlaceholder(row int) bool {
	return row >= 0 && row < len(ds.data) && ds.data[row].PlaceHolder
}

// ViewportOrigin is the top-left visible cell.
func (ds *DataSet) ViewportOrigin() selection.Position { return ds.first }

// SetViewportOrigin moves the top-left visible cell, clamped to the grid.
func (ds *DataSet) SetViewportOrigin(p selection.Position) {
	ds.first = ds.clamp(p)
}

func (ds *DataSet) clamp(p selection.Position) selection.Position {
	p.Row = clampInt(p.Row, 0, max(len(ds.data)-1, 0))
	p.Col = clampInt(p.Col, 0, max(len(ds.header)-1, 0))
	return p
}

// Selected returns the active selection.
func (ds *DataSet) Selected() selection.Range { return ds.selected }

// Select replaces the active selection. Bounds are recomputed from the
// current data so stale limits never survive a reload.
func (ds *DataSet) Select(r selection.Range) {
	ds.selected = r.WithBounds(ds.LastRow(), ds.LastColumn())
}

// SelectAll selects the whole grid.
func (ds *DataSet) SelectAll() {
	ds.Select(selection.Full(0, 0))
}

// SelectedSpan returns the normalized selection clipped to the grid.
func (ds *DataSet) SelectedSpan() selection.Span {
	s := ds.selected.Normalize()
	s.From = ds.clamp(s.From)
	s.To = ds.clamp(s.To)
	return s
}

// SetCellData writes content into one cell. Out-of-range addresses are
// ignored. Writing into the placeholder promotes it and appends a new one.
func (ds *DataSet) SetCellData(row, col int, content string) {
	if row < 0 || row >= len(ds.data) || col < 0 || col >= len(ds.header) {
		return
	}
	r := &ds.data[row]
	r.Cells = fitCells(r.Cells, len(ds.header))
	r.Cells[col] = content
	if r.PlaceHolder {
		r.PlaceHolder = false
		ds.appendPlaceholder()
	}
}

func (ds *DataSet) appendPlaceholder() {
	p := ds.placeholder()
	ds.data = append(ds.data, p)
	ds.heights.Append(ds.rowHeight(p))
	ds.selected = ds.selected.WithBounds(ds.LastRow(), ds.LastColumn())
}

// FillToSelected writes text into every selected cell. Blank text leaves the
// placeholder row alone so clearing never grows the sheet.
func (ds *DataSet) FillToSelected(text string) {
	if len(ds.header) == 0 {
		return
	}
	span := ds.SelectedSpan()
	for row := span.From.Row; row <= span.To.Row; row++ {
		if text == "" && ds.IsPlaceholder(row) {
			continue
		}
		for col := span.From.Col; col <= span.To.Col; col++ {
			ds.SetCellData(row, col, text)
		}
	}
	ds.logf("FillToSelected span=%v..%v len=%d", span.From, span.To, len(text))
}

// FillFromAnchor copies the anchor cell value into the whole selection.
func (ds *DataSet) FillFromAnchor() {
	a := ds.clamp(ds.selected.Anchor())
	ds.FillToSelected(ds.Cell(a.Row, a.Col))
}

// SelectedCells returns the values covered by the selection.
func (ds *DataSet) SelectedCells() [][]string {
	if len(ds.header) == 0 {
		return nil
	}
	span := ds.SelectedSpan()
	out := make([][]string, 0, span.Rows())
	for row := span.From.Row; row <= span.To.Row; row++ {
		line := make([]string, 0, span.Cols())
		for col := span.From.Col; col <= span.To.Col; col++ {
			line = append(line, ds.Cell(row, col))
		}
		out = append(out, line)
	}
	return out
}

// SelectedText encodes the selection as clipboard text.
func (ds *DataSet) SelectedText() string {
	return tsv.Encode(ds.SelectedCells())
}

func fitCells(cells []string, n int) []string {
	if len(cells) >= n {
		return cells
	}
	return append(cells, make([]string, n-len(cells))...)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
