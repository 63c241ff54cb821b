package dataset

import "tableflip.dev/gridsheet/pkg/selection"

// PasteToSelected writes a decoded block starting at the selection's
// top-left cell. Rows past the end of the sheet are created first; columns
// past the header are dropped. The selection becomes the written rectangle.
func (ds *DataSet) PasteToSelected(rows [][]string) {
	if len(rows) == 0 || len(ds.header) == 0 {
		return
	}
	anchor := ds.SelectedSpan().From
	ds.growTo(anchor.Row + len(rows))

	lastCol := anchor.Col
	for i, cells := range rows {
		row := anchor.Row + i
		for j, v := range cells {
			col := anchor.Col + j
			if col >= len(ds.header) {
				break
			}
			ds.SetCellData(row, col, v)
			lastCol = max(lastCol, col)
		}
	}
	lastRow := min(anchor.Row+len(rows)-1, ds.LastRow())
	ds.Select(selection.Cell(anchor, selection.Position{Row: lastRow, Col: lastCol}))
	ds.logf("PasteToSelected anchor=%v rows=%d rowsNow=%d", anchor, len(rows), len(ds.data))
}

// growTo makes sure at least n real rows exist ahead of the placeholder. The
// current placeholder becomes a real row and a fresh one is appended.
func (ds *DataSet) growTo(n int) {
	if n <= len(ds.data)-1 {
		return
	}
	ds.data[len(ds.data)-1].PlaceHolder = false
	for len(ds.data) < n {
		r := Row{Cells: make([]string, len(ds.header))}
		ds.data = append(ds.data, r)
		ds.heights.Append(ds.rowHeight(r))
	}
	ds.appendPlaceholder()
}

// InsertAndPaste inserts the block as new rows above the selected row. It
// only applies to a single-row row selection; other selections are ignored.
// Missing source cells become empty strings.
func (ds *DataSet) InsertAndPaste(rows [][]string) {
	if !ds.selected.IsSingleRow() || len(rows) == 0 {
		return
	}
	at := ds.selected.From.Row
	if at < 0 || at >= len(ds.data) {
		return
	}

	inserted := make([]Row, len(rows))
	sizes := make([]int, len(rows))
	for i, src := range rows {
		cells := make([]string, len(ds.header))
		for j := range cells {
			if j < len(src) {
				cells[j] = src[j]
			}
		}
		inserted[i] = Row{Cells: cells}
		sizes[i] = ds.rowHeight(inserted[i])
	}

	ds.data = append(ds.data[:at], append(inserted, ds.data[at:]...)...)
	ds.heights.InsertAt(at, sizes...)
	ds.Select(selection.Rows(at, at+len(rows)-1, 0))
	ds.logf("InsertAndPaste at=%d rows=%d", at, len(rows))
}

// DeleteSelectedRows removes the selected row band. The placeholder row is
// never deleted. Only row selections apply.
func (ds *DataSet) DeleteSelectedRows() {
	if ds.selected.Kind != selection.KindRow {
		return
	}
	span := ds.selected.Normalize()
	from := max(span.From.Row, 0)
	to := min(span.To.Row, len(ds.data)-2)
	if from > to {
		return
	}

	ds.data = append(ds.data[:from], ds.data[to+1:]...)
	ds.heights.RemoveRange(from, to+1)
	ds.Select(selection.Rows(from, from, 0))
	ds.first = ds.clamp(ds.first)
	ds.logf("DeleteSelectedRows from=%d to=%d rowsNow=%d", from, to, len(ds.data))
}
