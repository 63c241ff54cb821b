package dataset

import "tableflip.dev/gridsheet/pkg/selection"

// MoveTo moves the selection cursor one cell, or to the next blank/non-blank
// boundary when nonBlank is set. With selecting the free endpoint moves and
// the anchor stays; otherwise the selection collapses to the new cell.
//
// Row and column bands move along their own axis. Collapsing a band without
// selecting yields a single cell whose other coordinate is 0 (or the band's
// anchor for moves across the band). It returns the cell the cursor landed on.
func (ds *DataSet) MoveTo(dir Direction, selecting, nonBlank bool) selection.Position {
	if len(ds.header) == 0 || len(ds.data) == 0 {
		return selection.Position{}
	}
	r := ds.selected
	switch r.Kind {
	case selection.KindCell:
		base := r.From
		if selecting {
			base = r.To
		}
		next := ds.step(ds.clamp(base), dir, nonBlank)
		if selecting {
			ds.Select(selection.Cell(r.From, next))
		} else {
			ds.Select(selection.Cell(next, next))
		}
		return next

	case selection.KindRow:
		if selecting {
			if !dir.vertical() {
				return selection.Position{Row: r.To.Row}
			}
			next := ds.step(ds.clamp(selection.Position{Row: r.To.Row}), dir, nonBlank)
			ds.Select(selection.Rows(r.From.Row, next.Row, 0))
			return selection.Position{Row: next.Row}
		}
		next := ds.step(ds.clamp(selection.Position{Row: r.From.Row}), dir, nonBlank)
		ds.Select(selection.Cell(next, next))
		return next

	case selection.KindColumn:
		if selecting {
			if dir.vertical() {
				return selection.Position{Col: r.To.Col}
			}
			next := ds.step(ds.clamp(selection.Position{Col: r.To.Col}), dir, nonBlank)
			ds.Select(selection.Columns(r.From.Col, next.Col, 0))
			return selection.Position{Col: next.Col}
		}
		next := ds.step(ds.clamp(selection.Position{Col: r.From.Col}), dir, nonBlank)
		ds.Select(selection.Cell(next, next))
		return next

	case selection.KindFull:
		if selecting {
			return selection.Position{}
		}
		next := ds.step(selection.Position{}, dir, nonBlank)
		ds.Select(selection.Cell(next, next))
		return next
	}
	panic("dataset: unknown selection kind")
}

func (ds *DataSet) step(p selection.Position, dir Direction, nonBlank bool) selection.Position {
	dr, dc := dir.offset()
	if nonBlank {
		return ds.jump(p, dr, dc)
	}
	next := selection.Position{Row: p.Row + dr, Col: p.Col + dc}
	if !ds.InBounds(next) {
		return p
	}
	return next
}

// jump mirrors spreadsheet Ctrl+Arrow: from a blank cell it lands on the
// first non-blank cell ahead; from a non-blank cell it runs to the last
// non-blank cell before a blank one. Running off the grid stops on the last
// valid cell.
func (ds *DataSet) jump(p selection.Position, dr, dc int) selection.Position {
	cur := p
	next := selection.Position{Row: cur.Row + dr, Col: cur.Col + dc}
	if !ds.InBounds(next) {
		return cur
	}
	curBlank := ds.Cell(cur.Row, cur.Col) == ""
	nextBlank := ds.Cell(next.Row, next.Col) == ""

	switch {
	case curBlank && !nextBlank:
		return next
	case !curBlank && nextBlank:
		return cur
	}
	for {
		cur = next
		next = selection.Position{Row: cur.Row + dr, Col: cur.Col + dc}
		if !ds.InBounds(next) {
			return cur
		}
		blank := ds.Cell(next.Row, next.Col) == ""
		if curBlank && !blank {
			return next
		}
		if !curBlank && blank {
			return cur
		}
	}
}
