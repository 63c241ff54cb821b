package selection

import "fmt"

// Kind tags the shape of a selected range.
type Kind int

const (
	// KindCell is a rectangle anchored on a single cell.
	KindCell Kind = iota
	// KindRow is a band of whole rows.
	KindRow
	// KindColumn is a band of whole columns.
	KindColumn
	// KindFull covers the whole grid.
	KindFull
)

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	case KindFull:
		return "full"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Position addresses a cell by 0-based row and column.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("[%d,%d]", p.Row, p.Col)
}

// Span is an absolute, normalized rectangle with From <= To on both axes.
type Span struct {
	From Position
	To   Position
}

// Rows reports how many rows the span covers.
func (s Span) Rows() int { return s.To.Row - s.From.Row + 1 }

// Cols reports how many columns the span covers.
func (s Span) Cols() int { return s.To.Col - s.From.Col + 1 }

// Contains reports whether p lies inside the span.
func (s Span) Contains(p Position) bool {
	return p.Row >= s.From.Row && p.Row <= s.To.Row && p.Col >= s.From.Col && p.Col <= s.To.Col
}

// Range is the active selection. Which fields are meaningful depends on Kind:
// cell ranges use both axes of From/To, row ranges only Row, column ranges
// only Col, and full ranges neither. LastRow/LastCol bound the shapes that
// stretch to the edge of the grid.
type Range struct {
	Kind    Kind
	From    Position
	To      Position
	LastRow int
	LastCol int
}

// Cell selects the rectangle between two corners.
func Cell(from, to Position) Range {
	return Range{Kind: KindCell, From: from, To: to}
}

// Rows selects whole rows from..to.
func Rows(from, to, lastCol int) Range {
	return Range{Kind: KindRow, From: Position{Row: from}, To: Position{Row: to}, LastCol: lastCol}
}

// Columns selects whole columns from..to.
func Columns(from, to, lastRow int) Range {
	return Range{Kind: KindColumn, From: Position{Col: from}, To: Position{Col: to}, LastRow: lastRow}
}

// Full selects every cell.
func Full(lastRow, lastCol int) Range {
	return Range{Kind: KindFull, LastRow: lastRow, LastCol: lastCol}
}

// Normalize returns the absolute rectangle covered by the range. It never
// modifies the receiver.
func (r Range) Normalize() Span {
	switch r.Kind {
	case KindCell:
		return Span{
			From: Position{Row: min(r.From.Row, r.To.Row), Col: min(r.From.Col, r.To.Col)},
			To:   Position{Row: max(r.From.Row, r.To.Row), Col: max(r.From.Col, r.To.Col)},
		}
	case KindRow:
		return Span{
			From: Position{Row: min(r.From.Row, r.To.Row), Col: 0},
			To:   Position{Row: max(r.From.Row, r.To.Row), Col: r.LastCol},
		}
	case KindColumn:
		return Span{
			From: Position{Row: 0, Col: min(r.From.Col, r.To.Col)},
			To:   Position{Row: r.LastRow, Col: max(r.From.Col, r.To.Col)},
		}
	case KindFull:
		return Span{To: Position{Row: r.LastRow, Col: r.LastCol}}
	}
	panic(fmt.Sprintf("selection: unknown kind %d", int(r.Kind)))
}

// WithBounds refreshes the grid bounds carried by the range.
func (r Range) WithBounds(lastRow, lastCol int) Range {
	r.LastRow = lastRow
	r.LastCol = lastCol
	return r
}

// Extend moves the free endpoint to p along the axes the kind owns. The kind
// itself never changes, so dragging cannot turn a row band into a cell range.
func (r Range) Extend(p Position) Range {
	switch r.Kind {
	case KindCell:
		r.To = p
	case KindRow:
		r.To = Position{Row: p.Row}
	case KindColumn:
		r.To = Position{Col: p.Col}
	case KindFull:
	default:
		panic(fmt.Sprintf("selection: unknown kind %d", int(r.Kind)))
	}
	return r
}

// Anchor is the fixed end of the range: From for cells, the From row or
// column for bands (column or row 0 on the other axis), and the origin for
// full selections. It is not the top-left when a band was extended upward or
// leftward.
func (r Range) Anchor() Position {
	switch r.Kind {
	case KindCell:
		return r.From
	case KindRow:
		return Position{Row: r.From.Row}
	case KindColumn:
		return Position{Col: r.From.Col}
	case KindFull:
		return Position{}
	}
	panic(fmt.Sprintf("selection: unknown kind %d", int(r.Kind)))
}

// IsSingleCell reports whether the range is a one-cell CellRange.
func (r Range) IsSingleCell() bool {
	return r.Kind == KindCell && r.From == r.To
}

// IsSingleRow reports whether the range is a one-row RowRange.
func (r Range) IsSingleRow() bool {
	return r.Kind == KindRow && r.From.Row == r.To.Row
}

func (r Range) String() string {
	s := r.Normalize()
	return fmt.Sprintf("%s %s..%s", r.Kind, s.From, s.To)
}
