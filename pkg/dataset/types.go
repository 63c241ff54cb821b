package dataset

// Align controls horizontal text placement inside a column.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Normalize maps unknown or empty alignments to center.
func (a Align) Normalize() Align {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return a
	default:
		return AlignCenter
	}
}

// Field describes one column. A zero Width falls back to the default width.
type Field struct {
	Title string `json:"title"`
	Width int    `json:"width,omitempty"`
	Align Align  `json:"align,omitempty"`
}

// Row holds the cells of one line. A zero Height falls back to the default
// height. PlaceHolder marks the synthetic trailing row.
type Row struct {
	Height      int      `json:"height,omitempty"`
	Cells       []string `json:"cells"`
	PlaceHolder bool     `json:"placeHolder,omitempty"`
}

// Cell returns the value at col, or "" when the row is shorter.
func (r Row) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return r.Cells[col]
}

// Options are the geometry defaults applied to fields and rows without an
// explicit size.
type Options struct {
	ColumnWidth int
	RowHeight   int
	BlankMargin int
}

// DefaultOptions returns terminal-cell defaults.
func DefaultOptions() Options {
	return Options{
		ColumnWidth: 12,
		RowHeight:   1,
		BlankMargin: 2,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o == (Options{}) {
		return d
	}
	if o.ColumnWidth <= 0 {
		o.ColumnWidth = d.ColumnWidth
	}
	if o.RowHeight <= 0 {
		o.RowHeight = d.RowHeight
	}
	if o.BlankMargin < 0 {
		o.BlankMargin = 0
	}
	return o
}

// Direction is a cursor movement direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

func (d Direction) offset() (int, int) {
	switch d {
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) vertical() bool {
	return d == Up || d == Down
}
