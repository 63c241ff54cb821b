package selection

import "testing"

func TestNormalizeSortsCornersPerAxis(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want Span
	}{
		{
			name: "cell reversed corners",
			r:    Cell(Position{3, 5}, Position{1, 2}),
			want: Span{From: Position{1, 2}, To: Position{3, 5}},
		},
		{
			name: "cell crossed corners",
			r:    Cell(Position{0, 4}, Position{2, 1}),
			want: Span{From: Position{0, 1}, To: Position{2, 4}},
		},
		{
			name: "rows",
			r:    Rows(6, 2, 9),
			want: Span{From: Position{2, 0}, To: Position{6, 9}},
		},
		{
			name: "columns",
			r:    Columns(4, 1, 30),
			want: Span{From: Position{0, 1}, To: Position{30, 4}},
		},
		{
			name: "full",
			r:    Full(12, 7),
			want: Span{From: Position{0, 0}, To: Position{12, 7}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.r
			got := tc.r.Normalize()
			if got != tc.want {
				t.Fatalf("normalize = %+v, want %+v", got, tc.want)
			}
			if again := tc.r.Normalize(); again != got {
				t.Fatalf("normalize not idempotent: %+v then %+v", got, again)
			}
			if tc.r != before {
				t.Fatalf("normalize mutated range: %+v -> %+v", before, tc.r)
			}
		})
	}
}

func TestExtendKeepsKind(t *testing.T) {
	r := Rows(2, 2, 5).Extend(Position{Row: 7, Col: 3})
	if r.Kind != KindRow || r.To.Row != 7 || r.To.Col != 0 {
		t.Fatalf("row extend = %+v", r)
	}
	c := Columns(1, 1, 9).Extend(Position{Row: 4, Col: 0})
	if c.Kind != KindColumn || c.To.Col != 0 || c.To.Row != 0 {
		t.Fatalf("column extend = %+v", c)
	}
	f := Full(3, 3).Extend(Position{Row: 1, Col: 1})
	if f != Full(3, 3) {
		t.Fatalf("full extend changed range: %+v", f)
	}
	cell := Cell(Position{1, 1}, Position{1, 1}).Extend(Position{4, 0})
	if got := cell.Normalize(); got != (Span{From: Position{1, 0}, To: Position{4, 1}}) {
		t.Fatalf("cell extend span = %+v", got)
	}
}

func TestSingleShapes(t *testing.T) {
	if !Cell(Position{2, 2}, Position{2, 2}).IsSingleCell() {
		t.Fatalf("expected single cell")
	}
	if Cell(Position{2, 2}, Position{2, 3}).IsSingleCell() {
		t.Fatalf("two cells reported single")
	}
	if !Rows(4, 4, 1).IsSingleRow() || Rows(4, 5, 1).IsSingleRow() {
		t.Fatalf("single row detection wrong")
	}
	if Columns(0, 0, 1).IsSingleRow() {
		t.Fatalf("column range reported single row")
	}
}

func TestAnchorIsFromNotTopLeft(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want Position
	}{
		{name: "cell dragged up-left", r: Cell(Position{4, 3}, Position{1, 0}), want: Position{4, 3}},
		{name: "rows extended upward", r: Rows(6, 2, 9), want: Position{Row: 6}},
		{name: "columns extended leftward", r: Columns(4, 1, 30), want: Position{Col: 4}},
		{name: "full", r: Full(30, 9), want: Position{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Anchor(); got != tt.want {
				t.Fatalf("Anchor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
