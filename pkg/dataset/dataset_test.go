package dataset

import (
	"math/rand"
	"reflect"
	"testing"

	"tableflip.dev/gridsheet/pkg/selection"
	"tableflip.dev/gridsheet/pkg/tsv"
)

func twoColumns() []Field {
	return []Field{{Title: "A", Width: 50}, {Title: "B", Width: 50}}
}

func rowsOf(values ...[]string) []Row {
	out := make([]Row, len(values))
	for i, v := range values {
		out[i] = Row{Cells: v}
	}
	return out
}

func assertCaches(t *testing.T, ds *DataSet) {
	t.Helper()
	if got := ds.Widths().Len(); got != len(ds.Header()) {
		t.Fatalf("width cache len %d, header len %d", got, len(ds.Header()))
	}
	if got := ds.Heights().Len(); got != len(ds.Data()) {
		t.Fatalf("height cache len %d, data len %d", got, len(ds.Data()))
	}
	sum := 0
	for i, f := range ds.Header() {
		if got := ds.Widths().Offset(i); got != sum {
			t.Fatalf("width offset %d = %d, want %d", i, got, sum)
		}
		sum += ds.columnWidth(f)
	}
	sum = 0
	for i, r := range ds.Data() {
		if got := ds.Heights().Offset(i); got != sum {
			t.Fatalf("height offset %d = %d, want %d", i, got, sum)
		}
		sum += ds.rowHeight(r)
	}
	last := ds.Data()[len(ds.Data())-1]
	if !last.PlaceHolder {
		t.Fatalf("last row is not a placeholder")
	}
	for i, r := range ds.Data()[:len(ds.Data())-1] {
		if r.PlaceHolder {
			t.Fatalf("row %d unexpectedly a placeholder", i)
		}
	}
}

func TestSetDataAppendsPlaceholderAndResets(t *testing.T) {
	ds := New(twoColumns(), rowsOf([]string{"x", "y"}), DefaultOptions())
	ds.Select(selection.Rows(0, 0, 0))
	ds.SetViewportOrigin(selection.Position{Row: 1, Col: 1})

	ds.SetData(rowsOf([]string{"a"}, []string{"b", "c"}, []string{"d"}))
	if ds.Rows() != 4 {
		t.Fatalf("rows = %d, want 4", ds.Rows())
	}
	if got := ds.Selected(); got != selection.Cell(selection.Position{}, selection.Position{}) {
		t.Fatalf("selection not reset: %+v", got)
	}
	if ds.ViewportOrigin() != (selection.Position{}) {
		t.Fatalf("viewport not reset: %v", ds.ViewportOrigin())
	}
	assertCaches(t, ds)
	if ds.Width() != 100+ds.Options().BlankMargin {
		t.Fatalf("width = %d", ds.Width())
	}
}

func TestSetCellDataPromotesPlaceholder(t *testing.T) {
	ds := New(twoColumns(), rowsOf([]string{"x", "y"}), DefaultOptions())
	before := ds.Rows()

	ds.SetCellData(1, 0, "new")
	if ds.Rows() != before+1 {
		t.Fatalf("rows = %d, want %d", ds.Rows(), before+1)
	}
	if ds.Heights().Len() != before+1 {
		t.Fatalf("height cache len = %d", ds.Heights().Len())
	}
	if ds.IsPlaceholder(1) || !ds.IsPlaceholder(2) {
		t.Fatalf("placeholder flags wrong: %+v", ds.Data())
	}
	assertCaches(t, ds)

	ds.SetCellData(0, 0, "edit")
	if ds.Rows() != before+1 {
		t.Fatalf("writing a real row changed row count")
	}
	ds.SetCellData(9, 0, "nope")
	ds.SetCellData(0, 2, "nope")
	ds.SetCellData(-1, 0, "nope")
	if ds.Cell(0, 0) != "edit" || ds.Rows() != before+1 {
		t.Fatalf("out of range writes leaked: %+v", ds.Data())
	}
}

func TestFillToSelected(t *testing.T) {
	ds := New(twoColumns(), rowsOf([]string{"1", "2"}, []string{"3", "4"}), DefaultOptions())
	ds.SelectAll()
	ds.FillToSelected("")
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if ds.Cell(r, c) != "" {
				t.Fatalf("cell %d,%d not cleared", r, c)
			}
		}
	}
	if ds.Rows() != 3 {
		t.Fatalf("clearing grew the sheet to %d rows", ds.Rows())
	}

	ds.SetCellData(0, 0, "v")
	ds.Select(selection.Cell(selection.Position{Row: 0, Col: 0}, selection.Position{Row: 1, Col: 1}))
	ds.FillFromAnchor()
	if got := ds.SelectedCells(); !reflect.DeepEqual(got, [][]string{{"v", "v"}, {"v", "v"}}) {
		t.Fatalf("fill from anchor = %q", got)
	}
}

func TestCopyAndPasteEndToEnd(t *testing.T) {
	ds := New(twoColumns(), rowsOf([]string{"x", "y"}), DefaultOptions())
	ds.Select(selection.Rows(0, 0, 0))
	if text := ds.SelectedText(); text != "x\ty\r\n" {
		t.Fatalf("copied %q", text)
	}

	ds.Select(selection.Cell(selection.Position{}, selection.Position{}))
	ds.PasteToSelected(tsv.Decode("1\t2\r\n3\t4\r\n"))
	if got := ds.SelectedCells(); !reflect.DeepEqual(got, [][]string{{"1", "2"}, {"3", "4"}}) {
		t.Fatalf("pasted cells = %q", got)
	}
	want := selection.Cell(selection.Position{Row: 0, Col: 0}, selection.Position{Row: 1, Col: 1})
	if got := ds.Selected(); got.Kind != want.Kind || got.From != want.From || got.To != want.To {
		t.Fatalf("selection = %+v, want %+v", got, want)
	}
	if ds.Rows() != 3 {
		t.Fatalf("rows after paste = %d, want 3", ds.Rows())
	}
	assertCaches(t, ds)
}

func TestPasteClipsColumnsAndGrowsRows(t *testing.T) {
	ds := New(twoColumns(), nil, DefaultOptions())
	ds.Select(selection.Cell(selection.Position{Row: 0, Col: 1}, selection.Position{Row: 0, Col: 1}))
	ds.PasteToSelected([][]string{{"a", "dropped"}, {"b", "dropped"}, {"c", "dropped"}})

	if ds.Rows() != 4 {
		t.Fatalf("rows = %d, want 4", ds.Rows())
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := ds.Cell(i, 1); got != want {
			t.Fatalf("cell %d,1 = %q, want %q", i, got, want)
		}
	}
	span := ds.SelectedSpan()
	if span.From != (selection.Position{Row: 0, Col: 1}) || span.To != (selection.Position{Row: 2, Col: 1}) {
		t.Fatalf("span = %+v", span)
	}
	assertCaches(t, ds)
}

func TestInsertAndPasteRequiresSingleRow(t *testing.T) {
	ds := New(twoColumns(), rowsOf([]string{"a", "b"}, []string{"c", "d"}), DefaultOptions())
	ds.Select(selection.Rows(0, 1, 0))
	ds.InsertAndPaste([][]string{{"z"}})
	if ds.Rows() != 3 {
		t.Fatalf("multi-row selection should be ignored")
	}

	ds.Select(selection.Rows(1, 1, 0))
	ds.InsertAndPaste([][]string{{"n1", "n2"}, {"only"}})
	want := [][]string{{"a", "b"}, {"n1", "n2"}, {"only", ""}, {"c", "d"}, {"", ""}}
	for i, cells := range want {
		if got := ds.Data()[i].Cells; !reflect.DeepEqual(got, cells) {
			t.Fatalf("row %d = %q, want %q", i, got, cells)
		}
	}
	span := ds.SelectedSpan()
	if ds.Selected().Kind != selection.KindRow || span.From.Row != 1 || span.To.Row != 2 {
		t.Fatalf("selection = %+v", ds.Selected())
	}
	assertCaches(t, ds)
}

func TestDeleteSelectedRowsKeepsPlaceholder(t *testing.T) {
	ds := New(twoColumns(), rowsOf([]string{"a"}, []string{"b"}, []string{"c"}), DefaultOptions())
	ds.Select(selection.Rows(1, 3, 0))
	ds.DeleteSelectedRows()
	if ds.Rows() != 2 {
		t.Fatalf("rows = %d, want 2", ds.Rows())
	}
	if ds.Cell(0, 0) != "a" || !ds.IsPlaceholder(1) {
		t.Fatalf("unexpected rows %+v", ds.Data())
	}
	if got := ds.Selected(); got.Kind != selection.KindRow || got.From.Row != 1 || got.To.Row != 1 {
		t.Fatalf("selection = %+v", got)
	}
	assertCaches(t, ds)

	ds.DeleteSelectedRows()
	if ds.Rows() != 2 {
		t.Fatalf("deleting only the placeholder removed rows")
	}

	ds.Select(selection.Cell(selection.Position{}, selection.Position{}))
	ds.DeleteSelectedRows()
	if ds.Rows() != 2 {
		t.Fatalf("cell selection deleted rows")
	}
}

func TestCacheInvariantUnderRandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ds := New(twoColumns(), nil, DefaultOptions())
	for i := 0; i < 300; i++ {
		row := rng.Intn(ds.Rows())
		switch rng.Intn(4) {
		case 0:
			ds.SetCellData(row, rng.Intn(2), "v")
		case 1:
			ds.Select(selection.Rows(row, row, 0))
			ds.InsertAndPaste([][]string{{"i"}, {"j", "k"}})
		case 2:
			ds.Select(selection.Rows(row, min(row+rng.Intn(3), ds.LastRow()), 0))
			ds.DeleteSelectedRows()
		case 3:
			ds.Select(selection.Cell(selection.Position{Row: row}, selection.Position{Row: row}))
			ds.PasteToSelected([][]string{{"p", "q"}, {"r", "s"}})
		}
		assertCaches(t, ds)
	}
}
