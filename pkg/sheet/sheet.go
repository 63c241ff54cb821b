// Package sheet holds a named table, header plus rows, and loads one from
// clipboard-format text.
package sheet

import (
	"fmt"
	"io"
	"strconv"
	"sync/atomic"

	"tableflip.dev/gridsheet/pkg/dataset"
	"tableflip.dev/gridsheet/pkg/tsv"
)

var sheetCount atomic.Int64

// NextName returns "Sheet N" with N counting up per process.
func NextName() string {
	return fmt.Sprintf("Sheet %d", sheetCount.Add(1))
}

// Sheet is a named table.
type Sheet struct {
	Name   string          `json:"name"`
	Header []dataset.Field `json:"header"`
	Data   []dataset.Row   `json:"data"`
}

// New builds a sheet. An empty name is replaced by NextName.
func New(name string, header []dataset.Field, data []dataset.Row) *Sheet {
	if name == "" {
		name = NextName()
	}
	return &Sheet{Name: name, Header: header, Data: data}
}

// Options control how records become a sheet.
type Options struct {
	// FirstRowIsHeader takes column titles from the first record.
	FirstRowIsHeader bool
	// Columns is the minimum column count; extra columns are titled by letter.
	Columns int
	// Width is the width given to every column, 0 for the default.
	Width int
	// Align applies to every column.
	Align dataset.Align
}

// ColumnName returns the spreadsheet letter name of a 0-based column.
func ColumnName(col int) string {
	if col < 0 {
		return ""
	}
	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// Ref returns the A1-style reference of a cell.
func Ref(row, col int) string {
	if row < 0 || col < 0 {
		return ""
	}
	return ColumnName(col) + strconv.Itoa(row+1)
}

// FromRecords builds a sheet from a rectangular or ragged record set.
func FromRecords(name string, records [][]string, opts Options) *Sheet {
	cols := opts.Columns
	for _, r := range records {
		cols = max(cols, len(r))
	}

	var titles []string
	if opts.FirstRowIsHeader && len(records) > 0 {
		titles = records[0]
		records = records[1:]
	}

	header := make([]dataset.Field, cols)
	for i := range header {
		title := ColumnName(i)
		if i < len(titles) && titles[i] != "" {
			title = titles[i]
		}
		header[i] = dataset.Field{Title: title, Width: opts.Width, Align: opts.Align.Normalize()}
	}

	data := make([]dataset.Row, len(records))
	for i, r := range records {
		cells := make([]string, cols)
		copy(cells, r)
		data[i] = dataset.Row{Cells: cells}
	}
	return New(name, header, data)
}

// Read decodes clipboard-format text from r. Both CRLF and LF line endings
// are accepted.
func Read(name string, r io.Reader, opts Options) (*Sheet, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sheet: read %s: %w", name, err)
	}
	return FromRecords(name, tsv.Decode(string(b)), opts), nil
}

// Records returns the cell values without the header.
func (s *Sheet) Records() [][]string {
	out := make([][]string, 0, len(s.Data))
	for _, r := range s.Data {
		if r.PlaceHolder {
			continue
		}
		out = append(out, append([]string(nil), r.Cells...))
	}
	return out
}

// DataSet loads the sheet into a new data set.
func (s *Sheet) DataSet(opts dataset.Options) *dataset.DataSet {
	return dataset.New(s.Header, s.Data, opts)
}
