// Package inspect prints how a file lays out on the grid: each column's
// title, width, offset and alignment, and the sheet's total extent.
package inspect

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/gridsheet/pkg/commands/options"
	"tableflip.dev/gridsheet/pkg/config"
	"tableflip.dev/gridsheet/pkg/dataset"
	"tableflip.dev/gridsheet/pkg/sheet"
	"tableflip.dev/gridsheet/pkg/source"
)

// Column is the geometry of one column.
type Column struct {
	Index  int           `json:"index"`
	Name   string        `json:"name"`
	Title  string        `json:"title"`
	Width  int           `json:"width"`
	Offset int           `json:"offset"`
	Align  dataset.Align `json:"align"`
	Filled int           `json:"filled"`
}

// Report describes a loaded sheet.
type Report struct {
	Name    string   `json:"name"`
	Rows    int      `json:"rows"`
	Columns []Column `json:"columns"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
}

// Inspect loads Path and reports its geometry.
type Inspect struct {
	Path   string
	Sheet  sheet.Options
	Config config.Config
	Output *options.OutputOptions
}

// Do prints the report as a table, or as JSON with --json.
func (i *Inspect) Do(ctx context.Context) error {
	if i.Output == nil {
		i.Output = &options.OutputOptions{}
	}
	r, err := i.Report()
	if err != nil {
		return err
	}
	if i.Output.JSON {
		return i.Output.PrintJSON(r)
	}
	i.print(r)
	return nil
}

// Report loads the sheet and measures it.
func (i *Inspect) Report() (Report, error) {
	s, err := source.Load(i.Path, i.Sheet)
	if err != nil {
		return Report{}, err
	}
	ds := s.DataSet(i.Config.DataSetOptions())
	widths := ds.Widths()

	r := Report{
		Name:   s.Name,
		Rows:   len(s.Records()),
		Width:  ds.Width(),
		Height: ds.Height(),
	}
	for c, f := range ds.Header() {
		filled := 0
		for row := 0; row < ds.Rows(); row++ {
			if ds.Cell(row, c) != "" {
				filled++
			}
		}
		r.Columns = append(r.Columns, Column{
			Index:  c,
			Name:   sheet.ColumnName(c),
			Title:  f.Title,
			Width:  widths.Size(c),
			Offset: widths.Offset(c),
			Align:  f.Align.Normalize(),
			Filled: filled,
		})
	}
	return r, nil
}

func (i *Inspect) print(r Report) {
	out := i.Output.Writer()
	bold := color.New(color.Bold)

	_, _ = fmt.Fprintf(out, "%s  %d rows × %d columns, %d×%d cells\n\n",
		bold.Sprint(r.Name), r.Rows, len(r.Columns), r.Width, r.Height)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Col"), bold.Sprint("Title"), bold.Sprint("Width"),
		bold.Sprint("Offset"), bold.Sprint("Align"), bold.Sprint("Filled"))
	for _, c := range r.Columns {
		tbl.AddRow(c.Name, c.Title, c.Width, c.Offset, c.Align, c.Filled)
	}
	tbl.RightAlign(0)
	tbl.RightAlign(2)
	tbl.RightAlign(3)
	tbl.RightAlign(5)

	_, _ = fmt.Fprintln(out, tbl)
}
