package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/gridsheet/pkg/dataset"
	"tableflip.dev/gridsheet/pkg/sheet"
)

// SheetOptions control how a file becomes a sheet.
type SheetOptions struct {
	Header  bool
	Columns int
	Width   int
	Align   string
}

func AddSheetArgs(cmd *cobra.Command, o *SheetOptions) {
	cmd.Flags().BoolVar(&o.Header, "header", false,
		"Take column titles from the first line.")
	cmd.Flags().IntVarP(&o.Columns, "columns", "c", 0,
		"Minimum number of columns.")
	cmd.Flags().IntVarP(&o.Width, "width", "w", 0,
		"Width of every column in cells, 0 for the configured default.")
	cmd.Flags().StringVar(&o.Align, "align", string(dataset.AlignCenter),
		"Cell alignment. One of 'left', 'center' or 'right'.")
}

// Sheet validates the flags and converts them.
func (o *SheetOptions) Sheet() (sheet.Options, error) {
	if o.Columns < 0 {
		return sheet.Options{}, fmt.Errorf("--columns must not be negative, got %d", o.Columns)
	}
	if o.Width < 0 || o.Width == 1 {
		return sheet.Options{}, fmt.Errorf("--width must be 0 or at least 2, got %d", o.Width)
	}
	align := dataset.Align(o.Align)
	if align.Normalize() != align {
		return sheet.Options{}, fmt.Errorf("--align must be left, center or right, got %q", o.Align)
	}
	return sheet.Options{
		FirstRowIsHeader: o.Header,
		Columns:          o.Columns,
		Width:            o.Width,
		Align:            align,
	}, nil
}
