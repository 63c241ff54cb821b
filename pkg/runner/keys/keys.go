// Package keys prints the grid's key and mouse bindings.
package keys

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/gridsheet/pkg/commands/options"
	"tableflip.dev/gridsheet/pkg/tui/app"
	"tableflip.dev/gridsheet/pkg/tui/table"
)

// Keys prints the binding reference.
type Keys struct {
	Output *options.OutputOptions
}

// Do renders the bindings to the output.
func (k *Keys) Do(_ context.Context) error {
	if k.Output == nil {
		k.Output = &options.OutputOptions{}
	}
	bindings := app.Bindings()
	if k.Output.JSON {
		return k.Output.PrintJSON(bindings)
	}
	k.print(bindings)
	return nil
}

func (k *Keys) print(bindings []table.Binding) {
	out := k.Output.Writer()
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Keys"), bold.Sprint("Action"))
	for _, b := range bindings {
		tbl.AddRow(b.Keys, b.Action)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
}
