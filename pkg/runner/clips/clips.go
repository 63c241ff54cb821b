// Package clips lists or clears the copy history.
package clips

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/gridsheet/pkg/clipboard"
	"tableflip.dev/gridsheet/pkg/commands/options"
)

const previewWidth = 48

// Clips shows the most recent copies.
type Clips struct {
	History *clipboard.History
	Output  *options.OutputOptions

	// Limit caps the listing, 0 lists everything.
	Limit int
	// Clear erases the history instead of listing it.
	Clear bool
}

// Do lists or clears the history.
func (c *Clips) Do(ctx context.Context) error {
	if c.Output == nil {
		c.Output = &options.OutputOptions{}
	}
	if c.History == nil {
		return fmt.Errorf("clips: no history store")
	}
	if c.Clear {
		if err := c.History.Clear(); err != nil {
			return err
		}
		if c.Output.JSON {
			return c.Output.PrintJSON(map[string]bool{"cleared": true})
		}
		_, _ = fmt.Fprintln(c.Output.Writer(), "clip history cleared")
		return nil
	}

	entries, err := c.History.Entries(ctx)
	if err != nil {
		return err
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}
	if c.Output.JSON {
		return c.Output.PrintJSON(entries)
	}
	c.print(entries)
	return nil
}

func (c *Clips) print(entries []clipboard.Entry) {
	out := c.Output.Writer()
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "no clips")
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Copied"), bold.Sprint("Size"), bold.Sprint("Preview"))
	for i, e := range entries {
		tbl.AddRow(i+1, faint.Sprint(e.Created.Format("2006-01-02 15:04:05")),
			fmt.Sprintf("%d×%d", e.Rows, e.Cols), preview(e.Text))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}

// preview flattens the first rows of a clip onto one line.
func preview(text string) string {
	flat := strings.NewReplacer("\r\n", " ⏎ ", "\n", " ⏎ ", "\t", " │ ").Replace(text)
	return truncate.StringWithTail(flat, previewWidth, "…")
}
