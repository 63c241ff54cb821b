package table

import (
	"fmt"
	"strings"
)

// Binding documents one grid key or mouse gesture.
type Binding struct {
	Keys   string `json:"keys"`
	Action string `json:"action"`
}

var bindings = []Binding{
	{Keys: "←↑→↓", Action: "move the selection one cell"},
	{Keys: "shift+arrow", Action: "extend the selection"},
	{Keys: "ctrl+arrow", Action: "jump to the next edge of non-blank cells"},
	{Keys: "F2", Action: "edit the selected cell"},
	{Keys: "any text", Action: "replace the selected cell and start editing"},
	{Keys: "enter", Action: "commit an edit"},
	{Keys: "alt+enter", Action: "insert a line break while editing"},
	{Keys: "esc", Action: "cancel an edit"},
	{Keys: "delete", Action: "clear the selected cells"},
	{Keys: "ctrl+c", Action: "copy the selection as tab-separated text"},
	{Keys: "ctrl+v", Action: "paste over the selection; a single value fills it"},
	{Keys: "alt+v", Action: "insert clipboard rows above the selected row"},
	{Keys: "alt+-", Action: "delete the selected rows"},
	{Keys: "ctrl+d", Action: "fill the selection with the anchor value"},
	{Keys: "ctrl+a", Action: "select everything"},
	{Keys: "click", Action: "select a cell, column, row or everything (corner)"},
	{Keys: "shift+click, drag", Action: "extend the selection"},
	{Keys: "double click", Action: "edit the clicked cell"},
	{Keys: "wheel, shift+wheel", Action: "scroll rows, scroll columns"},
}

// Bindings lists the grid's key and mouse bindings.
func Bindings() []Binding {
	return append([]Binding(nil), bindings...)
}

// Markdown renders bs as a markdown table under title.
func Markdown(title string, bs []Binding) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	b.WriteString("| Keys | Action |\n|---|---|\n")
	for _, k := range bs {
		fmt.Fprintf(&b, "| `%s` | %s |\n", k.Keys, k.Action)
	}
	return b.String()
}
