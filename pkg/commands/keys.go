package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/gridsheet/pkg/commands/options"
	"tableflip.dev/gridsheet/pkg/runner/keys"
)

func addKeys(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the grid's key and mouse bindings.",
		Example: `
gridsheet keys
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := keys.Keys{Output: output}
			return output.HandleError(k.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
