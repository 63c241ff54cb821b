package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/gridsheet/pkg/commands/options"
	"tableflip.dev/gridsheet/pkg/config"
	"tableflip.dev/gridsheet/pkg/runner/inspect"
)

func addInspect(topLevel *cobra.Command) {
	so := &options.SheetOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "inspect file",
		Short: "Print the column geometry of a file.",
		Example: `
gridsheet inspect people.tsv --header
gridsheet inspect people.tsv --json
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: tsvFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			sopts, err := so.Sheet()
			if err != nil {
				return output.HandleError(err)
			}
			cmd.SilenceUsage = true

			cfg, err := config.Load()
			if err != nil {
				return output.HandleError(err)
			}
			i := inspect.Inspect{
				Path:   args[0],
				Sheet:  sopts,
				Config: cfg,
				Output: output,
			}
			return output.HandleError(i.Do(cmd.Context()))
		},
	}

	options.AddSheetArgs(cmd, so)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
