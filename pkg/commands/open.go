package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/gridsheet/pkg/commands/options"
	"tableflip.dev/gridsheet/pkg/config"
	"tableflip.dev/gridsheet/pkg/runner/open"
)

func addOpen(topLevel *cobra.Command) {
	so := &options.SheetOptions{}
	oo := &options.OpenOptions{}

	cmd := &cobra.Command{
		Use:   "open [file]",
		Short: "Open a tab-separated file in the grid.",
		Long: `Open a tab-separated file in the grid. Without a file, piped stdin is
read; otherwise an empty sheet is started. Use "-" to read stdin explicitly.`,
		Example: `
gridsheet open people.tsv --header
pbpaste | gridsheet open
gridsheet open --columns 4
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: tsvFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := oo.Validate(); err != nil {
				return err
			}
			sopts, err := so.Sheet()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			o := open.Open{
				Sheet:    sopts,
				Config:   cfg,
				Watch:    oo.Watch,
				Debug:    oo.Debug,
				EventLog: oo.EventLog,
				Theme:    oo.Theme,
			}
			if len(args) > 0 {
				o.Path = args[0]
			}
			return o.Do(cmd.Context())
		},
	}

	options.AddSheetArgs(cmd, so)
	options.AddOpenArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
