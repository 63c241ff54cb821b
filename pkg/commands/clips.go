package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/gridsheet/pkg/clipboard"
	"tableflip.dev/gridsheet/pkg/commands/options"
	"tableflip.dev/gridsheet/pkg/config"
	"tableflip.dev/gridsheet/pkg/runner/clips"
)

func addClips(topLevel *cobra.Command) {
	output := &options.OutputOptions{}
	c := &clips.Clips{Output: output}

	cmd := &cobra.Command{
		Use:   "clips",
		Short: "List the most recent copies made in the grid.",
		Example: `
gridsheet clips
gridsheet clips --limit 5 --json
gridsheet clips --clear
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load()
			if err != nil {
				return output.HandleError(err)
			}
			c.History, err = clipboard.OpenHistory(cfg.ClipStore, cfg.ClipLimit)
			if err != nil {
				return output.HandleError(err)
			}
			return output.HandleError(c.Do(cmd.Context()))
		},
	}

	cmd.Flags().IntVarP(&c.Limit, "limit", "n", 0, "Show at most this many clips.")
	cmd.Flags().BoolVar(&c.Clear, "clear", false, "Erase the clip history.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
