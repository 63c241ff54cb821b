package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "gridsheet",
		Short: base.Wrap80("A spreadsheet grid for tab-separated text in the terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addOpen(topLevel)
	addInspect(topLevel)
	addKeys(topLevel)
	addClips(topLevel)
	addCompletion(topLevel)
	addVersion(topLevel)
}

// tsvFiles completes file arguments, preferring tab-separated files.
func tsvFiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"tsv", "tab", "txt"}, cobra.ShellCompDirectiveFilterFileExt
}
