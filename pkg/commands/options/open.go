package options

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OpenOptions configure the interactive grid.
type OpenOptions struct {
	Watch    bool
	Debug    bool
	EventLog bool
	Theme    string
}

func AddOpenArgs(cmd *cobra.Command, o *OpenOptions) {
	cmd.Flags().BoolVar(&o.Watch, "watch", false,
		"Reload the file when it changes on disk.")
	cmd.Flags().BoolVar(&o.Debug, "debug", false,
		"Write a debug log to the configured log_file, or gridsheet.log.")
	cmd.Flags().BoolVar(&o.EventLog, "events", false,
		"Start with the event log pane open.")
	cmd.Flags().StringVar(&o.Theme, "theme", "auto",
		"Colour theme. One of 'auto', 'dark' or 'light'.")
}

// Validate checks flag values.
func (o *OpenOptions) Validate() error {
	switch o.Theme {
	case "auto", "dark", "light":
		return nil
	}
	return fmt.Errorf("--theme must be auto, dark or light, got %q", o.Theme)
}
