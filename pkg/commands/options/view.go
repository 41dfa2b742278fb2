package options

import (
	"github.com/spf13/cobra"
)

// ViewOptions
type ViewOptions struct {
	Watch     bool
	Events    bool
	MaxEvents int
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Reload the grid when the source file changes.")
	cmd.Flags().BoolVar(&o.Events, "events", false,
		"Show the grid event log. Toggle it with e.")
	cmd.Flags().IntVar(&o.MaxEvents, "max-events", 400,
		"Number of events kept in the log.")
}
