package commands

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"tableflip.dev/hgrid/pkg/commands/options"
	"tableflip.dev/hgrid/pkg/runner/view"
)

func addView(topLevel *cobra.Command) {
	so := &options.SourceOptions{}
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Browse and edit the grid of a source file in the terminal.",
		Example: `
hgrid view org.yaml
hgrid view journal.txt --watch --events
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one source file")
			}
			so.Path = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := so.Project()
			if err != nil {
				return err
			}
			v := view.View{
				Project:    p,
				Filter:     so.Filter,
				Watch:      vo.Watch,
				ShowEvents: vo.Events,
				MaxEvents:  vo.MaxEvents,
			}
			return v.Do(context.Background())
		},
	}

	options.AddSourceArgs(cmd, so)
	options.AddViewArgs(cmd, vo)
	topLevel.AddCommand(cmd)
}
