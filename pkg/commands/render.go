package commands

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/hgrid/pkg/commands/options"
	"tableflip.dev/hgrid/pkg/runner/render"
)

func addRender(topLevel *cobra.Command) {
	so := &options.SourceOptions{}
	ro := &options.RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Print the grid of a source file.",
		Long: base.Wrap80("Print the grid projected from a JSON, YAML or path list source. " +
			"Every document takes the column of its depth and the rows of its visible leaves."),
		Example: `
hgrid render org.yaml
hgrid render journal.txt --filter october
hgrid render org.json --boxes
hgrid render org.json --json
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
				return oo.HandleError(err)
			}
			r := render.Render{
				Project:  p,
				Filter:   so.Filter,
				Boxes:    ro.Boxes,
				JSON:     oo.JSON,
				MaxWidth: ro.MaxWidth,
				Out:      cmd.OutOrStdout(),
			}
			err = r.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSourceArgs(cmd, so)
	options.AddRenderArgs(cmd, ro)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
