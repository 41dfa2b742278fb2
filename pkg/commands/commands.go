package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use: "hgrid",
		Short: base.Wrap80("Project hierarchical documents onto a grid: one column per " +
			"depth, one row per leaf, with every box sized to its label."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRender(topLevel)
	addView(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
