package options

import (
	"github.com/spf13/cobra"
)

// RenderOptions
type RenderOptions struct {
	Boxes    bool
	MaxWidth int
}

func AddRenderArgs(cmd *cobra.Command, o *RenderOptions) {
	cmd.Flags().BoolVar(&o.Boxes, "boxes", false,
		"Print the box of every cell instead of the grid.")
	cmd.Flags().IntVar(&o.MaxWidth, "max-width", 0,
		"Cut labels wider than this many cells. 0 keeps them whole.")
}
