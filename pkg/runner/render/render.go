package render

import (
	"context"
	"io"
	"os"

	"tableflip.dev/hgrid/pkg/printers"
	"tableflip.dev/hgrid/pkg/runner/project"
)

// Render prints the projected grid of a source file once.
type Render struct {
	Project *project.Project
	Filter  string
	Boxes   bool
	JSON    bool
	// MaxWidth caps table labels; 0 leaves them whole.
	MaxWidth int
	Out      io.Writer
}

func (r *Render) Do(ctx context.Context) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	roots, err := r.Project.Load()
	if err != nil {
		return err
	}
	g := r.Project.Grid(roots, r.Filter)
	defer g.Close()

	p := &printers.GridPrinter[any]{
		Out:      out,
		Label:    r.Project.Access.Label,
		Color:    printers.UseColor(out),
		MaxWidth: r.MaxWidth,
	}
	switch {
	case r.JSON:
		return p.JSON(g)
	case r.Boxes:
		p.Boxes(g)
	default:
		p.Table(g)
	}
	return nil
}
