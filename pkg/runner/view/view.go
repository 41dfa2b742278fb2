package view

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/hgrid/pkg/runner/project"
	"tableflip.dev/hgrid/pkg/source"
	"tableflip.dev/hgrid/pkg/tui/app"
)

// View opens the interactive grid viewer on a source file.
type View struct {
	Project    *project.Project
	Filter     string
	Watch      bool
	ShowEvents bool
	MaxEvents  int
}

func (v *View) Do(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	roots, err := v.Project.Load()
	if err != nil {
		return err
	}
	g := v.Project.Grid(roots, v.Filter)
	defer g.Close()

	opts := app.Options{
		Path:       v.Project.Path,
		Grid:       g,
		Access:     v.Project.Access,
		LabelKey:   v.Project.Options.LabelKey,
		IDKey:      v.Project.Options.IDKey,
		Padding:    v.Project.Config.Padding,
		Filter:     v.Filter,
		ShowEvents: v.ShowEvents,
		MaxEvents:  v.MaxEvents,
	}
	if v.Watch {
		ch, err := source.Watch(ctx, v.Project.Path)
		if err != nil {
			// Carry on without live reload.
			fmt.Fprintf(os.Stderr, "view: watch disabled: %v\n", err)
		} else {
			opts.Watch = ch
			opts.Load = v.Project.Load
		}
	}
	return app.Run(opts)
}
