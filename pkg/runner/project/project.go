// Package project turns a source file and the loaded configuration into a
// projected grid.
package project

import (
	"github.com/cockroachdb/errors"

	"tableflip.dev/hgrid/pkg/config"
	"tableflip.dev/hgrid/pkg/hgrid"
	"tableflip.dev/hgrid/pkg/matrix"
	"tableflip.dev/hgrid/pkg/printers"
	"tableflip.dev/hgrid/pkg/source"
)

// Project binds a source path to the settings used to read and measure it.
type Project struct {
	Path    string
	Config  *config.Config
	Options source.Options
	Access  source.Accessors
}

// New resolves the source options of cfg. A nil cfg uses the defaults.
func New(path string, cfg *config.Config) (*Project, error) {
	if path == "" {
		return nil, errors.New("no source file given")
	}
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, err
		}
	}
	opts, err := cfg.SourceOptions()
	if err != nil {
		return nil, err
	}
	return &Project{
		Path:    path,
		Config:  cfg,
		Options: opts,
		Access:  source.NewAccessors(opts),
	}, nil
}

// Load reads the top-level documents of the source file.
func (p *Project) Load() ([]any, error) {
	return source.Load(p.Path, p.Options)
}

// Measure is the size function of every grid built by p.
func (p *Project) Measure(doc any) matrix.Size {
	return printers.Measure(p.Access.Label(doc), p.Config.Padding)
}

// Grid builds a grid over roots. A non-empty filter hides documents whose
// subtree has no label containing it.
func (p *Project) Grid(roots []any, filter string) *hgrid.Grid[any] {
	opts := []hgrid.Option[any]{
		hgrid.WithChildren(p.Access.Children),
		hgrid.WithMinSize[any](matrix.Size{Width: p.Config.MinWidth, Height: p.Config.MinHeight}),
	}
	if p.Access.Identity != nil {
		opts = append(opts, hgrid.WithIdentity(p.Access.Identity))
	}
	if filter != "" {
		opts = append(opts, hgrid.WithFilter[any](p.Access.Matcher(filter)))
	}
	g := hgrid.New(p.Measure, opts...)
	g.Source(roots...)
	return g
}
