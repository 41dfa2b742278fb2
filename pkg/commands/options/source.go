// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/hgrid/pkg/config"
	"tableflip.dev/hgrid/pkg/runner/project"
)

// SourceOptions holds the source file and the flags that override the
// configuration file.
type SourceOptions struct {
	Path        string
	Format      string
	ChildrenKey string
	LabelKey    string
	IDKey       string
	Filter      string
	Padding     int
	MinWidth    int

	flags *pflag.FlagSet
}

// AddSourceArgs wires the source flags on the provided command.
func AddSourceArgs(cmd *cobra.Command, o *SourceOptions) {
	o.flags = cmd.Flags()
	cmd.Flags().StringVarP(&o.Format, "format", "f", "",
		"Source format, one of auto, json, yaml or paths. Defaults to the config file.")
	cmd.Flags().StringVar(&o.ChildrenKey, "children-key", "",
		"Field holding child documents.")
	cmd.Flags().StringVar(&o.LabelKey, "label-key", "",
		"Field used as the label.")
	cmd.Flags().StringVar(&o.IDKey, "id-key", "",
		"Field identifying documents. Documents are compared by reference when unset.")
	cmd.Flags().StringVar(&o.Filter, "filter", "",
		"Only show documents whose label, or a descendant's, contains this text.")
	cmd.Flags().IntVar(&o.Padding, "padding", -1,
		"Horizontal padding around labels.")
	cmd.Flags().IntVar(&o.MinWidth, "min-width", -1,
		"Minimum column width.")
}

// Apply overrides cfg with the flags that were set. Without a flag set, zero
// strings and negative numbers count as unset.
func (o *SourceOptions) Apply(cfg *config.Config) {
	if o.set("format", o.Format != "") {
		cfg.Format = o.Format
	}
	if o.set("children-key", o.ChildrenKey != "") {
		cfg.ChildrenKey = o.ChildrenKey
	}
	if o.set("label-key", o.LabelKey != "") {
		cfg.LabelKey = o.LabelKey
	}
	if o.set("id-key", o.IDKey != "") {
		cfg.IDKey = o.IDKey
	}
	if o.set("padding", o.Padding >= 0) {
		cfg.Padding = max(0, o.Padding)
	}
	if o.set("min-width", o.MinWidth >= 0) {
		cfg.MinWidth = max(0, o.MinWidth)
	}
}

func (o *SourceOptions) set(name string, fallback bool) bool {
	if o.flags == nil {
		return fallback
	}
	return o.flags.Changed(name)
}

// Project loads the configuration, applies the flags and resolves the
// source.
func (o *SourceOptions) Project() (*project.Project, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	o.Apply(cfg)
	return project.New(o.Path, cfg)
}
