// Package source loads hierarchical documents for the grid from JSON, YAML or
// slash-separated path lists.
package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-homedir"
	"sigs.k8s.io/yaml"
)

// Format names a source encoding.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatPaths Format = "paths"
)

// Options describes how to read a source and how to interpret its documents.
type Options struct {
	Format      Format
	ChildrenKey string
	LabelKey    string
	IDKey       string
}

// DefaultOptions reads `children` and labels documents by `name`.
func DefaultOptions() Options {
	return Options{
		Format:      FormatAuto,
		ChildrenKey: "children",
		LabelKey:    "name",
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatYAML, FormatPaths:
		return f, nil
	default:
		return "", errors.Newf("unknown source format %q", s)
	}
}

// Load reads the file at path and returns its top-level documents.
func Load(path string, opts Options) ([]any, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expand %s", path)
	}
	raw, err := os.ReadFile(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", expanded)
	}
	format := opts.Format
	if format == "" || format == FormatAuto {
		format = Detect(expanded)
	}
	docs, err := Decode(raw, format)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", expanded)
	}
	return docs, nil
}

// Detect picks a format from the file extension. Unknown extensions are read
// as path lists.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatPaths
	}
}

// Decode parses raw in the given format. An array holds several top-level
// documents; any other value is a single document.
func Decode(raw []byte, format Format) ([]any, error) {
	if format == FormatPaths {
		return ParsePaths(bytes.NewReader(raw))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	// JSON is a subset of YAML, so one decoder serves both.
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, errors.Wrapf(err, "parse %s", format)
	}
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return t, nil
	default:
		return []any{t}, nil
	}
}
