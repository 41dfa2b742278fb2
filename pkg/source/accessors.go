package source

import (
	"fmt"
	"strings"

	"tableflip.dev/hgrid/pkg/hierarchy"
)

// Accessors interpret decoded documents.
type Accessors struct {
	Children hierarchy.ChildrenFunc[any]
	Label    func(any) string
	// Identity is nil when documents are identified by reference.
	Identity func(any) string
}

// NewAccessors builds accessors honouring the keys in opts.
func NewAccessors(opts Options) Accessors {
	childrenKey := opts.ChildrenKey
	if childrenKey == "" {
		childrenKey = "children"
	}
	a := Accessors{
		Children: hierarchy.KeyedChildren[any](childrenKey),
		Label:    labeler(opts.LabelKey, opts.IDKey),
	}
	if opts.IDKey != "" {
		key := opts.IDKey
		a.Identity = func(doc any) string {
			return field(doc, key)
		}
	}
	return a
}

// labeler prefers the label key, then the id key, then "id", and finally
// the document itself for scalars.
func labeler(labelKey, idKey string) func(any) string {
	keys := make([]string, 0, 3)
	for _, k := range []string{labelKey, idKey, "id"} {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return func(doc any) string {
		if _, ok := doc.(map[string]any); !ok {
			return scalar(doc)
		}
		for _, k := range keys {
			if s := field(doc, k); s != "" {
				return s
			}
		}
		return ""
	}
}

func field(doc any, key string) string {
	m, ok := doc.(map[string]any)
	if !ok {
		return ""
	}
	v, ok := m[key]
	if !ok {
		return ""
	}
	return scalar(v)
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// Matcher returns a predicate keeping documents whose label contains text,
// ignoring case, or that have such a descendant, so matches stay reachable
// from the top level. An empty text matches everything.
func (a Accessors) Matcher(text string) func(any) bool {
	needle := strings.ToLower(text)
	var match func(any) bool
	match = func(doc any) bool {
		if strings.Contains(strings.ToLower(a.Label(doc)), needle) {
			return true
		}
		for _, c := range a.Children(doc) {
			if match(c) {
				return true
			}
		}
		return false
	}
	return match
}
