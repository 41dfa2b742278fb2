package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParsePaths reads one slash-separated path per line, for example
//
//	Future/October 2025/October 11, 2025
//
// and returns the top-level documents of the implied tree. Missing parents
// are created. Siblings keep the order in which they first appear. Blank
// lines and lines starting with # are ignored.
//
// Every document is a map with "id" (the full path), "name" (the last
// segment) and, when it has any, "children".
func ParsePaths(r io.Reader) ([]any, error) {
	b := &pathBuilder{nodes: make(map[string]map[string]any)}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		b.add(splitPath(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read paths")
	}
	return b.roots, nil
}

func splitPath(line string) []string {
	var parts []string
	for _, p := range strings.Split(line, "/") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

type pathBuilder struct {
	roots []any
	nodes map[string]map[string]any
}

func (b *pathBuilder) add(parts []string) {
	var parent map[string]any
	for i := range parts {
		id := strings.Join(parts[:i+1], "/")
		node, ok := b.nodes[id]
		if !ok {
			node = map[string]any{"id": id, "name": parts[i]}
			b.nodes[id] = node
			if parent == nil {
				b.roots = append(b.roots, node)
			} else {
				children, _ := parent["children"].([]any)
				parent["children"] = append(children, node)
			}
		}
		parent = node
	}
}
