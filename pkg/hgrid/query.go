package hgrid

import (
	"tableflip.dev/hgrid/pkg/matrix"
)

// Size returns the aggregate width and height of the grid.
func (g *Grid[D]) Size() matrix.Size {
	return g.matrix.Size()
}

// Count returns the number of rows and columns.
func (g *Grid[D]) Count() matrix.IndexSize {
	return g.matrix.Count()
}

// UpdatePosition recomputes stale offsets. Box queries are only current
// after it ran.
func (g *Grid[D]) UpdatePosition() {
	if !g.begin() {
		return
	}
	defer g.end()
	g.matrix.UpdatePosition()
}

// Item returns the item at (col, row).
func (g *Grid[D]) Item(col, row int) (D, bool) {
	n, ok := g.matrix.Get(col, row)
	if !ok {
		var zero D
		return zero, false
	}
	return n.Data(), true
}

// Index returns the cell of item. Items hidden by the filter, or below a
// hidden ancestor, have no cell.
func (g *Grid[D]) Index(item D) (col, row int, ok bool) {
	n, ok := g.node(item)
	if !ok {
		return -1, -1, false
	}
	return g.matrix.Index(n)
}

// ItemBox returns the rectangle of item's cell.
func (g *Grid[D]) ItemBox(item D) (matrix.Box, bool) {
	n, ok := g.node(item)
	if !ok {
		return matrix.Box{}, false
	}
	return g.matrix.ItemBox(n)
}

// ItemBoxBy returns the rectangle of the item with the given identity. It
// needs WithIdentity.
func (g *Grid[D]) ItemBoxBy(id string) (matrix.Box, bool) {
	if g.closed || g.cfg.identity == nil {
		return matrix.Box{}, false
	}
	n, ok := g.nodes.Get(id)
	if !ok {
		return matrix.Box{}, false
	}
	return g.matrix.ItemBox(n)
}

// CellBox returns the rectangle of the cell at (col, row).
func (g *Grid[D]) CellBox(col, row int) (matrix.Box, bool) {
	return g.matrix.CellBox(col, row)
}

// RowBox returns the rectangle of row i.
func (g *Grid[D]) RowBox(i int) (matrix.Box, bool) {
	return g.matrix.RowBox(i)
}

// ColBox returns the rectangle of column i.
func (g *Grid[D]) ColBox(i int) (matrix.Box, bool) {
	return g.matrix.ColBox(i)
}

// Parent returns the parent of item. ok is false for unknown and top-level
// items.
func (g *Grid[D]) Parent(item D) (D, bool) {
	var zero D
	n, ok := g.node(item)
	if !ok {
		return zero, false
	}
	p := n.Parent()
	if p == nil || p.IsVirtual() {
		return zero, false
	}
	return p.Data(), true
}

// Parents returns the ancestors of item, nearest first.
func (g *Grid[D]) Parents(item D) []D {
	n, ok := g.node(item)
	if !ok {
		return nil
	}
	var out []D
	for p := n.Parent(); p != nil && !p.IsVirtual(); p = p.Parent() {
		out = append(out, p.Data())
	}
	return out
}

// LeafCount returns the number of rows item's subtree spans, 0 for unknown
// items.
func (g *Grid[D]) LeafCount(item D) int {
	n, ok := g.node(item)
	if !ok {
		return 0
	}
	return n.leafCount
}

// Node returns the tree node holding item.
func (g *Grid[D]) Node(item D) (*Node[D], bool) {
	return g.node(item)
}

// Root returns the virtual root whose children are the top-level items.
func (g *Grid[D]) Root() *Node[D] {
	return g.root
}

// Each calls fn for every occupied cell in row-major order until fn returns
// false.
func (g *Grid[D]) Each(fn func(Cell[D]) bool) {
	g.EachRows(0, g.matrix.Count().Rows-1, fn)
}

// EachRows is Each restricted to the inclusive row range [from, to].
func (g *Grid[D]) EachRows(from, to int, fn func(Cell[D]) bool) {
	g.matrix.EachRows(from, to, func(col, row int, n *Node[D]) bool {
		return fn(Cell[D]{Col: col, Row: row, Item: n.Data()})
	})
}
