package hgrid

import "tableflip.dev/hgrid/pkg/hierarchy"

// Shifting rewrites cells in place, so the visiting order decides whether a
// move lands on a cell that has not been read yet.
//
// Moving down, every write targets a higher row, so cells are visited in
// decreasing pre-order: the last following subtree first and, within each,
// the last descendant first. Moving up, every write targets a lower row, so
// cells are visited in increasing pre-order: the nearest subtree first,
// parents before children.

// following returns the subtrees after the subtree of n in pre-order, nearest
// first. Collecting them before mutating keeps the walk stable.
func (g *Grid[D]) following(n *Node[D]) []*Node[D] {
	var out []*Node[D]
	hierarchy.NextSiblings(n.Node, func(h *hierarchy.Node[D]) bool {
		out = append(out, wrap(h))
		return true
	})
	return out
}

// shiftDown moves every subtree after pn down by amount rows.
func (g *Grid[D]) shiftDown(pn *Node[D], amount int) {
	later := g.following(pn)
	for i := len(later) - 1; i >= 0; i-- {
		hierarchy.ReversePreOrder(later[i].Node, func(h *hierarchy.Node[D]) bool {
			g.shift(wrap(h), amount)
			return true
		})
	}
}

// shiftUp moves the given subtrees up by -amount rows.
func (g *Grid[D]) shiftUp(later []*Node[D], amount int) {
	for _, s := range later {
		hierarchy.PreOrder(s.Node, func(h *hierarchy.Node[D]) bool {
			g.shift(wrap(h), amount)
			return true
		})
	}
}

func (g *Grid[D]) shift(n *Node[D], amount int) {
	col, row, ok := g.matrix.Index(n)
	if !ok {
		return
	}
	g.matrix.Move(n, col, row+amount)
}
