package hgrid

import "tableflip.dev/hgrid/pkg/hierarchy"

// Add appends item as the last child of parent. An item already in the grid
// is moved under parent instead. It returns false when parent is unknown or
// the move would create a cycle.
func (g *Grid[D]) Add(parent, item D) bool {
	pn, ok := g.node(parent)
	if !ok {
		return false
	}
	return g.add(pn, item)
}

// AddRoot appends item as the last top-level item.
func (g *Grid[D]) AddRoot(item D) bool {
	if g.closed {
		return false
	}
	return g.add(g.root, item)
}

func (g *Grid[D]) add(pn *Node[D], item D) bool {
	if !g.begin() {
		return false
	}
	defer g.end()

	if n, ok := g.node(item); ok {
		return g.reparent(n, pn)
	}
	n := wrap(pn.NewNode(item))
	return g.attach(pn, n)
}

// attach appends the detached subtree n to pn and projects it. When pn is
// placed, the new subtree goes right below pn's current span: on pn's own row
// if pn had no visible children, since the first child takes over the
// parent's placeholder row.
func (g *Grid[D]) attach(pn, n *Node[D]) bool {
	_, row, placed := g.position(pn)
	if !pn.IsEmpty() {
		row += pn.leafCount
	}
	amount, ok := pn.AddNode(n)
	if !ok {
		return false
	}
	g.register(n)
	if !placed || !n.Visible() {
		return true
	}
	if amount > 0 {
		g.shiftDown(pn, amount)
	}
	g.place(n, row)
	return true
}

// Remove deletes item and its subtree. Later subtrees move up to close the
// gap and trailing empty rows and columns are trimmed. Removing the last
// placed item leaves a 0x0 grid, as Source with no roots does.
func (g *Grid[D]) Remove(item D) bool {
	n, ok := g.node(item)
	if !ok || !g.begin() {
		return false
	}
	defer g.end()

	g.detach(n)
	g.unregister(n)
	g.trim()
	return true
}

// detach removes the subtree of n from its parent and from the matrix,
// moving the subtrees that followed it up by the rows it gave back.
func (g *Grid[D]) detach(n *Node[D]) {
	pn := n.Parent()
	if pn == nil {
		return
	}
	_, _, placed := g.matrix.Index(n)

	var later []*Node[D]
	if placed {
		later = g.following(n)
		hierarchy.PreOrder(n.Node, func(h *hierarchy.Node[D]) bool {
			g.matrix.Remove(wrap(h))
			return true
		})
	}
	amount, _ := pn.RemoveNode(n)
	if placed && amount < 0 {
		g.shiftUp(later, amount)
	}
}

func (g *Grid[D]) trim() {
	if g.matrix.Len() == 0 {
		g.matrix.Clear()
		return
	}
	g.matrix.TrimBelow()
	g.matrix.TrimRight()
}

// Move re-parents item under newParent, keeping its node and subtree.
func (g *Grid[D]) Move(item, newParent D) bool {
	n, ok := g.node(item)
	if !ok {
		return false
	}
	pn, ok := g.node(newParent)
	if !ok || !g.begin() {
		return false
	}
	defer g.end()
	return g.reparent(n, pn)
}

// MoveRoot makes item a top-level item.
func (g *Grid[D]) MoveRoot(item D) bool {
	n, ok := g.node(item)
	if !ok || !g.begin() {
		return false
	}
	defer g.end()
	return g.reparent(n, g.root)
}

func (g *Grid[D]) reparent(n, pn *Node[D]) bool {
	if n == pn || n.Parent() == pn || n.IsAncestorOf(pn.Node) {
		return false
	}
	g.detach(n)
	if !g.attach(pn, n) {
		return false
	}
	g.trim()
	return true
}

// Update re-derives the size of the row and column holding item after its
// intrinsic size changed.
func (g *Grid[D]) Update(item D) bool {
	n, ok := g.node(item)
	if !ok || !g.begin() {
		return false
	}
	defer g.end()
	return g.matrix.Update(n)
}

// Filter sets the visibility predicate and rebuilds the projection over the
// existing nodes. A nil predicate shows everything. OnReset listeners fire
// afterwards.
func (g *Grid[D]) Filter(pred hierarchy.Predicate[D]) {
	if !g.begin() {
		return
	}
	defer g.end()
	g.cfg.filter = pred
	g.forest.Filter(pred)
	g.regenerate()
}
