package hgrid

import "tableflip.dev/hgrid/pkg/hierarchy"

// Node is a tree node that knows how many grid rows its subtree spans.
//
// leafCount is the number of visible leaf descendants, or 1 for a node with
// no visible children: a childless node still occupies its own row. The
// virtual root of a forest does not occupy a row, so its count is the plain
// sum over its children.
type Node[D any] struct {
	*hierarchy.Node[D]
	leafCount int
}

// wrap returns the grid node layered over h, creating it on first use. A new
// node counts its leaves bottom-up over the children that already exist.
func wrap[D any](h *hierarchy.Node[D]) *Node[D] {
	if h == nil {
		return nil
	}
	if n, ok := h.Meta.(*Node[D]); ok {
		return n
	}
	n := &Node[D]{Node: h}
	h.Meta = n
	n.leafCount = n.count()
	return n
}

func (n *Node[D]) count() int {
	sum := 0
	for _, c := range n.Node.ChildNodes() {
		sum += wrap(c).leafCount
	}
	if n.IsVirtual() {
		return sum
	}
	return max(1, sum)
}

// recount recomputes the leaf counts after the filter changed. Every wrapped
// descendant is visited, hidden ones included, since a hidden subtree may be
// moved back into view later. Unwrapped nodes count themselves when wrapped.
func (n *Node[D]) recount() {
	for _, c := range n.AllChildNodes() {
		if gn, ok := c.Meta.(*Node[D]); ok {
			gn.recount()
		}
	}
	n.leafCount = n.count()
}

// LeafCount returns the number of rows the subtree of n spans.
func (n *Node[D]) LeafCount() int {
	return n.leafCount
}

// Parent returns the parent grid node, nil for a detached node.
func (n *Node[D]) Parent() *Node[D] {
	return wrap(n.Node.Parent())
}

// ChildNodes returns the visible children.
func (n *Node[D]) ChildNodes() []*Node[D] {
	hs := n.Node.ChildNodes()
	out := make([]*Node[D], len(hs))
	for i, h := range hs {
		out[i] = wrap(h)
	}
	return out
}

// IsEmpty reports whether n has no visible children.
func (n *Node[D]) IsEmpty() bool {
	return len(n.Node.ChildNodes()) == 0
}

// IsLastOne reports whether c is the only visible child of n.
func (n *Node[D]) IsLastOne(c *Node[D]) bool {
	hs := n.Node.ChildNodes()
	return len(hs) == 1 && hs[0] == c.Node
}

// AddNode appends c and returns the change in n's leaf count that was
// applied to n and its ancestors. The first visible child of a node replaces
// the node's own placeholder row, so it contributes one row less.
func (n *Node[D]) AddNode(c *Node[D]) (int, bool) {
	if c == nil {
		return 0, false
	}
	wasEmpty := n.IsEmpty()
	if !n.Node.AddNode(c.Node) {
		return 0, false
	}
	if !c.Visible() {
		return 0, true
	}
	delta := c.leafCount
	if wasEmpty && !n.IsVirtual() {
		delta--
	}
	n.propagate(delta)
	return delta, true
}

// RemoveNode detaches c and returns the change in n's leaf count that was
// applied to n and its ancestors. Removing the last visible child gives the
// node its placeholder row back.
func (n *Node[D]) RemoveNode(c *Node[D]) (int, bool) {
	if c == nil {
		return 0, false
	}
	visible := c.Visible()
	last := n.IsLastOne(c)
	if !n.Node.RemoveNode(c.Node) {
		return 0, false
	}
	if !visible {
		return 0, true
	}
	delta := -c.leafCount
	if last && !n.IsVirtual() {
		delta++
	}
	n.propagate(delta)
	return delta, true
}

// propagate adds delta to n and its ancestors, stopping above the first node
// its parent does not show.
func (n *Node[D]) propagate(delta int) {
	if delta == 0 {
		return
	}
	for p := n; p != nil; p = p.Parent() {
		p.leafCount += delta
		if !p.Visible() {
			return
		}
	}
}
