// Package hierarchy projects arbitrary parent/child source data into a
// navigable, filterable tree without copying the data.
//
// Children are materialized lazily: a node asks the children accessor for its
// source children the first time they are needed and caches both the full
// list and the filtered view. Filtering never removes a node from the tree;
// it only changes whether the node appears in its parent's filtered view.
package hierarchy

import "slices"

// ChildrenFunc returns the source children of data. A nil result marks a leaf.
type ChildrenFunc[D any] func(data D) []D

// Predicate decides whether source data is visible.
type Predicate[D any] func(data D) bool

// tree holds the settings shared by every node of one hierarchy.
type tree[D any] struct {
	children ChildrenFunc[D]
	nextID   int
}

func (t *tree[D]) id() int {
	t.nextID++
	return t.nextID
}

type options[D any] struct {
	children ChildrenFunc[D]
	filter   Predicate[D]
}

// Option configures a new tree.
type Option[D any] func(*options[D])

// WithChildren sets the children accessor. The default is DefaultChildren.
func WithChildren[D any](fn ChildrenFunc[D]) Option[D] {
	return func(o *options[D]) {
		o.children = fn
	}
}

// WithFilter sets the initial visibility predicate.
func WithFilter[D any](fn Predicate[D]) Option[D] {
	return func(o *options[D]) {
		o.filter = fn
	}
}

// Node is one element of a hierarchy.
type Node[D any] struct {
	// Meta is an opaque slot for callers layering their own bookkeeping on
	// top of the tree. The tree never reads it.
	Meta any

	id      int
	data    D
	forest  []D
	virtual bool

	parent *Node[D]
	root   *Node[D]
	depth  int

	tree   *tree[D]
	filter Predicate[D]

	materialized bool
	all          []*Node[D]
	visible      []*Node[D]
	shown        bool
}

func newTree[D any](opts []Option[D]) (*tree[D], Predicate[D]) {
	o := options[D]{children: DefaultChildren[D]}
	for _, opt := range opts {
		opt(&o)
	}
	return &tree[D]{children: o.children}, o.filter
}

// NewRoot creates the root of a tree over data.
func NewRoot[D any](data D, opts ...Option[D]) *Node[D] {
	t, filter := newTree(opts)
	n := &Node[D]{id: t.id(), data: data, tree: t, filter: filter, shown: true}
	n.root = n
	return n
}

// NewForest creates a virtual root whose children are roots. The virtual root
// has depth -1 so that the top-level nodes are at depth 0.
func NewForest[D any](roots []D, opts ...Option[D]) *Node[D] {
	t, filter := newTree(opts)
	n := &Node[D]{
		id:      t.id(),
		forest:  slices.Clone(roots),
		virtual: true,
		depth:   -1,
		tree:    t,
		filter:  filter,
		shown:   true,
	}
	n.root = n
	return n
}

// ID is unique among the nodes of one tree.
func (n *Node[D]) ID() int { return n.id }

// Data returns the source data. It is the zero value for a virtual root.
func (n *Node[D]) Data() D { return n.data }

// Parent returns the parent node, nil for a root or a detached node.
func (n *Node[D]) Parent() *Node[D] { return n.parent }

// Root returns the topmost ancestor.
func (n *Node[D]) Root() *Node[D] { return n.root }

// Depth is 0 for a root, -1 for a virtual root.
func (n *Node[D]) Depth() int { return n.depth }

// IsVirtual reports whether n is the data-less root of a forest.
func (n *Node[D]) IsVirtual() bool { return n.virtual }

// IsRoot reports whether n is a top-level node.
func (n *Node[D]) IsRoot() bool {
	return n.parent == nil || n.parent.virtual
}

// IsLeaf reports whether n has no visible children.
func (n *Node[D]) IsLeaf() bool {
	return len(n.ChildNodes()) == 0
}

// Visible reports whether n appears in its parent's filtered view. Detached
// nodes and roots are always visible.
func (n *Node[D]) Visible() bool {
	return n.parent == nil || n.shown
}

// IsAncestorOf reports whether n is a strict ancestor of m.
func (n *Node[D]) IsAncestorOf(m *Node[D]) bool {
	if m == nil {
		return false
	}
	for p := m.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Children returns the raw output of the children accessor.
func (n *Node[D]) Children() []D {
	if n.virtual {
		return n.forest
	}
	if n.tree.children == nil {
		return nil
	}
	return n.tree.children(n.data)
}

// ChildNodes returns the visible children, materializing them on first use.
// The returned slice must not be modified.
func (n *Node[D]) ChildNodes() []*Node[D] {
	n.materialize()
	return n.visible
}

// AllChildNodes returns every materialized child regardless of the filter.
// The returned slice must not be modified.
func (n *Node[D]) AllChildNodes() []*Node[D] {
	n.materialize()
	return n.all
}

// Materialized reports whether the children of n have been created.
func (n *Node[D]) Materialized() bool {
	return n.materialized
}

func (n *Node[D]) materialize() {
	if n.materialized {
		return
	}
	n.materialized = true
	for _, d := range n.Children() {
		c := &Node[D]{
			id:     n.tree.id(),
			data:   d,
			parent: n,
			root:   n.root,
			depth:  n.depth + 1,
			tree:   n.tree,
			filter: n.filter,
		}
		n.all = append(n.all, c)
	}
	n.refilter()
}

func (n *Node[D]) passes(c *Node[D]) bool {
	return n.filter == nil || n.filter(c.data)
}

func (n *Node[D]) refilter() {
	visible := make([]*Node[D], 0, len(n.all))
	for _, c := range n.all {
		c.shown = n.passes(c)
		if c.shown {
			visible = append(visible, c)
		}
	}
	n.visible = visible
}

// Filter sets the visibility predicate on n and on every materialized
// descendant and recomputes their filtered views. A nil predicate shows
// everything. n itself stays in the tree whatever the predicate says of it.
func (n *Node[D]) Filter(pred Predicate[D]) {
	n.filter = pred
	if !n.materialized {
		return
	}
	for _, c := range n.all {
		c.Filter(pred)
	}
	n.refilter()
}

// NewNode creates a detached node over data that shares the settings of n's
// tree. Attach it with AddNode.
func (n *Node[D]) NewNode(data D) *Node[D] {
	c := &Node[D]{id: n.tree.id(), data: data, tree: n.tree, filter: n.filter, shown: true}
	c.root = c
	return c
}

// Add creates a child over data and appends it.
func (n *Node[D]) Add(data D) (*Node[D], bool) {
	c := n.NewNode(data)
	return c, n.AddNode(c)
}

// AddNode appends c to the children of n. It returns false when c is nil, is
// already attached, is a virtual root, or is n or one of its ancestors.
func (n *Node[D]) AddNode(c *Node[D]) bool {
	if c == nil || c == n || c.virtual || c.parent != nil || c.IsAncestorOf(n) {
		return false
	}
	n.materialize()
	c.parent = n
	c.adopt(n)
	n.all = append(n.all, c)
	c.shown = n.passes(c)
	if c.shown {
		n.visible = append(n.visible, c)
	}
	return true
}

// adopt aligns the depth, root and settings of a freshly attached subtree
// with its new parent.
func (n *Node[D]) adopt(p *Node[D]) {
	n.depth = p.depth + 1
	n.root = p.root
	n.tree = p.tree
	n.filter = p.filter
	if !n.materialized {
		return
	}
	for _, c := range n.all {
		c.adopt(n)
	}
	n.refilter()
}

// RemoveNode detaches the child c. It returns false when c is not a child
// of n.
func (n *Node[D]) RemoveNode(c *Node[D]) bool {
	if c == nil || c.parent != n {
		return false
	}
	n.all = slices.DeleteFunc(n.all, func(x *Node[D]) bool { return x == c })
	n.visible = slices.DeleteFunc(n.visible, func(x *Node[D]) bool { return x == c })
	c.parent = nil
	c.shown = true
	c.reroot(c, 0)
	return true
}

func (n *Node[D]) reroot(root *Node[D], depth int) {
	n.root = root
	n.depth = depth
	for _, c := range n.all {
		c.reroot(root, depth+1)
	}
}

// SwitchParent moves n under p, keeping the node and its materialized
// subtree. It returns false when p is nil, already the parent, or inside the
// subtree of n.
func (n *Node[D]) SwitchParent(p *Node[D]) bool {
	if p == nil || p == n || p == n.parent || n.IsAncestorOf(p) {
		return false
	}
	if n.parent != nil {
		n.parent.RemoveNode(n)
	}
	return p.AddNode(n)
}

// IndexOf returns the position of c among the visible children of n, or -1.
func (n *Node[D]) IndexOf(c *Node[D]) int {
	return slices.Index(n.ChildNodes(), c)
}
