// Package hgrid keeps a tree of arbitrary source data projected onto a sparse
// matrix, one column per depth and one row per visible leaf.
//
// A node sits in the column equal to its depth and in the row of its first
// visible leaf descendant, so a parent is row-aligned with its first child and
// each subtree occupies a contiguous run of rows equal to its leaf count. Add,
// Remove and Move only touch the sibling subtrees after the change, shifting
// their cells by the change in leaf count.
//
// Like the matrix it drives, a Grid is single-threaded and emits events
// synchronously once the mutating call has committed its state.
package hgrid

import (
	"github.com/cockroachdb/swiss"

	"tableflip.dev/hgrid/pkg/hierarchy"
	"tableflip.dev/hgrid/pkg/matrix"
	"tableflip.dev/hgrid/pkg/signal"
)

// ItemEvent reports an item entering or leaving a cell. Parent is the item's
// parent data at the time of the change; HasParent is false for top-level
// items.
type ItemEvent[D any] struct {
	Col, Row  int
	Item      D
	Parent    D
	HasParent bool
}

// Cell is an occupied grid cell.
type Cell[D any] struct {
	Col, Row int
	Item     D
}

type config[D any] struct {
	identity func(D) string
	children hierarchy.ChildrenFunc[D]
	filter   hierarchy.Predicate[D]
	minSize  matrix.Size
}

// Option configures a Grid.
type Option[D any] func(*config[D])

// WithIdentity keys items by a stable string instead of by reference.
func WithIdentity[D any](fn func(D) string) Option[D] {
	return func(c *config[D]) {
		c.identity = fn
	}
}

// WithChildren sets the children accessor. The default is
// hierarchy.DefaultChildren.
func WithChildren[D any](fn hierarchy.ChildrenFunc[D]) Option[D] {
	return func(c *config[D]) {
		c.children = fn
	}
}

// WithFilter sets the initial visibility predicate.
func WithFilter[D any](fn hierarchy.Predicate[D]) Option[D] {
	return func(c *config[D]) {
		c.filter = fn
	}
}

// WithMinSize sets the minimum column width and row height.
func WithMinSize[D any](size matrix.Size) Option[D] {
	return func(c *config[D]) {
		c.minSize = size
	}
}

// Grid projects a forest onto a matrix.
type Grid[D any] struct {
	cfg    config[D]
	sizeOf matrix.SizeFunc[D]

	forest *hierarchy.Node[D]
	root   *Node[D]
	matrix *matrix.Matrix[*Node[D]]
	nodes  *swiss.Map[any, *Node[D]]
	unbind []signal.Unbind

	batch       signal.Batch
	tail        *itemBatch[D]
	reset       signal.Signal[struct{}]
	rowChange   signal.Signal[matrix.LineEvent]
	colChange   signal.Signal[matrix.LineEvent]
	itemAdded   signal.Signal[[]ItemEvent[D]]
	itemRemoved signal.Signal[[]ItemEvent[D]]

	closed bool
}

// New creates an empty grid measuring items with sizeOf.
func New[D any](sizeOf matrix.SizeFunc[D], opts ...Option[D]) *Grid[D] {
	cfg := config[D]{children: hierarchy.DefaultChildren[D]}
	for _, opt := range opts {
		opt(&cfg)
	}
	if sizeOf == nil {
		sizeOf = func(D) matrix.Size { return matrix.Size{} }
	}
	g := &Grid[D]{cfg: cfg, sizeOf: sizeOf}
	g.Source()
	return g
}

// Source replaces the whole tree with roots and rebuilds the projection.
// Every node is created again, so this is meant for loading data, not for
// fine-grained updates. OnReset listeners fire afterwards.
func (g *Grid[D]) Source(roots ...D) {
	if g.closed {
		return
	}
	g.batch.Begin()
	defer g.batch.End()

	g.forest = hierarchy.NewForest(roots,
		hierarchy.WithChildren(g.cfg.children),
		hierarchy.WithFilter(g.cfg.filter))
	g.regenerate()
}

// regenerate tears down the matrix and the item index and projects the
// current forest again.
func (g *Grid[D]) regenerate() {
	g.unwire()
	if g.matrix != nil {
		g.matrix.Close()
	}
	if g.nodes != nil {
		g.nodes.Close()
	}

	g.matrix = matrix.New(g.sizeOfNode, matrix.WithMinSize[*Node[D]](g.cfg.minSize))
	g.nodes = &swiss.Map[any, *Node[D]]{}
	g.nodes.Init(16)

	g.root = wrap(g.forest)
	g.root.recount()
	g.register(g.root)
	row := 0
	for _, c := range g.root.ChildNodes() {
		g.place(c, row)
		row += c.leafCount
	}

	g.wire()
	g.batch.Defer(func() { g.reset.Emit(struct{}{}) })
}

func (g *Grid[D]) sizeOfNode(n *Node[D]) matrix.Size {
	return g.sizeOf(n.Data())
}

func (g *Grid[D]) key(item D) any {
	if g.cfg.identity != nil {
		return g.cfg.identity(item)
	}
	return matrix.RefKey(item)
}

// node looks up the node holding item.
func (g *Grid[D]) node(item D) (*Node[D], bool) {
	if g.closed {
		return nil, false
	}
	return g.nodes.Get(g.key(item))
}

// register indexes n and every materialized descendant, shown or not.
func (g *Grid[D]) register(n *Node[D]) {
	if !n.IsVirtual() {
		g.nodes.Put(g.key(n.Data()), n)
	}
	for _, c := range n.AllChildNodes() {
		g.register(wrap(c))
	}
}

func (g *Grid[D]) unregister(n *Node[D]) {
	if !n.IsVirtual() {
		k := g.key(n.Data())
		if cur, ok := g.nodes.Get(k); ok && cur == n {
			g.nodes.Delete(k)
		}
	}
	if !n.Materialized() {
		return
	}
	for _, c := range n.AllChildNodes() {
		g.unregister(wrap(c))
	}
}

// place writes the visible subtree of n into the matrix in increasing
// pre-order, n at row and each child below the previous child's span.
func (g *Grid[D]) place(n *Node[D], row int) {
	g.matrix.Put(n.Depth(), row, n)
	for _, c := range n.ChildNodes() {
		g.place(c, row)
		row += c.leafCount
	}
}

// position returns the cell of a placed node. The virtual root sits just
// left of column 0 on row 0.
func (g *Grid[D]) position(n *Node[D]) (col, row int, ok bool) {
	if n.IsVirtual() {
		return -1, 0, true
	}
	return g.matrix.Index(n)
}

// Close detaches every listener and releases the matrix and the index. Later
// calls are ignored.
func (g *Grid[D]) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.unwire()
	g.matrix.Close()
	g.nodes.Close()
	g.batch.Discard()
	g.tail = nil
	g.reset.Reset()
	g.rowChange.Reset()
	g.colChange.Reset()
	g.itemAdded.Reset()
	g.itemRemoved.Reset()
}

// Closed reports whether Close was called.
func (g *Grid[D]) Closed() bool {
	return g.closed
}

func (g *Grid[D]) begin() bool {
	if g.closed {
		return false
	}
	g.batch.Begin()
	return true
}

func (g *Grid[D]) end() {
	g.batch.End()
}
