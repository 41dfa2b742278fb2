package hgrid

import (
	"tableflip.dev/hgrid/pkg/matrix"
	"tableflip.dev/hgrid/pkg/signal"
)

// OnReset registers a listener for full regenerations.
func (g *Grid[D]) OnReset(fn func()) signal.Unbind {
	if fn == nil {
		return func() {}
	}
	return g.reset.Bind(func(struct{}) { fn() })
}

// OnRowChange registers a listener for row events of the underlying matrix.
func (g *Grid[D]) OnRowChange(fn func(matrix.LineEvent)) signal.Unbind {
	return g.rowChange.Bind(fn)
}

// OnColChange registers a listener for column events of the underlying
// matrix.
func (g *Grid[D]) OnColChange(fn func(matrix.LineEvent)) signal.Unbind {
	return g.colChange.Bind(fn)
}

// OnItemAdded registers a listener for items entering cells, including items
// shifted by a mutation.
func (g *Grid[D]) OnItemAdded(fn func([]ItemEvent[D])) signal.Unbind {
	return g.itemAdded.Bind(fn)
}

// OnItemRemoved registers a listener for items leaving cells, including items
// shifted by a mutation.
func (g *Grid[D]) OnItemRemoved(fn func([]ItemEvent[D])) signal.Unbind {
	return g.itemRemoved.Bind(fn)
}

func (g *Grid[D]) wire() {
	g.unbind = append(g.unbind,
		g.matrix.OnRowChange(func(e matrix.LineEvent) {
			g.batch.Defer(func() { g.rowChange.Emit(e) })
		}),
		g.matrix.OnColChange(func(e matrix.LineEvent) {
			g.batch.Defer(func() { g.colChange.Emit(e) })
		}),
		g.matrix.OnItemAdded(func(evs []matrix.ItemEvent[*Node[D]]) {
			g.queueItems(&g.itemAdded, g.translate(evs))
		}),
		g.matrix.OnItemRemoved(func(evs []matrix.ItemEvent[*Node[D]]) {
			g.queueItems(&g.itemRemoved, g.translate(evs))
		}),
	)
}

func (g *Grid[D]) unwire() {
	for _, fn := range g.unbind {
		fn()
	}
	g.unbind = nil
}

// translate maps node events to data events. It runs as soon as the matrix
// reports the change, while the node is still attached to the parent it had
// at that moment.
func (g *Grid[D]) translate(evs []matrix.ItemEvent[*Node[D]]) []ItemEvent[D] {
	out := make([]ItemEvent[D], len(evs))
	for i, e := range evs {
		out[i] = ItemEvent[D]{Col: e.Col, Row: e.Row, Item: e.Item.Data()}
		if p := e.Item.Parent(); p != nil && !p.IsVirtual() {
			out[i].Parent = p.Data()
			out[i].HasParent = true
		}
	}
	return out
}

type itemBatch[D any] struct {
	sig   *signal.Signal[[]ItemEvent[D]]
	items []ItemEvent[D]
	flush int
}

// queueItems defers an item batch until the grid operation commits.
// Consecutive batches of the same kind are merged, so removing a subtree
// reports all of its cells at once. A batch queued before the current flush
// began belongs to an outer operation and is never merged into.
func (g *Grid[D]) queueItems(sig *signal.Signal[[]ItemEvent[D]], items []ItemEvent[D]) {
	if !g.batch.Active() {
		sig.Emit(items)
		return
	}
	flush := g.batch.Flushes()
	if g.tail != nil && g.tail.sig == sig && g.tail.flush == flush {
		g.tail.items = append(g.tail.items, items...)
		return
	}
	b := &itemBatch[D]{sig: sig, items: items, flush: flush}
	g.tail = b
	g.batch.Defer(func() {
		if g.tail == b {
			g.tail = nil
		}
		b.sig.Emit(b.items)
	})
}
