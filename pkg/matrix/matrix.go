// Package matrix implements a resizable sparse 2-D grid whose row heights and
// column widths follow the intrinsic size of the items they hold.
//
// Every row is as tall as its tallest item and every column as wide as its
// widest item, never smaller than the configured minimum. Offsets are the
// running sum of the preceding sizes. Mutations keep sizes and the aggregate
// size current but only mark offsets stale from the first affected line;
// UpdatePosition recomputes that suffix, so many mutations can share a single
// pass.
//
// A Matrix is not safe for concurrent use.
package matrix

import (
	"tableflip.dev/hgrid/pkg/signal"
)

type slot[T any] struct {
	item T
	ok   bool
}

type row[T any] struct {
	index int
	cells []slot[T]
}

type line struct {
	offset int
	size   int
}

// Option customises a Matrix.
type Option[T any] func(*Matrix[T])

// WithMinSize sets the minimum row height and column width.
func WithMinSize[T any](size Size) Option[T] {
	return func(m *Matrix[T]) {
		m.min = Size{Width: max(0, size.Width), Height: max(0, size.Height)}
	}
}

// WithKey overrides the identity used by the reverse index.
func WithKey[T any](key KeyFunc[T]) Option[T] {
	return func(m *Matrix[T]) {
		if key != nil {
			m.key = key
		}
	}
}

// Matrix is a sparse grid of items of type T.
type Matrix[T any] struct {
	sizeOf SizeFunc[T]
	key    KeyFunc[T]
	min    Size

	rows     []*row[T]
	cols     int
	rowLines []line
	colLines []line
	size     Size

	index map[any]*row[T]

	// -1 means clean.
	dirtyCol int
	dirtyRow int

	batch       signal.Batch
	rowChange   signal.Signal[LineEvent]
	colChange   signal.Signal[LineEvent]
	itemAdded   signal.Signal[[]ItemEvent[T]]
	itemRemoved signal.Signal[[]ItemEvent[T]]

	closed bool
}

// New creates an empty matrix measuring items with sizeOf.
func New[T any](sizeOf SizeFunc[T], opts ...Option[T]) *Matrix[T] {
	m := &Matrix[T]{
		sizeOf:   sizeOf,
		key:      RefKey[T],
		index:    make(map[any]*row[T]),
		dirtyCol: -1,
		dirtyRow: -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sizeOf == nil {
		m.sizeOf = func(T) Size { return Size{} }
	}
	return m
}

// OnRowChange registers a listener for row add/remove/resize/position events.
func (m *Matrix[T]) OnRowChange(fn func(LineEvent)) signal.Unbind {
	return m.rowChange.Bind(fn)
}

// OnColChange registers a listener for column add/remove/resize/position events.
func (m *Matrix[T]) OnColChange(fn func(LineEvent)) signal.Unbind {
	return m.colChange.Bind(fn)
}

// OnItemAdded registers a listener for items entering cells.
func (m *Matrix[T]) OnItemAdded(fn func([]ItemEvent[T])) signal.Unbind {
	return m.itemAdded.Bind(fn)
}

// OnItemRemoved registers a listener for items leaving cells.
func (m *Matrix[T]) OnItemRemoved(fn func([]ItemEvent[T])) signal.Unbind {
	return m.itemRemoved.Bind(fn)
}

// Close detaches every listener. Later mutations are ignored; a second Close
// is a no-op.
func (m *Matrix[T]) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.batch.Discard()
	m.rowChange.Reset()
	m.colChange.Reset()
	m.itemAdded.Reset()
	m.itemRemoved.Reset()
}

// Closed reports whether Close was called.
func (m *Matrix[T]) Closed() bool {
	return m.closed
}

func (m *Matrix[T]) begin() bool {
	if m.closed {
		return false
	}
	m.batch.Begin()
	return true
}

func (m *Matrix[T]) end() {
	m.batch.End()
}

func (m *Matrix[T]) emitRow(typ EventType, start, end int) {
	e := LineEvent{Type: typ, Start: start, End: end}
	m.batch.Defer(func() { m.rowChange.Emit(e) })
}

func (m *Matrix[T]) emitCol(typ EventType, start, end int) {
	e := LineEvent{Type: typ, Start: start, End: end}
	m.batch.Defer(func() { m.colChange.Emit(e) })
}

func (m *Matrix[T]) emitItems(sig *signal.Signal[[]ItemEvent[T]], items []ItemEvent[T]) {
	if len(items) == 0 {
		return
	}
	m.batch.Defer(func() { sig.Emit(items) })
}

// markDirty records that offsets from (col, row) onwards are stale. Either
// coordinate may be -1 to leave that axis untouched.
func (m *Matrix[T]) markDirty(col, row int) {
	if col >= 0 && (m.dirtyCol < 0 || col < m.dirtyCol) {
		m.dirtyCol = col
	}
	if row >= 0 && (m.dirtyRow < 0 || row < m.dirtyRow) {
		m.dirtyRow = row
	}
}

// Dirty returns the first column and row whose offsets are stale, -1 when the
// axis is clean.
func (m *Matrix[T]) Dirty() (col, row int) {
	return m.dirtyCol, m.dirtyRow
}

// UpdatePosition recomputes offsets from the dirty marker forward and emits a
// position event for each recomputed range. The marker is cleared before the
// events fire, so a listener calling UpdatePosition again is a no-op.
func (m *Matrix[T]) UpdatePosition() {
	if m.dirtyCol < 0 && m.dirtyRow < 0 {
		return
	}
	if !m.begin() {
		return
	}
	defer m.end()

	colFrom, rowFrom := m.dirtyCol, m.dirtyRow
	m.dirtyCol, m.dirtyRow = -1, -1

	if rowFrom >= 0 && rowFrom < len(m.rowLines) {
		relayout(m.rowLines, rowFrom)
		m.emitRow(EventPosition, rowFrom, len(m.rowLines)-1)
	}
	if colFrom >= 0 && colFrom < len(m.colLines) {
		relayout(m.colLines, colFrom)
		m.emitCol(EventPosition, colFrom, len(m.colLines)-1)
	}
}

func relayout(lines []line, from int) {
	offset := 0
	if from > 0 {
		prev := lines[from-1]
		offset = prev.offset + prev.size
	}
	for i := from; i < len(lines); i++ {
		lines[i].offset = offset
		offset += lines[i].size
	}
}
