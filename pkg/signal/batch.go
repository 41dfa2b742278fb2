package signal

// Batch defers callbacks while an operation is in progress.
//
// Nested Begin/End pairs are supported; deferred callbacks run, in the order
// they were deferred, when the outermost End returns the depth to zero.
// Callbacks deferred while flushing (by a re-entrant operation) are flushed by
// that operation's own End.
type Batch struct {
	depth   int
	pending []func()
	flushes int
}

// Begin opens a batch level.
func (b *Batch) Begin() {
	b.depth++
}

// End closes a batch level and flushes when it was the outermost one.
func (b *Batch) End() {
	if b.depth == 0 {
		return
	}
	b.depth--
	if b.depth > 0 {
		return
	}
	b.flushes++
	for len(b.pending) > 0 {
		queue := b.pending
		b.pending = nil
		for _, fn := range queue {
			fn()
		}
	}
}

// Defer queues fn, or runs it immediately when no batch is open.
func (b *Batch) Defer(fn func()) {
	if b.depth == 0 {
		fn()
		return
	}
	b.pending = append(b.pending, fn)
}

// Flushes counts the outermost End calls so far. Callbacks queued under
// different counts were queued on either side of a flush.
func (b *Batch) Flushes() int {
	return b.flushes
}

// Active reports whether a batch is open.
func (b *Batch) Active() bool {
	return b.depth > 0
}

// Discard drops every queued callback without running it.
func (b *Batch) Discard() {
	b.pending = nil
}
