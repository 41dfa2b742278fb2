// Package signal provides synchronous listener lists and a batch that defers
// notifications until the outermost mutating operation has committed.
//
// Listeners run on the caller's goroutine, in registration order. A listener
// may re-enter the component that emitted the event; by the time it runs the
// component's state is already consistent.
//
// Typical use inside a component:
//
//	func (m *Thing) Mutate() {
//	    m.batch.Begin()
//	    defer m.batch.End()
//	    // ... change state ...
//	    m.batch.Defer(func() { m.changed.Emit(evt) })
//	}
package signal

// Unbind is a handle to remove a listener. Calling it more than once is a
// no-op.
type Unbind func()

type slot[E any] struct {
	fn     func(E)
	active bool
}

// Signal is a list of listeners for events of type E.
type Signal[E any] struct {
	slots []*slot[E]
}

// Bind registers fn and returns a handle that detaches it.
func (s *Signal[E]) Bind(fn func(E)) Unbind {
	if fn == nil {
		return func() {}
	}
	b := &slot[E]{fn: fn, active: true}
	s.slots = append(s.slots, b)
	return func() {
		b.active = false
	}
}

// Emit calls every active listener with e. Listeners bound while emitting are
// not called for this event. Panics raised by a listener are not recovered.
func (s *Signal[E]) Emit(e E) {
	if len(s.slots) == 0 {
		return
	}
	// Drop unbound listeners so long-lived signals do not accumulate them.
	active := s.slots[:0]
	for _, b := range s.slots {
		if b.active {
			active = append(active, b)
		}
	}
	clear(s.slots[len(active):])
	s.slots = active

	snapshot := make([]*slot[E], len(active))
	copy(snapshot, active)
	for _, b := range snapshot {
		if b.active {
			b.fn(e)
		}
	}
}

// Len returns the number of active listeners.
func (s *Signal[E]) Len() int {
	n := 0
	for _, b := range s.slots {
		if b.active {
			n++
		}
	}
	return n
}

// Reset detaches every listener.
func (s *Signal[E]) Reset() {
	for _, b := range s.slots {
		b.active = false
	}
	s.slots = nil
}
