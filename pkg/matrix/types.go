package matrix

import (
	"fmt"
	"reflect"
)

// Size is an intrinsic or aggregate width and height.
type Size struct {
	Width, Height int
}

// IndexSize is the number of rows and columns in a matrix.
type IndexSize struct {
	Rows, Cols int
}

// Box is a rectangle in cumulative offset/size space.
// X and Y are the top-left corner; Width and Height are dimensions.
type Box struct {
	X, Y          int
	Width, Height int
}

// Right returns the x-coordinate of the right edge (exclusive).
func (b Box) Right() int {
	return b.X + b.Width
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (b Box) Bottom() int {
	return b.Y + b.Height
}

// Contains returns true if the point (x, y) is inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// SizeFunc returns the intrinsic size of an item. It must be pure; the matrix
// calls it on every put and update and while recomputing a shrinking line.
type SizeFunc[T any] func(T) Size

// KeyFunc maps an item to the key used by the reverse index. Keys must be
// comparable.
type KeyFunc[T any] func(T) any

type ref struct {
	typ reflect.Type
	ptr uintptr
}

// RefKey is the default KeyFunc. Pointers, maps, slices, channels and funcs
// are keyed by reference; every other value is keyed by itself and must be
// comparable.
func RefKey[T any](item T) any {
	v := reflect.ValueOf(any(item))
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ref{typ: v.Type(), ptr: v.Pointer()}
	}
	return any(item)
}

// EventType identifies the kind of line change.
type EventType string

const (
	// EventAdd reports lines inserted into the matrix.
	EventAdd EventType = "add"
	// EventRemove reports lines removed from the matrix.
	EventRemove EventType = "remove"
	// EventResize reports a line whose size changed.
	EventResize EventType = "resize"
	// EventPosition reports lines whose offsets were recomputed.
	EventPosition EventType = "position"
)

// LineEvent describes a change to an inclusive range of rows or columns.
type LineEvent struct {
	Type  EventType
	Start int
	End   int
}

// Describe renders the event for logs.
func (e LineEvent) Describe() string {
	return fmt.Sprintf("type:%q range:[%d,%d]", e.Type, e.Start, e.End)
}

// ItemEvent describes an item entering or leaving a cell.
type ItemEvent[T any] struct {
	Col, Row int
	Item     T
}
