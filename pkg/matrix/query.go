package matrix

// Size returns the aggregate width and height.
func (m *Matrix[T]) Size() Size {
	return m.size
}

// Count returns the number of rows and columns.
func (m *Matrix[T]) Count() IndexSize {
	return IndexSize{Rows: len(m.rows), Cols: m.cols}
}

// RowBox returns the rectangle spanned by row i. Offsets are only current
// after UpdatePosition.
func (m *Matrix[T]) RowBox(i int) (Box, bool) {
	if i < 0 || i >= len(m.rowLines) {
		return Box{}, false
	}
	l := m.rowLines[i]
	return Box{X: 0, Y: l.offset, Width: m.size.Width, Height: l.size}, true
}

// ColBox returns the rectangle spanned by column i.
func (m *Matrix[T]) ColBox(i int) (Box, bool) {
	if i < 0 || i >= len(m.colLines) {
		return Box{}, false
	}
	l := m.colLines[i]
	return Box{X: l.offset, Y: 0, Width: l.size, Height: m.size.Height}, true
}

// CellBox returns the rectangle of the cell at (col, row), occupied or not.
func (m *Matrix[T]) CellBox(col, row int) (Box, bool) {
	if row < 0 || row >= len(m.rowLines) || col < 0 || col >= len(m.colLines) {
		return Box{}, false
	}
	r, c := m.rowLines[row], m.colLines[col]
	return Box{X: c.offset, Y: r.offset, Width: c.size, Height: r.size}, true
}

// ItemBox returns the rectangle of the cell holding item.
func (m *Matrix[T]) ItemBox(item T) (Box, bool) {
	col, row, ok := m.Index(item)
	if !ok {
		return Box{}, false
	}
	return m.CellBox(col, row)
}

// Each calls fn for every occupied cell in row-major order until fn returns
// false.
func (m *Matrix[T]) Each(fn func(col, row int, item T) bool) {
	m.EachRows(0, len(m.rows)-1, fn)
}

// EachRows is Each restricted to the inclusive row range [from, to].
func (m *Matrix[T]) EachRows(from, to int, fn func(col, row int, item T) bool) {
	from = max(from, 0)
	to = min(to, len(m.rows)-1)
	for r := from; r <= to; r++ {
		for c, cell := range m.rows[r].cells {
			if cell.ok && !fn(c, r, cell.item) {
				return
			}
		}
	}
}
