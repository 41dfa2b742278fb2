package matrix

// Put stores item at (col, row), growing the matrix to contain the coordinate.
// An occupant of the cell is replaced. An item occupies at most one cell, so
// an item already stored elsewhere is moved.
func (m *Matrix[T]) Put(col, row int, item T) {
	if col < 0 || row < 0 || !m.begin() {
		return
	}
	defer m.end()

	if c, r, ok := m.Index(item); ok {
		if c == col && r == row {
			m.refit(col, row)
			return
		}
		m.emitItems(&m.itemRemoved, []ItemEvent[T]{m.vacate(c, r)})
	}
	m.grow(col, row)
	m.store(col, row, item)
}

// Remove vacates the cell holding item. It returns false when item is not in
// the matrix.
func (m *Matrix[T]) Remove(item T) bool {
	col, row, ok := m.Index(item)
	if !ok || !m.begin() {
		return false
	}
	defer m.end()
	m.emitItems(&m.itemRemoved, []ItemEvent[T]{m.vacate(col, row)})
	return true
}

// Move relocates item to (col, row). The source cell is vacated before the
// destination is sized, so the item never counts twice. Moving an item onto
// its own cell is a no-op that emits nothing.
func (m *Matrix[T]) Move(item T, col, row int) bool {
	if col < 0 || row < 0 {
		return false
	}
	c, r, ok := m.Index(item)
	if !ok || (c == col && r == row) || !m.begin() {
		return false
	}
	defer m.end()

	m.emitItems(&m.itemRemoved, []ItemEvent[T]{m.vacate(c, r)})
	m.grow(col, row)
	m.store(col, row, item)
	return true
}

// Update re-derives the size of the row and column holding item, for when its
// intrinsic size changed in place.
func (m *Matrix[T]) Update(item T) bool {
	col, row, ok := m.Index(item)
	if !ok || !m.begin() {
		return false
	}
	defer m.end()
	m.refit(col, row)
	return true
}

// Get returns the item at (col, row).
func (m *Matrix[T]) Get(col, row int) (T, bool) {
	var zero T
	if row < 0 || row >= len(m.rows) || col < 0 || col >= m.cols {
		return zero, false
	}
	cell := m.rows[row].cells[col]
	if !cell.ok {
		return zero, false
	}
	return cell.item, true
}

// Index returns the coordinate of item.
func (m *Matrix[T]) Index(item T) (col, row int, ok bool) {
	k := m.key(item)
	r, found := m.index[k]
	if !found {
		return -1, -1, false
	}
	for c, cell := range r.cells {
		if cell.ok && m.key(cell.item) == k {
			return c, r.index, true
		}
	}
	return -1, -1, false
}

// Has reports whether item occupies a cell.
func (m *Matrix[T]) Has(item T) bool {
	_, ok := m.index[m.key(item)]
	return ok
}

// Len returns the number of occupied cells.
func (m *Matrix[T]) Len() int {
	return len(m.index)
}

func (m *Matrix[T]) grow(col, row int) {
	if col >= m.cols {
		m.insertCols(col)
	}
	if row >= len(m.rows) {
		m.insertRows(row)
	}
}

// store writes item into an in-range cell, replacing any occupant.
func (m *Matrix[T]) store(col, row int, item T) {
	r := m.rows[row]
	prev := r.cells[col]
	if prev.ok {
		m.unindex(prev.item, r)
	}
	r.cells[col] = slot[T]{item: item, ok: true}
	m.index[m.key(item)] = r

	var prevSize Size
	if prev.ok {
		prevSize = m.sizeOf(prev.item)
	}
	next := m.sizeOf(item)
	m.resizeRow(row, prev.ok, prevSize.Height, true, next.Height)
	m.resizeCol(col, prev.ok, prevSize.Width, true, next.Width)

	if prev.ok {
		m.emitItems(&m.itemRemoved, []ItemEvent[T]{{Col: col, Row: row, Item: prev.item}})
	}
	m.emitItems(&m.itemAdded, []ItemEvent[T]{{Col: col, Row: row, Item: item}})
}

// vacate empties an occupied in-range cell and returns the removal event for
// the caller to emit.
func (m *Matrix[T]) vacate(col, row int) ItemEvent[T] {
	r := m.rows[row]
	prev := r.cells[col]
	var zero slot[T]
	r.cells[col] = zero
	m.unindex(prev.item, r)

	prevSize := m.sizeOf(prev.item)
	m.resizeRow(row, true, prevSize.Height, false, 0)
	m.resizeCol(col, true, prevSize.Width, false, 0)
	return ItemEvent[T]{Col: col, Row: row, Item: prev.item}
}

func (m *Matrix[T]) unindex(item T, r *row[T]) {
	k := m.key(item)
	if m.index[k] == r {
		delete(m.index, k)
	}
}

// refit rescans both lines through (col, row).
func (m *Matrix[T]) refit(col, row int) {
	if d := m.applyRow(row, max(m.scanRow(row), m.min.Height)); d != 0 {
		m.emitRow(EventResize, row, row)
	}
	if d := m.applyCol(col, max(m.scanCol(col), m.min.Width)); d != 0 {
		m.emitCol(EventResize, col, col)
	}
}

func (m *Matrix[T]) resizeRow(row int, hadPrev bool, prev int, hasNext bool, next int) {
	cur := m.rowLines[row].size
	size := fit(cur, hadPrev, prev, hasNext, next, func() int { return m.scanRow(row) })
	if m.applyRow(row, max(size, m.min.Height)) != 0 {
		m.emitRow(EventResize, row, row)
	}
}

func (m *Matrix[T]) resizeCol(col int, hadPrev bool, prev int, hasNext bool, next int) {
	cur := m.colLines[col].size
	size := fit(cur, hadPrev, prev, hasNext, next, func() int { return m.scanCol(col) })
	if m.applyCol(col, max(size, m.min.Width)) != 0 {
		m.emitCol(EventResize, col, col)
	}
}

// fit returns the new size of a line after one of its cells changed from an
// item of size prev to one of size next. Growth is decided in O(1); only when
// the previous occupant was the one setting the size and nothing at least as
// large replaced it does the line need a rescan.
func fit(cur int, hadPrev bool, prev int, hasNext bool, next int, scan func() int) int {
	switch {
	case hasNext && next > cur:
		return next
	case hadPrev && prev >= cur && !(hasNext && next >= prev):
		return scan()
	default:
		return cur
	}
}

func (m *Matrix[T]) applyRow(row, size int) int {
	delta := size - m.rowLines[row].size
	if delta != 0 {
		m.rowLines[row].size = size
		m.size.Height += delta
		m.markDirty(-1, row)
	}
	return delta
}

func (m *Matrix[T]) applyCol(col, size int) int {
	delta := size - m.colLines[col].size
	if delta != 0 {
		m.colLines[col].size = size
		m.size.Width += delta
		m.markDirty(col, -1)
	}
	return delta
}

func (m *Matrix[T]) scanRow(row int) int {
	size := 0
	for _, cell := range m.rows[row].cells {
		if cell.ok {
			size = max(size, m.sizeOf(cell.item).Height)
		}
	}
	return size
}

func (m *Matrix[T]) scanCol(col int) int {
	size := 0
	for _, r := range m.rows {
		if cell := r.cells[col]; cell.ok {
			size = max(size, m.sizeOf(cell.item).Width)
		}
	}
	return size
}
