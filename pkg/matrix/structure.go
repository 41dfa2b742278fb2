package matrix

import "slices"

// AppendRow adds an empty row at the bottom.
func (m *Matrix[T]) AppendRow() {
	m.InsertRow(len(m.rows))
}

// AppendCol adds an empty column on the right.
func (m *Matrix[T]) AppendCol() {
	m.InsertCol(m.cols)
}

// InsertRow inserts an empty row at i. When i is past the last row, the rows
// in between are created as well.
func (m *Matrix[T]) InsertRow(i int) {
	if i < 0 || !m.begin() {
		return
	}
	defer m.end()
	m.insertRows(i)
}

// InsertCol inserts an empty column at i. When i is past the last column, the
// columns in between are created as well.
func (m *Matrix[T]) InsertCol(i int) {
	if i < 0 || !m.begin() {
		return
	}
	defer m.end()
	m.insertCols(i)
}

func (m *Matrix[T]) insertRows(i int) {
	start, n := i, 1
	if i >= len(m.rows) {
		start = len(m.rows)
		n = i - start + 1
	}
	fresh := make([]*row[T], n)
	lines := make([]line, n)
	for k := range fresh {
		fresh[k] = &row[T]{cells: make([]slot[T], m.cols)}
		lines[k] = line{size: m.min.Height}
	}
	m.rows = slices.Insert(m.rows, start, fresh...)
	m.rowLines = slices.Insert(m.rowLines, start, lines...)
	m.renumber(start)
	m.size.Height += n * m.min.Height
	m.markDirty(-1, start)
	m.emitRow(EventAdd, start, start+n-1)
}

func (m *Matrix[T]) insertCols(i int) {
	start, n := i, 1
	if i >= m.cols {
		start = m.cols
		n = i - start + 1
	}
	empty := make([]slot[T], n)
	for _, r := range m.rows {
		r.cells = slices.Insert(r.cells, start, empty...)
	}
	lines := make([]line, n)
	for k := range lines {
		lines[k] = line{size: m.min.Width}
	}
	m.colLines = slices.Insert(m.colLines, start, lines...)
	m.cols += n
	m.size.Width += n * m.min.Width
	m.markDirty(start, -1)
	m.emitCol(EventAdd, start, start+n-1)
}

func (m *Matrix[T]) renumber(from int) {
	for i := from; i < len(m.rows); i++ {
		m.rows[i].index = i
	}
}

// RemoveRow removes row i and the items it holds. Row 0 and out of range
// indexes are ignored.
func (m *Matrix[T]) RemoveRow(i int) {
	if i <= 0 || i >= len(m.rows) || !m.begin() {
		return
	}
	defer m.end()

	var removed []ItemEvent[T]
	for col, cell := range m.rows[i].cells {
		if cell.ok {
			removed = append(removed, m.vacate(col, i))
		}
	}

	m.size.Height -= m.rowLines[i].size
	m.rows = slices.Delete(m.rows, i, i+1)
	m.rowLines = slices.Delete(m.rowLines, i, i+1)
	m.renumber(i)
	m.markDirty(-1, i)

	m.emitItems(&m.itemRemoved, removed)
	m.emitRow(EventRemove, i, i)
}

// RemoveCol removes column i and the items it holds. Column 0 and out of
// range indexes are ignored.
func (m *Matrix[T]) RemoveCol(i int) {
	if i <= 0 || i >= m.cols || !m.begin() {
		return
	}
	defer m.end()

	var removed []ItemEvent[T]
	for rowIdx, r := range m.rows {
		if r.cells[i].ok {
			removed = append(removed, m.vacate(i, rowIdx))
		}
	}

	m.size.Width -= m.colLines[i].size
	for _, r := range m.rows {
		r.cells = slices.Delete(r.cells, i, i+1)
	}
	m.colLines = slices.Delete(m.colLines, i, i+1)
	m.cols--
	m.markDirty(i, -1)

	m.emitItems(&m.itemRemoved, removed)
	m.emitCol(EventRemove, i, i)
}

// TrimBelow drops trailing empty rows. Row 0 is always kept.
func (m *Matrix[T]) TrimBelow() {
	if !m.begin() {
		return
	}
	defer m.end()
	for last := len(m.rows) - 1; last > 0 && m.rowEmpty(last); last = len(m.rows) - 1 {
		m.RemoveRow(last)
	}
}

// TrimRight drops trailing empty columns. Column 0 is always kept.
func (m *Matrix[T]) TrimRight() {
	if !m.begin() {
		return
	}
	defer m.end()
	for last := m.cols - 1; last > 0 && m.colEmpty(last); last = m.cols - 1 {
		m.RemoveCol(last)
	}
}

// Clear removes every item and every line, leaving a 0x0 matrix.
func (m *Matrix[T]) Clear() {
	if (len(m.rows) == 0 && m.cols == 0) || !m.begin() {
		return
	}
	defer m.end()

	var removed []ItemEvent[T]
	for rowIdx, r := range m.rows {
		for col, cell := range r.cells {
			if cell.ok {
				removed = append(removed, m.vacate(col, rowIdx))
			}
		}
	}
	rows, cols := len(m.rows), m.cols
	m.rows, m.rowLines, m.colLines = nil, nil, nil
	m.cols = 0
	m.size = Size{}
	m.index = make(map[any]*row[T])
	m.dirtyCol, m.dirtyRow = -1, -1

	m.emitItems(&m.itemRemoved, removed)
	if rows > 0 {
		m.emitRow(EventRemove, 0, rows-1)
	}
	if cols > 0 {
		m.emitCol(EventRemove, 0, cols-1)
	}
}

func (m *Matrix[T]) rowEmpty(i int) bool {
	for _, cell := range m.rows[i].cells {
		if cell.ok {
			return false
		}
	}
	return true
}

func (m *Matrix[T]) colEmpty(i int) bool {
	for _, r := range m.rows {
		if r.cells[i].ok {
			return false
		}
	}
	return true
}
