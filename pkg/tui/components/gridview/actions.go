package gridview

import (
	"fmt"

	"tableflip.dev/hgrid/pkg/hgrid"
	"tableflip.dev/hgrid/pkg/tui/events"
)

func (m *Model) selectItem(item any) {
	col, row, ok := m.grid.Index(item)
	if !ok {
		return
	}
	m.cursor, m.hasCursor = item, true
	parent, hasParent := m.grid.Parent(item)
	m.pending = append(m.pending, events.SelectionMsg{
		Component: m.id,
		Cell:      m.ref(col, row, item, parent, hasParent),
	})
}

func (m *Model) clearCursor() {
	m.cursor, m.hasCursor = nil, false
}

func (m *Model) selectFirst() {
	m.clearCursor()
	m.grid.Each(func(c hgrid.Cell[any]) bool {
		m.selectItem(c.Item)
		return false
	})
}

func (m *Model) selectLast() {
	rows := m.grid.Count().Rows
	if rows == 0 {
		m.clearCursor()
		return
	}
	m.grid.EachRows(rows-1, rows-1, func(c hgrid.Cell[any]) bool {
		m.selectItem(c.Item)
		return false
	})
}

// revalidate moves the cursor back onto the grid after a rebuild. Items keep
// their identity across a rebuild when the grid has an identity accessor, so
// the cursor is resolved through its cell rather than kept as is.
func (m *Model) revalidate() {
	if m.hasClip {
		if _, _, ok := m.grid.Index(m.clip); !ok {
			m.clip, m.hasClip = nil, false
		}
	}
	if !m.hasCursor {
		m.selectFirst()
		return
	}
	col, row, ok := m.grid.Index(m.cursor)
	if !ok {
		m.selectFirst()
		return
	}
	if item, ok := m.grid.Item(col, row); ok {
		m.cursor = item
	}
}

// moveVertical selects an item in the next row in direction dir, preferring
// the deepest item not right of the current column.
func (m *Model) moveVertical(dir int) {
	if !m.hasCursor {
		m.selectFirst()
		return
	}
	col, row, ok := m.grid.Index(m.cursor)
	if !ok {
		m.selectFirst()
		return
	}
	rows := m.grid.Count().Rows
	for r := row + dir; r >= 0 && r < rows; r += dir {
		var best any
		bestCol, found := -1, false
		m.grid.EachRows(r, r, func(c hgrid.Cell[any]) bool {
			switch {
			case !found:
				best, bestCol, found = c.Item, c.Col, true
			case c.Col <= col && c.Col > bestCol:
				best, bestCol = c.Item, c.Col
			}
			return true
		})
		if found {
			m.selectItem(best)
			return
		}
	}
}

func (m *Model) moveToParent() {
	if !m.hasCursor {
		m.selectFirst()
		return
	}
	if parent, ok := m.grid.Parent(m.cursor); ok {
		m.selectItem(parent)
	}
}

// moveToChild selects the first visible child, which shares the row of its
// parent one column to the right.
func (m *Model) moveToChild() {
	if !m.hasCursor {
		m.selectFirst()
		return
	}
	col, row, ok := m.grid.Index(m.cursor)
	if !ok {
		return
	}
	if child, ok := m.grid.Item(col+1, row); ok {
		m.selectItem(child)
	}
}

func (m *Model) add(label string, sibling bool) {
	doc := m.newDoc(label)
	change := events.TreeChangeMsg{Component: m.id, Action: events.ChangeAdd, Label: label}

	parent, hasParent := m.cursor, m.hasCursor
	if sibling && hasParent {
		parent, hasParent = m.grid.Parent(m.cursor)
	}
	if hasParent {
		change.Target = m.label(parent)
		change.Accepted = m.grid.Add(parent, doc)
	} else {
		change.Accepted = m.grid.AddRoot(doc)
	}
	m.pending = append(m.pending, change)

	switch {
	case !change.Accepted:
		m.status = fmt.Sprintf("could not add %q", label)
	case m.placed(doc):
		m.selectItem(doc)
		m.status = fmt.Sprintf("added %q", label)
	default:
		m.status = fmt.Sprintf("added %q (hidden by filter)", label)
	}
}

func (m *Model) placed(item any) bool {
	_, _, ok := m.grid.Index(item)
	return ok
}

func (m *Model) remove() {
	if !m.hasCursor {
		m.status = "nothing selected"
		return
	}
	item := m.cursor
	label := m.label(item)
	parent, hasParent := m.grid.Parent(item)

	ok := m.grid.Remove(item)
	m.pending = append(m.pending, events.TreeChangeMsg{
		Component: m.id, Action: events.ChangeRemove, Label: label, Accepted: ok,
	})
	if !ok {
		m.status = fmt.Sprintf("could not remove %q", label)
		return
	}
	if m.hasClip && !m.placed(m.clip) {
		m.clip, m.hasClip = nil, false
	}
	m.status = fmt.Sprintf("removed %q", label)
	if hasParent && m.placed(parent) {
		m.selectItem(parent)
		return
	}
	m.selectFirst()
}

func (m *Model) cut() {
	if !m.hasCursor {
		m.status = "nothing selected"
		return
	}
	m.clip, m.hasClip = m.cursor, true
	m.status = fmt.Sprintf("cut %q: select a new parent and press p", m.label(m.clip))
}

// paste moves the cut item under the cursor, or to the top level when top is
// set or nothing is selected.
func (m *Model) paste(top bool) {
	if !m.hasClip {
		m.status = "nothing to paste"
		return
	}
	item := m.clip
	change := events.TreeChangeMsg{Component: m.id, Action: events.ChangeMove, Label: m.label(item)}
	if top || !m.hasCursor {
		change.Accepted = m.grid.MoveRoot(item)
	} else {
		change.Target = m.label(m.cursor)
		change.Accepted = m.grid.Move(item, m.cursor)
	}
	m.pending = append(m.pending, change)
	if !change.Accepted {
		if change.Target == "" {
			m.status = fmt.Sprintf("cannot move %q to the top level", change.Label)
		} else {
			m.status = fmt.Sprintf("cannot move %q under %q", change.Label, change.Target)
		}
		return
	}
	m.clip, m.hasClip = nil, false
	m.status = fmt.Sprintf("moved %q", change.Label)
	m.selectItem(item)
}

func (m *Model) applyFilter(text string) {
	m.filter = text
	if text == "" {
		m.grid.Filter(nil)
		m.status = "filter cleared"
	} else {
		m.grid.Filter(m.access.Matcher(text))
		m.status = fmt.Sprintf("filter %q", text)
	}
	m.pending = append(m.pending, events.TreeChangeMsg{
		Component: m.id, Action: events.ChangeFilter, Label: text, Accepted: true,
	})
}
