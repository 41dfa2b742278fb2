package gridview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/hgrid/pkg/hgrid"
	"tableflip.dev/hgrid/pkg/printers"
)

// bodyHeight is the number of lines left for the grid between the header and
// the footer.
func (m *Model) bodyHeight() int {
	return max(1, m.height-2)
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lines := make([]string, 0, m.height)
	lines = append(lines, m.fit(m.header()))
	lines = append(lines, m.body()...)
	lines = append(lines, m.fit(m.footer()))
	return strings.Join(lines, "\n")
}

func (m *Model) fit(line string) string {
	return truncate.String(line, uint(m.width))
}

func (m *Model) header() string {
	count := m.grid.Count()
	size := m.grid.Size()
	info := fmt.Sprintf(" %d×%d cells, %d×%d chars", count.Cols, count.Rows, size.Width, size.Height)
	if m.filter != "" {
		info += fmt.Sprintf(", filter %q", m.filter)
	}
	return m.theme.Header.Title.Render("hgrid") + m.theme.Header.Info.Render(info)
}

func (m *Model) footer() string {
	if m.mode != modeNormal {
		return m.theme.Footer.Prompt.Render(m.input.View())
	}
	if m.status != "" {
		return m.theme.Footer.Status.Render(m.status)
	}
	return m.theme.Footer.Help.Render(helpText)
}

// body renders the rows from m.top and the columns from m.left that fit,
// padded to the body height.
func (m *Model) body() []string {
	height := m.bodyHeight()
	out := make([]string, 0, height)
	count := m.grid.Count()
	if count.Rows == 0 {
		out = append(out, m.theme.Grid.Empty.Render("empty"))
	}
	for r := m.top; r < count.Rows && len(out) < height; r++ {
		for _, line := range m.renderRow(r, count.Cols) {
			if len(out) == height {
				break
			}
			out = append(out, m.fit(line))
		}
	}
	for len(out) < height {
		out = append(out, "")
	}
	return out
}

// renderRow returns the lines of row r. Columns left of the row's first item
// belong to the spans of its ancestors and get a guide.
func (m *Model) renderRow(r, cols int) []string {
	rb, ok := m.grid.RowBox(r)
	if !ok {
		return nil
	}
	cells := make(map[int]any)
	first := cols
	m.grid.EachRows(r, r, func(c hgrid.Cell[any]) bool {
		cells[c.Col] = c.Item
		first = min(first, c.Col)
		return true
	})

	lines := make([]strings.Builder, max(1, rb.Height))
	used := 0
	for c := m.left; c < cols && used < m.width; c++ {
		cb, ok := m.grid.ColBox(c)
		if !ok {
			break
		}
		used += cb.Width
		item, occupied := cells[c]
		guide := !occupied && c < first
		var text []string
		style := lipgloss.NewStyle()
		switch {
		case occupied:
			text = strings.Split(m.label(item), "\n")
			style = m.cellStyle(c, r)
		case guide:
			style = m.theme.Grid.Guide
		}
		for i := range lines {
			var line string
			switch {
			case i < len(text):
				line = text[i]
			case guide:
				line = "│"
			}
			lines[i].WriteString(style.Render(m.cellText(line, cb.Width)))
		}
	}
	out := make([]string, len(lines))
	for i := range lines {
		out[i] = lines[i].String()
	}
	return out
}

func (m *Model) cellStyle(col, row int) lipgloss.Style {
	if m.hasCursor {
		if c, r, ok := m.grid.Index(m.cursor); ok && c == col && r == row {
			return m.theme.Grid.Selected
		}
	}
	if m.hasClip {
		if c, r, ok := m.grid.Index(m.clip); ok && c == col && r == row {
			return m.theme.Grid.Cut
		}
	}
	return m.theme.Depth(col)
}

// cellText pads a label line into a cell of width, cutting it when it does
// not fit.
func (m *Model) cellText(line string, width int) string {
	if width <= 0 {
		return ""
	}
	inner := width - 2*m.padding
	if inner <= 0 {
		return strings.Repeat(" ", width)
	}
	text := strings.Repeat(" ", m.padding) + printers.Fit(line, inner)
	return padding.String(text, uint(width))
}

// ensureVisible scrolls so that the cursor cell is inside the body.
func (m *Model) ensureVisible() {
	count := m.grid.Count()
	m.top = min(m.top, max(0, count.Rows-1))
	m.left = min(m.left, max(0, count.Cols-1))
	if !m.hasCursor || m.width == 0 {
		return
	}
	col, row, ok := m.grid.Index(m.cursor)
	if !ok {
		return
	}
	cell, ok := m.grid.CellBox(col, row)
	if !ok {
		return
	}

	m.top = min(m.top, row)
	for m.top < row {
		first, _ := m.grid.RowBox(m.top)
		if cell.Bottom()-first.Y <= m.bodyHeight() {
			break
		}
		m.top++
	}

	m.left = min(m.left, col)
	for m.left < col {
		first, _ := m.grid.ColBox(m.left)
		if cell.Right()-first.X <= m.width {
			break
		}
		m.left++
	}
}
