package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/hgrid/pkg/hgrid"
)

var depthColors = []color.Attribute{
	color.FgHiCyan,
	color.FgHiGreen,
	color.FgHiYellow,
	color.FgHiMagenta,
	color.FgHiBlue,
}

// GridPrinter writes a projected grid as text.
type GridPrinter[D any] struct {
	Out   io.Writer
	Label func(D) string
	Color bool
	// MaxWidth caps a label in cells; 0 leaves labels whole.
	MaxWidth int
}

func (p *GridPrinter[D]) label(item D) string {
	s := p.Label(item)
	if p.MaxWidth > 0 {
		s = Fit(s, p.MaxWidth)
	}
	// Tables are one line per row.
	return strings.ReplaceAll(s, "\n", " ")
}

func (p *GridPrinter[D]) paint(c *color.Color) *color.Color {
	if p.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (p *GridPrinter[D]) depthColor(col int) *color.Color {
	return p.paint(color.New(depthColors[col%len(depthColors)]))
}

// Table prints one table row per grid row and one column per depth.
func (p *GridPrinter[D]) Table(g *hgrid.Grid[D]) {
	count := g.Count()
	if count.Rows == 0 {
		f := p.paint(color.New(color.Faint, color.Italic))
		_, _ = fmt.Fprintln(p.Out, f.Sprint(" empty"))
		return
	}
	faint := p.paint(color.New(color.Faint))

	tbl := uitable.New()
	tbl.Separator = "  "
	for r := 0; r < count.Rows; r++ {
		cells := make([]interface{}, count.Cols)
		for c := range cells {
			cells[c] = faint.Sprint("·")
		}
		g.EachRows(r, r, func(cell hgrid.Cell[D]) bool {
			cells[cell.Col] = p.depthColor(cell.Col).Sprint(p.label(cell.Item))
			return true
		})
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
}

// Boxes prints the rectangle of every occupied cell.
func (p *GridPrinter[D]) Boxes(g *hgrid.Grid[D]) {
	g.UpdatePosition()
	bold := p.paint(color.New(color.Bold))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("COL"), bold.Sprint("ROW"), bold.Sprint("X"), bold.Sprint("Y"),
		bold.Sprint("WIDTH"), bold.Sprint("HEIGHT"), bold.Sprint("LABEL"))
	g.Each(func(cell hgrid.Cell[D]) bool {
		box, _ := g.CellBox(cell.Col, cell.Row)
		tbl.AddRow(cell.Col, cell.Row, box.X, box.Y, box.Width, box.Height,
			p.depthColor(cell.Col).Sprint(p.label(cell.Item)))
		return true
	})
	for c := 0; c < 6; c++ {
		tbl.RightAlign(c)
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
}

// JSONCell is the JSON form of an occupied cell.
type JSONCell struct {
	Col    int    `json:"col"`
	Row    int    `json:"row"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label"`
	Parent string `json:"parent,omitempty"`
	Leaves int    `json:"leaves"`
}

// JSONGrid is the JSON form of a grid.
type JSONGrid struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Cells  []JSONCell `json:"cells"`
}

// Encode builds the JSON form of g.
func (p *GridPrinter[D]) Encode(g *hgrid.Grid[D]) JSONGrid {
	g.UpdatePosition()
	size, count := g.Size(), g.Count()
	out := JSONGrid{Width: size.Width, Height: size.Height, Rows: count.Rows, Cols: count.Cols, Cells: []JSONCell{}}
	g.Each(func(cell hgrid.Cell[D]) bool {
		box, _ := g.CellBox(cell.Col, cell.Row)
		jc := JSONCell{
			Col: cell.Col, Row: cell.Row,
			X: box.X, Y: box.Y, Width: box.Width, Height: box.Height,
			Label:  p.Label(cell.Item),
			Leaves: g.LeafCount(cell.Item),
		}
		if parent, ok := g.Parent(cell.Item); ok {
			jc.Parent = p.Label(parent)
		}
		out.Cells = append(out.Cells, jc)
		return true
	})
	return out
}

// JSON writes the JSON form of g, indented.
func (p *GridPrinter[D]) JSON(g *hgrid.Grid[D]) error {
	b, err := json.MarshalIndent(p.Encode(g), "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode grid")
	}
	_, err = fmt.Fprintln(p.Out, string(b))
	return errors.Wrap(err, "write grid")
}
