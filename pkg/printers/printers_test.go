package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/hgrid/pkg/hgrid"
	"tableflip.dev/hgrid/pkg/matrix"
	"tableflip.dev/hgrid/pkg/source"
)

func TestMeasure(t *testing.T) {
	for _, tc := range []struct {
		label   string
		padding int
		want    matrix.Size
	}{
		{"abc", 1, matrix.Size{Width: 5, Height: 1}},
		{"a\nlonger", 0, matrix.Size{Width: 6, Height: 2}},
		{"\x1b[31mred\x1b[0m", 0, matrix.Size{Width: 3, Height: 1}},
		{"", 2, matrix.Size{Width: 4, Height: 1}},
	} {
		if got := Measure(tc.label, tc.padding); got != tc.want {
			t.Fatalf("Measure(%q, %d) = %+v, want %+v", tc.label, tc.padding, got, tc.want)
		}
	}
}

func TestFit(t *testing.T) {
	if got := Fit("short", 10); got != "short" {
		t.Fatalf("expected label unchanged, got %q", got)
	}
	got := Fit("a rather long label", 8)
	if ansi.PrintableRuneWidth(got) > 8 || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected a cut label of at most 8 cells, got %q", got)
	}
	if Fit("x", 0) != "" {
		t.Fatalf("expected empty label for zero width")
	}
}

func TestUseColorRejectsBuffers(t *testing.T) {
	if UseColor(&bytes.Buffer{}) {
		t.Fatalf("a buffer is not a terminal")
	}
}

func sampleGrid(t *testing.T) (*hgrid.Grid[any], source.Accessors) {
	t.Helper()
	docs, err := source.ParsePaths(strings.NewReader("Work/Alpha\nWork/Beta\nHome\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a := source.NewAccessors(source.DefaultOptions())
	g := hgrid.New(func(doc any) matrix.Size { return Measure(a.Label(doc), 1) },
		hgrid.WithChildren(a.Children))
	g.Source(docs...)
	return g, a
}

func TestTable(t *testing.T) {
	g, a := sampleGrid(t)
	defer g.Close()

	var out bytes.Buffer
	p := &GridPrinter[any]{Out: &out, Label: a.Label}
	p.Table(g)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "Work") || !strings.Contains(lines[0], "Alpha") {
		t.Fatalf("unexpected first row %q", lines[0])
	}
	if !strings.Contains(lines[1], "·") || !strings.Contains(lines[1], "Beta") {
		t.Fatalf("unexpected second row %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Home") {
		t.Fatalf("unexpected third row %q", lines[2])
	}
}

func TestTableEmpty(t *testing.T) {
	g := hgrid.New[any](nil)
	defer g.Close()
	var out bytes.Buffer
	(&GridPrinter[any]{Out: &out, Label: func(any) string { return "" }}).Table(g)
	if !strings.Contains(out.String(), "empty") {
		t.Fatalf("expected an empty marker, got %q", out.String())
	}
}

func TestBoxes(t *testing.T) {
	g, a := sampleGrid(t)
	defer g.Close()

	var out bytes.Buffer
	(&GridPrinter[any]{Out: &out, Label: a.Label}).Boxes(g)
	s := out.String()
	if !strings.Contains(s, "HEIGHT") || !strings.Contains(s, "Beta") {
		t.Fatalf("unexpected boxes output:\n%s", s)
	}
	if got := strings.Count(strings.TrimRight(s, "\n"), "\n"); got != 4 {
		t.Fatalf("expected a header and 4 cells, got %d lines:\n%s", got+1, s)
	}
}

func TestJSON(t *testing.T) {
	g, a := sampleGrid(t)
	defer g.Close()

	var out bytes.Buffer
	if err := (&GridPrinter[any]{Out: &out, Label: a.Label}).JSON(g); err != nil {
		t.Fatalf("json: %v", err)
	}
	var got JSONGrid
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Rows != 3 || got.Cols != 2 || len(got.Cells) != 4 {
		t.Fatalf("unexpected shape: %+v", got)
	}
	beta := got.Cells[2]
	if beta.Label != "Beta" || beta.Parent != "Work" || beta.Col != 1 || beta.Row != 1 {
		t.Fatalf("unexpected cell: %+v", beta)
	}
	// "Alpha" plus one cell of padding on each side.
	if got.Cells[1].Width != 7 || beta.X != got.Cells[0].Width {
		t.Fatalf("unexpected geometry: %+v", got.Cells)
	}
	if got.Cells[0].Leaves != 2 {
		t.Fatalf("expected Work to span 2 rows, got %d", got.Cells[0].Leaves)
	}
}
