package printers

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"

	"tableflip.dev/hgrid/pkg/matrix"
)

// Measure returns the intrinsic size of a label in terminal cells: the widest
// line plus padding on each side, by the number of lines.
func Measure(label string, padding int) matrix.Size {
	lines := strings.Split(label, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, ansi.PrintableRuneWidth(l))
	}
	return matrix.Size{Width: w + 2*max(0, padding), Height: len(lines)}
}

// Fit shortens label to at most width cells, marking the cut with an
// ellipsis.
func Fit(label string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.PrintableRuneWidth(label) <= width {
		return label
	}
	return truncate.StringWithTail(label, uint(width), "…")
}

// UseColor reports whether w is a terminal that accepts color.
func UseColor(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
