package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the grid viewer.
type Theme struct {
	Header HeaderTheme
	Grid   GridTheme
	Footer FooterTheme

	depth []lipgloss.Style
}

// HeaderTheme styles the title line above the grid.
type HeaderTheme struct {
	Title lipgloss.Style
	Info  lipgloss.Style
}

// GridTheme styles grid cells.
type GridTheme struct {
	Selected lipgloss.Style
	Cut      lipgloss.Style
	Guide    lipgloss.Style
	Empty    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status and prompt line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Prompt lipgloss.Style
	Error  lipgloss.Style
}

const (
	depthFrom  = "#5FD7FF"
	depthTo    = "#D787FF"
	depthSteps = 6
)

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Header: HeaderTheme{
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Grid: GridTheme{
			Selected: lipgloss.NewStyle().Reverse(true).Bold(true),
			Cut:      lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#FFB347")),
			Guide:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Empty:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		},
		depth: depthStyles(depthFrom, depthTo, depthSteps),
	}
}

// Depth returns the label style for a column. Depths past the blend wrap
// around.
func (t Theme) Depth(col int) lipgloss.Style {
	if len(t.depth) == 0 || col < 0 {
		return lipgloss.NewStyle()
	}
	return t.depth[col%len(t.depth)]
}

// depthStyles blends from one color to another in steps, in Lab space so the
// shades look evenly spaced.
func depthStyles(from, to string, steps int) []lipgloss.Style {
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil || steps < 1 {
		return nil
	}
	styles := make([]lipgloss.Style, steps)
	for i := range styles {
		t := 0.0
		if steps > 1 {
			t = float64(i) / float64(steps-1)
		}
		c := a.BlendLab(b, t).Clamped()
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}
	return styles
}
