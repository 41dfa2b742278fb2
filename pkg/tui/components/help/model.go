// Package help renders the key binding overlay of the grid viewer.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/hgrid/pkg/tui/ui"
)

// Binding pairs a key with what it does.
type Binding struct {
	Keys string
	Desc string
}

// Section groups bindings under a heading.
type Section struct {
	Title    string
	Bindings []Binding
}

// Sections are the bindings shown by New.
var Sections = []Section{
	{Title: "Move", Bindings: []Binding{
		{"k / up", "previous row"},
		{"j / down", "next row"},
		{"h / left", "parent"},
		{"l / right", "first child"},
		{"g / home", "first item"},
		{"G / end", "last item"},
	}},
	{Title: "Edit", Bindings: []Binding{
		{"a", "add a child"},
		{"A", "add a sibling"},
		{"d / delete", "remove the subtree"},
		{"x", "cut"},
		{"p", "paste under the selection"},
		{"P", "paste as a root"},
	}},
	{Title: "View", Bindings: []Binding{
		{"/", "filter labels"},
		{"esc", "clear cut and filter"},
		{"e", "toggle the event log"},
		{"?", "toggle this help"},
		{"q / ctrl+c", "quit"},
	}},
}

// Model renders the bindings inside a bordered, scrollable viewport.
type Model struct {
	viewport viewport.Model
	sections []Section
	width    int
	height   int

	frame lipgloss.Style
	title lipgloss.Style
	key   lipgloss.Style
}

var _ ui.Component = (*Model)(nil)

// New constructs a help overlay sized to the provided bounds.
func New(width, height int) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	m := &Model{
		viewport: vp,
		sections: Sections,
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		key:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
	}
	m.SetSize(width, height)
	return m
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the bindings inside a rounded frame.
func (m *Model) View() string {
	return m.frame.Width(m.width).Height(m.height).Render(m.viewport.View())
}

// SetSize configures the overlay dimensions and lays the bindings out again.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 24), max(height, 6)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	innerWidth := max(width-m.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-m.frame.GetVerticalFrameSize(), 1)
	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(innerHeight)
	m.viewport.SetContent(m.render())
	m.viewport.SetYOffset(0)
}

func (m *Model) render() string {
	keyWidth := 0
	for _, s := range m.sections {
		for _, b := range s.Bindings {
			keyWidth = max(keyWidth, lipgloss.Width(b.Keys))
		}
	}
	var lines []string
	for i, s := range m.sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, m.title.Render(s.Title))
		for _, b := range s.Bindings {
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(b.Keys))
			lines = append(lines, "  "+m.key.Render(b.Keys)+pad+"  "+b.Desc)
		}
	}
	return strings.Join(lines, "\n")
}
