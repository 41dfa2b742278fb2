package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component defines the contract for the widgets the viewer composes. View
// returns plain content; only the root model deals with the cursor.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Focusable is implemented by components that take keyboard input only while
// focused.
type Focusable interface {
	Component
	Focus()
	Blur()
	Focused() bool
}
