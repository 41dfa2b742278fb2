package app

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/hgrid/pkg/hgrid"
	"tableflip.dev/hgrid/pkg/source"
	"tableflip.dev/hgrid/pkg/tui/components/eventviewer"
	"tableflip.dev/hgrid/pkg/tui/components/gridview"
	"tableflip.dev/hgrid/pkg/tui/components/help"
	"tableflip.dev/hgrid/pkg/tui/events"
)

type watchClosedMsg struct{}

// Options configures the viewer.
type Options struct {
	Path     string
	Grid     *hgrid.Grid[any]
	Access   source.Accessors
	LabelKey string
	IDKey    string
	Padding  int
	Filter   string

	// Load re-reads the source. It runs for every event received on Watch.
	Load  func() ([]any, error)
	Watch <-chan source.Event

	ShowEvents bool
	MaxEvents  int
}

// Model composes the grid view and, when enabled, an event log docked below
// it.
type Model struct {
	opts Options

	width  int
	height int

	grid        *gridview.Model
	showEvents  bool
	eventViewer *eventviewer.Model
	showHelp    bool
	help        *help.Model
}

// New constructs the root model.
func New(opts Options) *Model {
	return &Model{
		opts: opts,
		grid: gridview.New(gridview.Options{
			ID:       events.ComponentID("grid"),
			Grid:     opts.Grid,
			Access:   opts.Access,
			LabelKey: opts.LabelKey,
			IDKey:    opts.IDKey,
			Padding:  opts.Padding,
			Filter:   opts.Filter,
		}),
		showEvents:  opts.ShowEvents,
		eventViewer: eventviewer.NewModel(opts.MaxEvents),
		help:        help.New(0, 0),
	}
}

// Run launches the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	defer m.grid.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.grid.Init(), m.waitForChange())
}

// waitForChange blocks on the next watch event and reloads the source.
func (m *Model) waitForChange() tea.Cmd {
	if m.opts.Watch == nil || m.opts.Load == nil {
		return nil
	}
	ch, load := m.opts.Watch, m.opts.Load
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		if ev.Removed {
			return events.SourceReloadMsg{Path: ev.Path, Err: errSourceRemoved}
		}
		roots, err := load()
		return events.SourceReloadMsg{Path: ev.Path, Roots: roots, Err: err}
	}
}

// Update routes Bubble Tea messages to the composed components.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.eventViewer.Update(msg)

	var cmds []tea.Cmd
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()
		return m, nil
	case tea.KeyPressMsg:
		if m.showHelp {
			switch v.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "?", "esc":
				m.showHelp = false
				return m, nil
			}
			_, cmd := m.help.Update(msg)
			return m, cmd
		}
		switch v.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "?":
			if !m.grid.Focused() {
				m.showHelp = true
				return m, nil
			}
		case "q":
			if !m.grid.Focused() {
				return m, tea.Quit
			}
		case "e":
			if !m.grid.Focused() {
				m.showEvents = !m.showEvents
				m.layout()
				return m, nil
			}
		}
	case events.SourceReloadMsg:
		if v.Err == nil {
			cmds = append(cmds, m.grid.Reload(v.Roots))
		}
		cmds = append(cmds, m.waitForChange())
		return m, tea.Batch(cmds...)
	case watchClosedMsg:
		return m, nil
	}

	_, cmd := m.grid.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the composed UI.
func (m *Model) View() (string, *tea.Cursor) {
	view := m.grid.View()
	if m.showHelp {
		view = m.help.View()
	}
	if m.showEvents && m.eventRows() > 0 {
		view += "\n" + m.eventViewer.View()
	}
	return view, nil
}

// eventRows is the height of the event log, a third of the window between 5
// and 12 rows, or nothing when the window is too small to share.
func (m *Model) eventRows() int {
	if m.height < 12 {
		return 0
	}
	return min(12, max(5, m.height/3))
}

func (m *Model) layout() {
	width, height := max(1, m.width), max(1, m.height)
	if m.showEvents {
		if rows := m.eventRows(); rows > 0 {
			m.eventViewer.SetSize(width, rows)
			height -= rows
		}
	}
	m.grid.SetSize(width, height)
	m.help.SetSize(width, height)
}
