package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/hgrid/pkg/tui/events"
	"tableflip.dev/hgrid/pkg/tui/ui"
)

// Level indicates the severity of a logged event.
type Level int

const (
	// LevelInfo is the default severity.
	LevelInfo Level = iota
	// LevelWarn highlights rejected edits.
	LevelWarn
	// LevelError highlights failures.
	LevelError
)

// Entry captures a rendered event.
type Entry struct {
	Timestamp time.Time
	Source    string
	Summary   string
	Detail    string
	Level     Level
}

// Styles controls the log's presentation.
type Styles struct {
	Frame     lipgloss.Style
	Header    lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Timestamp lipgloss.Style
	Source    lipgloss.Style
}

// DefaultStyles returns the stock styling.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Model renders a streaming log of grid events, newest first.
type Model struct {
	viewport viewport.Model
	entries  []Entry
	total    int

	maxEntries int

	width  int
	height int

	styles Styles
}

var _ ui.Component = (*Model)(nil)

// NewModel constructs an event viewer capped at maxEntries.
func NewModel(maxEntries int) *Model {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	vp := viewport.New(
		viewport.WithWidth(1),
		viewport.WithHeight(1),
	)
	m := &Model{
		viewport:   vp,
		maxEntries: maxEntries,
		styles:     DefaultStyles(),
	}
	m.refreshContent()
	return m
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. Grid messages are logged; everything else
// is ignored.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if entry, ok := EntryFor(msg); ok {
		m.Append(entry)
	}
	return m, nil
}

// SetSize resizes the viewport while keeping the header and border intact.
func (m *Model) SetSize(width, height int) {
	width = max(width, 4)
	height = max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	const headerRows = 1
	m.viewport.SetWidth(max(1, width-2))
	m.viewport.SetHeight(max(1, height-2-headerRows))
	m.refreshContent()
}

// View renders the bordered log.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.styles.Header.Render(fmt.Sprintf("Events (%d)", m.total))
	body := lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
	return m.styles.Frame.Width(m.width).Height(m.height).Render(body)
}

// Append inserts a new entry at the top of the log.
func (m *Model) Append(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Source == "" {
		entry.Source = "grid"
	}
	if entry.Summary == "" {
		entry.Summary = "event"
	}
	m.total++
	m.entries = append([]Entry{entry}, m.entries...)
	if len(m.entries) > m.maxEntries {
		m.entries = m.entries[:m.maxEntries]
	}
	m.refreshContent()
	m.viewport.SetYOffset(0)
}

// Entries returns the retained entries, newest first.
func (m *Model) Entries() []Entry {
	return m.entries
}

// Clear drops all logged entries.
func (m *Model) Clear() {
	m.entries = nil
	m.total = 0
	m.refreshContent()
}

// WithStyles overrides the default styling.
func (m *Model) WithStyles(styles Styles) {
	m.styles = styles
	m.refreshContent()
}

// EntryFor converts the grid and source messages into log entries.
func EntryFor(msg tea.Msg) (Entry, bool) {
	switch v := msg.(type) {
	case events.GridResetMsg:
		return Entry{Source: string(v.Component), Summary: "reset", Detail: v.Describe()}, true
	case events.LineChangeMsg:
		return Entry{Source: string(v.Component), Summary: string(v.Axis), Detail: v.Describe()}, true
	case events.ItemsChangeMsg:
		return Entry{Source: string(v.Component), Summary: "items", Detail: v.Describe()}, true
	case events.TreeChangeMsg:
		level := LevelInfo
		if !v.Accepted {
			level = LevelWarn
		}
		return Entry{Source: string(v.Component), Summary: string(v.Action), Detail: v.Describe(), Level: level}, true
	case events.SourceReloadMsg:
		level := LevelInfo
		if v.Err != nil {
			level = LevelError
		}
		return Entry{Source: "source", Summary: "reload", Detail: v.Describe(), Level: level}, true
	default:
		return Entry{}, false
	}
}

func (m *Model) refreshContent() {
	lines := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		lines = append(lines, m.renderEntry(entry))
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = m.styles.Timestamp.Render("No events yet")
	}
	m.viewport.SetContent(content)
}

func (m *Model) renderEntry(entry Entry) string {
	ts := m.styles.Timestamp.Render(entry.Timestamp.Format("15:04:05.000"))
	source := m.styles.Source.Render(fmt.Sprintf("[%s]", entry.Source))
	msg := entry.Summary
	if entry.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, entry.Detail)
	}
	switch entry.Level {
	case LevelWarn:
		msg = m.styles.Warn.Render(msg)
	case LevelError:
		msg = m.styles.Error.Render(msg)
	default:
		msg = m.styles.Info.Render(msg)
	}
	return fmt.Sprintf("%s %s %s", ts, source, msg)
}
