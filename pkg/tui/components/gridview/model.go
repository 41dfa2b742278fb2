package gridview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/hgrid/pkg/hgrid"
	"tableflip.dev/hgrid/pkg/matrix"
	"tableflip.dev/hgrid/pkg/signal"
	"tableflip.dev/hgrid/pkg/source"
	"tableflip.dev/hgrid/pkg/tui/events"
	"tableflip.dev/hgrid/pkg/tui/theme"
	"tableflip.dev/hgrid/pkg/tui/ui"
)

type mode int

const (
	modeNormal mode = iota
	modeAddChild
	modeAddSibling
	modeFilter
)

const helpText = "hjkl move · a child · A sibling · d delete · x cut · p paste · P top · / filter · ? help"

// Options configures a grid view.
type Options struct {
	ID     events.ComponentID
	Grid   *hgrid.Grid[any]
	Access source.Accessors
	// LabelKey and IDKey name the fields written into documents created
	// from the add prompt.
	LabelKey string
	IDKey    string
	Padding  int
	// Filter is the text the grid is already filtered by, if any.
	Filter string
	Theme  *theme.Theme
}

// Model renders a hierarchy grid and edits it from the keyboard. Every grid
// event observed while handling a message is returned as a tea.Cmd so the
// root model can log it.
type Model struct {
	id     events.ComponentID
	grid   *hgrid.Grid[any]
	access source.Accessors
	theme  theme.Theme

	labelKey string
	idKey    string
	padding  int

	width  int
	height int
	top    int
	left   int

	cursor    any
	hasCursor bool
	clip      any
	hasClip   bool

	mode   mode
	input  textinput.Model
	filter string
	status string
	seq    int

	pending []tea.Msg
	unbind  []signal.Unbind
}

var _ ui.Focusable = (*Model)(nil)

// New constructs a view over opts.Grid and selects the first item.
func New(opts Options) *Model {
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	labelKey := opts.LabelKey
	if labelKey == "" {
		labelKey = "name"
	}
	ti := textinput.New()
	ti.CharLimit = 256

	m := &Model{
		id:       opts.ID,
		grid:     opts.Grid,
		access:   opts.Access,
		theme:    th,
		labelKey: labelKey,
		idKey:    opts.IDKey,
		padding:  max(0, opts.Padding),
		filter:   opts.Filter,
		input:    ti,
	}
	m.bind()
	m.grid.UpdatePosition()
	m.selectFirst()
	m.pending = nil
	return m
}

func (m *Model) bind() {
	g := m.grid
	m.unbind = append(m.unbind,
		g.OnReset(func() {
			count := g.Count()
			m.pending = append(m.pending, events.GridResetMsg{Component: m.id, Rows: count.Rows, Cols: count.Cols})
			m.revalidate()
		}),
		g.OnRowChange(func(e matrix.LineEvent) {
			m.pending = append(m.pending, events.LineChangeMsg{Component: m.id, Axis: events.AxisRow, Event: e})
		}),
		g.OnColChange(func(e matrix.LineEvent) {
			m.pending = append(m.pending, events.LineChangeMsg{Component: m.id, Axis: events.AxisCol, Event: e})
		}),
		g.OnItemAdded(func(items []hgrid.ItemEvent[any]) {
			m.pending = append(m.pending, events.ItemsChangeMsg{Component: m.id, Added: true, Items: m.refs(items)})
		}),
		g.OnItemRemoved(func(items []hgrid.ItemEvent[any]) {
			m.pending = append(m.pending, events.ItemsChangeMsg{Component: m.id, Items: m.refs(items)})
		}),
	)
}

// Close detaches the view from the grid.
func (m *Model) Close() {
	for _, u := range m.unbind {
		u()
	}
	m.unbind = nil
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Focus implements ui.Focusable. The view is focused while a prompt is open.
func (m *Model) Focus() {}

// Blur implements ui.Focusable by closing any open prompt.
func (m *Model) Blur() { m.closePrompt() }

// Focused reports whether a prompt is capturing keys.
func (m *Model) Focused() bool { return m.mode != modeNormal }

// Filter returns the active filter text.
func (m *Model) Filter() string { return m.filter }

// Status returns the current status line.
func (m *Model) Status() string { return m.status }

// Selected returns the item under the cursor.
func (m *Model) Selected() (any, bool) { return m.cursor, m.hasCursor }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	var cmds []tea.Cmd
	if key, ok := msg.(tea.KeyPressMsg); ok {
		if m.mode != modeNormal {
			cmds = append(cmds, m.handlePromptKey(key))
		} else {
			cmds = append(cmds, m.handleKey(key.String()))
		}
	} else if m.mode != modeNormal {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.grid.UpdatePosition()
	m.ensureVisible()
	cmds = append(cmds, m.flush())
	return m, tea.Batch(cmds...)
}

// Reload replaces the projected tree, keeping the cursor on the item with the
// same identity when there is one.
func (m *Model) Reload(roots []any) tea.Cmd {
	m.grid.Source(roots...)
	m.grid.UpdatePosition()
	m.ensureVisible()
	return m.flush()
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = max(1, width)
	m.height = max(3, height)
	m.input.SetWidth(max(1, m.width-4))
	m.ensureVisible()
}

func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, msg := range m.pending {
		cmds = append(cmds, events.Cmd(msg))
	}
	m.pending = nil
	return tea.Sequence(cmds...)
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		m.moveVertical(-1)
	case "down", "j":
		m.moveVertical(1)
	case "left", "h":
		m.moveToParent()
	case "right", "l":
		m.moveToChild()
	case "home", "g":
		m.selectFirst()
	case "end", "G":
		m.selectLast()
	case "a":
		return m.openPrompt(modeAddChild, "child> ", "")
	case "A":
		return m.openPrompt(modeAddSibling, "sibling> ", "")
	case "d", "delete":
		m.remove()
	case "x":
		m.cut()
	case "p":
		m.paste(false)
	case "P":
		m.paste(true)
	case "/":
		return m.openPrompt(modeFilter, "/", m.filter)
	case "esc":
		m.hasClip = false
		m.clip = nil
		if m.filter != "" {
			m.applyFilter("")
		}
	}
	return nil
}

func (m *Model) handlePromptKey(key tea.KeyPressMsg) tea.Cmd {
	switch key.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case modeAddChild, modeAddSibling:
			if value == "" {
				m.status = "label cannot be empty"
				return nil
			}
			m.add(value, m.mode == modeAddSibling)
		case modeFilter:
			m.applyFilter(value)
		}
		m.closePrompt()
		return nil
	case "esc":
		m.closePrompt()
		m.status = "cancelled"
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return cmd
}

func (m *Model) openPrompt(md mode, prompt, value string) tea.Cmd {
	m.mode = md
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.status = ""
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) label(item any) string {
	return m.access.Label(item)
}

func (m *Model) ref(col, row int, item any, parent any, hasParent bool) events.CellRef {
	r := events.CellRef{Col: col, Row: row, Label: m.label(item)}
	if hasParent {
		r.Parent = m.label(parent)
	}
	return r
}

func (m *Model) refs(items []hgrid.ItemEvent[any]) []events.CellRef {
	out := make([]events.CellRef, 0, len(items))
	for _, it := range items {
		out = append(out, m.ref(it.Col, it.Row, it.Item, it.Parent, it.HasParent))
	}
	return out
}

// same compares two items by the cell they occupy. Documents are maps, which
// are not comparable with ==.
func (m *Model) same(a, b any) bool {
	ca, ra, okA := m.grid.Index(a)
	cb, rb, okB := m.grid.Index(b)
	return okA && okB && ca == cb && ra == rb
}

func (m *Model) newDoc(label string) map[string]any {
	doc := map[string]any{m.labelKey: label}
	if m.idKey != "" {
		m.seq++
		doc[m.idKey] = fmt.Sprintf("%s#%d", label, m.seq)
	}
	return doc
}
