package events

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/hgrid/pkg/matrix"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// Axis names the matrix dimension a line event applies to.
type Axis string

const (
	// AxisRow marks row events.
	AxisRow Axis = "row"
	// AxisCol marks column events.
	AxisCol Axis = "col"
)

// CellRef captures the grid cell of an item without holding on to the item.
type CellRef struct {
	Col    int
	Row    int
	Label  string
	Parent string
}

func (r CellRef) String() string {
	if r.Parent == "" {
		return fmt.Sprintf("%s@%d,%d", r.Label, r.Col, r.Row)
	}
	return fmt.Sprintf("%s<%s@%d,%d", r.Label, r.Parent, r.Col, r.Row)
}

// GridResetMsg is emitted after the grid was rebuilt from scratch, either
// because a new source was loaded or the filter changed.
type GridResetMsg struct {
	Component ComponentID
	Rows      int
	Cols      int
}

// Describe renders the reset in a human-friendly format for logs.
func (m GridResetMsg) Describe() string {
	return fmt.Sprintf("rows:%d cols:%d", m.Rows, m.Cols)
}

// LineChangeMsg wraps a row or column event of the grid.
type LineChangeMsg struct {
	Component ComponentID
	Axis      Axis
	Event     matrix.LineEvent
}

// Describe renders the line change in a human-friendly format for logs.
func (m LineChangeMsg) Describe() string {
	return fmt.Sprintf("axis:%q %s", m.Axis, m.Event.Describe())
}

// ItemsChangeMsg wraps a batch of items entering (Added) or leaving cells.
type ItemsChangeMsg struct {
	Component ComponentID
	Added     bool
	Items     []CellRef
}

// Describe renders the batch in a human-friendly format for logs.
func (m ItemsChangeMsg) Describe() string {
	action := "removed"
	if m.Added {
		action = "added"
	}
	parts := make([]string, 0, len(m.Items))
	for _, it := range m.Items {
		parts = append(parts, it.String())
	}
	return fmt.Sprintf("action:%q items:[%s]", action, strings.Join(parts, " "))
}

// ChangeType enumerates the edits a user can make to the tree.
type ChangeType string

const (
	// ChangeAdd indicates a new item was added.
	ChangeAdd ChangeType = "add"
	// ChangeRemove indicates an item and its subtree were removed.
	ChangeRemove ChangeType = "remove"
	// ChangeMove indicates an item was reparented.
	ChangeMove ChangeType = "move"
	// ChangeFilter indicates the visibility filter changed.
	ChangeFilter ChangeType = "filter"
)

// TreeChangeMsg announces a user edit and whether the grid accepted it.
type TreeChangeMsg struct {
	Component ComponentID
	Action    ChangeType
	Label     string
	Target    string
	Accepted  bool
}

// Describe implements the logging helper.
func (m TreeChangeMsg) Describe() string {
	return fmt.Sprintf(`action:%q label:%q target:%q accepted:%t`, m.Action, m.Label, m.Target, m.Accepted)
}

// SelectionMsg fires whenever the cursor lands on a different item.
type SelectionMsg struct {
	Component ComponentID
	Cell      CellRef
}

// Describe renders the selection in a human-friendly format for logs.
func (m SelectionMsg) Describe() string {
	return fmt.Sprintf("cell:%s", m.Cell)
}

// SourceReloadMsg reports the outcome of reloading the source file.
type SourceReloadMsg struct {
	Path  string
	Roots []any
	Err   error
}

// Describe renders the reload in a human-friendly format for logs.
func (m SourceReloadMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf("path:%q err:%q", m.Path, m.Err.Error())
	}
	return fmt.Sprintf("path:%q roots:%d", m.Path, len(m.Roots))
}

// Cmd wraps a ready message into a tea.Cmd.
func Cmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
