package eventviewer

import (
	"errors"
	"strings"
	"testing"

	"tableflip.dev/hgrid/pkg/matrix"
	"tableflip.dev/hgrid/pkg/tui/events"
)

func TestAppendKeepsNewestFirstAndCaps(t *testing.T) {
	m := NewModel(2)
	m.Append(Entry{Summary: "one"})
	m.Append(Entry{Summary: "two"})
	m.Append(Entry{Summary: "three"})

	got := m.Entries()
	if len(got) != 2 || got[0].Summary != "three" || got[1].Summary != "two" {
		t.Fatalf("unexpected entries %+v", got)
	}
	if got[0].Source != "grid" || got[0].Timestamp.IsZero() {
		t.Fatalf("expected defaults to be filled in, got %+v", got[0])
	}

	m.SetSize(60, 6)
	if view := m.View(); !strings.Contains(view, "Events (3)") || !strings.Contains(view, "three") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	m.Clear()
	if len(m.Entries()) != 0 || !strings.Contains(m.View(), "No events yet") {
		t.Fatalf("expected an empty log")
	}
}

func TestEntryFor(t *testing.T) {
	for _, tc := range []struct {
		name  string
		msg   any
		want  string
		level Level
	}{
		{
			name: "line",
			msg:  events.LineChangeMsg{Component: "grid", Axis: events.AxisRow, Event: matrix.LineEvent{Type: matrix.EventAdd, Start: 1, End: 2}},
			want: `axis:"row" type:"add" range:[1,2]`,
		},
		{
			name: "items",
			msg:  events.ItemsChangeMsg{Component: "grid", Added: true, Items: []events.CellRef{{Col: 1, Row: 0, Label: "b", Parent: "a"}}},
			want: `action:"added" items:[b<a@1,0]`,
		},
		{
			name:  "rejected",
			msg:   events.TreeChangeMsg{Component: "grid", Action: events.ChangeMove, Label: "a", Target: "b"},
			want:  `action:"move" label:"a" target:"b" accepted:false`,
			level: LevelWarn,
		},
		{
			name:  "reload",
			msg:   events.SourceReloadMsg{Path: "tree.yaml", Err: errors.New("boom")},
			want:  `path:"tree.yaml" err:"boom"`,
			level: LevelError,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			entry, ok := EntryFor(tc.msg)
			if !ok {
				t.Fatalf("expected an entry")
			}
			if entry.Detail != tc.want || entry.Level != tc.level {
				t.Fatalf("got %q level %d, want %q level %d", entry.Detail, entry.Level, tc.want, tc.level)
			}
		})
	}

	if _, ok := EntryFor("noise"); ok {
		t.Fatalf("expected unrelated messages to be ignored")
	}
}

func TestUpdateLogsGridMessages(t *testing.T) {
	m := NewModel(10)
	m.Update(events.GridResetMsg{Component: "grid", Rows: 3, Cols: 2})
	m.Update(struct{}{})
	if got := m.Entries(); len(got) != 1 || got[0].Detail != "rows:3 cols:2" {
		t.Fatalf("unexpected entries %+v", got)
	}
}
