package hgrid

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"

	"tableflip.dev/hgrid/pkg/hierarchy"
	"tableflip.dev/hgrid/pkg/matrix"
)

type doc struct {
	ID       string
	Children []*doc
}

func d(id string, children ...*doc) *doc {
	return &doc{ID: id, Children: children}
}

// ref builds a lookup key; the test grids identify docs by ID.
func ref(id string) *doc {
	return &doc{ID: id}
}

// sample is {1: [2, 3: [4, 5]]}.
func sample() *doc {
	return d("1", d("2"), d("3", d("4"), d("5")))
}

func newGrid(roots ...*doc) *Grid[*doc] {
	g := New(
		func(x *doc) matrix.Size { return matrix.Size{Width: len(x.ID), Height: 1} },
		WithIdentity(func(x *doc) string { return x.ID }),
	)
	g.Source(roots...)
	return g
}

// render prints one line per row with "." for empty cells.
func render(g *Grid[*doc]) string {
	var b strings.Builder
	count := g.Count()
	for r := 0; r < count.Rows; r++ {
		fmt.Fprintf(&b, "%d:", r)
		for c := 0; c < count.Cols; c++ {
			if item, ok := g.Item(c, r); ok {
				b.WriteString(" " + item.ID)
			} else {
				b.WriteString(" .")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func leaves(g *Grid[*doc]) string {
	var b strings.Builder
	for _, top := range g.Root().ChildNodes() {
		hierarchy.PreOrder(top.Node, func(h *hierarchy.Node[*doc]) bool {
			fmt.Fprintf(&b, "%s: %d\n", h.Data().ID, wrap(h).LeafCount())
			return true
		})
	}
	return b.String()
}

// parseTree reads one ID per line, nested by two spaces per level.
func parseTree(t *testing.T, input string) []*doc {
	var roots []*doc
	var stack []*doc
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		trimmed := strings.TrimLeft(line, " ")
		depth := (len(line) - len(trimmed)) / 2
		if depth > len(stack) {
			t.Fatalf("line %q is nested too deep", line)
		}
		stack = stack[:depth]
		n := d(trimmed)
		if depth == 0 {
			roots = append(roots, n)
		} else {
			p := stack[depth-1]
			p.Children = append(p.Children, n)
		}
		stack = append(stack, n)
	}
	return roots
}

// checkSpans verifies that every placed node sits in the column of its depth
// and that its children tile its row span.
func checkSpans(t *testing.T, g *Grid[*doc]) {
	t.Helper()
	var check func(n *Node[*doc])
	check = func(n *Node[*doc]) {
		col, row, ok := g.Index(n.Data())
		require.True(t, ok, "%s is not placed", n.Data().ID)
		require.Equal(t, n.Depth(), col)
		next := row
		sum := 0
		for _, c := range n.ChildNodes() {
			_, crow, ok := g.Index(c.Data())
			require.True(t, ok)
			require.Equal(t, next, crow, "%s does not follow its previous sibling", c.Data().ID)
			next += c.LeafCount()
			sum += c.LeafCount()
			check(c)
		}
		require.Equal(t, max(1, sum), n.LeafCount())
	}
	for _, top := range g.Root().ChildNodes() {
		check(top)
	}
}

func TestGridDataDriven(t *testing.T) {
	var g *Grid[*doc]
	defer func() {
		if g != nil {
			g.Close()
		}
	}()

	datadriven.RunTest(t, "testdata/grid", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "source":
			if g != nil {
				g.Close()
			}
			g = newGrid(parseTree(t, td.Input)...)
			checkSpans(t, g)
			return render(g)

		case "add":
			var id string
			td.ScanArgs(t, "id", &id)
			var ok bool
			if td.HasArg("parent") {
				var parent string
				td.ScanArgs(t, "parent", &parent)
				ok = g.Add(ref(parent), d(id))
			} else {
				ok = g.AddRoot(d(id))
			}
			if !ok {
				return "rejected\n"
			}
			checkSpans(t, g)
			return render(g)

		case "remove":
			var id string
			td.ScanArgs(t, "id", &id)
			if !g.Remove(ref(id)) {
				return "rejected\n"
			}
			checkSpans(t, g)
			return render(g)

		case "move":
			var id string
			td.ScanArgs(t, "id", &id)
			var ok bool
			if td.HasArg("parent") {
				var parent string
				td.ScanArgs(t, "parent", &parent)
				ok = g.Move(ref(id), ref(parent))
			} else {
				ok = g.MoveRoot(ref(id))
			}
			if !ok {
				return "rejected\n"
			}
			checkSpans(t, g)
			return render(g)

		case "filter":
			hidden := map[string]bool{}
			for _, arg := range td.CmdArgs {
				if arg.Key == "hide" {
					for _, v := range arg.Vals {
						hidden[v] = true
					}
				}
			}
			if len(hidden) > 0 {
				g.Filter(func(x *doc) bool { return !hidden[x.ID] })
			} else {
				g.Filter(nil)
			}
			checkSpans(t, g)
			return render(g)

		case "leaves":
			return leaves(g)

		default:
			td.Fatalf(t, "unknown command: %s", td.Cmd)
			return ""
		}
	})
}

func TestScenarioProjection(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	for _, tc := range []struct {
		id       string
		col, row int
	}{
		{"1", 0, 0}, {"2", 1, 0}, {"3", 1, 1}, {"4", 2, 1}, {"5", 2, 2},
	} {
		col, row, ok := g.Index(ref(tc.id))
		require.True(t, ok)
		require.Equal(t, tc.col, col, tc.id)
		require.Equal(t, tc.row, row, tc.id)
	}
	require.Equal(t, 3, g.LeafCount(ref("1")))
	require.Equal(t, 2, g.LeafCount(ref("3")))
	require.Equal(t, matrix.IndexSize{Rows: 3, Cols: 3}, g.Count())

	g.UpdatePosition()
	require.Equal(t, matrix.Size{Width: 3, Height: 3}, g.Size())
	box, ok := g.ItemBox(ref("4"))
	require.True(t, ok)
	require.Equal(t, matrix.Box{X: 2, Y: 1, Width: 1, Height: 1}, box)
	byID, ok := g.ItemBoxBy("4")
	require.True(t, ok)
	require.Equal(t, box, byID)

	parent, ok := g.Parent(ref("5"))
	require.True(t, ok)
	require.Equal(t, "3", parent.ID)
	_, ok = g.Parent(ref("1"))
	require.False(t, ok)

	var parents []string
	for _, p := range g.Parents(ref("5")) {
		parents = append(parents, p.ID)
	}
	require.Equal(t, []string{"3", "1"}, parents)
}

func TestAppendLeafMovesNothingElse(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	var added [][]ItemEvent[*doc]
	var removed int
	g.OnItemAdded(func(evs []ItemEvent[*doc]) { added = append(added, evs) })
	g.OnItemRemoved(func(evs []ItemEvent[*doc]) { removed += len(evs) })

	require.True(t, g.Add(ref("3"), d("6")))

	require.Equal(t, 3, g.LeafCount(ref("3")))
	require.Equal(t, 4, g.LeafCount(ref("1")))
	require.Zero(t, removed)
	require.Len(t, added, 1)
	require.Len(t, added[0], 1)
	e := added[0][0]
	require.Equal(t, 2, e.Col)
	require.Equal(t, 3, e.Row)
	require.Equal(t, "6", e.Item.ID)
	require.True(t, e.HasParent)
	require.Equal(t, "3", e.Parent.ID)
}

func TestRemoveShiftsFollowingRowsUp(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	require.True(t, g.Remove(ref("2")))

	require.Equal(t, 2, g.LeafCount(ref("1")))
	require.Equal(t, "0: 1 3 4\n1: . . 5\n", render(g))
	_, _, ok := g.Index(ref("2"))
	require.False(t, ok)
	require.False(t, g.Remove(ref("2")))
}

func TestSubtreeRemovalIsOneBatch(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	var batches [][]ItemEvent[*doc]
	g.OnItemRemoved(func(evs []ItemEvent[*doc]) { batches = append(batches, evs) })
	var rows []matrix.LineEvent
	g.OnRowChange(func(e matrix.LineEvent) { rows = append(rows, e) })

	require.True(t, g.Remove(ref("3")))

	require.Len(t, batches, 1)
	var got []string
	for _, e := range batches[0] {
		got = append(got, e.Item.ID+"<"+e.Parent.ID)
	}
	require.Equal(t, []string{"3<1", "4<3", "5<3"}, got)
	require.Contains(t, rows, matrix.LineEvent{Type: matrix.EventRemove, Start: 2, End: 2})
	require.Equal(t, "0: 1 2\n", render(g))
}

func TestListenersSeeCommittedState(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	checked := 0
	g.OnItemAdded(func(evs []ItemEvent[*doc]) {
		for _, e := range evs {
			col, row, ok := g.Index(e.Item)
			if !ok {
				// Shifted again later in the same operation.
				continue
			}
			checked++
			require.GreaterOrEqual(t, col, 0)
			require.GreaterOrEqual(t, row, 0)
		}
		require.Equal(t, 4, g.LeafCount(ref("1")))
	})
	require.True(t, g.Add(ref("2"), d("6", d("7"), d("8"))))
	require.Positive(t, checked)
	checkSpans(t, g)
}

func TestListenerMayMutate(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	g.OnItemAdded(func(evs []ItemEvent[*doc]) {
		for _, e := range evs {
			if e.Item.ID == "6" {
				g.Add(ref("6"), d("7"))
			}
		}
	})
	require.True(t, g.Add(ref("5"), d("6")))
	_, ok := g.Parent(ref("7"))
	require.True(t, ok)
	checkSpans(t, g)
}

func TestListenerPanicPropagates(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	unbind := g.OnItemAdded(func([]ItemEvent[*doc]) { panic("listener failed") })
	require.PanicsWithValue(t, "listener failed", func() { g.AddRoot(d("6")) })
	_, row, ok := g.Index(ref("6"))
	require.True(t, ok, "the mutation commits before listeners run")
	require.Equal(t, 3, row)

	unbind()
	var added []string
	g.OnItemAdded(func(evs []ItemEvent[*doc]) {
		for _, e := range evs {
			added = append(added, e.Item.ID)
		}
	})
	require.True(t, g.AddRoot(d("7")))
	require.Equal(t, []string{"7"}, added)
	checkSpans(t, g)
}

func TestNestedMutationReportsItsOwnItems(t *testing.T) {
	g := newGrid(d("a"))
	defer g.Close()

	var log []string
	g.OnItemAdded(func(evs []ItemEvent[*doc]) {
		for _, e := range evs {
			log = append(log, "added "+e.Item.ID)
		}
	})
	nested := false
	g.OnRowChange(func(e matrix.LineEvent) {
		if e.Type != matrix.EventAdd || nested {
			return
		}
		nested = true
		require.True(t, g.AddRoot(d("c")))
		log = append(log, "nested done")
	})

	require.True(t, g.AddRoot(d("b")))
	require.Equal(t, []string{"added c", "nested done", "added b"}, log)
	require.Equal(t, "0: a\n1: b\n2: c\n", render(g))
}

func TestRemovingEverythingEmptiesTheGrid(t *testing.T) {
	g := newGrid(d("a", d("b")))
	defer g.Close()

	var rows []matrix.LineEvent
	g.OnRowChange(func(e matrix.LineEvent) { rows = append(rows, e) })
	require.True(t, g.Remove(ref("a")))
	require.Equal(t, matrix.IndexSize{}, g.Count())
	require.Equal(t, matrix.Size{}, g.Size())
	require.Contains(t, rows, matrix.LineEvent{Type: matrix.EventRemove, Start: 0, End: 0})

	require.True(t, g.AddRoot(d("c")))
	require.Equal(t, "0: c\n", render(g))
	checkSpans(t, g)
}

func TestMoveRejectsCycleAndSameParent(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	require.False(t, g.Move(ref("1"), ref("4")))
	require.False(t, g.Move(ref("4"), ref("3")))
	require.False(t, g.Move(ref("4"), ref("4")))
	require.False(t, g.Move(ref("missing"), ref("1")))
	require.False(t, g.Add(ref("3"), d("4")), "duplicate add under the same parent")
	require.False(t, g.Add(ref("missing"), d("9")))

	// Adding a known item under another parent moves it.
	require.True(t, g.Add(ref("2"), d("4")))
	parent, ok := g.Parent(ref("4"))
	require.True(t, ok)
	require.Equal(t, "2", parent.ID)
	checkSpans(t, g)
}

func TestMoveKeepsNodeIdentity(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	before, ok := g.Node(ref("3"))
	require.True(t, ok)
	require.True(t, g.MoveRoot(ref("3")))
	after, ok := g.Node(ref("3"))
	require.True(t, ok)
	require.Same(t, before, after)
	require.True(t, after.IsRoot())
	require.Equal(t, "0: 1 2\n1: 3 4\n2: . 5\n", render(g))
	checkSpans(t, g)
}

func TestFilterRegenerates(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	resets := 0
	g.OnReset(func() { resets++ })

	g.Filter(func(x *doc) bool { return x.ID != "3" })
	require.Equal(t, 1, resets)
	require.Equal(t, 1, g.LeafCount(ref("1")))
	_, _, ok := g.Index(ref("4"))
	require.False(t, ok)
	_, ok = g.Node(ref("4"))
	require.True(t, ok, "hidden nodes stay indexed")

	g.Filter(nil)
	require.Equal(t, 2, resets)
	require.Equal(t, 3, g.LeafCount(ref("1")))
	checkSpans(t, g)
}

func TestSourceResets(t *testing.T) {
	g := newGrid()
	defer g.Close()
	require.Equal(t, matrix.IndexSize{}, g.Count())

	resets := 0
	g.OnReset(func() { resets++ })
	g.Source(d("a", d("b")), d("c"))

	require.Equal(t, 1, resets)
	require.Equal(t, "0: a b\n1: c .\n", render(g))
	_, ok := g.Node(ref("1"))
	require.False(t, ok)
}

func TestUpdateResizesLine(t *testing.T) {
	type box struct {
		w int
	}
	g := New(func(b *box) matrix.Size { return matrix.Size{Width: b.w, Height: 1} })
	defer g.Close()
	item := &box{w: 2}
	g.Source(item)
	require.Equal(t, 2, g.Size().Width)

	item.w = 7
	require.True(t, g.Update(item))
	require.Equal(t, 7, g.Size().Width)
	require.False(t, g.Update(&box{w: 7}), "reference identity")
}

func TestReferenceIdentityOverMaps(t *testing.T) {
	child := map[string]any{"name": "child"}
	root := map[string]any{"name": "root", "children": []any{child}}
	g := New(func(map[string]any) matrix.Size { return matrix.Size{Width: 1, Height: 1} })
	defer g.Close()
	g.Source(root)

	col, row, ok := g.Index(child)
	require.True(t, ok)
	require.Equal(t, 1, col)
	require.Equal(t, 0, row)

	_, _, ok = g.Index(map[string]any{"name": "child"})
	require.False(t, ok)
}

func TestEachRows(t *testing.T) {
	g := newGrid(sample())
	defer g.Close()

	var cells []string
	g.Each(func(c Cell[*doc]) bool {
		cells = append(cells, fmt.Sprintf("%s@%d,%d", c.Item.ID, c.Col, c.Row))
		return true
	})
	require.Equal(t, []string{"1@0,0", "2@1,0", "3@1,1", "4@2,1", "5@2,2"}, cells)

	cells = cells[:0]
	g.EachRows(2, 2, func(c Cell[*doc]) bool {
		cells = append(cells, c.Item.ID)
		return true
	})
	require.Equal(t, []string{"5"}, cells)
}

func TestClose(t *testing.T) {
	g := newGrid(sample())
	events := 0
	g.OnItemAdded(func([]ItemEvent[*doc]) { events++ })
	g.OnReset(func() { events++ })

	g.Close()
	g.Close()
	require.True(t, g.Closed())
	require.False(t, g.Add(ref("1"), d("9")))
	require.False(t, g.AddRoot(d("9")))
	require.False(t, g.Remove(ref("2")))
	g.Source(d("x"))
	g.Filter(nil)
	require.Zero(t, events)
	_, _, ok := g.Index(ref("1"))
	require.False(t, ok)
}

func TestNodeLeafCountBookkeeping(t *testing.T) {
	root := wrap(hierarchy.NewRoot(d("r")))
	require.Equal(t, 1, root.LeafCount())
	require.True(t, root.IsEmpty())

	a := wrap(root.NewNode(d("a", d("a1"), d("a2"))))
	require.Equal(t, 2, a.LeafCount())

	delta, ok := root.AddNode(a)
	require.True(t, ok)
	require.Equal(t, 1, delta, "first child replaces the placeholder row")
	require.Equal(t, 2, root.LeafCount())
	require.True(t, root.IsLastOne(a))

	b := wrap(root.NewNode(d("b")))
	delta, ok = root.AddNode(b)
	require.True(t, ok)
	require.Equal(t, 1, delta)
	require.Equal(t, 3, root.LeafCount())

	_, ok = root.AddNode(b)
	require.False(t, ok)

	delta, ok = root.RemoveNode(a)
	require.True(t, ok)
	require.Equal(t, -2, delta)
	require.Equal(t, 1, root.LeafCount())

	delta, ok = root.RemoveNode(b)
	require.True(t, ok)
	require.Equal(t, 0, delta, "last child gives the placeholder row back")
	require.Equal(t, 1, root.LeafCount())
}
