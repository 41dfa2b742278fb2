package hierarchy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type doc struct {
	ID       string
	Children []*doc
}

func d(id string, children ...*doc) *doc {
	return &doc{ID: id, Children: children}
}

// sample is {1: [2, 3: [4, 5]]}.
func sample() *doc {
	return d("1", d("2"), d("3", d("4"), d("5")))
}

func ids(nodes []*Node[*doc]) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Data().ID)
	}
	return out
}

func collect(walk func(*Node[*doc], func(*Node[*doc]) bool) bool, n *Node[*doc]) []string {
	var out []string
	walk(n, func(x *Node[*doc]) bool {
		out = append(out, x.Data().ID)
		return true
	})
	return out
}

func find(root *Node[*doc], id string) *Node[*doc] {
	var found *Node[*doc]
	PreOrder(root, func(n *Node[*doc]) bool {
		if !n.IsVirtual() && n.Data().ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

type withMethod struct {
	name string
	kids []*withMethod
}

func (w *withMethod) Children() []*withMethod { return w.kids }

func TestDefaultChildren(t *testing.T) {
	// Struct field.
	require.Len(t, DefaultChildren(sample()), 2)

	// Method.
	w := &withMethod{name: "a", kids: []*withMethod{{name: "b"}}}
	require.Equal(t, "b", DefaultChildren(w)[0].name)

	// Decoded JSON.
	m := map[string]any{"name": "root", "children": []any{
		map[string]any{"name": "x"},
		"not a map",
	}}
	kids := DefaultChildren[any](m)
	require.Len(t, kids, 2)
	// Elements of the wrong type are dropped.
	maps := DefaultChildren(m)
	require.Len(t, maps, 1)

	var missing *doc
	require.Nil(t, DefaultChildren(missing))
	require.Nil(t, DefaultChildren(42))
}

func TestKeyedChildren(t *testing.T) {
	m := map[string]any{"items": []any{map[string]any{"name": "x"}}}
	require.Len(t, KeyedChildren[any]("items")(m), 1)
	require.Empty(t, KeyedChildren[any]("children")(m))
	require.Len(t, KeyedChildren[*doc]("children")(sample()), 2)
}

func TestLazyMaterialization(t *testing.T) {
	calls := 0
	children := func(x *doc) []*doc {
		calls++
		return x.Children
	}
	root := NewRoot(sample(), WithChildren(children))
	require.Zero(t, calls)
	require.False(t, root.Materialized())

	require.Equal(t, []string{"2", "3"}, ids(root.ChildNodes()))
	root.ChildNodes()
	require.Equal(t, 1, calls)

	three := root.ChildNodes()[1]
	require.Equal(t, 1, three.Depth())
	require.Same(t, root, three.Parent())
	require.Same(t, root, three.Root())
	require.False(t, three.IsLeaf())
	require.True(t, root.ChildNodes()[0].IsLeaf())
	require.NotEqual(t, root.ID(), three.ID())
}

func TestFilterKeepsStructure(t *testing.T) {
	root := NewRoot(sample())
	three := root.ChildNodes()[1]
	require.Len(t, three.ChildNodes(), 2)

	root.Filter(func(x *doc) bool { return x.ID != "3" && x.ID != "5" })

	require.Equal(t, []string{"2"}, ids(root.ChildNodes()))
	require.Equal(t, []string{"2", "3"}, ids(root.AllChildNodes()))
	require.False(t, three.Visible())
	// The hidden node still filters its own children.
	require.Equal(t, []string{"4"}, ids(three.ChildNodes()))
	// The root is never hidden by its own predicate result.
	require.True(t, root.Visible())

	root.Filter(nil)
	require.Equal(t, []string{"2", "3"}, ids(root.ChildNodes()))
	require.Equal(t, []string{"4", "5"}, ids(three.ChildNodes()))
	require.True(t, three.Visible())
}

func TestFilterAppliesToLaterMaterialization(t *testing.T) {
	root := NewRoot(sample(), WithFilter(func(x *doc) bool { return x.ID != "4" }))
	three := root.ChildNodes()[1]
	require.Equal(t, []string{"5"}, ids(three.ChildNodes()))
}

func TestAddNodeGuards(t *testing.T) {
	root := NewRoot(sample())
	two := root.ChildNodes()[0]
	three := root.ChildNodes()[1]

	require.False(t, root.AddNode(nil))
	require.False(t, root.AddNode(root))
	require.False(t, root.AddNode(two), "already attached")
	require.False(t, three.AddNode(NewForest[*doc](nil)))

	// A detached subtree cannot take its own ancestor.
	require.True(t, root.RemoveNode(three))
	four := three.ChildNodes()[0]
	require.False(t, four.AddNode(three))

	require.True(t, two.AddNode(three))
	require.Equal(t, 3, four.Depth())
	require.Same(t, root, four.Root())
	require.False(t, two.IsLeaf())
}

func TestAddAndRemove(t *testing.T) {
	root := NewRoot(sample())
	six, ok := root.Add(d("6"))
	require.True(t, ok)
	require.Equal(t, []string{"2", "3", "6"}, ids(root.ChildNodes()))
	require.Equal(t, 1, six.Depth())
	require.Equal(t, 1, root.IndexOf(root.ChildNodes()[1]))

	require.True(t, root.RemoveNode(six))
	require.False(t, root.RemoveNode(six))
	require.Nil(t, six.Parent())
	require.Same(t, six, six.Root())
	require.Equal(t, []string{"2", "3"}, ids(root.ChildNodes()))
	require.Equal(t, -1, root.IndexOf(six))
}

func TestAddHiddenNode(t *testing.T) {
	root := NewRoot(sample(), WithFilter(func(x *doc) bool { return !strings.HasPrefix(x.ID, "h") }))
	hidden, ok := root.Add(d("hidden"))
	require.True(t, ok)
	require.False(t, hidden.Visible())
	require.Len(t, root.AllChildNodes(), 3)
	require.Len(t, root.ChildNodes(), 2)
}

func TestSwitchParent(t *testing.T) {
	root := NewRoot(sample())
	two := find(root, "2")
	three := find(root, "3")
	five := find(root, "5")

	require.False(t, three.SwitchParent(root), "same parent")
	require.False(t, three.SwitchParent(five), "cycle")
	require.False(t, three.SwitchParent(nil))

	require.True(t, five.SwitchParent(two))
	require.Same(t, two, five.Parent())
	require.Equal(t, []string{"4"}, ids(three.ChildNodes()))
	require.Equal(t, []string{"5"}, ids(two.ChildNodes()))
	require.Equal(t, 2, five.Depth())
}

func TestWalks(t *testing.T) {
	root := NewRoot(sample())

	require.Equal(t, []string{"1", "2", "3", "4", "5"}, collect(PreOrder[*doc], root))
	require.Equal(t, []string{"5", "4", "3", "2", "1"}, collect(ReversePreOrder[*doc], root))
	require.Equal(t, []string{"2", "4", "5", "3", "1"}, collect(PostOrder[*doc], root))

	require.Equal(t, []string{"5"}, collect(NextSiblings[*doc], find(root, "4")))
	require.Equal(t, []string{"3"}, collect(NextSiblings[*doc], find(root, "2")))
	require.Empty(t, collect(NextSiblings[*doc], root))
	require.Equal(t, []string{"4", "2"}, collect(PrevSiblings[*doc], find(root, "5")))

	var stopped []string
	complete := PreOrder(root, func(n *Node[*doc]) bool {
		stopped = append(stopped, n.Data().ID)
		return n.Data().ID != "3"
	})
	require.False(t, complete)
	require.Equal(t, []string{"1", "2", "3"}, stopped)
}

func TestNextSiblingsSkipsHidden(t *testing.T) {
	root := NewRoot(d("r", d("a", d("a1")), d("b"), d("c")))
	root.Filter(func(x *doc) bool { return x.ID != "b" })
	require.Equal(t, []string{"c"}, collect(NextSiblings[*doc], find(root, "a1")))
}

func TestShapeMetrics(t *testing.T) {
	root := NewRoot(sample())
	require.Equal(t, 3, RowCount(root))
	require.Equal(t, 3, ColCount(root))
	require.Equal(t, 5, Fold(root, 0, func(acc int, _ *Node[*doc]) int { return acc + 1 }))

	leaf := NewRoot(d("x"))
	require.Equal(t, 1, RowCount(leaf))
	require.Equal(t, 1, ColCount(leaf))
}

func TestForest(t *testing.T) {
	forest := NewForest([]*doc{sample(), d("9")})
	require.True(t, forest.IsVirtual())
	require.Equal(t, -1, forest.Depth())

	tops := forest.ChildNodes()
	require.Equal(t, []string{"1", "9"}, ids(tops))
	require.Equal(t, 0, tops[0].Depth())
	require.True(t, tops[0].IsRoot())
	require.Same(t, forest, tops[0].Root())

	require.Equal(t, 4, RowCount(forest))
	require.Equal(t, 3, ColCount(forest))
	require.Zero(t, RowCount(NewForest[*doc](nil)))
}
