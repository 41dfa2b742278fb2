package hierarchy

// The walks below only follow visible children and stop as soon as fn
// returns false. Each returns false when it was stopped early.

// PreOrder visits n and then its descendants, parents before children.
func PreOrder[D any](n *Node[D], fn func(*Node[D]) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.ChildNodes() {
		if !PreOrder(c, fn) {
			return false
		}
	}
	return true
}

// ReversePreOrder visits the nodes of PreOrder in exactly the opposite order:
// the last descendant first and n itself last.
func ReversePreOrder[D any](n *Node[D], fn func(*Node[D]) bool) bool {
	children := n.ChildNodes()
	for i := len(children) - 1; i >= 0; i-- {
		if !ReversePreOrder(children[i], fn) {
			return false
		}
	}
	return fn(n)
}

// PostOrder visits the descendants of n and then n, children before parents.
func PostOrder[D any](n *Node[D], fn func(*Node[D]) bool) bool {
	for _, c := range n.ChildNodes() {
		if !PostOrder(c, fn) {
			return false
		}
	}
	return fn(n)
}

// NextSiblings visits the visible siblings after n, then the siblings after
// n's parent, and so on outward up to the root. Together with their subtrees
// these are exactly the nodes following the subtree of n in pre-order.
func NextSiblings[D any](n *Node[D], fn func(*Node[D]) bool) bool {
	for cur := n; cur.parent != nil; cur = cur.parent {
		all := cur.parent.all
		i := indexOf(all, cur)
		for _, s := range all[i+1:] {
			if s.shown && !fn(s) {
				return false
			}
		}
	}
	return true
}

// PrevSiblings visits the visible siblings before n, nearest first, then
// those before n's parent, and so on outward up to the root.
func PrevSiblings[D any](n *Node[D], fn func(*Node[D]) bool) bool {
	for cur := n; cur.parent != nil; cur = cur.parent {
		all := cur.parent.all
		for i := indexOf(all, cur) - 1; i >= 0; i-- {
			if all[i].shown && !fn(all[i]) {
				return false
			}
		}
	}
	return true
}

func indexOf[D any](list []*Node[D], n *Node[D]) int {
	for i, x := range list {
		if x == n {
			return i
		}
	}
	return -1
}

// Fold combines n's subtree in post-order.
func Fold[D, A any](n *Node[D], acc A, fn func(acc A, n *Node[D]) A) A {
	PostOrder(n, func(x *Node[D]) bool {
		acc = fn(acc, x)
		return true
	})
	return acc
}

// RowCount is the number of grid rows n's subtree spans: the number of its
// visible leaves, at least one. A virtual root spans only its children.
func RowCount[D any](n *Node[D]) int {
	sum := 0
	for _, c := range n.ChildNodes() {
		sum += RowCount(c)
	}
	if n.virtual {
		return sum
	}
	return max(1, sum)
}

// ColCount is the number of grid columns n's subtree spans: one per level.
func ColCount[D any](n *Node[D]) int {
	deepest := 0
	for _, c := range n.ChildNodes() {
		deepest = max(deepest, ColCount(c))
	}
	if n.virtual {
		return deepest
	}
	return deepest + 1
}
