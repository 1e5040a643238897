package arbor

import "iter"

// Children returns n's immediate children in order. The slice is a copy;
// changing it does not change the tree.
func Children(n *Node) []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildrenBy returns the immediate children matching p, in order. A nil p
// matches everything.
func ChildrenBy(n *Node, p Predicate) []*Node {
	return filter(n.children, p)
}

// ChildrenByName returns the immediate children named name.
func ChildrenByName(n *Node, name string) []*Node {
	return ChildrenBy(n, ByName(name))
}

// ChildrenByTag returns the immediate children tagged tag.
func ChildrenByTag(n *Node, tag string) []*Node {
	return ChildrenBy(n, ByTag(tag))
}

// ChildrenByLayer returns the immediate children on layer l.
func ChildrenByLayer(n *Node, l Layer) []*Node {
	return ChildrenBy(n, ByLayer(l))
}

// Descendants returns every node below n in depth-first pre-order: a parent
// before its children, siblings in child order, each subtree finished before
// the next sibling starts. n itself is not included.
func Descendants(n *Node) []*Node {
	return DescendantsBy(n, nil)
}

// DescendantsBy returns the descendants of n matching p, in the same order as
// Descendants. A nil p matches everything.
func DescendantsBy(n *Node, p Predicate) []*Node {
	out := make([]*Node, 0, len(n.children))
	for d := range Walk(n) {
		if p == nil || p(d) {
			out = append(out, d)
		}
	}
	return out
}

// DescendantsByName returns the descendants named name.
func DescendantsByName(n *Node, name string) []*Node {
	return DescendantsBy(n, ByName(name))
}

// DescendantsByTag returns the descendants tagged tag.
func DescendantsByTag(n *Node, tag string) []*Node {
	return DescendantsBy(n, ByTag(tag))
}

// DescendantsByLayer returns the descendants on layer l.
func DescendantsByLayer(n *Node, l Layer) []*Node {
	return DescendantsBy(n, ByLayer(l))
}

// Walk yields the descendants of n in the order Descendants returns them.
// It uses an explicit stack, so deep trees do not grow the call stack.
func Walk(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		stack := make([]*Node, 0, len(n.children))
		stack = pushReversed(stack, n.children)
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(top) {
				return
			}
			stack = pushReversed(stack, top.children)
		}
	}
}

func pushReversed(stack, nodes []*Node) []*Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, nodes[i])
	}
	return stack
}

func filter(nodes []*Node, p Predicate) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if p == nil || p(n) {
			out = append(out, n)
		}
	}
	return out
}
