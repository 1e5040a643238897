package arbor

import (
	"reflect"
	"sort"
)

// Capabilities are keyed by their static Go type: Attach[*Health] and
// Get[*Health] address the same slot, while Health and *Health are distinct
// types. Interface types work too, as long as the same type argument is used
// on both sides.

func typeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Attach stores v as n's capability of type T, replacing any previous one.
func Attach[T any](n *Node, v T) {
	key := typeKey[T]()
	if n.caps == nil {
		n.caps = make(map[reflect.Type]any)
	}
	if _, exists := n.caps[key]; !exists {
		n.capOrder = append(n.capOrder, key)
	}
	n.caps[key] = v
}

// Get returns n's capability of type T.
func Get[T any](n *Node) (T, bool) {
	v, ok := n.caps[typeKey[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	t, _ := v.(T) // nil stored under an interface type
	return t, true
}

// Has reports whether n carries a capability of type T.
func Has[T any](n *Node) bool {
	_, ok := n.caps[typeKey[T]()]
	return ok
}

// Detach removes n's capability of type T and reports whether one was present.
func Detach[T any](n *Node) bool {
	key := typeKey[T]()
	if _, ok := n.caps[key]; !ok {
		return false
	}
	delete(n.caps, key)
	for i, k := range n.capOrder {
		if k == key {
			n.capOrder = append(n.capOrder[:i:i], n.capOrder[i+1:]...)
			break
		}
	}
	return true
}

// CapabilityTypes lists the types attached to n in attach order.
func CapabilityTypes(n *Node) []reflect.Type {
	out := make([]reflect.Type, len(n.capOrder))
	copy(out, n.capOrder)
	return out
}

// CapabilityNames returns the sorted type names of n's capabilities, for
// display.
func CapabilityNames(n *Node) []string {
	names := make([]string, 0, len(n.capOrder))
	for _, t := range n.capOrder {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// ComponentsOf returns, in order, the capability of type T of every node that
// has one. Nodes without it are skipped, so the result is never longer than
// nodes.
func ComponentsOf[T any](nodes []*Node) []T {
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		if v, ok := Get[T](n); ok {
			out = append(out, v)
		}
	}
	return out
}

// NodesWith returns the nodes carrying a capability of type T, in order.
func NodesWith[T any](nodes []*Node) []*Node {
	return filter(nodes, HasCapability[T]())
}
