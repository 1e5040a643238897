package arbor

import (
	"fmt"
	"reflect"
)

// Node is one element of a hierarchy. Name, Tag, Layer and Active are plain
// fields owned by the application; children, parent and capabilities are
// maintained through methods so the tree stays acyclic and every node has at
// most one parent.
type Node struct {
	ID     string
	Name   string
	Tag    string
	Layer  Layer
	Active bool

	parent   *Node
	children []*Node
	caps     map[reflect.Type]any
	capOrder []reflect.Type // attach order, for stable listings
}

// NodeOption configures a Node at construction.
type NodeOption func(*Node)

// WithTag sets the node's tag.
func WithTag(tag string) NodeOption {
	return func(n *Node) { n.Tag = tag }
}

// WithLayer sets the node's layer.
func WithLayer(l Layer) NodeOption {
	return func(n *Node) { n.Layer = l }
}

// WithID sets the node's identifier.
func WithID(id string) NodeOption {
	return func(n *Node) { n.ID = id }
}

// NewNode creates an active, detached node on the Default layer.
func NewNode(name string, opts ...NodeOption) *Node {
	n := &Node{
		Name:   name,
		Layer:  LayerDefault,
		Active: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// ChildCount returns the number of immediate children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child. It panics when i is out of range, like a slice
// index would.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// SetActive sets the Active flag.
func (n *Node) SetActive(active bool) {
	n.Active = active
}

// AddChild appends child to n's children. If child already has a parent it is
// detached from it first. Adding n itself or one of its ancestors returns
// ErrCycle and leaves the tree unchanged.
func (n *Node) AddChild(child *Node) error {
	if n == nil || child == nil {
		return ErrNilNode
	}
	for a := n; a != nil; a = a.parent {
		if a == child {
			return fmt.Errorf("add %q under %q: %w", child.Name, n.Name, ErrCycle)
		}
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// MustAddChild is AddChild for building fixed trees; it panics on error and
// returns n so calls can be chained.
func (n *Node) MustAddChild(children ...*Node) *Node {
	for _, c := range children {
		if err := n.AddChild(c); err != nil {
			panic(err)
		}
	}
	return n
}

// RemoveChild detaches child from n. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Depth returns the number of ancestors above n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

func (n *Node) String() string {
	return fmt.Sprintf("%s[tag=%s layer=%d]", n.Name, n.Tag, n.Layer)
}
