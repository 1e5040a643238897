package arbor

import "github.com/bmatcuk/doublestar/v4"

// Predicate selects nodes during a query.
type Predicate func(*Node) bool

// ByName matches nodes whose name equals name exactly.
func ByName(name string) Predicate {
	return func(n *Node) bool { return n.Name == name }
}

// ByTag matches nodes whose tag equals tag exactly.
func ByTag(tag string) Predicate {
	return func(n *Node) bool { return n.Tag == tag }
}

// ByLayer matches nodes on layer l. ByLayer(NoLayer) matches nothing.
func ByLayer(l Layer) Predicate {
	if l == NoLayer {
		return none
	}
	return func(n *Node) bool { return n.Layer == l }
}

// ByNameGlob matches names against a doublestar pattern ("enemy_*",
// "{door,gate}*"). A malformed pattern matches nothing.
func ByNameGlob(pattern string) Predicate {
	if !doublestar.ValidatePattern(pattern) {
		return none
	}
	return func(n *Node) bool {
		ok, err := doublestar.Match(pattern, n.Name)
		return err == nil && ok
	}
}

// HasCapability matches nodes carrying a capability of type T.
func HasCapability[T any]() Predicate {
	return func(n *Node) bool { return Has[T](n) }
}

// IsActive matches nodes whose Active flag is set.
func IsActive() Predicate {
	return func(n *Node) bool { return n.Active }
}

// And matches when every predicate matches. And() matches everything.
func And(ps ...Predicate) Predicate {
	return func(n *Node) bool {
		for _, p := range ps {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Or matches when at least one predicate matches. Or() matches nothing.
func Or(ps ...Predicate) Predicate {
	return func(n *Node) bool {
		for _, p := range ps {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(n *Node) bool { return !p(n) }
}

func none(*Node) bool { return false }
