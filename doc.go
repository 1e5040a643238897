// Package arbor queries hierarchies of nodes: scene-graph-like trees where
// every node has a name, a tag, a layer, ordered children and a set of typed
// capabilities.
//
// # Queries
//
// Every query reads the tree at call time and returns a fresh slice. Nothing
// is cached and the tree is never modified.
//
//   - [Children] and [ChildrenBy] look at immediate children only.
//   - [Descendants] and [DescendantsBy] walk the whole subtree in depth-first
//     pre-order, excluding the starting node.
//   - [ComponentsOf] maps any node slice to the capabilities of one type,
//     skipping nodes that lack it. [NodesWith] keeps the nodes instead.
//
// Filters compose from [Predicate] values:
//
//	enemies := arbor.DescendantsBy(root, arbor.And(arbor.ByTag("Enemy"), arbor.ByLayer(8)))
//	health := arbor.ComponentsOf[*Health](enemies)
//
// # Layers
//
// Layers are integers. An [Engine] holds a [LayerTable] so that queries can
// take a label instead; a label that does not resolve becomes [NoLayer] and
// the query returns an empty slice.
//
// # Capabilities
//
// Capabilities are keyed by their Go type. [Attach], [Get], [Has] and [Detach]
// take the type as a type argument, so lookups are checked at compile time.
//
// # Tree shape
//
// [Node.AddChild] refuses to create cycles and moves a node that already has
// a parent, so a tree built through this package is always a tree. Traversal
// uses an explicit stack and does not recurse.
package arbor
