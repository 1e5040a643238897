package arbor

// Engine runs queries that need a layer table to resolve layer labels. The
// label-free queries are plain functions and do not need an Engine.
type Engine struct {
	layers *LayerTable
}

// Option configures an Engine.
type Option func(*Engine)

// WithLayers sets the table used to resolve layer labels.
func WithLayers(t *LayerTable) Option {
	return func(e *Engine) {
		e.layers = t
	}
}

// New creates an Engine. Without WithLayers it resolves against the built-in
// layers only.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.layers == nil {
		e.layers = NewLayerTable()
	}
	return e
}

// Layers returns the engine's layer table.
func (e *Engine) Layers() *LayerTable {
	return e.layers
}

// Layer resolves a label, returning NoLayer when it is unknown.
func (e *Engine) Layer(label string) Layer {
	return e.layers.NameToLayer(label)
}

// LayerPredicate matches nodes on the layer named label. An unknown label
// matches nothing.
func (e *Engine) LayerPredicate(label string) Predicate {
	return ByLayer(e.Layer(label))
}

// ChildrenByLayerName returns the immediate children on the layer named label.
func (e *Engine) ChildrenByLayerName(n *Node, label string) []*Node {
	return ChildrenBy(n, e.LayerPredicate(label))
}

// DescendantsByLayerName returns the descendants on the layer named label.
func (e *Engine) DescendantsByLayerName(n *Node, label string) []*Node {
	return DescendantsBy(n, e.LayerPredicate(label))
}
