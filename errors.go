package arbor

import "errors"

// Sentinel errors for hierarchy mutation and layer table setup.
var (
	// ErrNilNode is returned when a nil node is passed to a mutating call.
	ErrNilNode = errors.New("arbor: nil node")

	// ErrCycle is returned by AddChild when the child is the parent itself or
	// one of its ancestors.
	ErrCycle = errors.New("arbor: child is an ancestor of parent")

	// ErrLayerRange is returned when a layer index falls outside [0, MaxLayers).
	ErrLayerRange = errors.New("arbor: layer index out of range")

	// ErrLayerNameTaken is returned when a layer label is already bound to a
	// different index.
	ErrLayerNameTaken = errors.New("arbor: layer name already defined")
)
