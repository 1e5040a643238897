package arbor

import (
	"fmt"
	"maps"
	"slices"
)

// Layer is a node's integer category, used like a rendering or collision layer.
type Layer int

// MaxLayers is the number of layer slots in a LayerTable.
const MaxLayers = 32

// NoLayer is returned when a label does not resolve. No node can be on it, so
// filters built from it match nothing.
const NoLayer Layer = -1

// Built-in layers present in every table created by NewLayerTable.
const (
	LayerDefault       Layer = 0
	LayerTransparentFX Layer = 1
	LayerIgnoreRaycast Layer = 2
	LayerWater         Layer = 4
	LayerUI            Layer = 5
)

// LayerTable maps layer labels to indexes and back.
type LayerTable struct {
	names   [MaxLayers]string
	indexes map[string]Layer
}

// LayerInfo is one defined slot of a LayerTable.
type LayerInfo struct {
	Index Layer  `json:"index"`
	Name  string `json:"name"`
}

// NewLayerTable returns a table holding the built-in layers.
func NewLayerTable() *LayerTable {
	t := &LayerTable{indexes: make(map[string]Layer)}
	for l, name := range map[Layer]string{
		LayerDefault:       "Default",
		LayerTransparentFX: "TransparentFX",
		LayerIgnoreRaycast: "Ignore Raycast",
		LayerWater:         "Water",
		LayerUI:            "UI",
	} {
		t.names[l] = name
		t.indexes[name] = l
	}
	return t
}

// Define binds name to index, replacing whatever label the slot held before.
func (t *LayerTable) Define(index Layer, name string) error {
	if index < 0 || index >= MaxLayers {
		return fmt.Errorf("define layer %q at %d: %w", name, index, ErrLayerRange)
	}
	if existing, ok := t.indexes[name]; ok && existing != index {
		return fmt.Errorf("define layer %q at %d (bound to %d): %w", name, index, existing, ErrLayerNameTaken)
	}
	if old := t.names[index]; old != "" {
		delete(t.indexes, old)
	}
	t.names[index] = name
	if name != "" {
		t.indexes[name] = index
	}
	return nil
}

// DefineAll applies every slot in defs as one batch. Labels are checked for
// clashes against the table as it would look afterwards, so the result does
// not depend on map order: {4: "Sea", 8: "Water"} moves Water off slot 4.
// On error the table is unchanged.
func (t *LayerTable) DefineAll(defs map[Layer]string) error {
	names := t.names
	for _, index := range slices.Sorted(maps.Keys(defs)) {
		if index < 0 || index >= MaxLayers {
			return fmt.Errorf("define layer %q at %d: %w", defs[index], index, ErrLayerRange)
		}
		names[index] = defs[index]
	}

	indexes := make(map[string]Layer, len(t.indexes))
	for i, name := range names {
		if name == "" {
			continue
		}
		if existing, ok := indexes[name]; ok {
			return fmt.Errorf("define layer %q at %d (bound to %d): %w", name, i, existing, ErrLayerNameTaken)
		}
		indexes[name] = Layer(i)
	}
	t.names = names
	t.indexes = indexes
	return nil
}

// NameToLayer resolves a label. Unknown labels return NoLayer.
func (t *LayerTable) NameToLayer(name string) Layer {
	if l, ok := t.indexes[name]; ok {
		return l
	}
	return NoLayer
}

// LayerName returns the label of a slot, or "" when the slot is unnamed or out
// of range.
func (t *LayerTable) LayerName(l Layer) string {
	if l < 0 || l >= MaxLayers {
		return ""
	}
	return t.names[l]
}

// Layers returns the named slots in index order.
func (t *LayerTable) Layers() []LayerInfo {
	out := make([]LayerInfo, 0, len(t.indexes))
	for i, name := range t.names {
		if name != "" {
			out = append(out, LayerInfo{Index: Layer(i), Name: name})
		}
	}
	return out
}
