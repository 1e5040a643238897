package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jward/arbor"
	"github.com/jward/arbor/internal/scene"
	"github.com/jward/arbor/internal/syntax"
)

// hierarchy is a loaded input file.
type hierarchy struct {
	root   *arbor.Node
	engine *arbor.Engine
}

// loadHierarchy reads a scene file (.yaml, .yml, .json) or, for any other
// extension, a source file the syntax importer supports. Layer labels from
// the config apply to both.
func (a *app) loadHierarchy(ctx context.Context, path string) (*hierarchy, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		s, err := scene.Load(path, scene.WithLayers(a.cfg.Layers))
		if err != nil {
			return nil, err
		}
		return &hierarchy{root: s.Root, engine: arbor.New(arbor.WithLayers(s.Layers))}, nil
	}

	if _, ok := syntax.LanguageForFile(path); !ok {
		return nil, fmt.Errorf("unsupported file type: %s (scenes: .yaml .yml .json; sources: %s)",
			path, strings.Join(syntax.Languages(), " "))
	}
	root, err := syntax.ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}
	layers, err := a.cfg.LayerTable()
	if err != nil {
		return nil, err
	}
	return &hierarchy{root: root, engine: arbor.New(arbor.WithLayers(layers))}, nil
}

// componentNames lists the scene component kinds on n, falling back to the
// Go type names of its capabilities for nodes that carry none.
func componentNames(n *arbor.Node) []string {
	if names := scene.KindNames(n); len(names) > 0 {
		return names
	}
	return arbor.CapabilityNames(n)
}

func (h *hierarchy) toCLI(n *arbor.Node) CLINode {
	return CLINode{
		ID:         n.ID,
		Name:       n.Name,
		Path:       arbor.Path(n),
		Tag:        n.Tag,
		Layer:      int(n.Layer),
		LayerName:  h.engine.Layers().LayerName(n.Layer),
		Active:     n.Active,
		Components: componentNames(n),
	}
}
