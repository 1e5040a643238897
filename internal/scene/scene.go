// Package scene loads hierarchies from YAML or JSON scene files.
package scene

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jward/arbor"
)

var (
	// ErrNoRoot is returned for a scene file without a root node.
	ErrNoRoot = errors.New("scene: no root node")

	// ErrUnknownLayer is returned when a node names a layer the table lacks.
	ErrUnknownLayer = errors.New("scene: unknown layer")

	// ErrUnknownComponent is returned for a component kind that is not
	// registered.
	ErrUnknownComponent = errors.New("scene: unknown component kind")

	// ErrInvalidName is returned for a node name containing the path
	// separator, which arbor.Find could not resolve.
	ErrInvalidName = errors.New("scene: node name contains '/'")
)

// Scene is a decoded hierarchy plus the layer table its labels resolved
// against.
type Scene struct {
	Root   *arbor.Node
	Layers *arbor.LayerTable
}

type fileScene struct {
	Layers map[string]string `yaml:"layers"`
	Root   *fileNode         `yaml:"root"`
}

type fileNode struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Tag        string      `yaml:"tag"`
	Layer      yaml.Node   `yaml:"layer"`
	Active     *bool       `yaml:"active"`
	Components yaml.Node   `yaml:"components"`
	Children   []*fileNode `yaml:"children"`
}

// Option configures decoding.
type Option func(*decoder)

type decoder struct {
	layers map[int]string
}

// WithLayers predefines layers before the file's own layer section is
// applied, e.g. from project configuration.
func WithLayers(layers map[int]string) Option {
	return func(d *decoder) {
		d.layers = layers
	}
}

// Load reads and decodes the scene file at path.
func Load(path string, opts ...Option) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: load: %w", err)
	}
	s, err := Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses a YAML or JSON scene document.
func Decode(data []byte, opts ...Option) (*Scene, error) {
	d := &decoder{}
	for _, opt := range opts {
		opt(d)
	}

	var fs fileScene
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("scene: parse: %w", err)
	}
	if fs.Root == nil {
		return nil, ErrNoRoot
	}

	table, err := d.layerTable(fs.Layers)
	if err != nil {
		return nil, err
	}
	root, err := buildNode(fs.Root, table)
	if err != nil {
		return nil, err
	}
	return &Scene{Root: root, Layers: table}, nil
}

func (d *decoder) layerTable(fileLayers map[string]string) (*arbor.LayerTable, error) {
	defs := make(map[arbor.Layer]string, len(d.layers)+len(fileLayers))
	for idx, name := range d.layers {
		defs[arbor.Layer(idx)] = name
	}
	// File layers win over configured ones for the same slot.
	for key, name := range fileLayers {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("scene: layer index %q: %w", key, err)
		}
		defs[arbor.Layer(idx)] = name
	}
	t := arbor.NewLayerTable()
	if err := t.DefineAll(defs); err != nil {
		return nil, fmt.Errorf("scene: layers: %w", err)
	}
	return t, nil
}

func buildNode(fn *fileNode, table *arbor.LayerTable) (*arbor.Node, error) {
	if strings.Contains(fn.Name, "/") {
		return nil, fmt.Errorf("node %q: %w", fn.Name, ErrInvalidName)
	}
	layer, err := resolveLayer(&fn.Layer, table)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", fn.Name, err)
	}
	id := fn.ID
	if id == "" {
		id = uuid.NewString()
	}
	n := arbor.NewNode(fn.Name, arbor.WithID(id), arbor.WithTag(fn.Tag), arbor.WithLayer(layer))
	if fn.Active != nil {
		n.Active = *fn.Active
	}
	if err := decodeComponents(n, &fn.Components); err != nil {
		return nil, fmt.Errorf("node %q: %w", fn.Name, err)
	}
	for _, fc := range fn.Children {
		if fc == nil {
			continue
		}
		child, err := buildNode(fc, table)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// resolveLayer accepts an integer index or a label. A missing layer is
// Default.
func resolveLayer(v *yaml.Node, table *arbor.LayerTable) (arbor.Layer, error) {
	if v.Kind == 0 {
		return arbor.LayerDefault, nil
	}
	if v.Kind != yaml.ScalarNode {
		return arbor.NoLayer, fmt.Errorf("layer must be an index or a name (line %d)", v.Line)
	}
	if v.Tag == "!!int" {
		var idx int
		if err := v.Decode(&idx); err != nil {
			return arbor.NoLayer, err
		}
		if idx < 0 || idx >= arbor.MaxLayers {
			return arbor.NoLayer, fmt.Errorf("layer %d: %w", idx, arbor.ErrLayerRange)
		}
		return arbor.Layer(idx), nil
	}
	l := table.NameToLayer(v.Value)
	if l == arbor.NoLayer {
		return arbor.NoLayer, fmt.Errorf("%q: %w", v.Value, ErrUnknownLayer)
	}
	return l, nil
}

func decodeComponents(n *arbor.Node, v *yaml.Node) error {
	if v.Kind == 0 {
		return nil
	}
	if v.Kind != yaml.MappingNode {
		return fmt.Errorf("components must be a mapping (line %d)", v.Line)
	}
	var late []func() error
	for i := 0; i+1 < len(v.Content); i += 2 {
		name, body := v.Content[i].Value, v.Content[i+1]
		k, ok := LookupKind(name)
		if !ok {
			return fmt.Errorf("%q: %w", name, ErrUnknownComponent)
		}
		if k.late {
			late = append(late, func() error { return k.decode(n, body) })
			continue
		}
		if err := k.decode(n, body); err != nil {
			return err
		}
	}
	for _, fn := range late {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
