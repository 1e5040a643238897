package scene

import (
	"fmt"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/jward/arbor"
	"github.com/jward/arbor/internal/motion"
)

// Collider marks a node as taking part in collisions.
type Collider struct {
	Shape   string `json:"shape" yaml:"shape"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Renderer draws a node.
type Renderer struct {
	Material string `json:"material" yaml:"material"`
	Visible  bool   `json:"visible" yaml:"visible"`
}

// Health is gameplay hit points.
type Health struct {
	HP  int `json:"hp" yaml:"hp"`
	Max int `json:"max,omitempty" yaml:"max"`
}

// Attached pairs a component value with the node carrying it.
type Attached struct {
	Node  *arbor.Node
	Value any
}

// Kind describes one component kind that scene files may name.
type Kind struct {
	Name string

	decode  func(n *arbor.Node, v *yaml.Node) error
	has     func(n *arbor.Node) bool
	collect func(nodes []*arbor.Node) []Attached
	late    bool // decoded after the node's other components
}

// Has reports whether n carries this kind.
func (k Kind) Has(n *arbor.Node) bool {
	return k.has(n)
}

// Predicate matches nodes carrying this kind.
func (k Kind) Predicate() arbor.Predicate {
	return k.has
}

// Collect returns the component of this kind for every node that has one,
// paired with its node, in order.
func (k Kind) Collect(nodes []*arbor.Node) []Attached {
	return k.collect(nodes)
}

// kindOf builds a Kind stored as *T. fresh returns the value decoding starts
// from, which is how defaults are expressed.
func kindOf[T any](name string, fresh func() *T) Kind {
	return Kind{
		Name: name,
		decode: func(n *arbor.Node, v *yaml.Node) error {
			c := fresh()
			if v != nil && v.Kind != 0 && v.Tag != "!!null" {
				if err := v.Decode(c); err != nil {
					return fmt.Errorf("component %s: %w", name, err)
				}
			}
			arbor.Attach(n, c)
			return nil
		},
		has: arbor.HasCapability[*T](),
		collect: func(nodes []*arbor.Node) []Attached {
			with := arbor.NodesWith[*T](nodes)
			values := arbor.ComponentsOf[*T](with)
			return lo.Map(with, func(n *arbor.Node, i int) Attached {
				return Attached{Node: n, Value: values[i]}
			})
		},
	}
}

var kinds = []Kind{
	kindOf("Transform", func() *motion.Transform { return &motion.Transform{} }),
	kindOf("RectTransform", func() *motion.RectTransform { return &motion.RectTransform{} }),
	kindOf("Collider", func() *Collider { return &Collider{Shape: "box", Enabled: true} }),
	kindOf("Renderer", func() *Renderer { return &Renderer{Visible: true} }),
	kindOf("Health", func() *Health { return &Health{} }),
	floatingKind(),
}

// floatingKind defaults the amplitude by what the effect moves: UI elements
// get DefaultAmplitudeUI, everything else DefaultAmplitude.
func floatingKind() Kind {
	k := kindOf("Floating", func() *motion.Floating {
		return &motion.Floating{Speed: motion.DefaultSpeed}
	})
	base := k.decode
	k.decode = func(n *arbor.Node, v *yaml.Node) error {
		if err := base(n, v); err != nil {
			return err
		}
		if hasKey(v, "amplitude") {
			return nil
		}
		f, _ := arbor.Get[*motion.Floating](n)
		f.Amplitude = motion.DefaultAmplitude
		if arbor.Has[*motion.RectTransform](n) && !arbor.Has[*motion.Transform](n) {
			f.Amplitude = motion.DefaultAmplitudeUI
		}
		return nil
	}
	k.late = true
	return k
}

// Kinds returns the registered component kinds.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// LookupKind finds a kind by name.
func LookupKind(name string) (Kind, bool) {
	return lo.Find(kinds, func(k Kind) bool { return k.Name == name })
}

// KindNames returns the names of the registered kinds n carries.
func KindNames(n *arbor.Node) []string {
	return lo.FilterMap(kinds, func(k Kind, _ int) (string, bool) {
		return k.Name, k.has(n)
	})
}

func hasKey(v *yaml.Node, key string) bool {
	if v == nil || v.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(v.Content); i += 2 {
		if v.Content[i].Value == key {
			return true
		}
	}
	return false
}
