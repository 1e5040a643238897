// Package motion animates nodes with a floating effect: a vertical sine
// bob around the node's starting height.
package motion

import (
	"math"

	"github.com/jward/arbor"
)

// Vec3 is a world-space position.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Vec2 is an anchored UI position.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Transform holds a node's 3-D position.
type Transform struct {
	Position Vec3 `json:"position" yaml:"position"`
}

// RectTransform holds a UI node's anchored position.
type RectTransform struct {
	AnchoredPosition Vec2 `json:"anchored_position" yaml:"anchored_position"`
}

// Default parameters. UI elements bob in pixels, world objects in units.
const (
	DefaultAmplitude   = 1.0
	DefaultAmplitudeUI = 30.0
	DefaultSpeed       = 1.0
)

// Floating bobs a node up and down. BaseY is captured from the node's
// position the first time the effect is applied.
type Floating struct {
	Amplitude float64 `json:"amplitude" yaml:"amplitude"`
	Speed     float64 `json:"speed" yaml:"speed"`
	Phase     float64 `json:"phase" yaml:"phase"`

	BaseY float64 `json:"base_y" yaml:"-"`
	bound bool
}

// Offset returns the height at elapsed seconds. The amplitude also shifts the
// phase; existing scenes are tuned against that curve.
func (f *Floating) Offset(elapsed float64) float64 {
	return f.BaseY + f.Amplitude*math.Sin(f.Amplitude+f.Speed*elapsed+f.Phase)
}

// Apply moves n to its height at elapsed seconds. A *Transform takes
// precedence over a *RectTransform. It reports false when n has no Floating
// effect or no position to move.
func Apply(n *arbor.Node, elapsed float64) bool {
	f, ok := arbor.Get[*Floating](n)
	if !ok {
		return false
	}
	if tr, ok := arbor.Get[*Transform](n); ok {
		f.bind(tr.Position.Y)
		tr.Position.Y = f.Offset(elapsed)
		return true
	}
	if rt, ok := arbor.Get[*RectTransform](n); ok {
		f.bind(rt.AnchoredPosition.Y)
		rt.AnchoredPosition.Y = f.Offset(elapsed)
		return true
	}
	return false
}

// Step applies every floating effect in the subtree rooted at root, root
// included, and returns the nodes that moved in pre-order.
func Step(root *arbor.Node, elapsed float64) []*arbor.Node {
	candidates := append([]*arbor.Node{root}, arbor.Descendants(root)...)
	moved := make([]*arbor.Node, 0)
	for _, n := range arbor.NodesWith[*Floating](candidates) {
		if Apply(n, elapsed) {
			moved = append(moved, n)
		}
	}
	return moved
}

func (f *Floating) bind(y float64) {
	if f.bound {
		return
	}
	f.BaseY = y
	f.bound = true
}
