// Package script evaluates Risor "where" expressions against nodes.
//
// An expression sees a node map with the keys name, tag, layer,
// layer_name, id, path, depth, active, child_count and components, plus the
// helpers has(kind), match(pattern, s) and log. It must evaluate to a bool:
//
//	node["tag"] == "Enemy" && node["layer_name"] == "Enemies" && has("Health")
package script

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"

	"github.com/jward/arbor"
)

// Runtime evaluates where-expressions. It holds configuration only; every
// evaluation starts from fresh globals.
type Runtime struct {
	layers     *arbor.LayerTable
	components func(*arbor.Node) []string
	logger     *slog.Logger
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithLayerTable sets the table used to fill node["layer_name"].
func WithLayerTable(t *arbor.LayerTable) RuntimeOption {
	return func(r *Runtime) {
		r.layers = t
	}
}

// WithComponentNames sets how node["components"] and has() see a node's
// components.
func WithComponentNames(fn func(*arbor.Node) []string) RuntimeOption {
	return func(r *Runtime) {
		r.components = fn
	}
}

// WithLogger routes the script log object to logger.
func WithLogger(logger *slog.Logger) RuntimeOption {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// NewRuntime creates a Runtime.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		layers:     arbor.NewLayerTable(),
		components: func(*arbor.Node) []string { return nil },
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Match evaluates source against n.
func (r *Runtime) Match(ctx context.Context, source string, n *arbor.Node) (bool, error) {
	result, err := risor.Eval(ctx, source, r.options(n)...)
	if err != nil {
		return false, fmt.Errorf("script: where %q on %s: %w", source, arbor.Path(n), err)
	}
	b, ok := result.(*object.Bool)
	if !ok {
		return false, fmt.Errorf("script: where %q must evaluate to a bool, got %s", source, result.Type())
	}
	return b.Value(), nil
}

// Filter keeps the nodes source matches, preserving order. The first
// evaluation error stops the filter.
func (r *Runtime) Filter(ctx context.Context, source string, nodes []*arbor.Node) ([]*arbor.Node, error) {
	out := make([]*arbor.Node, 0, len(nodes))
	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := r.Match(ctx, source, n)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *Runtime) options(n *arbor.Node) []risor.Option {
	comps := r.components(n)
	globals := map[string]object.Object{
		"node":  r.nodeObject(n, comps),
		"has":   makeHasFn(comps),
		"match": makeMatchFn(),
		"log":   mustProxy(&logObject{logger: r.logger, path: arbor.Path(n)}),
	}
	opts := make([]risor.Option, 0, len(globals))
	for name, val := range globals {
		opts = append(opts, risor.WithGlobal(name, val))
	}
	return opts
}

func (r *Runtime) nodeObject(n *arbor.Node, comps []string) *object.Map {
	compObjs := make([]object.Object, len(comps))
	for i, c := range comps {
		compObjs[i] = object.NewString(c)
	}
	return object.NewMap(map[string]object.Object{
		"id":          object.NewString(n.ID),
		"name":        object.NewString(n.Name),
		"tag":         object.NewString(n.Tag),
		"layer":       object.NewInt(int64(n.Layer)),
		"layer_name":  object.NewString(r.layers.LayerName(n.Layer)),
		"path":        object.NewString(arbor.Path(n)),
		"depth":       object.NewInt(int64(n.Depth())),
		"active":      object.NewBool(n.Active),
		"child_count": object.NewInt(int64(n.ChildCount())),
		"components":  object.NewList(compObjs),
	})
}

// makeHasFn creates "has".
//
// has(kind) → bool
func makeHasFn(comps []string) *object.Builtin {
	return object.NewBuiltin("has", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("has", 1, len(args))
		}
		kind, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("has: kind must be a string, got %s", args[0].Type())
		}
		return object.NewBool(slices.Contains(comps, kind.Value()))
	})
}

// makeMatchFn creates "match", a doublestar glob match.
//
// match(pattern, s) → bool
func makeMatchFn() *object.Builtin {
	return object.NewBuiltin("match", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 2 {
			return object.NewArgsError("match", 2, len(args))
		}
		pattern, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("match: pattern must be a string, got %s", args[0].Type())
		}
		s, ok := args[1].(*object.String)
		if !ok {
			return object.Errorf("match: value must be a string, got %s", args[1].Type())
		}
		matched, err := doublestar.Match(pattern.Value(), s.Value())
		if err != nil {
			return object.Errorf("match: %v", err)
		}
		return object.NewBool(matched)
	})
}

// logObject provides log.info/warn/error methods for scripts.
type logObject struct {
	logger *slog.Logger
	path   string
}

func (l *logObject) Info(msg string) {
	l.logger.Info(msg, slog.String("node", l.path))
}

func (l *logObject) Warn(msg string) {
	l.logger.Warn(msg, slog.String("node", l.path))
}

func (l *logObject) Error(msg string) {
	l.logger.Error(msg, slog.String("node", l.path))
}

func mustProxy(v any) object.Object {
	p, err := object.NewProxy(v)
	if err != nil {
		panic(fmt.Sprintf("script: proxy error: %v", err))
	}
	return p
}
