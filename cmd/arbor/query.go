package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jward/arbor"
	"github.com/jward/arbor/internal/collections"
	"github.com/jward/arbor/internal/scene"
	"github.com/jward/arbor/internal/script"
	"github.com/jward/arbor/internal/watch"
)

// scope selects immediate children or the whole subtree.
type scope int

const (
	scopeChildren scope = iota
	scopeDescendants
)

// filterFlags are the selection flags shared by the query and colliders
// commands.
type filterFlags struct {
	from      string
	name      string
	nameGlob  string
	tag       string
	layer     string
	component string
	where     string
	shuffle   bool
	sample    int
	seed      uint64

	flags *pflag.FlagSet
}

func (f *filterFlags) register(cmd *cobra.Command) {
	f.flags = cmd.Flags()
	cmd.Flags().StringVar(&f.from, "from", "", "start node as a slash-separated name path below the root")
	cmd.Flags().StringVar(&f.name, "name", "", "match nodes with this exact name")
	cmd.Flags().StringVar(&f.nameGlob, "name-glob", "", "match node names against a glob pattern")
	cmd.Flags().StringVar(&f.tag, "tag", "", "match nodes with this tag")
	cmd.Flags().StringVar(&f.layer, "layer", "", "match nodes on this layer (index or label)")
	cmd.Flags().StringVar(&f.component, "component", "", "match nodes carrying this component kind")
	cmd.Flags().StringVar(&f.where, "where", "", `Risor expression evaluated per node, e.g. 'node["tag"] == "Enemy"'`)
	cmd.Flags().BoolVar(&f.shuffle, "shuffle", false, "shuffle the results")
	cmd.Flags().IntVar(&f.sample, "sample", 0, "keep N random results")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for --shuffle and --sample; any value, 0 included, makes runs reproducible (default: time based)")
}

// predicate combines the structural filters. The layer flag accepts an index
// or a label; an unknown label matches nothing.
func (f *filterFlags) predicate(e *arbor.Engine) (arbor.Predicate, error) {
	var preds []arbor.Predicate
	if f.name != "" {
		preds = append(preds, arbor.ByName(f.name))
	}
	if f.nameGlob != "" {
		preds = append(preds, arbor.ByNameGlob(f.nameGlob))
	}
	if f.tag != "" {
		preds = append(preds, arbor.ByTag(f.tag))
	}
	if f.layer != "" {
		if i, err := strconv.Atoi(f.layer); err == nil {
			preds = append(preds, arbor.ByLayer(arbor.Layer(i)))
		} else {
			preds = append(preds, e.LayerPredicate(f.layer))
		}
	}
	if f.component != "" {
		kind, err := lookupKind(f.component)
		if err != nil {
			return nil, err
		}
		preds = append(preds, kind.Predicate())
	}
	return arbor.And(preds...), nil
}

func lookupKind(name string) (scene.Kind, error) {
	kind, ok := scene.LookupKind(name)
	if !ok {
		names := lo.Map(scene.Kinds(), func(k scene.Kind, _ int) string { return k.Name })
		return scene.Kind{}, fmt.Errorf("unknown component kind %q (known: %v)", name, names)
	}
	return kind, nil
}

// selectNodes runs the query described by f from the start node.
func (a *app) selectNodes(ctx context.Context, h *hierarchy, f *filterFlags, s scope) ([]*arbor.Node, error) {
	start := h.root
	if f.from != "" {
		start = arbor.Find(h.root, f.from)
		if start == nil {
			return nil, fmt.Errorf("no node at path %q", f.from)
		}
	}

	pred, err := f.predicate(h.engine)
	if err != nil {
		return nil, err
	}

	var nodes []*arbor.Node
	switch s {
	case scopeChildren:
		nodes = arbor.ChildrenBy(start, pred)
	default:
		nodes = arbor.DescendantsBy(start, pred)
	}

	if f.where != "" {
		rt := script.NewRuntime(
			script.WithLayerTable(h.engine.Layers()),
			script.WithComponentNames(componentNames),
			script.WithLogger(a.logger),
		)
		nodes, err = rt.Filter(ctx, f.where, nodes)
		if err != nil {
			return nil, err
		}
	}

	if f.shuffle || f.sample > 0 {
		rng := f.rng()
		if f.shuffle {
			collections.Shuffle(rng, nodes)
		}
		if f.sample > 0 {
			nodes = collections.Sample(rng, nodes, f.sample)
		}
	}
	return nodes, nil
}

func (f *filterFlags) rng() *rand.Rand {
	seed := f.seed
	if !f.flags.Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (a *app) childrenCmd() *cobra.Command {
	return a.queryCmd("children", scopeChildren, "List the immediate children of a node")
}

func (a *app) descendantsCmd() *cobra.Command {
	return a.queryCmd("descendants", scopeDescendants, "List every node below a node, depth-first")
}

func (a *app) queryCmd(name string, s scope, short string) *cobra.Command {
	var (
		f         filterFlags
		flagWatch bool
	)
	cmd := &cobra.Command{
		Use:   name + " <file>",
		Short: short,
		Long:  short + ".\nStarts at the root unless --from names another node. Filters combine with AND.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run := func(ctx context.Context) error {
				return a.runQuery(ctx, cmd, name, args[0], &f, s)
			}
			if !flagWatch {
				return run(cmd.Context())
			}
			return a.watchLoop(cmd, args[0], run)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "rerun the query whenever the file changes")
	return cmd
}

func (a *app) runQuery(ctx context.Context, cmd *cobra.Command, command, path string, f *filterFlags, s scope) error {
	h, err := a.loadHierarchy(ctx, path)
	if err != nil {
		return a.outputError(cmd, command, err)
	}
	nodes, err := a.selectNodes(ctx, h, f, s)
	if err != nil {
		return a.outputError(cmd, command, err)
	}

	var results any
	count := len(nodes)
	if f.component != "" {
		kind, _ := lookupKind(f.component)
		comps := lo.Map(kind.Collect(nodes), func(at scene.Attached, _ int) CLIComponent {
			return CLIComponent{ID: at.Node.ID, Path: arbor.Path(at.Node), Kind: kind.Name, Value: at.Value}
		})
		results = comps
		count = len(comps)
	} else {
		results = lo.Map(nodes, func(n *arbor.Node, _ int) CLINode { return h.toCLI(n) })
	}

	return a.outputResult(cmd, CLIResult{
		Command:    command,
		Results:    results,
		TotalCount: &count,
	})
}

// watchLoop runs fn once and again after every change to path until the
// process is interrupted. Failed reruns are logged, not fatal.
func (a *app) watchLoop(cmd *cobra.Command, path string, fn func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := fn(ctx); err != nil {
		a.logger.Error("query failed", "path", path, "error", err)
	}
	return watch.Watch(ctx, path, func() {
		a.errorHandled = false
		if err := fn(ctx); err != nil {
			a.logger.Error("query failed", "path", path, "error", err)
		}
	},
		watch.WithDebounce(a.cfg.Watch.Debounce),
		watch.WithOnError(func(err error) {
			a.logger.Warn("watch error", "path", path, "error", err)
		}),
	)
}
