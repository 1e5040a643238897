package main

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jward/arbor"
	"github.com/jward/arbor/internal/motion"
	"github.com/jward/arbor/internal/scene"
)

func (a *app) layersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layers <file>",
		Short: "List the layer table a file resolves against",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHierarchy(cmd.Context(), args[0])
			if err != nil {
				return a.outputError(cmd, "layers", err)
			}
			layers := h.engine.Layers().Layers()
			count := len(layers)
			return a.outputResult(cmd, CLIResult{Command: "layers", Results: layers, TotalCount: &count})
		},
	}
}

func (a *app) animateCmd() *cobra.Command {
	var flagTime float64
	cmd := &cobra.Command{
		Use:   "animate <file>",
		Short: "Apply floating effects at a point in time",
		Long:  "Applies every Floating component in the file at --time seconds and lists the resulting heights.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHierarchy(cmd.Context(), args[0])
			if err != nil {
				return a.outputError(cmd, "animate", err)
			}
			moved := motion.Step(h.root, flagTime)
			positions := lo.Map(moved, func(n *arbor.Node, _ int) CLIPosition {
				return positionOf(n)
			})
			count := len(positions)
			return a.outputResult(cmd, CLIResult{Command: "animate", Results: positions, TotalCount: &count})
		},
	}
	cmd.Flags().Float64Var(&flagTime, "time", 0, "elapsed seconds")
	return cmd
}

func positionOf(n *arbor.Node) CLIPosition {
	if t, ok := arbor.Get[*motion.Transform](n); ok {
		return CLIPosition{Path: arbor.Path(n), Kind: "Transform", Y: t.Position.Y}
	}
	rt, _ := arbor.Get[*motion.RectTransform](n)
	return CLIPosition{Path: arbor.Path(n), Kind: "RectTransform", Y: rt.AnchoredPosition.Y}
}

func (a *app) collidersCmd() *cobra.Command {
	var (
		f           filterFlags
		flagEnable  bool
		flagDisable bool
		flagDirect  bool
	)
	cmd := &cobra.Command{
		Use:   "colliders <file>",
		Short: "Enable or disable the colliders of matching nodes",
		Long:  "Selects descendants (or, with --children, immediate children) using the query filters and switches their colliders. Nodes without a collider are reported and skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHierarchy(cmd.Context(), args[0])
			if err != nil {
				return a.outputError(cmd, "colliders", err)
			}
			s := scopeDescendants
			if flagDirect {
				s = scopeChildren
			}
			nodes, err := a.selectNodes(cmd.Context(), h, &f, s)
			if err != nil {
				return a.outputError(cmd, "colliders", err)
			}

			changed := scene.SetCollidersEnabled(nodes, flagEnable, a.logger)
			a.logger.Info("colliders updated", "selected", len(nodes), "changed", changed)

			states := lo.Map(nodes, func(n *arbor.Node, _ int) CLIColliderState {
				c, ok := arbor.Get[*scene.Collider](n)
				return CLIColliderState{Path: arbor.Path(n), Found: ok, Enabled: ok && c.Enabled}
			})
			count := len(states)
			return a.outputResult(cmd, CLIResult{Command: "colliders", Results: states, TotalCount: &count})
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&flagEnable, "enable", false, "enable colliders")
	cmd.Flags().BoolVar(&flagDisable, "disable", false, "disable colliders")
	cmd.Flags().BoolVar(&flagDirect, "children", false, "select immediate children only")
	cmd.MarkFlagsMutuallyExclusive("enable", "disable")
	cmd.MarkFlagsOneRequired("enable", "disable")
	return cmd
}
