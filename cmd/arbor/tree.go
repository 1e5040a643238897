package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jward/arbor"
)

var (
	treeMetaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
	treeInactiveStyle = lipgloss.NewStyle().Faint(true)
)

func (a *app) treeCmd() *cobra.Command {
	var flagFrom string
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the whole hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHierarchy(cmd.Context(), args[0])
			if err != nil {
				return a.outputError(cmd, "tree", err)
			}
			start := h.root
			if flagFrom != "" {
				if start = arbor.Find(h.root, flagFrom); start == nil {
					return a.outputError(cmd, "tree", fmt.Errorf("no node at path %q", flagFrom))
				}
			}

			if a.flagFormat == "text" {
				return a.outputResult(cmd, CLIResult{Command: "tree", Results: h.renderTree(start).String()})
			}
			count := len(arbor.Descendants(start)) + 1
			return a.outputResult(cmd, CLIResult{Command: "tree", Results: h.treeToCLI(start), TotalCount: &count})
		},
	}
	cmd.Flags().StringVar(&flagFrom, "from", "", "start node as a slash-separated name path below the root")
	return cmd
}

func (h *hierarchy) treeLabel(n *arbor.Node) string {
	meta := treeMetaStyle.Render(fmt.Sprintf("[%s %s]", dash(n.Tag), h.engine.Layers().LayerName(n.Layer)))
	label := n.Name
	if label == "" {
		label = "(" + n.Tag + ")"
	}
	label += " " + meta
	if !n.Active {
		label = treeInactiveStyle.Render(label + " (inactive)")
	}
	return label
}

func (h *hierarchy) renderTree(n *arbor.Node) *tree.Tree {
	t := tree.Root(h.treeLabel(n))
	for _, c := range arbor.Children(n) {
		if c.ChildCount() == 0 {
			t.Child(h.treeLabel(c))
			continue
		}
		t.Child(h.renderTree(c))
	}
	return t
}

func (h *hierarchy) treeToCLI(n *arbor.Node) CLITreeNode {
	return CLITreeNode{
		Name:   n.Name,
		Tag:    n.Tag,
		Layer:  h.engine.Layers().LayerName(n.Layer),
		Active: n.Active,
		Children: lo.Map(arbor.Children(n), func(c *arbor.Node, _ int) CLITreeNode {
			return h.treeToCLI(c)
		}),
	}
}
