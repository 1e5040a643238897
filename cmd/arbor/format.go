package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// formatNodesText formats CLINode results as aligned columns.
func formatNodesText(w io.Writer, nodes []CLINode) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATH\tTAG\tLAYER\tACTIVE\tCOMPONENTS")
	for _, n := range nodes {
		layer := n.LayerName
		if layer == "" {
			layer = fmt.Sprint(n.Layer)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			n.ID, n.Path, dash(n.Tag), layer, n.Active, dash(strings.Join(n.Components, ",")))
	}
	tw.Flush()
}

// formatComponentsText formats CLIComponent results as "path  value" lines.
func formatComponentsText(w io.Writer, comps []CLIComponent) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tKIND\tVALUE")
	for _, c := range comps {
		fmt.Fprintf(tw, "%s\t%s\t%+v\n", c.Path, c.Kind, c.Value)
	}
	tw.Flush()
}

// formatLayersText formats layer slots as aligned columns.
func formatLayersText(w io.Writer, layers []CLILayer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME")
	for _, l := range layers {
		fmt.Fprintf(tw, "%d\t%s\n", l.Index, l.Name)
	}
	tw.Flush()
}

// formatPositionsText formats animation results as aligned columns.
func formatPositionsText(w io.Writer, positions []CLIPosition) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tKIND\tY")
	for _, p := range positions {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\n", p.Path, p.Kind, p.Y)
	}
	tw.Flush()
}

// formatCollidersText formats collider toggle results as aligned columns.
func formatCollidersText(w io.Writer, states []CLIColliderState) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tCOLLIDER\tENABLED")
	for _, s := range states {
		found := "yes"
		if !s.Found {
			found = "missing"
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\n", s.Path, found, s.Enabled)
	}
	tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type.
func outputResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case []CLINode:
		formatNodesText(w, v)
	case []CLIComponent:
		formatComponentsText(w, v)
	case []CLILayer:
		formatLayersText(w, v)
	case []CLIPosition:
		formatPositionsText(w, v)
	case []CLIColliderState:
		formatCollidersText(w, v)
	case string:
		fmt.Fprintln(w, v)
	case nil:
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// outputResult writes a CLIResult to the command's stdout in the selected
// format.
func (a *app) outputResult(cmd *cobra.Command, result CLIResult) error {
	if a.flagFormat == "text" {
		return outputResultText(cmd.OutOrStdout(), result)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func (a *app) outputError(cmd *cobra.Command, command string, err error) error {
	a.errorHandled = true
	if a.flagFormat == "text" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
		return err
	}
	result := CLIResult{
		Command: command,
		Error:   err.Error(),
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
