package main

import "github.com/jward/arbor"

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command    string `json:"command"`
	Results    any    `json:"results"`
	TotalCount *int   `json:"total_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CLINode is a JSON-friendly node representation.
type CLINode struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	Tag        string   `json:"tag,omitempty"`
	Layer      int      `json:"layer"`
	LayerName  string   `json:"layer_name,omitempty"`
	Active     bool     `json:"active"`
	Components []string `json:"components,omitempty"`
}

// CLIComponent pairs a component value with the node carrying it.
type CLIComponent struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// CLITreeNode is the nested form printed by the tree command.
type CLITreeNode struct {
	Name     string        `json:"name"`
	Tag      string        `json:"tag,omitempty"`
	Layer    string        `json:"layer"`
	Active   bool          `json:"active"`
	Children []CLITreeNode `json:"children"`
}

// CLIPosition is a node's height after an animation step.
type CLIPosition struct {
	Path string  `json:"path"`
	Kind string  `json:"kind"`
	Y    float64 `json:"y"`
}

// CLIColliderState reports one node's collider after a toggle.
type CLIColliderState struct {
	Path    string `json:"path"`
	Enabled bool   `json:"enabled"`
	Found   bool   `json:"found"`
}

// CLILayer is one defined layer slot.
type CLILayer = arbor.LayerInfo
