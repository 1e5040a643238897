// Package syntax turns tree-sitter parse trees into arbor hierarchies, so the
// same queries that work on scenes work on source code.
package syntax

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/arbor"
)

// Span is the source range of a syntax node. Rows and columns are 0-based.
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
}

// ParseFile parses the file at path, picking the grammar from its extension.
// The returned root is named after the file.
func ParseFile(ctx context.Context, path string) (*arbor.Node, error) {
	lang, ok := LanguageForFile(path)
	if !ok {
		return nil, fmt.Errorf("syntax: unsupported file type %q", filepath.Ext(path))
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("syntax: reading %s: %w", path, err)
	}
	root, err := Parse(ctx, src, lang)
	if err != nil {
		return nil, err
	}
	root.Name = filepath.Base(path)
	return root, nil
}

// Parse parses src as lang and mirrors its named nodes. Each node's Tag is the
// grammar node type, its Name is the text of its "name" field when it has one,
// and it carries a *Span.
func Parse(ctx context.Context, src []byte, lang string) (*arbor.Node, error) {
	grammar, ok := ParserForLanguage(lang)
	if !ok {
		return nil, fmt.Errorf("syntax: unsupported language %q", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("syntax: parse: %w", err)
	}
	defer tree.Close()

	type frame struct {
		syn    *sitter.Node
		parent *arbor.Node
	}

	root := convert(tree.RootNode(), src)
	stack := []frame{{syn: tree.RootNode(), parent: nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := root
		if f.parent != nil {
			n = convert(f.syn, src)
			if err := f.parent.AddChild(n); err != nil {
				return nil, fmt.Errorf("syntax: %w", err)
			}
		}

		// Push in reverse so children are attached in source order.
		count := int(f.syn.NamedChildCount())
		for i := count - 1; i >= 0; i-- {
			stack = append(stack, frame{syn: f.syn.NamedChild(i), parent: n})
		}
	}
	return root, nil
}

func convert(syn *sitter.Node, src []byte) *arbor.Node {
	var name string
	if field := syn.ChildByFieldName("name"); field != nil {
		name = field.Content(src)
	}
	start, end := syn.StartPoint(), syn.EndPoint()
	n := arbor.NewNode(name,
		arbor.WithTag(syn.Type()),
		arbor.WithID(fmt.Sprintf("%s@%d:%d", syn.Type(), start.Row, start.Column)),
	)
	arbor.Attach(n, &Span{
		StartLine: int(start.Row),
		StartCol:  int(start.Column),
		EndLine:   int(end.Row),
		EndCol:    int(end.Column),
	})
	return n
}
