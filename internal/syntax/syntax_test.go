package syntax

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/arbor"
)

const goTestSource = `package main

import "fmt"

func Greet(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

func Add(a, b int) int {
	return a + b
}

type Server struct {
	Host string
	Port int
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
`

func names(nodes []*arbor.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestLanguageForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"main.go", "go", true},
		{"app.tsx", "tsx", true},
		{"script.py", "python", true},
		{"lib.rs", "rust", true},
		{"util.hpp", "cpp", true},
		{"app.rb", "ruby", true},
		{"level.yaml", "", false},
		{"path/to/file.GO", "go", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			got, ok := LanguageForFile(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguages_AllHaveGrammars(t *testing.T) {
	t.Parallel()
	for _, lang := range Languages() {
		g, ok := ParserForLanguage(lang)
		assert.True(t, ok, lang)
		assert.NotNil(t, g, lang)
	}
}

func TestParse_Go(t *testing.T) {
	t.Parallel()
	root, err := Parse(context.Background(), []byte(goTestSource), "go")
	require.NoError(t, err)

	assert.Equal(t, "source_file", root.Tag)

	funcs := arbor.ChildrenByTag(root, "function_declaration")
	assert.Equal(t, []string{"Greet", "Add"}, names(funcs))

	methods := arbor.DescendantsByTag(root, "method_declaration")
	assert.Equal(t, []string{"Address"}, names(methods))

	types := arbor.DescendantsByTag(root, "type_spec")
	assert.Equal(t, []string{"Server"}, names(types))
}

func TestParse_SpansInSourceOrder(t *testing.T) {
	t.Parallel()
	root, err := Parse(context.Background(), []byte(goTestSource), "go")
	require.NoError(t, err)

	spans := arbor.ComponentsOf[*Span](arbor.ChildrenByTag(root, "function_declaration"))
	require.Len(t, spans, 2)
	assert.Equal(t, 4, spans[0].StartLine)
	assert.Equal(t, 6, spans[0].EndLine)
	assert.Equal(t, 8, spans[1].StartLine)

	// Every node carries a span.
	all := arbor.Descendants(root)
	assert.Len(t, arbor.ComponentsOf[*Span](all), len(all))
}

func TestParse_PreOrderMatchesSource(t *testing.T) {
	t.Parallel()
	root, err := Parse(context.Background(), []byte(goTestSource), "go")
	require.NoError(t, err)

	prev := -1
	for _, s := range arbor.ComponentsOf[*Span](arbor.Descendants(root)) {
		assert.GreaterOrEqual(t, s.StartLine, prev)
		prev = s.StartLine
	}
}

func TestParse_Unsupported(t *testing.T) {
	t.Parallel()
	_, err := Parse(context.Background(), []byte("x"), "cobol")
	assert.ErrorContains(t, err, "unsupported language")
}

func TestParseFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "server.go")
	require.NoError(t, os.WriteFile(path, []byte(goTestSource), 0o644))

	root, err := ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "server.go", root.Name)
	assert.NotNil(t, arbor.Find(root, "Greet"))

	_, err = ParseFile(context.Background(), filepath.Join(t.TempDir(), "notes.txt"))
	assert.ErrorContains(t, err, "unsupported file type")
}
