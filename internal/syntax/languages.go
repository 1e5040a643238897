package syntax

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// language is one importable grammar.
type language struct {
	name    string
	exts    []string
	grammar func() *sitter.Language
}

var languages = []language{
	{"go", []string{".go"}, golang.GetLanguage},
	{"typescript", []string{".ts"}, typescript.GetLanguage},
	{"tsx", []string{".tsx"}, tsx.GetLanguage},
	{"javascript", []string{".js", ".jsx", ".mjs"}, javascript.GetLanguage},
	{"python", []string{".py"}, python.GetLanguage},
	{"rust", []string{".rs"}, rust.GetLanguage},
	{"c", []string{".c", ".h"}, c.GetLanguage},
	{"cpp", []string{".cpp", ".cc", ".cxx", ".hpp"}, cpp.GetLanguage},
	{"java", []string{".java"}, java.GetLanguage},
	{"php", []string{".php"}, php.GetLanguage},
	{"ruby", []string{".rb"}, ruby.GetLanguage},
}

// Grammars are cgo objects; build each once.
var (
	grammars     map[string]*sitter.Language
	grammarsOnce sync.Once
)

// LanguageForFile returns the language name for path's extension.
func LanguageForFile(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, l := range languages {
		if slices.Contains(l.exts, ext) {
			return l.name, true
		}
	}
	return "", false
}

// ParserForLanguage returns the grammar for a language name.
func ParserForLanguage(lang string) (*sitter.Language, bool) {
	grammarsOnce.Do(func() {
		grammars = make(map[string]*sitter.Language, len(languages))
		for _, l := range languages {
			grammars[l.name] = l.grammar()
		}
	})
	g, ok := grammars[lang]
	return g, ok
}

// Languages lists the supported language names.
func Languages() []string {
	names := make([]string, len(languages))
	for i, l := range languages {
		names[i] = l.name
	}
	return names
}
