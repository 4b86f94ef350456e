package langdef

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/ucum/grammar"
)

func TestGoSource(t *testing.T) {
	g := defaultGrammar(t)
	src, e := GoSource(g, "ucumgrammar", "")
	require.NoError(t, e)

	text := string(src)
	assert.True(t, strings.HasPrefix(text, "// Code generated by ucumgen. DO NOT EDIT.\n"))
	assert.Contains(t, text, "var main_term = &grammar.Grammar{")
	assert.Contains(t, text, `{Name: "LONG_PREFIX", Flags: grammar.LiteralTerm | grammar.PrefixTerm, Priority: 0, Literals: []string{`)
	assert.Contains(t, text, `{Name: "EXPONENT", Flags: grammar.PatternTerm, Priority: 3, Re: "[+-]?[1-9][0-9]*"},`)
	assert.Contains(t, text, "\t\t\t\"[in_i'H2O]\",\n")
	assert.Contains(t, text, "\t\t\t{\"DIVIDE\", \"term\"},\n")

	f, e := parser.ParseFile(token.NewFileSet(), "grammar.go", src, 0)
	require.NoError(t, e)
	assert.Equal(t, "ucumgrammar", f.Name.Name)
	require.Len(t, f.Decls, 2)
	decl, is := f.Decls[1].(*ast.GenDecl)
	require.True(t, is)
	assert.Equal(t, "main_term", decl.Specs[0].(*ast.ValueSpec).Names[0].Name)

	src, e = GoSource(g, "x", "UCUM")
	require.NoError(t, e)
	assert.Contains(t, string(src), "var UCUM = ")
}

func TestGoSourceNames(t *testing.T) {
	g := defaultGrammar(t)
	_, e := GoSource(g, "my-pkg", "")
	assert.Error(t, e)
	_, e = GoSource(g, "pkg", "1st")
	assert.Error(t, e)
	_, e = GoSource(&grammar.Grammar{}, "pkg", "")
	assert.Error(t, e)
}

func TestFlagsExpr(t *testing.T) {
	assert.Equal(t, "grammar.PatternTerm", flagsExpr(grammar.PatternTerm))
	assert.Equal(t, "grammar.LiteralTerm | grammar.PrefixTerm", flagsExpr(grammar.LiteralTerm|grammar.PrefixTerm))
	assert.Equal(t, "0", flagsExpr(0))
	assert.Equal(t, "grammar.LiteralTerm | 64", flagsExpr(grammar.LiteralTerm|64))
}
