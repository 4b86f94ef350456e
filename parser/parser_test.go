package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ava12/ucum"
	"github.com/ava12/ucum/catalog"
	"github.com/ava12/ucum/grammar"
	"github.com/ava12/ucum/internal/test"
	"github.com/ava12/ucum/langdef"
	"github.com/ava12/ucum/lexer"
	ptest "github.com/ava12/ucum/parser/test"
	"github.com/ava12/ucum/tree"
)

func defaultParser(t *testing.T) *Parser {
	c, e := catalog.Default()
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	g, e := langdef.Build(c)
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	return New(g)
}

func TestValidCodes(t *testing.T) {
	samples := [][2]string{
		{"m", "m"},
		{"kg", "k:g"},
		{"/s2", "(/ (^ s 2))"},
		{"s-2", "(^ s -2)"},
		{"m.s{s_ann}", "(. m (s {s_ann}))"},
		{"m/s2.kg", "(. (/ m (^ s 2)) k:g)"},
		{"m/s/kg", "(/ (/ m s) k:g)"},
		{"10*3", "(^ 10* 3)"},
		{"10.m", "(. #10 m)"},
		{"4.[pi].10*-7.N/A2", "(/ (. (. (. #4 [pi]) (^ 10* -7)) N) (^ A 2))"},
		{"(/s)", "[(/ s)]"},
		{"{a}/m", "(/ {a} m)"},
		{"{a}", "{a}"},
		{"{/ann1/2.g}/m", "(/ {/ann1/2.g} m)"},
		{"/{tot}", "(/ {tot})"},
		{"((kg)/(m.(s)))", "[(/ [k:g] [(. m [s])])]"},
		{"(m/s){speed}", "([(/ m s)] {speed})"},
		{"(/s2{sunit_s2}.(10{factor}.m{sunit_m}){term}){mterm}",
			"([(/ (. ((^ s 2) {sunit_s2}) ([(. (#10 {factor}) (m {sunit_m}))] {term})))] {mterm})"},
		{"dar", "d:ar"},
		{"daL", "da:L"},
		{"cm[H2O]", "c:m[H2O]"},
		{"[in_i'H2O]", "[in_i'H2O]"},
		{"mmol/L", "(/ m:mol L)"},
	}

	p := defaultParser(t)
	for _, s := range samples {
		root, e := p.Parse(s[0])
		if e != nil {
			t.Fatalf("sample %q: unexpected error: %s", s[0], e)
		}
		ptest.ExpectShape(t, s[1], root)
		test.ExpectString(t, s[0], root.String())
		test.ExpectInt(t, 0, root.Start)
		test.ExpectInt(t, len(s[0]), root.End)
	}
}

func TestInvalidCodes(t *testing.T) {
	samples := []struct {
		code          string
		error, offset int
	}{
		{"2mg", UnexpectedTokenError, 1},
		{"da", UnexpectedTokenError, 1},
		{"bars", UnexpectedTokenError, 3},
		{"m(/s)", UnexpectedTokenError, 1},
		{"(m/s)2", UnexpectedTokenError, 5},
		{"{a}{b}", UnexpectedTokenError, 3},
		{"m{a}{b}", UnexpectedTokenError, 4},
		{"//s", UnexpectedTokenError, 1},
		{"m//s", UnexpectedTokenError, 2},
		{".m", UnexpectedTokenError, 0},
		{"()", UnexpectedTokenError, 1},
		{"m.", UnexpectedEndError, 2},
		{"m/", UnexpectedEndError, 2},
		{"/", UnexpectedEndError, 1},
		{"", UnexpectedEndError, 0},
		{"m)", UnbalancedParenError, 1},
		{")", UnbalancedParenError, 0},
		{"(m", UnbalancedParenError, 0},
		{"m.((s)", UnbalancedParenError, 2},
		{"s0", BadNumberError, 1},
		{"s-0", BadNumberError, 1},
		{"s02", BadNumberError, 1},
		{"0", BadNumberError, 0},
		{"012.m", BadNumberError, 0},
		{"m99999999999999999999", BadNumberError, 1},
		{"s1001", BadNumberError, 1},
		{"s-1001", BadNumberError, 1},
		{"10*99999999", BadNumberError, 3},
		{"(m.s", UnbalancedParenError, 0},
		{"(m.(s", UnbalancedParenError, 3},
	}

	p := defaultParser(t)
	for _, s := range samples {
		root, e := p.Parse(s.code)
		if root != nil {
			t.Fatalf("sample %q: expecting error, got %s", s.code, ptest.Shape(root))
		}
		test.ExpectErrorAt(t, s.error, s.offset, e)
		test.Assert(t, ucum.IsSyntaxError(e), "sample %q: expecting syntax error, got %v", s.code, e)
	}
}

func TestLexicalErrorsPassThrough(t *testing.T) {
	p := defaultParser(t)
	_, e := p.Parse("m s")
	test.ExpectErrorAt(t, lexer.WhitespaceError, 1, e)
	test.Assert(t, ucum.IsLexicalError(e), "expecting lexical error, got %v", e)
}

func TestExpected(t *testing.T) {
	p := defaultParser(t)

	_, e := p.Parse("m.")
	ee := test.ExpectErrorCode(t, UnexpectedEndError, e)
	test.ExpectInt(t, 7, len(ee.Expected))
	test.ExpectString(t, "METRIC", ee.Expected[0])

	_, e = p.Parse("m2mg")
	ee = test.ExpectErrorCode(t, UnexpectedTokenError, e)
	test.ExpectString(t, "unexpected SHORT_PREFIX \"m\", expecting DOT or DIVIDE or -end-of-input- at offset 2", ee.Message)

	_, e = p.Parse("(m")
	ee = test.ExpectErrorCode(t, UnbalancedParenError, e)
	test.Expect(t, len(ee.Expected) == 3 && ee.Expected[2] == "RPAREN", "RPAREN", ee.Expected)
}

func TestDeterministic(t *testing.T) {
	p := defaultParser(t)
	code := "(/s2{sunit_s2}.(10{factor}.m{sunit_m}){term}){mterm}"
	first, e := p.Parse(code)
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	second, _ := p.Parse(code)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("trees differ:\n%s", diff)
	}
}

func TestSpans(t *testing.T) {
	p := defaultParser(t)
	root, e := p.Parse("kg.s2{x}")
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}

	term := root.Term.(*tree.Term)
	left := term.Left.(*tree.Component)
	unit := left.Annotatable.Base.(*tree.SimpleUnit)
	test.ExpectInt(t, 0, unit.Start)
	test.ExpectInt(t, 2, unit.End)
	test.ExpectInt(t, 1, unit.AtomOffset())

	right := term.Right
	test.ExpectInt(t, 3, right.Start)
	test.ExpectInt(t, 8, right.End)
	test.ExpectInt(t, 4, right.Annotatable.Exponent.Start)
	test.ExpectInt(t, 5, right.Annotation.Start)
	test.ExpectString(t, "x", right.Annotation.Text)
	test.ExpectInt(t, 8, term.End)
}

func TestParseTokens(t *testing.T) {
	p := defaultParser(t)
	tokens, e := p.Lexer().Tokenize("m/s")
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}

	root, e := p.ParseTokens(tokens[:len(tokens)-1])
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	ptest.ExpectShape(t, "(/ m s)", root)

	_, e = p.ParseTokens(nil)
	test.ExpectErrorAt(t, UnexpectedEndError, 0, e)
}

func TestGroupInnerNode(t *testing.T) {
	p := defaultParser(t)
	samples := map[string]string{
		"(/s)":  tree.MainTermName,
		"(m.s)": tree.TermName,
		"(m)":   tree.ComponentName,
	}
	for code, name := range samples {
		root, e := p.Parse(code)
		if e != nil {
			t.Fatalf("sample %q: unexpected error: %s", code, e)
		}
		g := root.Term.(*tree.Component).Annotatable.Base.(*tree.Group)
		test.ExpectString(t, name, g.Inner.TypeName())
	}
}

func TestCustomGrammarNumbers(t *testing.T) {
	g := &grammar.Grammar{Terms: make([]grammar.Term, grammar.TermCount)}
	g.Terms[grammar.Metric] = grammar.Term{Name: "METRIC", Flags: grammar.LiteralTerm, Literals: []string{"u"}}
	g.Terms[grammar.Factor] = grammar.Term{Name: "FACTOR", Flags: grammar.PatternTerm}
	g.Terms[grammar.Exponent] = grammar.Term{Name: "EXPONENT", Flags: grammar.PatternTerm}
	p := New(g)

	root, e := p.Parse("u02")
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	ptest.ExpectShape(t, "(^ u 2)", root)

	_, e = p.Parse("u0")
	test.ExpectErrorAt(t, BadNumberError, 1, e)
}

func TestExponentRange(t *testing.T) {
	p := defaultParser(t)
	for _, code := range []string{"s1000", "s-1000", "10*+1000"} {
		if _, e := p.Parse(code); e != nil {
			t.Fatalf("sample %q: unexpected error: %s", code, e)
		}
	}
}

func TestDeepGroups(t *testing.T) {
	p := defaultParser(t)
	depth := 30
	started := time.Now()

	_, e := p.Parse(strings.Repeat("(", depth) + "m")
	test.ExpectErrorAt(t, UnbalancedParenError, depth-1, e)

	_, e = p.Parse(strings.Repeat("(", depth) + "m." + strings.Repeat(")", depth))
	test.ExpectErrorCode(t, UnexpectedTokenError, e)

	code := strings.Repeat("(", depth) + "m" + strings.Repeat(")", depth)
	root, e := p.Parse(code)
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	test.ExpectString(t, code, root.String())

	if elapsed := time.Since(started); elapsed > time.Second {
		t.Fatalf("parsing nested groups took %s", elapsed)
	}
}
