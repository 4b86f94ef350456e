package langdef

import (
	"sort"

	"github.com/ava12/ucum/grammar"
)

// Catalog is the atom catalog contract consumed by Build.
// catalog.Catalog implements this interface.
type Catalog interface {
	Prefixes() []string
	BaseUnits() []string
	MetricUnits() []string
	NonMetricUnits() []string
}

const (
	factorRe     = `[1-9][0-9]*`
	exponentRe   = `[+-]?[1-9][0-9]*`
	annotationRe = `\{[!-z|~]+\}`
)

var rules = []grammar.Rule{
	{Name: "main_term", Alternatives: [][]string{
		{"DIVIDE", "term"},
		{"term"},
	}},
	{Name: "term", Alternatives: [][]string{
		{"term", "DOT", "component"},
		{"term", "DIVIDE", "component"},
		{"component"},
	}},
	{Name: "component", Alternatives: [][]string{
		{"annotatable", "ANNOTATION"},
		{"annotatable"},
	}},
	{Name: "annotatable", Alternatives: [][]string{
		{"simple_unit", "EXPONENT"},
		{"simple_unit"},
		{"ANNOTATION"},
		{"LPAREN", "main_term", "RPAREN"},
		{"LPAREN", "term", "RPAREN"},
		{"LPAREN", "component", "RPAREN"},
	}},
	{Name: "simple_unit", Alternatives: [][]string{
		{"METRIC"},
		{"SHORT_PREFIX", "METRIC"},
		{"LONG_PREFIX", "METRIC"},
		{"NON_METRIC"},
		{"FACTOR"},
	}},
}

func validCode(code string) bool {
	if code == "" {
		return false
	}

	digits := true
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c <= ' ' || c > '~' || c == '{' || c == '}' {
			return false
		}
		digits = digits && c >= '0' && c <= '9'
	}
	return !digits
}

func sortedClass(name string, codes []string) ([]string, error) {
	result := append([]string(nil), codes...)
	sort.Strings(result)
	for i, code := range result {
		if !validCode(code) {
			return nil, badCodeError(name, code)
		}
		if i > 0 && result[i-1] == code {
			return nil, duplicateCodeError(name, code)
		}
	}
	return result, nil
}

// Build creates grammar from catalog.
// Returns EmptyCatalogError, DuplicateCodeError, or BadCodeError if catalog cannot produce unambiguous grammar.
func Build(c Catalog) (*grammar.Grammar, error) {
	var short, long []string
	for _, p := range c.Prefixes() {
		if len(p) == 1 {
			short = append(short, p)
		} else {
			long = append(long, p)
		}
	}
	metric := append(append([]string(nil), c.BaseUnits()...), c.MetricUnits()...)
	nonMetric := c.NonMetricUnits()
	if len(metric)+len(nonMetric) == 0 {
		return nil, emptyCatalogError()
	}

	g := &grammar.Grammar{
		Terms: make([]grammar.Term, grammar.TermCount),
		Rules: rules,
	}

	literals := []struct {
		class, priority int
		name            string
		flags           grammar.TermFlags
		codes           []string
	}{
		{grammar.ShortPrefix, 2, "SHORT_PREFIX", grammar.LiteralTerm | grammar.PrefixTerm, short},
		{grammar.LongPrefix, 0, "LONG_PREFIX", grammar.LiteralTerm | grammar.PrefixTerm, long},
		{grammar.Metric, 1, "METRIC", grammar.LiteralTerm, metric},
		{grammar.NonMetric, 1, "NON_METRIC", grammar.LiteralTerm, nonMetric},
		{grammar.Dot, 3, "DOT", grammar.LiteralTerm, []string{"."}},
		{grammar.Divide, 3, "DIVIDE", grammar.LiteralTerm, []string{"/"}},
		{grammar.LParen, 3, "LPAREN", grammar.LiteralTerm, []string{"("}},
		{grammar.RParen, 3, "RPAREN", grammar.LiteralTerm, []string{")"}},
	}
	for _, l := range literals {
		codes, e := sortedClass(l.name, l.codes)
		if e != nil {
			return nil, e
		}
		g.Terms[l.class] = grammar.Term{Name: l.name, Flags: l.flags, Priority: l.priority, Literals: codes}
	}

	units := make(map[string]bool, len(metric))
	for _, code := range metric {
		units[code] = true
	}
	for _, code := range nonMetric {
		if units[code] {
			return nil, duplicateCodeError("unit", code)
		}
	}

	g.Terms[grammar.Factor] = grammar.Term{Name: "FACTOR", Flags: grammar.PatternTerm, Priority: 3, Re: factorRe}
	g.Terms[grammar.Exponent] = grammar.Term{Name: "EXPONENT", Flags: grammar.PatternTerm, Priority: 3, Re: exponentRe}
	g.Terms[grammar.Annotation] = grammar.Term{Name: "ANNOTATION", Flags: grammar.PatternTerm, Priority: 3, Re: annotationRe}

	return g, nil
}
