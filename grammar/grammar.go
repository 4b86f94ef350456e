// Package grammar defines compiled UCUM grammar: terminal classes and production rules.
// Grammar is plain data, it is built by langdef package and used by lexer and parser.
package grammar

// Terminal class indexes, each one is an index in Grammar.Terms.
const (
	ShortPrefix = iota
	LongPrefix
	Metric
	NonMetric
	Factor
	Exponent
	Annotation
	Dot
	Divide
	LParen
	RParen

	TermCount
)

// TermFlags describes how terminal is matched.
type TermFlags int

const (
	// LiteralTerm is matched against Literals.
	LiteralTerm TermFlags = 1 << iota

	// PatternTerm is matched against Re.
	PatternTerm

	// PrefixTerm is a literal term that never stands alone, it is always followed by a Metric terminal.
	PrefixTerm
)

// Term describes a terminal class.
// Priority breaks ties between equal length matches of different classes, lower value wins.
type Term struct {
	Name     string
	Flags    TermFlags
	Priority int
	Literals []string `json:",omitempty"`
	Re       string   `json:",omitempty"`
}

// Rule describes a production rule.
// Each alternative is a sequence of rule names and terminal names.
type Rule struct {
	Name         string
	Alternatives [][]string
}

// Grammar contains terminal classes indexed by class constants and production rules,
// the first rule is the root one.
// Grammar must not be modified after construction.
type Grammar struct {
	Terms []Term
	Rules []Rule
}

// TermName returns terminal class name or empty string.
func (g *Grammar) TermName(class int) string {
	if class < 0 || class >= len(g.Terms) {
		return ""
	}
	return g.Terms[class].Name
}

// Rule returns production rule by name.
func (g *Grammar) Rule(name string) (Rule, bool) {
	for _, r := range g.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}
