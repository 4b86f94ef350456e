// Package lexer defines lexical analyzer for UCUM unit codes.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ava12/ucum"
	"github.com/ava12/ucum/grammar"
	"github.com/ava12/ucum/internal/trie"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current position.
	WrongCharError = ucum.LexicalErrors + iota

	// WhitespaceError indicates a whitespace character anywhere in the unit code.
	WhitespaceError

	// UnclosedAnnotationError indicates an annotation lacking closing brace, offset points to the opening one.
	UnclosedAnnotationError

	// EmptyAnnotationError indicates "{}", offset points to the opening brace.
	EmptyAnnotationError
)

// Lexer performs lexical analysis using compiled grammar.
// Literal terminal classes are stored in tries, at each position the longest match wins,
// equal length matches are resolved by terminal class priority.
// A prefix is only matched together with the following metric atom, the pair yields two tokens.
// Lexer is immutable and safe for concurrent use.
type Lexer struct {
	g     *grammar.Grammar
	tries []*trie.Trie[struct{}]
}

// New creates new Lexer. g must not be modified afterwards.
func New(g *grammar.Grammar) *Lexer {
	l := &Lexer{g: g, tries: make([]*trie.Trie[struct{}], len(g.Terms))}
	for i, t := range g.Terms {
		if t.Flags&grammar.LiteralTerm == 0 {
			continue
		}
		tr := trie.New[struct{}]()
		for _, lit := range t.Literals {
			tr.Set(lit, struct{}{})
		}
		l.tries[i] = tr
	}
	return l
}

// Grammar returns the grammar used by lexer.
func (l *Lexer) Grammar() *grammar.Grammar {
	return l.g
}

func wrongCharError(input string, offset int) *ucum.Error {
	r, _ := utf8.DecodeRuneInString(input[offset:])
	return ucum.FormatErrorPos(ucum.Offset(offset), WrongCharError, "wrong char \"%c\" (u+%x)", r, r)
}

type match struct {
	length, priority   int
	class, prefixClass int
	prefixLength       int
}

func (m match) better(other match) bool {
	return m.length > other.length || (m.length == other.length && m.priority < other.priority)
}

func (l *Lexer) literalMatches(rest string, best *match) {
	for class, tr := range l.tries {
		if tr == nil {
			continue
		}

		t := &l.g.Terms[class]
		if t.Flags&grammar.PrefixTerm == 0 {
			length, _ := tr.Longest(rest)
			m := match{length: length, priority: t.Priority, class: class, prefixClass: -1}
			if length > 0 && m.better(*best) {
				*best = m
			}
			continue
		}

		metric := l.tries[grammar.Metric]
		if metric == nil {
			continue
		}
		tr.Prefixes(rest, func(pl int, _ struct{}) bool {
			ml, _ := metric.Longest(rest[pl:])
			m := match{length: pl + ml, priority: t.Priority, class: grammar.Metric, prefixClass: class, prefixLength: pl}
			if ml > 0 && m.better(*best) {
				*best = m
			}
			return true
		})
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// numberMatch reads [+-]?[0-9]+, a sign is only allowed in exponents.
func (l *Lexer) numberMatch(rest string, afterUnit bool, best *match) {
	class := grammar.Factor
	if afterUnit {
		class = grammar.Exponent
	}

	i := 0
	if afterUnit && (rest[0] == '+' || rest[0] == '-') {
		i++
	}
	start := i
	for i < len(rest) && isDigit(rest[i]) {
		i++
	}
	if i == start {
		return
	}

	m := match{length: i, priority: l.g.Terms[class].Priority, class: class, prefixClass: -1}
	if m.better(*best) {
		*best = m
	}
}

func (l *Lexer) annotation(input string, offset int) (Token, error) {
	for i := offset + 1; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '}' && i == offset+1:
			return Token{}, ucum.FormatErrorPos(ucum.Offset(offset), EmptyAnnotationError, "empty annotation")
		case c == '}':
			return l.token(grammar.Annotation, input[offset:i+1], offset), nil
		case c <= ' ' || c > '~' || c == '{':
			return Token{}, wrongCharError(input, i)
		}
	}
	return Token{}, ucum.FormatErrorPos(ucum.Offset(offset), UnclosedAnnotationError, "unclosed annotation")
}

func (l *Lexer) token(class int, text string, offset int) Token {
	return NewToken(class, l.g.TermName(class), text, offset)
}

// Tokenize splits unit code into tokens.
// Returned slice always ends with EoI token, offsets are byte offsets in input.
// Returns nil and *ucum.Error on lexical error.
func (l *Lexer) Tokenize(input string) ([]Token, error) {
	if i := strings.IndexFunc(input, unicode.IsSpace); i >= 0 {
		return nil, ucum.FormatErrorPos(ucum.Offset(i), WhitespaceError, "whitespace is not allowed")
	}

	var result []Token
	afterUnit := false
	for pos := 0; pos < len(input); {
		if input[pos] == '{' {
			t, e := l.annotation(input, pos)
			if e != nil {
				return nil, e
			}
			result = append(result, t)
			pos = t.End()
			afterUnit = false
			continue
		}

		rest := input[pos:]
		best := match{prefixClass: -1}
		l.literalMatches(rest, &best)
		if isDigit(rest[0]) || rest[0] == '+' || rest[0] == '-' {
			l.numberMatch(rest, afterUnit, &best)
		}
		if best.length == 0 {
			return nil, wrongCharError(input, pos)
		}

		if best.prefixClass >= 0 {
			result = append(result, l.token(best.prefixClass, rest[:best.prefixLength], pos))
		}
		result = append(result, l.token(best.class, rest[best.prefixLength:best.length], pos+best.prefixLength))
		pos += best.length
		afterUnit = best.class == grammar.Metric || best.class == grammar.NonMetric
	}

	return append(result, EoiToken(len(input))), nil
}
