// Package parser builds parse trees of UCUM unit codes.
// Parser implements the compiled grammar rules by recursive descent with one token of lookahead,
// term chains are built iteratively.
package parser

import (
	"regexp"
	"strconv"

	"github.com/ava12/ucum/grammar"
	"github.com/ava12/ucum/lexer"
	"github.com/ava12/ucum/tree"
)

// MaxExponent is the largest absolute value of a unit exponent.
const MaxExponent = 1000

// Parser is immutable and safe for concurrent use.
type Parser struct {
	grammar  *grammar.Grammar
	lexer    *lexer.Lexer
	numberRe [grammar.TermCount]*regexp.Regexp
}

// New creates parser and its lexer, g must not be modified afterwards.
func New(g *grammar.Grammar) *Parser {
	p := &Parser{grammar: g, lexer: lexer.New(g)}
	for _, class := range []int{grammar.Factor, grammar.Exponent} {
		if class < len(g.Terms) && g.Terms[class].Re != "" {
			p.numberRe[class] = regexp.MustCompile("^(?:" + g.Terms[class].Re + ")$")
		}
	}
	return p
}

func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

func (p *Parser) Lexer() *lexer.Lexer {
	return p.lexer
}

// Parse tokenizes and parses unit code.
// Returns lexical or syntax *ucum.Error on failure.
func (p *Parser) Parse(code string) (*tree.MainTerm, error) {
	tokens, e := p.lexer.Tokenize(code)
	if e != nil {
		return nil, e
	}
	return p.ParseTokens(tokens)
}

// ParseTokens parses token sequence produced by lexer.
// EoI token is appended if missing.
func (p *Parser) ParseTokens(tokens []lexer.Token) (*tree.MainTerm, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Class() != lexer.EoiClass {
		end := 0
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].End()
		}
		tokens = append(tokens[:len(tokens):len(tokens)], lexer.EoiToken(end))
	}

	pc := &ParseContext{parser: p, tokens: tokens}
	root, e := pc.mainTerm()
	if e != nil {
		return nil, e
	}

	switch t := pc.token(); t.Class() {
	case lexer.EoiClass:
		return root, nil
	case grammar.RParen:
		return nil, strayParenError(t)
	default:
		return nil, unexpectedTokenError(t, pc.names(grammar.Dot, grammar.Divide, lexer.EoiClass))
	}
}

// ParseContext holds the state of a single parsing process.
type ParseContext struct {
	parser  *Parser
	tokens  []lexer.Token
	pos     int
	depth   int
	lastEnd int
}

func (pc *ParseContext) token() lexer.Token {
	return pc.tokens[pc.pos]
}

func (pc *ParseContext) next() lexer.Token {
	t := pc.tokens[pc.pos]
	if t.Class() != lexer.EoiClass {
		pc.pos++
		pc.lastEnd = t.End()
	}
	return t
}

func (pc *ParseContext) names(classes ...int) []string {
	result := make([]string, len(classes))
	for i, c := range classes {
		if c == lexer.EoiClass {
			result[i] = lexer.EoiClassName
		} else {
			result[i] = pc.parser.grammar.TermName(c)
		}
	}
	return result
}

func (pc *ParseContext) span(start int) tree.Span {
	return tree.Span{Start: start, End: pc.lastEnd}
}

func (pc *ParseContext) number(t lexer.Token) (int, error) {
	re := pc.parser.numberRe[t.Class()]
	if re != nil && !re.MatchString(t.Text()) {
		return 0, badNumberError(t)
	}
	n, e := strconv.Atoi(t.Text())
	if e != nil || n == 0 {
		return 0, badNumberError(t)
	}
	if t.Class() == grammar.Exponent && (n > MaxExponent || n < -MaxExponent) {
		return 0, badNumberError(t)
	}
	return n, nil
}

// main_term: DIVIDE term | term
func (pc *ParseContext) mainTerm() (*tree.MainTerm, error) {
	start := pc.token().Offset()
	leading := pc.token().Class() == grammar.Divide
	if leading {
		pc.next()
	}

	t, e := pc.term()
	if e != nil {
		return nil, e
	}
	return &tree.MainTerm{Span: pc.span(start), LeadingDivide: leading, Term: t}, nil
}

// term: term DOT component | term DIVIDE component | component
func (pc *ParseContext) term() (tree.Node, error) {
	start := pc.token().Offset()
	c, e := pc.component()
	if e != nil {
		return nil, e
	}

	var left tree.Node = c
	for {
		var op tree.Operator
		switch pc.token().Class() {
		case grammar.Dot:
			op = tree.Multiply
		case grammar.Divide:
			op = tree.Divide
		default:
			return left, nil
		}
		pc.next()

		right, e := pc.component()
		if e != nil {
			return nil, e
		}
		left = &tree.Term{Span: pc.span(start), Left: left, Op: op, Right: right}
	}
}

// component: annotatable ANNOTATION | annotatable
func (pc *ParseContext) component() (*tree.Component, error) {
	start := pc.token().Offset()
	a, e := pc.annotatable()
	if e != nil {
		return nil, e
	}

	c := &tree.Component{Annotatable: a}
	if t := pc.token(); t.Class() == grammar.Annotation {
		if c.IsAnnotationOnly() {
			return nil, secondAnnotationError(t)
		}
		pc.next()
		c.Annotation = &tree.Annotation{Span: pc.span(t.Offset()), Text: annotationText(t)}
	}
	c.Span = pc.span(start)
	return c, nil
}

func annotationText(t lexer.Token) string {
	text := t.Text()
	return text[1 : len(text)-1]
}

var annotatableStart = []int{
	grammar.Metric, grammar.ShortPrefix, grammar.LongPrefix, grammar.NonMetric,
	grammar.Factor, grammar.Annotation, grammar.LParen,
}

// annotatable: simple_unit EXPONENT | simple_unit | ANNOTATION | LPAREN (main_term | term | component) RPAREN
func (pc *ParseContext) annotatable() (*tree.Annotatable, error) {
	t := pc.token()
	start := t.Offset()
	var base tree.Node

	switch t.Class() {
	case grammar.Metric, grammar.NonMetric, grammar.ShortPrefix, grammar.LongPrefix:
		u, e := pc.simpleUnit()
		if e != nil {
			return nil, e
		}
		a := &tree.Annotatable{Base: u}
		if et := pc.token(); et.Class() == grammar.Exponent {
			n, e := pc.number(et)
			if e != nil {
				return nil, e
			}
			pc.next()
			a.Exponent = &tree.Exponent{Span: pc.span(et.Offset()), Value: n, Text: et.Text()}
		}
		a.Span = pc.span(start)
		return a, nil

	case grammar.Factor:
		n, e := pc.number(t)
		if e != nil {
			return nil, e
		}
		pc.next()
		base = &tree.Factor{Span: pc.span(start), Value: n}

	case grammar.Annotation:
		pc.next()
		base = &tree.Annotation{Span: pc.span(start), Text: annotationText(t)}

	case grammar.LParen:
		g, e := pc.group()
		if e != nil {
			return nil, e
		}
		base = g

	case grammar.RParen:
		if pc.depth == 0 {
			return nil, strayParenError(t)
		}
		return nil, unexpectedTokenError(t, pc.names(annotatableStart...))

	case lexer.EoiClass:
		return nil, unexpectedEndError(t, pc.names(annotatableStart...))

	default:
		return nil, unexpectedTokenError(t, pc.names(annotatableStart...))
	}

	return &tree.Annotatable{Span: pc.span(start), Base: base}, nil
}

// simple_unit: METRIC | SHORT_PREFIX METRIC | LONG_PREFIX METRIC | NON_METRIC | FACTOR
// FACTOR is handled by annotatable.
func (pc *ParseContext) simpleUnit() (*tree.SimpleUnit, error) {
	t := pc.next()
	u := &tree.SimpleUnit{}
	if t.Class() == grammar.ShortPrefix || t.Class() == grammar.LongPrefix {
		u.Prefix = t.Text()
		at := pc.token()
		if at.Class() != grammar.Metric {
			if at.Class() == lexer.EoiClass {
				return nil, unexpectedEndError(at, pc.names(grammar.Metric))
			}
			return nil, unexpectedTokenError(at, pc.names(grammar.Metric))
		}
		pc.next()
		u.Atom = at.Text()
	} else {
		u.Atom = t.Text()
	}
	u.Span = pc.span(t.Offset())
	return u, nil
}

// group parses main_term inside parentheses, the other group alternatives are its subsets.
// An inner main_term without leading division is stored as its term or component.
func (pc *ParseContext) group() (*tree.Group, error) {
	open := pc.next()
	pc.depth++
	defer func() {
		pc.depth--
	}()

	mt, e := pc.mainTerm()
	if e != nil {
		return nil, e
	}
	var inner tree.Node = mt
	if !mt.LeadingDivide {
		inner = mt.Term
	}

	switch t := pc.token(); t.Class() {
	case grammar.RParen:
		pc.next()
		return &tree.Group{Span: pc.span(open.Offset()), Inner: inner}, nil
	case lexer.EoiClass:
		return nil, unclosedParenError(open, pc.names(grammar.Dot, grammar.Divide, grammar.RParen))
	default:
		return nil, unexpectedTokenError(t, pc.names(grammar.Dot, grammar.Divide, grammar.RParen))
	}
}
