package parser

import (
	"strings"

	"github.com/ava12/ucum"
	"github.com/ava12/ucum/lexer"
)

// Error codes used by parser:
const (
	// UnexpectedTokenError indicates a token not allowed at current position.
	UnexpectedTokenError = ucum.SyntaxErrors + iota

	// UnexpectedEndError indicates the unit code ends where more tokens are required.
	UnexpectedEndError

	// UnbalancedParenError indicates a closing parenthesis without opening one (offset of the ")")
	// or an unclosed group (offset of the "(").
	UnbalancedParenError

	// BadNumberError indicates zero, leading zeros, or out of range value in a factor or an exponent.
	BadNumberError
)

func withExpected(e *ucum.Error, expected []string) *ucum.Error {
	e.Expected = expected
	return e
}

func unexpectedTokenError(t lexer.Token, expected []string) *ucum.Error {
	e := ucum.FormatErrorPos(t, UnexpectedTokenError, "unexpected %s %q, expecting %s", t.ClassName(), t.Text(), strings.Join(expected, " or "))
	return withExpected(e, expected)
}

func secondAnnotationError(t lexer.Token) *ucum.Error {
	e := ucum.FormatErrorPos(t, UnexpectedTokenError, "annotation %q cannot be annotated", t.Text())
	return withExpected(e, nil)
}

func unexpectedEndError(t lexer.Token, expected []string) *ucum.Error {
	e := ucum.FormatErrorPos(t, UnexpectedEndError, "unexpected end of input, expecting %s", strings.Join(expected, " or "))
	return withExpected(e, expected)
}

func strayParenError(t lexer.Token) *ucum.Error {
	return ucum.FormatErrorPos(t, UnbalancedParenError, "unbalanced \")\"")
}

func unclosedParenError(t lexer.Token, expected []string) *ucum.Error {
	return withExpected(ucum.FormatErrorPos(t, UnbalancedParenError, "unclosed \"(\""), expected)
}

func badNumberError(t lexer.Token) *ucum.Error {
	return ucum.FormatErrorPos(t, BadNumberError, "bad %s %q", strings.ToLower(t.ClassName()), t.Text())
}
