/*
Package ucum parses UCUM unit codes and evaluates them into quantity expressions.

Consists of subpackages:
  - catalog: UCUM atom catalog (prefixes, base, metric and non-metric units), embedded essence data and loaders;
  - grammar: compiled grammar structure, terminal classes and production rules;
  - langdef: builds compiled grammar from an atom catalog and renders the grammar text artifact;
  - lexer: tokenizer using longest match with fixed class priority;
  - tree: parse tree node variants;
  - parser: recursive descent parser producing parse trees;
  - mapping: UCUM atom to registry identifier table;
  - quantity: reference quantity registry with exact magnitudes;
  - eval: semantic evaluator, generic over quantity registries;
  - config: configuration files and environment overrides;
  - converter: top-level entry point with cached grammars;
  - cmd/ucumgen: console utility regenerating grammar artifact and mapping report.

Typical usage is:

	q, e := converter.ParseAndEvaluate("kg.m/s2")
*/
package ucum

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	ConfigErrors   = 1   // used by catalog, langdef, config
	LexicalErrors  = 101 // used by lexer
	SyntaxErrors   = 201 // used by parser
	SemanticErrors = 301 // used by eval
	RegistryErrors = 401 // used by quantity
)

// NoOffset marks an error not bound to an input position.
const NoOffset = -1

// Error is the error type used by ucum subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including offset if provided.
	Message string

	// Offset contains byte offset in the unit code or NoOffset.
	Offset int

	// Expected lists token class names acceptable at Offset, syntax errors only.
	Expected []string

	// Atom contains the offending unit atom code, semantic errors only.
	Atom string
}

// Pos is used to retrieve input position when constructing an error;
// lexer.Token implements this interface.
type Pos interface {
	// Offset returns byte offset in input.
	Offset() int
}

// NewError creates new Error structure.
// offset will be added to error message unless it is NoOffset.
func NewError(code int, msg string, offset int) *Error {
	if offset != NoOffset {
		msg += fmt.Sprintf(" at offset %d", offset)
	}
	return &Error{Code: code, Message: msg, Offset: offset}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, NoOffset)
}

// FormatErrorPos creates Error structure with position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos Pos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.Offset())
}

// Offset makes int usable as Pos.
type Offset int

func (o Offset) Offset() int {
	return int(o)
}

func codeIn(e error, class int) bool {
	var ee *Error
	if !errors.As(e, &ee) {
		return false
	}
	return ee.Code >= class && ee.Code < class+100
}

// IsConfigError reports whether e (or any error it wraps) is a catalog or configuration error.
func IsConfigError(e error) bool {
	return codeIn(e, ConfigErrors)
}

// IsLexicalError reports whether e is a tokenizer error.
func IsLexicalError(e error) bool {
	return codeIn(e, LexicalErrors)
}

// IsSyntaxError reports whether e is a parser error.
func IsSyntaxError(e error) bool {
	return codeIn(e, SyntaxErrors)
}

// IsSemanticError reports whether e is an evaluator error.
func IsSemanticError(e error) bool {
	return codeIn(e, SemanticErrors)
}

// IsRegistryError reports whether e is a quantity registry error.
func IsRegistryError(e error) bool {
	return codeIn(e, RegistryErrors)
}
