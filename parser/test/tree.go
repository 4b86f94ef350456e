// Package test contains parse tree helpers shared by tests.
package test

import (
	"strconv"
	"testing"

	"github.com/ava12/ucum/tree"
)

// Shape returns compact s-expression of the tree:
//
//	"/X"     -> (/ X)
//	"A.B"    -> (. A B)
//	"A/B"    -> (/ A B)
//	"X{a}"   -> (X {a})
//	"s2"     -> (^ s 2)
//	"(X)"    -> [X]
//	"kg"     -> k:g
//	"10"     -> #10
func Shape(n tree.Node) string {
	switch n := n.(type) {
	case *tree.MainTerm:
		if n.LeadingDivide {
			return "(/ " + Shape(n.Term) + ")"
		}
		return Shape(n.Term)
	case *tree.Term:
		return "(" + n.Op.String() + " " + Shape(n.Left) + " " + Shape(n.Right) + ")"
	case *tree.Component:
		if n.Annotation != nil {
			return "(" + Shape(n.Annotatable) + " " + n.Annotation.String() + ")"
		}
		return Shape(n.Annotatable)
	case *tree.Annotatable:
		if n.Exponent != nil {
			return "(^ " + Shape(n.Base) + " " + strconv.Itoa(n.Exponent.Value) + ")"
		}
		return Shape(n.Base)
	case *tree.Group:
		return "[" + Shape(n.Inner) + "]"
	case *tree.SimpleUnit:
		if n.Prefix != "" {
			return n.Prefix + ":" + n.Atom
		}
		return n.Atom
	case *tree.Factor:
		return "#" + strconv.Itoa(n.Value)
	case *tree.Annotation:
		return n.String()
	case nil:
		return "<nil>"
	}
	return "<" + n.TypeName() + ">"
}

// ExpectShape fails unless the tree has expected shape.
func ExpectShape(t *testing.T, expected string, n tree.Node) {
	t.Helper()
	if got := Shape(n); got != expected {
		t.Fatalf("expecting tree %s, got %s", expected, got)
	}
}
