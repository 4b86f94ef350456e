// Package tree defines parse tree nodes of UCUM unit codes.
// Each node type corresponds to a single grammar rule, optional parts are explicit fields.
package tree

import (
	"strconv"
	"strings"
)

// Span holds byte offsets of a node in the unit code, End is exclusive.
type Span struct {
	Start, End int
}

// Offset makes Span usable as ucum.Pos.
func (s Span) Offset() int {
	return s.Start
}

func (s Span) Bounds() Span {
	return s
}

// Node is one of *MainTerm, *Term, *Component, *Annotatable, *Group,
// *SimpleUnit, *Factor, *Exponent, *Annotation.
type Node interface {
	Bounds() Span
	TypeName() string
	String() string
	node()
}

// Operator is a binary term operator.
type Operator byte

const (
	Multiply Operator = '.'
	Divide   Operator = '/'
)

func (o Operator) String() string {
	return string(rune(o))
}

// MainTerm is the root node: optional leading division and a term.
// Term is *Term or *Component.
type MainTerm struct {
	Span
	LeadingDivide bool
	Term          Node
}

// Term is a binary operation, chains are left associative:
// Left is *Term or *Component.
type Term struct {
	Span
	Left  Node
	Op    Operator
	Right *Component
}

// Component is an annotatable optionally followed by an annotation.
type Component struct {
	Span
	Annotatable *Annotatable
	Annotation  *Annotation
}

// IsAnnotationOnly tells whether the component consists of a sole annotation.
func (c *Component) IsAnnotationOnly() bool {
	if c.Annotation != nil || c.Annotatable.Exponent != nil {
		return false
	}
	_, is := c.Annotatable.Base.(*Annotation)
	return is
}

// Annotatable is a unit, a factor, an annotation, or a parenthesized group.
// Base is *SimpleUnit, *Factor, *Annotation, or *Group, only *SimpleUnit may have an exponent.
type Annotatable struct {
	Span
	Base     Node
	Exponent *Exponent
}

// Group is a parenthesized expression, Span includes parentheses.
// Inner is *MainTerm (only if it starts with division), *Term, or *Component.
type Group struct {
	Span
	Inner Node
}

// SimpleUnit is a unit atom with optional prefix.
type SimpleUnit struct {
	Span
	Prefix string
	Atom   string
}

// AtomOffset returns byte offset of the atom.
func (u *SimpleUnit) AtomOffset() int {
	return u.Start + len(u.Prefix)
}

// Factor is a positive integer.
type Factor struct {
	Span
	Value int
}

// Exponent is a signed integer power, Text keeps the original spelling.
type Exponent struct {
	Span
	Value int
	Text  string
}

// Annotation keeps annotation text without braces.
type Annotation struct {
	Span
	Text string
}

// Node type names, same as grammar rule and terminal names.
const (
	MainTermName    = "main_term"
	TermName        = "term"
	ComponentName   = "component"
	AnnotatableName = "annotatable"
	GroupName       = "group"
	SimpleUnitName  = "simple_unit"
	FactorName      = "FACTOR"
	ExponentName    = "EXPONENT"
	AnnotationName  = "ANNOTATION"
)

func (*MainTerm) TypeName() string    { return MainTermName }
func (*Term) TypeName() string        { return TermName }
func (*Component) TypeName() string   { return ComponentName }
func (*Annotatable) TypeName() string { return AnnotatableName }
func (*Group) TypeName() string       { return GroupName }
func (*SimpleUnit) TypeName() string  { return SimpleUnitName }
func (*Factor) TypeName() string      { return FactorName }
func (*Exponent) TypeName() string    { return ExponentName }
func (*Annotation) TypeName() string  { return AnnotationName }

func (*MainTerm) node()    {}
func (*Term) node()        {}
func (*Component) node()   {}
func (*Annotatable) node() {}
func (*Group) node()       {}
func (*SimpleUnit) node()  {}
func (*Factor) node()      {}
func (*Exponent) node()    {}
func (*Annotation) node()  {}

// String methods return UCUM spelling of the node.

func (n *MainTerm) String() string {
	if n.LeadingDivide {
		return "/" + n.Term.String()
	}
	return n.Term.String()
}

func (n *Term) String() string {
	return n.Left.String() + n.Op.String() + n.Right.String()
}

func (n *Component) String() string {
	if n.Annotation == nil {
		return n.Annotatable.String()
	}
	return n.Annotatable.String() + n.Annotation.String()
}

func (n *Annotatable) String() string {
	if n.Exponent == nil {
		return n.Base.String()
	}
	return n.Base.String() + n.Exponent.String()
}

func (n *Group) String() string {
	return "(" + n.Inner.String() + ")"
}

func (n *SimpleUnit) String() string {
	return n.Prefix + n.Atom
}

func (n *Factor) String() string {
	return strconv.Itoa(n.Value)
}

func (n *Exponent) String() string {
	if n.Text != "" {
		return n.Text
	}
	return strconv.Itoa(n.Value)
}

func (n *Annotation) String() string {
	return "{" + n.Text + "}"
}

// Children returns direct children of the node in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *MainTerm:
		return []Node{n.Term}
	case *Term:
		return []Node{n.Left, n.Right}
	case *Component:
		if n.Annotation == nil {
			return []Node{n.Annotatable}
		}
		return []Node{n.Annotatable, n.Annotation}
	case *Annotatable:
		if n.Exponent == nil {
			return []Node{n.Base}
		}
		return []Node{n.Base, n.Exponent}
	case *Group:
		return []Node{n.Inner}
	}
	return nil
}

// NodeVisitor is called for each visited node.
// Returning false for walkChildren skips node descendants, returning false for walkSiblings skips
// remaining siblings of the node.
type NodeVisitor func(n Node) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits n and its descendants depth first.
func Walk(n Node, mode WalkMode, visitor NodeVisitor) {
	if n != nil {
		visitNode(n, visitor, mode&WalkRtl != 0)
	}
}

func visitNode(n Node, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(n)
	if !vc {
		return vs
	}

	children := Children(n)
	for i := range children {
		c := children[i]
		if rtl {
			c = children[len(children)-i-1]
		}
		if !visitNode(c, v, rtl) {
			break
		}
	}
	return vs
}

type NodeFilter func(n Node) bool

func IsNot(f NodeFilter) NodeFilter {
	return func(n Node) bool {
		return !f(n)
	}
}

func IsAny(fs ...NodeFilter) NodeFilter {
	return func(n Node) bool {
		for _, f := range fs {
			if f(n) {
				return true
			}
		}
		return false
	}
}

func IsA(names ...string) NodeFilter {
	return func(n Node) bool {
		tn := n.TypeName()
		for _, name := range names {
			if tn == name {
				return true
			}
		}
		return false
	}
}

// Collect returns all nodes accepted by filter in source order, n itself included.
func Collect(n Node, f NodeFilter) []Node {
	var res []Node
	Walk(n, WalkLtr, func(n Node) (bool, bool) {
		if f(n) {
			res = append(res, n)
		}
		return true, true
	})
	return res
}

// Units returns all unit atoms of the tree in source order.
func Units(n Node) []*SimpleUnit {
	nodes := Collect(n, IsA(SimpleUnitName))
	res := make([]*SimpleUnit, len(nodes))
	for i, nn := range nodes {
		res[i] = nn.(*SimpleUnit)
	}
	return res
}

// Dump returns indented debug representation of the tree, one node per line.
func Dump(n Node) string {
	sb := &strings.Builder{}
	level := 0
	var dump func(n Node)
	dump = func(n Node) {
		sb.WriteString(strings.Repeat("  ", level))
		sb.WriteString(n.TypeName())
		switch n := n.(type) {
		case *MainTerm:
			if n.LeadingDivide {
				sb.WriteString(" /")
			}
		case *Term:
			sb.WriteString(" " + n.Op.String())
		case *SimpleUnit, *Factor, *Exponent, *Annotation:
			sb.WriteString(" " + strconv.Quote(n.String()))
		}
		sb.WriteString("\n")

		level++
		for _, c := range Children(n) {
			dump(c)
		}
		level--
	}
	if n != nil {
		dump(n)
	}
	return sb.String()
}
