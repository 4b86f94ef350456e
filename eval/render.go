package eval

import (
	"strconv"
	"strings"

	"github.com/ava12/ucum/tree"
)

// Render returns parse tree as a fully parenthesized registry expression,
// e.g. "m/s2.kg" becomes "((((m) / (s)**2) * (kg)))".
// Atoms are replaced by mapped identifiers, annotations are dropped, an annotation alone renders as 1.
func Render(n tree.Node, m Mapping) string {
	if m == nil {
		m = emptyMapping{}
	}
	sb := &strings.Builder{}
	render(sb, n, m)
	return sb.String()
}

func mapped(m Mapping, code string) string {
	if id, has := m.Get(code); has {
		return id
	}
	return code
}

func render(sb *strings.Builder, n tree.Node, m Mapping) {
	switch n := n.(type) {
	case *tree.MainTerm:
		sb.WriteString("(")
		if n.LeadingDivide {
			sb.WriteString("1 / ")
		}
		render(sb, n.Term, m)
		sb.WriteString(")")

	case *tree.Term:
		sb.WriteString("(")
		render(sb, n.Left, m)
		if n.Op == tree.Divide {
			sb.WriteString(" / ")
		} else {
			sb.WriteString(" * ")
		}
		render(sb, n.Right, m)
		sb.WriteString(")")

	case *tree.Component:
		render(sb, n.Annotatable, m)

	case *tree.Annotatable:
		render(sb, n.Base, m)
		if n.Exponent != nil {
			sb.WriteString("**")
			sb.WriteString(strconv.Itoa(n.Exponent.Value))
		}

	case *tree.Group:
		render(sb, n.Inner, m)

	case *tree.SimpleUnit:
		sb.WriteString("(" + n.Prefix + mapped(m, n.Atom) + ")")

	case *tree.Factor:
		sb.WriteString("(" + strconv.Itoa(n.Value) + ")")

	case *tree.Annotation:
		sb.WriteString("(1)")
	}
}
