package langdef

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ava12/ucum/grammar"
)

var identRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

func flagsExpr(f grammar.TermFlags) string {
	names := []struct {
		flag grammar.TermFlags
		name string
	}{
		{grammar.LiteralTerm, "grammar.LiteralTerm"},
		{grammar.PatternTerm, "grammar.PatternTerm"},
		{grammar.PrefixTerm, "grammar.PrefixTerm"},
	}

	var parts []string
	for _, n := range names {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
			f &^= n.flag
		}
	}
	if f != 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d", f))
	}
	return strings.Join(parts, " | ")
}

// GoSource renders grammar as Go source file declaring variable varName of type *grammar.Grammar
// in package packageName. Empty varName means the root rule name.
func GoSource(g *grammar.Grammar, packageName, varName string) ([]byte, error) {
	if varName == "" && len(g.Rules) > 0 {
		varName = g.Rules[0].Name
	}
	if !identRe.MatchString(packageName) {
		return nil, fmt.Errorf("invalid package name: %q", packageName)
	}
	if !identRe.MatchString(varName) {
		return nil, fmt.Errorf("invalid variable name: %q", varName)
	}

	var buffer bytes.Buffer

	buffer.WriteString("// Code generated by ucumgen. DO NOT EDIT.\n\n" +
		"package " + packageName + "\n\n" +
		"import \"github.com/ava12/ucum/grammar\"\n\n" +
		"var " + varName + " = &grammar.Grammar{\n")

	buffer.WriteString("\tTerms: []grammar.Term{\n")
	for _, t := range g.Terms {
		buffer.WriteString(fmt.Sprintf("\t\t{Name: %q, Flags: %s, Priority: %d", t.Name, flagsExpr(t.Flags), t.Priority))
		if t.Re != "" {
			buffer.WriteString(fmt.Sprintf(", Re: %q", t.Re))
		}
		if len(t.Literals) == 0 {
			buffer.WriteString("},\n")
			continue
		}
		buffer.WriteString(", Literals: []string{\n")
		for _, l := range t.Literals {
			buffer.WriteString(fmt.Sprintf("\t\t\t%q,\n", l))
		}
		buffer.WriteString("\t\t}},\n")
	}
	buffer.WriteString("\t},\n")

	buffer.WriteString("\tRules: []grammar.Rule{\n")
	for _, r := range g.Rules {
		buffer.WriteString(fmt.Sprintf("\t\t{Name: %q, Alternatives: [][]string{\n", r.Name))
		for _, alt := range r.Alternatives {
			quoted := make([]string, len(alt))
			for i, item := range alt {
				quoted[i] = fmt.Sprintf("%q", item)
			}
			buffer.WriteString("\t\t\t{" + strings.Join(quoted, ", ") + "},\n")
		}
		buffer.WriteString("\t\t}},\n")
	}
	buffer.WriteString("\t},\n")

	buffer.WriteString("}\n")
	return buffer.Bytes(), nil
}
