package langdef

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/ava12/ucum/grammar"
)

const continuation = "    | "

type wrapper struct {
	sb    *strings.Builder
	line  int
	width int
}

func (w *wrapper) start(name string) {
	w.sb.WriteString(name)
	w.sb.WriteString(":")
	w.line = len(name) + 1
}

func (w *wrapper) item(text string, first bool) {
	sep := " "
	if !first {
		sep = " | "
	}
	if !first && w.width > 0 && w.line+len(sep)+len(text) > w.width {
		w.sb.WriteString("\n")
		w.sb.WriteString(continuation)
		w.sb.WriteString(text)
		w.line = len(continuation) + len(text)
		return
	}

	w.sb.WriteString(sep)
	w.sb.WriteString(text)
	w.line += len(sep) + len(text)
}

func (w *wrapper) end() {
	w.sb.WriteString("\n")
	w.line = 0
}

// Format renders grammar as text artifact.
// Literal alternatives are wrapped at width columns, 0 means no wrapping.
func Format(g *grammar.Grammar, width int) string {
	sb := &strings.Builder{}
	w := &wrapper{sb: sb, width: width}

	sb.WriteString("// UCUM grammar: production rules and terminal classes.\n\n")
	for _, r := range g.Rules {
		sb.WriteString(r.Name)
		sb.WriteString(":")
		for i, alt := range r.Alternatives {
			if i > 0 {
				sb.WriteString("\n" + continuation[:len(continuation)-1])
			}
			sb.WriteString(" ")
			sb.WriteString(strings.Join(alt, " "))
		}
		sb.WriteString("\n")
	}

	for _, t := range g.Terms {
		sb.WriteString("\n")
		w.start(t.Name)
		if t.Flags&grammar.PatternTerm != 0 {
			w.item("/"+t.Re+"/", true)
		} else {
			for i, l := range t.Literals {
				w.item(strconv.Quote(l), i == 0)
			}
		}
		w.end()
	}

	return sb.String()
}

// Write writes grammar text artifact to w.
func Write(w io.Writer, g *grammar.Grammar, width int) error {
	_, e := io.WriteString(w, Format(g, width))
	return e
}

// JSON renders grammar as indented JSON.
func JSON(g *grammar.Grammar) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}
