package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ava12/ucum"
	"github.com/ava12/ucum/catalog"
	"github.com/ava12/ucum/converter"
	"github.com/ava12/ucum/eval"
	"github.com/ava12/ucum/quantity"
)

// Atom statuses listed in mapping report.
const (
	statusDirect     = "direct"
	statusMapped     = "mapped"
	statusAmbiguous  = "AMBIGUOUS"
	statusNotDefined = "NOT DEFINED"
)

type reportStats struct {
	atoms, direct, mapped, ambiguous, undefined, needMapping int
}

func (s reportStats) String() string {
	return fmt.Sprintf("%d atoms: %d direct, %d mapped, %d ambiguous, %d not defined; %d need mapping",
		s.atoms, s.direct, s.mapped, s.ambiguous, s.undefined, s.needMapping)
}

type reporter struct {
	registry *quantity.Registry
	lenient  *eval.Evaluator[quantity.Quantity]
	strict   *eval.Evaluator[quantity.Quantity]
	stats    reportStats
}

func newReporter(c *converter.Converter) *reporter {
	return &reporter{
		registry: c.Registry(),
		lenient:  eval.New[quantity.Quantity](c.Registry(), c.Mapping()),
		strict:   eval.New[quantity.Quantity](c.Registry(), c.Mapping(), eval.WithAmbiguityCheck(true)),
	}
}

func (r *reporter) describe(q quantity.Quantity) string {
	if s, ok := r.registry.Spelling(q); ok {
		return s
	}
	return q.String()
}

// atom returns status and resolved identifier or error text.
func (r *reporter) atom(code string) (status, detail string) {
	r.stats.atoms++
	if !quantity.ValidIdentifier(code) {
		r.stats.needMapping++
	}

	q, how, e := r.strict.ResolveAtom("", code)
	var ee *ucum.Error
	if errors.As(e, &ee) && ee.Code == eval.AmbiguousAtomError {
		r.stats.ambiguous++
		q, _, _ = r.lenient.ResolveAtom("", code)
		return statusAmbiguous, r.describe(q)
	}
	if e != nil {
		r.stats.undefined++
		return statusNotDefined, ""
	}

	if how == eval.Direct {
		r.stats.direct++
		return statusDirect, r.describe(q)
	}
	r.stats.mapped++
	return statusMapped, r.describe(q)
}

func (r *reporter) section(w io.Writer, title string, units []catalog.UnitAtomDefinition) {
	fmt.Fprintf(w, "\n# %s\n", title)
	for _, u := range units {
		status, detail := r.atom(u.Code)
		note := ""
		if !quantity.ValidIdentifier(u.Code) {
			note = "invalid identifier"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Code, status, detail, note)
	}
}

func writeReport(w io.Writer, c *converter.Converter) (reportStats, error) {
	r := newReporter(c)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintf(tw, "# UCUM atoms resolved by quantity registry, catalog %q\n", c.Catalog().Version())

	fmt.Fprintln(tw, "\n# prefixes")
	for _, p := range c.Catalog().PrefixDefinitions() {
		status := statusNotDefined
		if _, has := r.registry.PrefixValue(p.Code); has {
			status = statusDirect
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", p.Code, status, p.Name)
	}

	var base, metric, nonMetric []catalog.UnitAtomDefinition
	for _, u := range c.Catalog().Units() {
		switch {
		case u.IsBase:
			base = append(base, u)
		case u.IsMetric:
			metric = append(metric, u)
		default:
			nonMetric = append(nonMetric, u)
		}
	}
	r.section(tw, "base units", base)
	r.section(tw, "metric units", metric)
	r.section(tw, "non-metric units", nonMetric)

	fmt.Fprintf(tw, "\n# %s\n", r.stats)
	return r.stats, tw.Flush()
}

func newReportCmd(a *app) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "mapping-report",
		Short: "Lists catalog atoms and how the quantity registry resolves them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, e := a.converter()
			if e != nil {
				return e
			}
			return output(cmd, outFile, func(w io.Writer) error {
				_, e := writeReport(w, c)
				return e
			})
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file name, default is stdout")
	return cmd
}
