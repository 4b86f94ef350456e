package langdef

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/ucum/catalog"
	"github.com/ava12/ucum/grammar"
	"github.com/ava12/ucum/internal/test"
)

type fakeCatalog struct {
	prefixes, base, metric, nonMetric []string
}

func (c fakeCatalog) Prefixes() []string       { return c.prefixes }
func (c fakeCatalog) BaseUnits() []string      { return c.base }
func (c fakeCatalog) MetricUnits() []string    { return c.metric }
func (c fakeCatalog) NonMetricUnits() []string { return c.nonMetric }

func defaultGrammar(t *testing.T) *grammar.Grammar {
	c, e := catalog.Default()
	require.NoError(t, e)
	g, e := Build(c)
	require.NoError(t, e)
	return g
}

func TestBuildDefault(t *testing.T) {
	g := defaultGrammar(t)
	require.Len(t, g.Terms, grammar.TermCount)

	short := g.Terms[grammar.ShortPrefix]
	long := g.Terms[grammar.LongPrefix]
	assert.Equal(t, "SHORT_PREFIX", short.Name)
	assert.Len(t, short.Literals, 19)
	assert.Equal(t, []string{"Gi", "Ki", "Mi", "Ti", "da"}, long.Literals)
	assert.NotZero(t, short.Flags&grammar.PrefixTerm)
	assert.Less(t, long.Priority, g.Terms[grammar.Metric].Priority)
	assert.Less(t, g.Terms[grammar.Metric].Priority, short.Priority)

	metric := g.Terms[grammar.Metric].Literals
	nonMetric := g.Terms[grammar.NonMetric].Literals
	assert.True(t, sort.StringsAreSorted(metric))
	assert.True(t, sort.StringsAreSorted(nonMetric))
	assert.Len(t, metric, 7+len(mustDefault(t).MetricUnits()))
	assert.Len(t, nonMetric, len(mustDefault(t).NonMetricUnits()))
	assert.Contains(t, metric, "g")
	assert.Contains(t, metric, "m[H2O]")
	assert.Contains(t, nonMetric, "10*")
	assert.Contains(t, nonMetric, "[in_i'H2O]")

	assert.Equal(t, "main_term", g.Rules[0].Name)
	_, has := g.Rule("simple_unit")
	assert.True(t, has)
	_, has = g.Rule("unit")
	assert.False(t, has)
	assert.Equal(t, "EXPONENT", g.TermName(grammar.Exponent))
	assert.Equal(t, "", g.TermName(grammar.TermCount))
}

func mustDefault(t *testing.T) *catalog.Catalog {
	c, e := catalog.Default()
	require.NoError(t, e)
	return c
}

func TestBuildDeterministic(t *testing.T) {
	c := fakeCatalog{
		prefixes:  []string{"k", "da", "m"},
		base:      []string{"m", "g"},
		metric:    []string{"l", "ar"},
		nonMetric: []string{"[in_i]", "h", "10*"},
	}
	reversed := fakeCatalog{
		prefixes:  []string{"m", "da", "k"},
		base:      []string{"g", "m"},
		metric:    []string{"ar", "l"},
		nonMetric: []string{"10*", "h", "[in_i]"},
	}

	g1, e := Build(c)
	require.NoError(t, e)
	g2, e := Build(reversed)
	require.NoError(t, e)
	if diff := cmp.Diff(g1, g2); diff != "" {
		t.Fatalf("grammars differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, []string{"ar", "g", "l", "m"}, g1.Terms[grammar.Metric].Literals)
	assert.Equal(t, Format(g1, 40), Format(g2, 40))
}

func TestBuildErrors(t *testing.T) {
	samples := []struct {
		catalog fakeCatalog
		code    int
	}{
		{fakeCatalog{prefixes: []string{"k"}}, EmptyCatalogError},
		{fakeCatalog{}, EmptyCatalogError},
		{fakeCatalog{base: []string{"m"}, metric: []string{"m"}}, DuplicateCodeError},
		{fakeCatalog{prefixes: []string{"k", "k"}, base: []string{"m"}}, DuplicateCodeError},
		{fakeCatalog{base: []string{"m"}, nonMetric: []string{"m"}}, DuplicateCodeError},
		{fakeCatalog{base: []string{"m"}, nonMetric: []string{"a b"}}, BadCodeError},
		{fakeCatalog{base: []string{"m{x}"}}, BadCodeError},
		{fakeCatalog{base: []string{"10"}}, BadCodeError},
		{fakeCatalog{base: []string{""}}, BadCodeError},
	}

	for _, s := range samples {
		_, e := Build(s.catalog)
		test.ExpectErrorCode(t, s.code, e)
	}
}

func TestFormat(t *testing.T) {
	g := defaultGrammar(t)
	text := Format(g, 80)

	assert.True(t, strings.HasPrefix(text, "// UCUM grammar"))
	assert.Contains(t, text, "main_term: DIVIDE term\n    | term\n")
	assert.Contains(t, text, "\nLONG_PREFIX: \"Gi\" | \"Ki\" | \"Mi\" | \"Ti\" | \"da\"\n")
	assert.Contains(t, text, "\nEXPONENT: /[+-]?[1-9][0-9]*/\n")
	assert.Contains(t, text, `"[in_i'H2O]"`)

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, continuation) && !strings.Contains(line[len(continuation):], " | ") {
			continue
		}
		assert.LessOrEqual(t, len(line), 80, line)
	}

	unwrapped := Format(g, 0)
	metricLine := ""
	for _, line := range strings.Split(unwrapped, "\n") {
		if strings.HasPrefix(line, "METRIC:") {
			metricLine = line
		}
	}
	assert.Equal(t, len(g.Terms[grammar.Metric].Literals)-1, strings.Count(metricLine, " | "))

	sb := &strings.Builder{}
	require.NoError(t, Write(sb, g, 80))
	assert.Equal(t, text, sb.String())
}

func TestJSON(t *testing.T) {
	g := defaultGrammar(t)
	data, e := JSON(g)
	require.NoError(t, e)

	var restored grammar.Grammar
	require.NoError(t, json.Unmarshal(data, &restored))
	if diff := cmp.Diff(g, &restored); diff != "" {
		t.Fatalf("restored grammar differs:\n%s", diff)
	}
}
