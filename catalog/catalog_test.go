package catalog

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/ucum/internal/test"
)

func TestDefaultCatalog(t *testing.T) {
	c, e := Default()
	require.NoError(t, e)
	c2, _ := Default()
	require.Same(t, c, c2)

	assert.Equal(t, "2.1", c.Version())
	assert.False(t, c.CaseInsensitive())
	assert.Len(t, c.Prefixes(), 24)
	assert.Equal(t, []string{"m", "s", "g", "rad", "K", "C", "cd"}, c.BaseUnits())
	assert.Len(t, c.Units(), 7+303)
	assert.Equal(t, 303, len(c.MetricUnits())+len(c.NonMetricUnits()))

	g, has := c.DefinitionOf("g")
	require.True(t, has)
	assert.True(t, g.IsBase)
	assert.True(t, g.IsMetric)
	assert.Nil(t, g.Value)

	a, has := c.DefinitionOf("a")
	require.True(t, has)
	assert.False(t, a.IsMetric)
	assert.Equal(t, "a_j", a.Unit)

	ten, has := c.DefinitionOf("10*")
	require.True(t, has)
	assert.Equal(t, 0, ten.Value.Cmp(big.NewRat(10, 1)))

	cel, has := c.DefinitionOf("Cel")
	require.True(t, has)
	assert.True(t, cel.IsSpecial)
	assert.Nil(t, cel.Value)

	iu, has := c.DefinitionOf("[IU]")
	require.True(t, has)
	assert.True(t, iu.IsArbitrary)
	assert.True(t, iu.IsMetric)

	da, has := c.PrefixOf("da")
	require.True(t, has)
	assert.False(t, da.IsShort())
	assert.Equal(t, 0, da.Value.Cmp(big.NewRat(10, 1)))

	k, _ := c.PrefixOf("k")
	assert.True(t, k.IsShort())

	_, has = c.DefinitionOf("[XYZ]")
	assert.False(t, has)
}

func TestMetricPartition(t *testing.T) {
	c, e := Default()
	require.NoError(t, e)

	for _, code := range c.MetricUnits() {
		d, _ := c.DefinitionOf(code)
		assert.True(t, d.IsMetric, code)
		assert.False(t, d.IsBase, code)
	}
	for _, code := range c.NonMetricUnits() {
		d, _ := c.DefinitionOf(code)
		assert.False(t, d.IsMetric, code)
	}
	assert.Contains(t, c.MetricUnits(), "m[H2O]")
	assert.Contains(t, c.NonMetricUnits(), "[in_i'H2O]")
	assert.Contains(t, c.NonMetricUnits(), "10*")
}

func TestCaseInsensitive(t *testing.T) {
	cs, e := Default()
	require.NoError(t, e)
	ci, e := Embedded(WithCaseInsensitive(true))
	require.NoError(t, e)
	assert.True(t, ci.CaseInsensitive())

	// "L" has no upper case spelling, "[iU]" and "[IU]" share one.
	assert.Len(t, ci.Units(), len(cs.Units())-2)

	_, has := ci.DefinitionOf("L")
	assert.False(t, has)
	d, has := ci.DefinitionOf("[IU]")
	require.True(t, has)
	assert.Equal(t, "[iU]", d.Code)

	p, has := ci.PrefixOf("MA")
	require.True(t, has)
	assert.Equal(t, "mega", p.Name)
	assert.Contains(t, ci.BaseUnits(), "CD")

	for _, u := range ci.Units() {
		if u.Code != "[degR]" && u.Code != "[degRe]" {
			assert.Equal(t, strings.ToUpper(u.CodeCI), u.CodeCI, u.Code)
		}
	}
}

func TestLoadXML(t *testing.T) {
	c, e := LoadFile("testdata/essence-sample.xml")
	require.NoError(t, e)
	assert.Equal(t, "2.1", c.Version())
	assert.Equal(t, []string{"k", "da"}, c.Prefixes())
	assert.Equal(t, []string{"m", "K"}, c.BaseUnits())
	assert.Equal(t, []string{"ar", "Cel", "[iU]", "[IU]"}, c.MetricUnits())
	assert.Equal(t, []string{"[in_i]"}, c.NonMetricUnits())

	cel, _ := c.DefinitionOf("Cel")
	assert.True(t, cel.IsSpecial)
	assert.Equal(t, "K", cel.Unit)
	assert.Equal(t, "°C", cel.PrintSymbol)

	in, _ := c.DefinitionOf("[in_i]")
	assert.Equal(t, 0, in.Value.Cmp(big.NewRat(254, 100)))

	ci, e := LoadFile("testdata/essence-sample.xml", WithCaseInsensitive(true))
	require.NoError(t, e)
	assert.Equal(t, []string{"AR", "CEL", "[IU]"}, ci.MetricUnits())
}

func TestLoadTOML(t *testing.T) {
	c, e := LoadFile("testdata/sample.toml")
	require.NoError(t, e)
	assert.Equal(t, "test", c.Version())
	assert.Equal(t, []string{"k", "m"}, c.Prefixes())
	assert.Equal(t, []string{"g"}, c.BaseUnits())
	assert.Equal(t, []string{"L"}, c.MetricUnits())
	assert.Equal(t, []string{"[lb_av]"}, c.NonMetricUnits())

	ci, e := LoadFile("testdata/sample.toml", WithCaseInsensitive(true))
	require.NoError(t, e)
	assert.Empty(t, ci.MetricUnits())
}

func TestBadData(t *testing.T) {
	_, e := Load(strings.NewReader("units: [{code: x, value: abc}]"), YAML)
	test.ExpectErrorCode(t, BadCatalogError, e)

	_, e = Load(strings.NewReader("units: [{name: nameless}]"), YAML)
	test.ExpectErrorCode(t, BadCatalogError, e)

	_, e = Load(strings.NewReader("units: [{code: x}, {code: x}]"), YAML)
	test.ExpectErrorCode(t, DuplicateAtomError, e)

	_, e = Load(strings.NewReader("prefixes: [{code: k}, {code: k}]"), YAML)
	test.ExpectErrorCode(t, DuplicateAtomError, e)

	_, e = Load(strings.NewReader("units: [{code: a, codeCI: A}, {code: A, codeCI: A, unit: m}]"), YAML, WithCaseInsensitive(true))
	test.ExpectErrorCode(t, DuplicateAtomError, e)

	_, e = Load(strings.NewReader("<root><unit"), XML)
	test.ExpectErrorCode(t, BadCatalogError, e)

	_, e = Load(strings.NewReader(""), Format("json"))
	test.ExpectErrorCode(t, BadCatalogError, e)

	_, e = LoadFile("testdata/catalog.json")
	test.ExpectErrorCode(t, BadCatalogError, e)
}
