// Package catalog holds UCUM prefix and unit atom definitions.
package catalog

import (
	"math/big"

	"github.com/ava12/ucum"
)

// Error codes used by catalog:
const (
	// BadCatalogError indicates malformed catalog data: missing code, unparsable value, unknown format.
	BadCatalogError = ucum.ConfigErrors + iota

	// DuplicateAtomError indicates two prefixes or two units sharing the same code in the active case mode.
	DuplicateAtomError
)

// PrefixDefinition describes a single prefix.
type PrefixDefinition struct {
	Code        string
	CodeCI      string
	Name        string
	PrintSymbol string
	Value       *big.Rat
}

// IsShort tells whether the prefix is a single character.
func (p PrefixDefinition) IsShort() bool {
	return len(p.Code) == 1
}

// UnitAtomDefinition describes a single unit atom.
// Value is nil for base and special units.
type UnitAtomDefinition struct {
	Code        string
	CodeCI      string
	IsBase      bool
	IsMetric    bool
	IsSpecial   bool
	IsArbitrary bool
	Class       string
	Name        string
	PrintSymbol string
	Property    string
	Unit        string
	Value       *big.Rat
	Dim         string
}

// Catalog is an immutable set of prefix and unit atom definitions.
// Codes returned by all methods are in the case mode selected at construction:
// case sensitive codes by default, upper case codes if WithCaseInsensitive(true) was used.
// Catalog is safe for concurrent use.
type Catalog struct {
	version         string
	caseInsensitive bool
	prefixes        []PrefixDefinition
	units           []UnitAtomDefinition
	prefixIndex     map[string]int
	unitIndex       map[string]int
}

type options struct {
	caseInsensitive bool
}

// Option configures catalog construction.
type Option func(*options)

// WithCaseInsensitive selects upper case UCUM codes.
// Units lacking a case insensitive code are skipped in this mode.
func WithCaseInsensitive(ci bool) Option {
	return func(o *options) {
		o.caseInsensitive = ci
	}
}

// PrefixRecord is a raw prefix entry as stored in catalog files.
type PrefixRecord struct {
	Code        string `yaml:"code" toml:"code"`
	CodeCI      string `yaml:"codeCI" toml:"codeCI"`
	Name        string `yaml:"name" toml:"name"`
	PrintSymbol string `yaml:"printSymbol" toml:"printSymbol"`
	Value       string `yaml:"value" toml:"value"`
}

// UnitRecord is a raw unit entry as stored in catalog files.
type UnitRecord struct {
	Code        string `yaml:"code" toml:"code"`
	CodeCI      string `yaml:"codeCI" toml:"codeCI"`
	Metric      bool   `yaml:"metric" toml:"metric"`
	Special     bool   `yaml:"special" toml:"special"`
	Arbitrary   bool   `yaml:"arbitrary" toml:"arbitrary"`
	Class       string `yaml:"class" toml:"class"`
	Name        string `yaml:"name" toml:"name"`
	PrintSymbol string `yaml:"printSymbol" toml:"printSymbol"`
	Property    string `yaml:"property" toml:"property"`
	Unit        string `yaml:"unit" toml:"unit"`
	Value       string `yaml:"value" toml:"value"`
	Dim         string `yaml:"dim" toml:"dim"`
}

// Data is the raw catalog content shared by all file formats.
type Data struct {
	Version   string         `yaml:"version" toml:"version"`
	Prefixes  []PrefixRecord `yaml:"prefixes" toml:"prefixes"`
	BaseUnits []UnitRecord   `yaml:"baseUnits" toml:"baseUnits"`
	Units     []UnitRecord   `yaml:"units" toml:"units"`
}

func parseValue(code, value string) (*big.Rat, error) {
	if value == "" {
		return nil, nil
	}
	r, ok := new(big.Rat).SetString(value)
	if !ok {
		return nil, ucum.FormatError(BadCatalogError, "bad value %q for atom %q", value, code)
	}
	return r, nil
}

// New validates raw catalog data and creates Catalog.
func New(d *Data, opts ...Option) (*Catalog, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Catalog{
		version:         d.Version,
		caseInsensitive: o.caseInsensitive,
		prefixIndex:     make(map[string]int, len(d.Prefixes)),
		unitIndex:       make(map[string]int, len(d.BaseUnits)+len(d.Units)),
	}

	for _, pr := range d.Prefixes {
		if pr.Code == "" {
			return nil, ucum.FormatError(BadCatalogError, "prefix %q has no code", pr.Name)
		}
		p := PrefixDefinition{Code: pr.Code, CodeCI: pr.CodeCI, Name: pr.Name, PrintSymbol: pr.PrintSymbol}
		key := p.Code
		if c.caseInsensitive {
			if pr.CodeCI == "" {
				continue
			}
			key = pr.CodeCI
		}
		var e error
		if p.Value, e = parseValue(pr.Code, pr.Value); e != nil {
			return nil, e
		}
		if _, has := c.prefixIndex[key]; has {
			return nil, ucum.FormatError(DuplicateAtomError, "duplicate prefix code %q", key)
		}
		c.prefixIndex[key] = len(c.prefixes)
		c.prefixes = append(c.prefixes, p)
	}

	for _, ur := range d.BaseUnits {
		if e := c.addUnit(ur, true); e != nil {
			return nil, e
		}
	}
	for _, ur := range d.Units {
		if e := c.addUnit(ur, false); e != nil {
			return nil, e
		}
	}

	return c, nil
}

func (c *Catalog) addUnit(ur UnitRecord, isBase bool) error {
	if ur.Code == "" {
		return ucum.FormatError(BadCatalogError, "unit %q has no code", ur.Name)
	}

	u := UnitAtomDefinition{
		Code:        ur.Code,
		CodeCI:      ur.CodeCI,
		IsBase:      isBase,
		IsMetric:    ur.Metric || isBase,
		IsSpecial:   ur.Special,
		IsArbitrary: ur.Arbitrary,
		Class:       ur.Class,
		Name:        ur.Name,
		PrintSymbol: ur.PrintSymbol,
		Property:    ur.Property,
		Unit:        ur.Unit,
		Dim:         ur.Dim,
	}
	if !isBase && !ur.Special {
		var e error
		if u.Value, e = parseValue(ur.Code, ur.Value); e != nil {
			return e
		}
	}

	key := u.Code
	if c.caseInsensitive {
		if u.CodeCI == "" {
			return nil
		}
		key = u.CodeCI
	}

	if i, has := c.unitIndex[key]; has {
		// upper case spellings may fold an alias onto the unit it is defined by
		other := c.units[i]
		if c.caseInsensitive && (u.Unit == other.Code || other.Unit == u.Code) {
			return nil
		}
		return ucum.FormatError(DuplicateAtomError, "duplicate unit code %q", key)
	}

	c.unitIndex[key] = len(c.units)
	c.units = append(c.units, u)
	return nil
}

// Version returns catalog data version or empty string.
func (c *Catalog) Version() string {
	return c.version
}

// CaseInsensitive tells whether the catalog uses upper case codes.
func (c *Catalog) CaseInsensitive() bool {
	return c.caseInsensitive
}

func (c *Catalog) code(u UnitAtomDefinition) string {
	if c.caseInsensitive {
		return u.CodeCI
	}
	return u.Code
}

// Prefixes returns all prefix codes in catalog order.
func (c *Catalog) Prefixes() []string {
	result := make([]string, len(c.prefixes))
	for i, p := range c.prefixes {
		if c.caseInsensitive {
			result[i] = p.CodeCI
		} else {
			result[i] = p.Code
		}
	}
	return result
}

// PrefixDefinitions returns all prefix definitions in catalog order.
func (c *Catalog) PrefixDefinitions() []PrefixDefinition {
	return append([]PrefixDefinition(nil), c.prefixes...)
}

// PrefixOf returns prefix definition by code in the active case mode.
func (c *Catalog) PrefixOf(code string) (PrefixDefinition, bool) {
	i, has := c.prefixIndex[code]
	if !has {
		return PrefixDefinition{}, false
	}
	return c.prefixes[i], true
}

func (c *Catalog) unitCodes(filter func(u UnitAtomDefinition) bool) []string {
	var result []string
	for _, u := range c.units {
		if filter(u) {
			result = append(result, c.code(u))
		}
	}
	return result
}

// BaseUnits returns codes of base units.
func (c *Catalog) BaseUnits() []string {
	return c.unitCodes(func(u UnitAtomDefinition) bool {
		return u.IsBase
	})
}

// MetricUnits returns codes of non-base units accepting prefixes.
func (c *Catalog) MetricUnits() []string {
	return c.unitCodes(func(u UnitAtomDefinition) bool {
		return u.IsMetric && !u.IsBase
	})
}

// NonMetricUnits returns codes of units not accepting prefixes.
func (c *Catalog) NonMetricUnits() []string {
	return c.unitCodes(func(u UnitAtomDefinition) bool {
		return !u.IsMetric
	})
}

// Units returns definitions of all units, base units first.
func (c *Catalog) Units() []UnitAtomDefinition {
	return append([]UnitAtomDefinition(nil), c.units...)
}

// DefinitionOf returns unit definition by code in the active case mode.
func (c *Catalog) DefinitionOf(code string) (UnitAtomDefinition, bool) {
	i, has := c.unitIndex[code]
	if !has {
		return UnitAtomDefinition{}, false
	}
	return c.units[i], true
}
