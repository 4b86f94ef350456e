package quantity

import (
	"bytes"
	_ "embed"
	"io"
	"math/big"
	"os"
	"regexp"
	"sort"
	"sync"

	"github.com/ava12/ucum"
	"github.com/ava12/ucum/internal/filefmt"
)

// Error codes used by registry:
const (
	// UnknownIdentifierError indicates a syntactically valid identifier not defined in registry.
	UnknownIdentifierError = ucum.RegistryErrors + iota

	// InvalidIdentifierError indicates a string that cannot be a registry identifier.
	InvalidIdentifierError

	// DuplicateDefinitionError indicates a unit or prefix name, symbol, or alias defined twice.
	DuplicateDefinitionError

	// BadDefinitionError indicates malformed definition data.
	BadDefinitionError
)

// UnitDefinition describes a named unit.
// A unit with non-empty Scalar is a dimensionless number and cannot take a prefix.
// UCUM holds the UCUM atom code the unit was defined for, if any.
type UnitDefinition struct {
	Name    string   `yaml:"name" toml:"name"`
	Symbol  string   `yaml:"symbol,omitempty" toml:"symbol,omitempty"`
	Aliases []string `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Scalar  string   `yaml:"scalar,omitempty" toml:"scalar,omitempty"`
	UCUM    string   `yaml:"ucum,omitempty" toml:"ucum,omitempty"`
}

// PrefixDefinition describes a unit prefix, Value is a decimal or a fraction.
type PrefixDefinition struct {
	Name    string   `yaml:"name" toml:"name"`
	Symbol  string   `yaml:"symbol" toml:"symbol"`
	Aliases []string `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Value   string   `yaml:"value" toml:"value"`
}

// Definitions is the content of a registry definitions file.
type Definitions struct {
	Prefixes []PrefixDefinition `yaml:"prefixes" toml:"prefixes"`
	Units    []UnitDefinition   `yaml:"units" toml:"units"`
}

//go:embed definitions.yaml
var definitions []byte

var (
	identifierRe      = regexp.MustCompile(`^(?:[A-Za-z_%][A-Za-z0-9_%]*|\[[A-Za-z0-9_]+\])$`)
	positiveIntegerRe = regexp.MustCompile(`^[1-9][0-9]*$`)
)

// ValidIdentifier tells whether s may be a unit or prefix name, symbol, or alias.
func ValidIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

type prefix struct {
	def   PrefixDefinition
	value *big.Rat
}

type unit struct {
	def    UnitDefinition
	scalar *big.Rat
}

// Registry resolves identifiers to quantities. Registry is safe for concurrent use,
// definitions may be added at any time.
type Registry struct {
	mu       sync.RWMutex
	prefixes map[string]*prefix
	units    map[string]*unit
	defs     []*unit
}

// Empty creates registry with no definitions.
func Empty() *Registry {
	return &Registry{
		prefixes: make(map[string]*prefix),
		units:    make(map[string]*unit),
	}
}

// New creates registry populated with embedded definitions.
// Each call returns an independent registry.
func New() *Registry {
	r := Empty()
	if e := r.Load(bytes.NewReader(definitions), filefmt.YAML); e != nil {
		panic(e)
	}
	return r
}

// Load adds definitions from YAML or TOML data, prefixes first.
// Definitions preceding a malformed or duplicate one stay added.
func (r *Registry) Load(in io.Reader, f filefmt.Format) error {
	var d Definitions
	if e := filefmt.Decode(in, f, &d); e != nil {
		return ucum.FormatError(BadDefinitionError, "cannot decode %s definitions: %s", f, e)
	}

	for _, p := range d.Prefixes {
		if e := r.DefinePrefix(p); e != nil {
			return e
		}
	}
	for _, u := range d.Units {
		if e := r.Define(u); e != nil {
			return e
		}
	}
	return nil
}

// LoadFile adds definitions from file, format is defined by file name extension.
func (r *Registry) LoadFile(path string) error {
	f, e := filefmt.Of(path)
	if e != nil {
		return ucum.FormatError(BadDefinitionError, "registry: %s", e)
	}

	file, e := os.Open(path)
	if e != nil {
		return e
	}
	defer file.Close()

	return r.Load(file, f)
}

func spellings(name, symbol string, aliases []string) []string {
	result := []string{name}
	if symbol != "" {
		result = append(result, symbol)
	}
	return append(result, aliases...)
}

func checkSpellings(keys []string, defined func(string) bool) error {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !ValidIdentifier(k) {
			return ucum.FormatError(InvalidIdentifierError, "invalid identifier %q", k)
		}
		if seen[k] || defined(k) {
			return ucum.FormatError(DuplicateDefinitionError, "%q is already defined", k)
		}
		seen[k] = true
	}
	return nil
}

// DefinePrefix adds prefix definition.
func (r *Registry) DefinePrefix(d PrefixDefinition) error {
	value, ok := new(big.Rat).SetString(d.Value)
	if !ok || value.Sign() <= 0 {
		return ucum.FormatError(BadDefinitionError, "bad value %q of prefix %q", d.Value, d.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := spellings(d.Name, d.Symbol, d.Aliases)
	e := checkSpellings(keys, func(k string) bool {
		return r.prefixes[k] != nil
	})
	if e != nil {
		return e
	}

	p := &prefix{def: d, value: value}
	for _, k := range keys {
		r.prefixes[k] = p
	}
	return nil
}

// Define adds unit definition.
func (r *Registry) Define(d UnitDefinition) error {
	var scalar *big.Rat
	if d.Scalar != "" {
		var ok bool
		scalar, ok = new(big.Rat).SetString(d.Scalar)
		if !ok {
			return ucum.FormatError(BadDefinitionError, "bad scalar %q of unit %q", d.Scalar, d.Name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := spellings(d.Name, d.Symbol, d.Aliases)
	e := checkSpellings(keys, func(k string) bool {
		return r.units[k] != nil
	})
	if e != nil {
		return e
	}

	u := &unit{def: d, scalar: scalar}
	for _, k := range keys {
		r.units[k] = u
	}
	r.defs = append(r.defs, u)
	return nil
}

func (u *unit) quantity() Quantity {
	if u.scalar != nil {
		return Scalar(u.scalar)
	}
	return Unit(u.def.Name)
}

// Resolve returns quantity for identifier:
// a positive integer is a dimensionless number;
// a unit name, symbol, or alias is the unit itself;
// a prefix followed by a unit is a unit named by prefix and unit names, longest prefix tried first.
// Returns InvalidIdentifierError or UnknownIdentifierError on failure.
func (r *Registry) Resolve(id string) (Quantity, error) {
	if positiveIntegerRe.MatchString(id) {
		if n, ok := new(big.Rat).SetString(id); ok {
			return Scalar(n), nil
		}
	}
	if !ValidIdentifier(id) {
		return Quantity{}, ucum.FormatError(InvalidIdentifierError, "invalid identifier %q", id)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if u := r.units[id]; u != nil {
		return u.quantity(), nil
	}

	for l := len(id) - 1; l > 0; l-- {
		p := r.prefixes[id[:l]]
		if p == nil {
			continue
		}
		if u := r.units[id[l:]]; u != nil && u.scalar == nil {
			return Unit(p.def.Name + u.def.Name), nil
		}
	}

	return Quantity{}, ucum.FormatError(UnknownIdentifierError, "unknown identifier %q", id)
}

// Spelling returns canonical name of a quantity consisting of a single unit with magnitude 1.
func (r *Registry) Spelling(q Quantity) (string, bool) {
	if len(q.units) != 1 || q.mag().Cmp(one) != 0 {
		return "", false
	}
	for name, exp := range q.units {
		if exp == 1 {
			return name, true
		}
	}
	return "", false
}

// Units returns all unit definitions in definition order.
func (r *Registry) Units() []UnitDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]UnitDefinition, len(r.defs))
	for i, u := range r.defs {
		result[i] = u.def
	}
	return result
}

// Prefixes returns all prefix definitions sorted by name.
func (r *Registry) Prefixes() []PrefixDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []PrefixDefinition
	for k, p := range r.prefixes {
		if k == p.def.Name {
			result = append(result, p.def)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// PrefixValue returns multiplier of a prefix given by name, symbol, or alias.
func (r *Registry) PrefixValue(key string) (*big.Rat, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.prefixes[key]
	if p == nil {
		return nil, false
	}
	return new(big.Rat).Set(p.value), true
}

func (r *Registry) Identity() Quantity {
	return Quantity{}
}

func (r *Registry) Multiply(a, b Quantity) Quantity {
	return a.Mul(b)
}

func (r *Registry) Divide(a, b Quantity) Quantity {
	return a.Div(b)
}

func (r *Registry) Power(q Quantity, exponent int) Quantity {
	return q.Pow(exponent)
}
