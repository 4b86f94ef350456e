// Package eval evaluates UCUM parse trees into quantities of an arbitrary quantity registry.
package eval

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/ava12/ucum"
	"github.com/ava12/ucum/tree"
)

// Error codes used by evaluator:
const (
	// UnknownUnitAtomError indicates a unit atom or factor the registry cannot resolve.
	UnknownUnitAtomError = ucum.SemanticErrors + iota

	// AmbiguousAtomError indicates an atom whose mapped and direct spellings denote different units,
	// reported only if ambiguity check is enabled.
	AmbiguousAtomError
)

// Registry is the quantity registry contract consumed by Evaluator.
// quantity.Registry implements this interface for quantity.Quantity.
type Registry[Q any] interface {
	// Resolve returns quantity for identifier or an error if identifier is invalid or unknown.
	Resolve(id string) (Q, error)
	Multiply(a, b Q) Q
	Divide(a, b Q) Q
	Power(q Q, exponent int) Q

	// Identity returns dimensionless 1.
	Identity() Q

	// Spelling returns canonical identifier of a single unit quantity.
	Spelling(q Q) (string, bool)
}

// Mapping translates UCUM atom codes to registry identifiers, mapping.Table implements it.
type Mapping interface {
	Get(code string) (string, bool)
}

// Translator converts codes of another case mode into case sensitive UCUM codes.
type Translator interface {
	PrefixCode(code string) (string, bool)
	UnitCode(code string) (string, bool)
}

// Resolution tells how a unit atom was resolved.
type Resolution int

const (
	// Direct resolution uses the spelling as is.
	Direct Resolution = iota

	// Mapped resolution uses the mapping table.
	Mapped

	// TwoStep resolution prefixes canonical spelling of the atom.
	TwoStep
)

func (r Resolution) String() string {
	switch r {
	case Direct:
		return "direct"
	case Mapped:
		return "mapped"
	case TwoStep:
		return "two-step"
	}
	return "resolution(" + strconv.Itoa(int(r)) + ")"
}

type emptyMapping struct{}

func (emptyMapping) Get(string) (string, bool) {
	return "", false
}

type options struct {
	log        *zap.Logger
	translator Translator
	strict     bool
}

// Option configures Evaluator.
type Option func(*options)

// WithLogger sets logger for resolution fallbacks, reported at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithTranslator makes evaluator accept case insensitive codes.
func WithTranslator(t Translator) Option {
	return func(o *options) {
		o.translator = t
	}
}

// WithAmbiguityCheck makes evaluator fail with AmbiguousAtomError if an atom resolves
// to different units through the mapping table and directly.
func WithAmbiguityCheck(check bool) Option {
	return func(o *options) {
		o.strict = check
	}
}

// Evaluator holds no mutable state and is safe for concurrent use if its registry is.
type Evaluator[Q any] struct {
	registry Registry[Q]
	mapping  Mapping
	options
}

// New creates evaluator, nil mapping means empty one.
func New[Q any](r Registry[Q], m Mapping, opts ...Option) *Evaluator[Q] {
	if m == nil {
		m = emptyMapping{}
	}
	ev := &Evaluator[Q]{registry: r, mapping: m, options: options{log: zap.NewNop()}}
	for _, opt := range opts {
		opt(&ev.options)
	}
	return ev
}

func (ev *Evaluator[Q]) Registry() Registry[Q] {
	return ev.registry
}

// Evaluate returns quantity for parse tree node.
// Returns *ucum.Error with UnknownUnitAtomError or AmbiguousAtomError code on failure,
// error offset points to the offending atom.
func (ev *Evaluator[Q]) Evaluate(n tree.Node) (Q, error) {
	var zero Q
	switch n := n.(type) {
	case *tree.MainTerm:
		v, e := ev.Evaluate(n.Term)
		if e != nil || !n.LeadingDivide {
			return v, e
		}
		if c, is := n.Term.(*tree.Component); is && c.IsAnnotationOnly() {
			return ev.registry.Identity(), nil
		}
		return ev.registry.Divide(ev.registry.Identity(), v), nil

	case *tree.Term:
		return ev.term(n)

	case *tree.Component:
		return ev.Evaluate(n.Annotatable)

	case *tree.Annotatable:
		v, e := ev.Evaluate(n.Base)
		if e != nil || n.Exponent == nil {
			return v, e
		}
		return ev.registry.Power(v, n.Exponent.Value), nil

	case *tree.Group:
		return ev.Evaluate(n.Inner)

	case *tree.SimpleUnit:
		v, _, e := ev.resolve(n.Prefix, n.Atom, n.Start)
		return v, e

	case *tree.Factor:
		v, e := ev.registry.Resolve(strconv.Itoa(n.Value))
		if e != nil {
			return zero, unknownAtomError(n.String(), n.Start, e)
		}
		return v, nil

	case *tree.Annotation:
		return ev.registry.Identity(), nil
	}

	return zero, ucum.FormatError(UnknownUnitAtomError, "unexpected node %T", n)
}

// term folds left associative chain without recursing into left operands.
func (ev *Evaluator[Q]) term(t *tree.Term) (Q, error) {
	var zero Q
	var chain []*tree.Term
	var left tree.Node = t
	for {
		tt, is := left.(*tree.Term)
		if !is {
			break
		}
		chain = append(chain, tt)
		left = tt.Left
	}

	v, e := ev.Evaluate(left)
	if e != nil {
		return zero, e
	}
	for i := len(chain) - 1; i >= 0; i-- {
		right, e := ev.Evaluate(chain[i].Right)
		if e != nil {
			return zero, e
		}
		if chain[i].Op == tree.Divide {
			v = ev.registry.Divide(v, right)
		} else {
			v = ev.registry.Multiply(v, right)
		}
	}
	return v, nil
}

// ResolveAtom resolves unit atom with optional prefix, errors carry no offset.
//
// An atom without prefix is resolved through the mapping table first, then directly.
// A prefixed atom is resolved by trying in order: prefix and atom concatenated as is;
// prefix and canonical spelling of the atom resolved alone; prefix and mapped atom.
func (ev *Evaluator[Q]) ResolveAtom(prefix, atom string) (Q, Resolution, error) {
	return ev.resolve(prefix, atom, ucum.NoOffset)
}

func (ev *Evaluator[Q]) translate(prefix, atom string) (string, string) {
	if ev.translator == nil {
		return prefix, atom
	}
	if prefix != "" {
		if p, has := ev.translator.PrefixCode(prefix); has {
			prefix = p
		}
	}
	if a, has := ev.translator.UnitCode(atom); has {
		atom = a
	}
	return prefix, atom
}

type candidate[Q any] struct {
	value Q
	how   Resolution
	id    string
}

func (ev *Evaluator[Q]) try(id string, how Resolution) (candidate[Q], bool) {
	v, e := ev.registry.Resolve(id)
	return candidate[Q]{v, how, id}, e == nil
}

func (ev *Evaluator[Q]) candidates(prefix, atom string) (first candidate[Q], alt *candidate[Q], lastErr error) {
	mapped, hasMapping := ev.mapping.Get(atom)

	if prefix == "" {
		var found []candidate[Q]
		if hasMapping {
			if c, ok := ev.try(mapped, Mapped); ok {
				found = append(found, c)
			}
		}
		if len(found) == 0 || ev.strict {
			v, e := ev.registry.Resolve(atom)
			if e == nil {
				found = append(found, candidate[Q]{v, Direct, atom})
			} else {
				lastErr = e
			}
		}
		if len(found) == 0 {
			return first, nil, lastErr
		}
		if len(found) > 1 {
			alt = &found[1]
		}
		return found[0], alt, nil
	}

	v, e := ev.registry.Resolve(prefix + atom)
	if e == nil {
		first = candidate[Q]{v, Direct, prefix + atom}
	} else {
		lastErr = e
		if av, ae := ev.registry.Resolve(atom); ae == nil {
			if s, ok := ev.registry.Spelling(av); ok {
				if c, ok := ev.try(prefix+s, TwoStep); ok {
					first, lastErr = c, nil
				}
			}
		}
	}

	if hasMapping && (lastErr != nil || ev.strict) {
		if c, ok := ev.try(prefix+mapped, Mapped); ok {
			if lastErr != nil {
				return c, nil, nil
			}
			alt = &c
		}
	}
	return first, alt, lastErr
}

func (ev *Evaluator[Q]) resolve(prefix, atom string, offset int) (Q, Resolution, error) {
	var zero Q
	prefix, atom = ev.translate(prefix, atom)
	code := prefix + atom

	c, alt, e := ev.candidates(prefix, atom)
	if e != nil {
		return zero, Direct, unknownAtomError(code, offset, e)
	}

	if alt != nil {
		s1, ok1 := ev.registry.Spelling(c.value)
		s2, ok2 := ev.registry.Spelling(alt.value)
		if ok1 && ok2 && s1 != s2 {
			return zero, c.how, ambiguousAtomError(code, offset, c.id, alt.id)
		}
	}

	if c.how != Direct {
		ev.log.Debug("unit atom resolved by fallback",
			zap.String("atom", code),
			zap.String("identifier", c.id),
			zap.Stringer("resolution", c.how))
	}
	return c.value, c.how, nil
}

func unknownAtomError(code string, offset int, cause error) *ucum.Error {
	e := ucum.NewError(UnknownUnitAtomError, "unknown unit atom \""+code+"\": "+cause.Error(), offset)
	e.Atom = code
	return e
}

func ambiguousAtomError(code string, offset int, id1, id2 string) *ucum.Error {
	e := ucum.NewError(AmbiguousAtomError, "ambiguous unit atom \""+code+"\": "+id1+" or "+id2, offset)
	e.Atom = code
	return e
}
