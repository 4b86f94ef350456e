// Package converter is the top-level entry point: it parses UCUM codes and evaluates them
// with the reference quantity registry.
//
// Catalogs and grammars are built once per configuration and shared by all converters.
package converter

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ava12/ucum/catalog"
	"github.com/ava12/ucum/config"
	"github.com/ava12/ucum/eval"
	"github.com/ava12/ucum/grammar"
	"github.com/ava12/ucum/langdef"
	"github.com/ava12/ucum/mapping"
	"github.com/ava12/ucum/parser"
	"github.com/ava12/ucum/quantity"
	"github.com/ava12/ucum/tree"
)

// bundle is the immutable per-configuration part of a converter.
type bundle struct {
	catalog *catalog.Catalog
	parser  *parser.Parser
}

var (
	bundleMu    sync.Mutex
	bundles     = make(map[string]*bundle)
	bundleGroup singleflight.Group
)

func cachedBundle(key string) *bundle {
	bundleMu.Lock()
	defer bundleMu.Unlock()
	return bundles[key]
}

// loadBundle returns cached bundle or builds it, concurrent callers with the same key share a single build.
func loadBundle(c config.Config, log *zap.Logger) (*bundle, error) {
	key := c.Key()
	if b := cachedBundle(key); b != nil {
		return b, nil
	}

	v, e, _ := bundleGroup.Do(key, func() (any, error) {
		if b := cachedBundle(key); b != nil {
			return b, nil
		}

		cat, e := loadCatalog(c)
		if e != nil {
			return nil, e
		}
		b, e := newBundle(cat, log)
		if e != nil {
			return nil, e
		}

		bundleMu.Lock()
		bundles[key] = b
		bundleMu.Unlock()
		return b, nil
	})
	if e != nil {
		return nil, e
	}
	return v.(*bundle), nil
}

func loadCatalog(c config.Config) (*catalog.Catalog, error) {
	ci := catalog.WithCaseInsensitive(c.CaseInsensitive)
	switch {
	case c.CatalogFile != "":
		return catalog.LoadFile(c.CatalogFile, ci)
	case c.CaseInsensitive:
		return catalog.Embedded(ci)
	default:
		return catalog.Default()
	}
}

func newBundle(cat *catalog.Catalog, log *zap.Logger) (*bundle, error) {
	g, e := langdef.Build(cat)
	if e != nil {
		return nil, e
	}

	log.Debug("grammar built",
		zap.String("catalog", cat.Version()),
		zap.Bool("case_insensitive", cat.CaseInsensitive()),
		zap.Int("short_prefixes", len(g.Terms[grammar.ShortPrefix].Literals)),
		zap.Int("long_prefixes", len(g.Terms[grammar.LongPrefix].Literals)),
		zap.Int("metric", len(g.Terms[grammar.Metric].Literals)),
		zap.Int("non_metric", len(g.Terms[grammar.NonMetric].Literals)))
	return &bundle{cat, parser.New(g)}, nil
}

// caseTranslator converts upper case catalog codes into case sensitive ones.
type caseTranslator struct {
	catalog *catalog.Catalog
}

func (t caseTranslator) PrefixCode(code string) (string, bool) {
	p, has := t.catalog.PrefixOf(code)
	return p.Code, has
}

func (t caseTranslator) UnitCode(code string) (string, bool) {
	u, has := t.catalog.DefinitionOf(code)
	return u.Code, has
}

type options struct {
	config   config.Config
	catalog  *catalog.Catalog
	registry *quantity.Registry
	mapping  *mapping.Table
	log      *zap.Logger
}

// Option configures Converter.
type Option func(*options)

// WithConfig sets configuration, config.Default() is used otherwise.
func WithConfig(c config.Config) Option {
	return func(o *options) {
		o.config = c
	}
}

// WithCatalog sets catalog instead of the configured one, grammar built for it is not cached.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithRegistry sets quantity registry, configured registry file is not loaded then.
func WithRegistry(r *quantity.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithMapping sets mapping table, configured mapping file is not loaded then.
func WithMapping(m mapping.Table) Option {
	return func(o *options) {
		o.mapping = &m
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Converter is safe for concurrent use.
type Converter struct {
	config    config.Config
	catalog   *catalog.Catalog
	parser    *parser.Parser
	registry  *quantity.Registry
	mapping   mapping.Table
	evaluator *eval.Evaluator[quantity.Quantity]
	log       *zap.Logger
}

// New creates converter. Configuration errors returned here are fatal for the converter:
// no converter is created from a catalog that cannot produce a grammar.
func New(opts ...Option) (*Converter, error) {
	o := options{config: config.Default(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		b *bundle
		e error
	)
	if o.catalog != nil {
		b, e = newBundle(o.catalog, o.log)
	} else {
		if e = o.config.Validate(); e != nil {
			return nil, e
		}
		b, e = loadBundle(o.config, o.log)
	}
	if e != nil {
		return nil, e
	}

	c := &Converter{
		config:   o.config,
		catalog:  b.catalog,
		parser:   b.parser,
		registry: o.registry,
		log:      o.log,
	}

	if c.registry == nil {
		c.registry = quantity.New()
		if o.config.RegistryFile != "" {
			if e = c.registry.LoadFile(o.config.RegistryFile); e != nil {
				return nil, e
			}
		}
	}

	if o.mapping != nil {
		c.mapping = *o.mapping
	} else {
		c.mapping = mapping.Default()
		if o.config.MappingFile != "" {
			if c.mapping, e = mapping.LoadFile(c.mapping, o.config.MappingFile); e != nil {
				return nil, e
			}
		}
	}

	evalOpts := []eval.Option{
		eval.WithLogger(o.log),
		eval.WithAmbiguityCheck(o.config.AmbiguityCheck),
	}
	if c.catalog.CaseInsensitive() {
		evalOpts = append(evalOpts, eval.WithTranslator(caseTranslator{c.catalog}))
	}
	c.evaluator = eval.New[quantity.Quantity](c.registry, c.mapping, evalOpts...)
	return c, nil
}

func (c *Converter) Config() config.Config {
	return c.config
}

func (c *Converter) Catalog() *catalog.Catalog {
	return c.catalog
}

func (c *Converter) Grammar() *grammar.Grammar {
	return c.parser.Grammar()
}

func (c *Converter) Registry() *quantity.Registry {
	return c.registry
}

func (c *Converter) Mapping() mapping.Table {
	return c.mapping
}

// Parse returns parse tree or lexical or syntax error.
func (c *Converter) Parse(code string) (*tree.MainTerm, error) {
	return c.parser.Parse(code)
}

// Evaluate returns quantity for parse tree or semantic error.
func (c *Converter) Evaluate(n tree.Node) (quantity.Quantity, error) {
	return c.evaluator.Evaluate(n)
}

// ParseAndEvaluate returns quantity for UCUM code.
// Errors are *ucum.Error of lexical, syntax, or semantic class.
func (c *Converter) ParseAndEvaluate(code string) (quantity.Quantity, error) {
	root, e := c.Parse(code)
	if e == nil {
		var q quantity.Quantity
		q, e = c.Evaluate(root)
		if e == nil {
			return q, nil
		}
	}

	c.log.Debug("unit code rejected", zap.String("code", code), zap.Error(e))
	return quantity.Quantity{}, e
}

// Render returns UCUM code as a fully parenthesized registry expression.
func (c *Converter) Render(code string) (string, error) {
	root, e := c.Parse(code)
	if e != nil {
		return "", e
	}
	return eval.Render(root, c.mapping), nil
}

var (
	defaultOnce      sync.Once
	defaultConverter *Converter
	defaultError     error
)

// Default returns shared converter using embedded data and configuration from environment.
func Default() (*Converter, error) {
	defaultOnce.Do(func() {
		var c config.Config
		c, defaultError = config.Default().WithEnv(nil)
		if defaultError == nil {
			defaultConverter, defaultError = New(WithConfig(c))
		}
	})
	return defaultConverter, defaultError
}

// ParseAndEvaluate parses and evaluates code using the default converter.
func ParseAndEvaluate(code string) (quantity.Quantity, error) {
	c, e := Default()
	if e != nil {
		return quantity.Quantity{}, e
	}
	return c.ParseAndEvaluate(code)
}
