// Package config holds converter configuration read from YAML or TOML files
// and UCUM_* environment variables.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ava12/ucum"
	"github.com/ava12/ucum/internal/filefmt"
)

// BadConfigError indicates malformed configuration data or environment value.
const BadConfigError = ucum.ConfigErrors + 20

// Environment variables overriding configuration fields.
const (
	EnvCaseInsensitive = "UCUM_CASE_INSENSITIVE"
	EnvCatalog         = "UCUM_CATALOG"
	EnvRegistry        = "UCUM_REGISTRY"
	EnvMapping         = "UCUM_MAPPING"
	EnvLogLevel        = "UCUM_LOG_LEVEL"
	EnvAmbiguityCheck  = "UCUM_AMBIGUITY_CHECK"
)

// Config is a plain value, empty file names select embedded data.
type Config struct {
	// CaseInsensitive selects upper case UCUM codes.
	CaseInsensitive bool `yaml:"case_insensitive" toml:"case_insensitive"`

	// CatalogFile is a YAML, TOML, or ucum-essence XML catalog.
	CatalogFile string `yaml:"catalog_file" toml:"catalog_file"`

	// RegistryFile holds unit definitions added to the embedded registry.
	RegistryFile string `yaml:"registry_file" toml:"registry_file"`

	// MappingFile holds mapping overrides applied to the default table.
	MappingFile string `yaml:"mapping_file" toml:"mapping_file"`

	// AmbiguityCheck rejects atoms whose mapped and direct spellings mean different units.
	AmbiguityCheck bool `yaml:"ambiguity_check" toml:"ambiguity_check"`

	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// Default returns configuration using embedded data only.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads configuration on top of defaults.
func Load(r io.Reader, f filefmt.Format) (Config, error) {
	c := Default()
	if e := filefmt.Decode(r, f, &c); e != nil {
		return Config{}, ucum.FormatError(BadConfigError, "cannot decode %s config: %s", f, e)
	}
	return c, nil
}

// LoadFile reads configuration file, format is defined by file name extension.
// Relative file names inside are resolved against the configuration file directory.
func LoadFile(path string) (Config, error) {
	f, e := filefmt.Of(path)
	if e != nil {
		return Config{}, ucum.FormatError(BadConfigError, "config: %s", e)
	}

	file, e := os.Open(path)
	if e != nil {
		return Config{}, e
	}
	defer file.Close()

	c, e := Load(file, f)
	if e != nil {
		return Config{}, fmt.Errorf("%s: %w", path, e)
	}

	dir := filepath.Dir(path)
	for _, name := range []*string{&c.CatalogFile, &c.RegistryFile, &c.MappingFile} {
		if *name != "" && !filepath.IsAbs(*name) {
			*name = filepath.Join(dir, *name)
		}
	}
	return c, nil
}

// WithEnv returns configuration overridden by variables found by lookup,
// os.LookupEnv is used if lookup is nil.
func (c Config) WithEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	flags := map[string]*bool{
		EnvCaseInsensitive: &c.CaseInsensitive,
		EnvAmbiguityCheck:  &c.AmbiguityCheck,
	}
	for name, field := range flags {
		if v, has := lookup(name); has {
			b, e := strconv.ParseBool(v)
			if e != nil {
				return Config{}, ucum.FormatError(BadConfigError, "bad %s value %q", name, v)
			}
			*field = b
		}
	}

	values := map[string]*string{
		EnvCatalog:  &c.CatalogFile,
		EnvRegistry: &c.RegistryFile,
		EnvMapping:  &c.MappingFile,
		EnvLogLevel: &c.LogLevel,
	}
	for name, field := range values {
		if v, has := lookup(name); has {
			*field = v
		}
	}
	return c, nil
}

// Level returns parsed log level, empty level means info.
func (c Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	l, e := zapcore.ParseLevel(c.LogLevel)
	if e != nil {
		return l, ucum.FormatError(BadConfigError, "bad log level %q", c.LogLevel)
	}
	return l, nil
}

// Validate checks log level and existence of named files.
func (c Config) Validate() error {
	if _, e := c.Level(); e != nil {
		return e
	}

	files := []struct{ field, name string }{
		{"catalog_file", c.CatalogFile},
		{"registry_file", c.RegistryFile},
		{"mapping_file", c.MappingFile},
	}
	for _, f := range files {
		if f.name == "" {
			continue
		}
		if _, e := filefmt.Of(f.name); e != nil {
			return ucum.FormatError(BadConfigError, "%s: %s", f.field, e)
		}
		if _, e := os.Stat(f.name); e != nil {
			return ucum.FormatError(BadConfigError, "%s: %s", f.field, e)
		}
	}
	return nil
}

// Key identifies the grammar built for this configuration.
// Configurations with equal keys share catalog and grammar.
func (c Config) Key() string {
	return fmt.Sprintf("ci=%t;catalog=%s", c.CaseInsensitive, c.CatalogFile)
}

// Logger builds production logger of configured level.
func (c Config) Logger() (*zap.Logger, error) {
	l, e := c.Level()
	if e != nil {
		return nil, e
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(l)
	return zc.Build()
}
