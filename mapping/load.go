package mapping

import (
	"io"
	"os"

	"github.com/ava12/ucum"
	"github.com/ava12/ucum/internal/filefmt"
)

// BadMappingError indicates malformed mapping override data.
const BadMappingError = ucum.ConfigErrors + 30

type overrides struct {
	Mappings map[string]string `yaml:"mappings" toml:"mappings"`
}

// Load reads overrides in YAML or TOML format and applies them to base table.
// Data contains a single "mappings" table, an empty identifier removes the entry.
func Load(base Table, r io.Reader, f filefmt.Format) (Table, error) {
	var o overrides
	if e := filefmt.Decode(r, f, &o); e != nil {
		return Table{}, ucum.FormatError(BadMappingError, "cannot decode %s mapping: %s", f, e)
	}
	for code := range o.Mappings {
		if code == "" {
			return Table{}, ucum.FormatError(BadMappingError, "empty atom code in mapping")
		}
	}
	return base.With(o.Mappings), nil
}

// LoadFile reads overrides from file, format is defined by file name extension.
func LoadFile(base Table, path string) (Table, error) {
	f, e := filefmt.Of(path)
	if e != nil {
		return Table{}, ucum.FormatError(BadMappingError, "mapping: %s", e)
	}

	file, e := os.Open(path)
	if e != nil {
		return Table{}, e
	}
	defer file.Close()

	return Load(base, file, f)
}
