// Package filefmt decodes data files by format name or file extension.
package filefmt

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names data file format.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	XML  Format = "xml"
)

// Of guesses file format by file name extension.
func Of(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".xml":
		return XML, nil
	}
	return "", fmt.Errorf("unknown format of %q", path)
}

// Decode reads r into v.
func Decode(r io.Reader, f Format, v any) error {
	switch f {
	case YAML:
		e := yaml.NewDecoder(r).Decode(v)
		if e == io.EOF {
			return nil
		}
		return e
	case TOML:
		_, e := toml.NewDecoder(r).Decode(v)
		return e
	case XML:
		return xml.NewDecoder(r).Decode(v)
	}
	return fmt.Errorf("unknown format %q", f)
}

// DecodeFile reads file into v, format is defined by file name extension.
func DecodeFile(path string, v any) error {
	f, e := Of(path)
	if e != nil {
		return e
	}

	file, e := os.Open(path)
	if e != nil {
		return e
	}
	defer file.Close()

	return Decode(file, f, v)
}
