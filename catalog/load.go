package catalog

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"html"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ava12/ucum"
	"github.com/ava12/ucum/internal/filefmt"
)

// Format names catalog file format.
type Format = filefmt.Format

const (
	YAML = filefmt.YAML
	TOML = filefmt.TOML
	XML  = filefmt.XML
)

//go:embed essence.yaml
var essence []byte

// FormatOf guesses file format by file name extension.
func FormatOf(path string) (Format, error) {
	f, e := filefmt.Of(path)
	if e != nil {
		return "", ucum.FormatError(BadCatalogError, "catalog: %s", e)
	}
	return f, nil
}

// Decode reads raw catalog data.
func Decode(r io.Reader, f Format) (*Data, error) {
	d := &Data{}
	var e error
	if f == XML {
		d, e = decodeXML(r)
	} else {
		e = filefmt.Decode(r, f, d)
	}
	if e != nil {
		return nil, ucum.FormatError(BadCatalogError, "cannot decode %s catalog: %s", f, e)
	}
	return d, nil
}

// Load reads catalog data in given format and creates Catalog.
func Load(r io.Reader, f Format, opts ...Option) (*Catalog, error) {
	d, e := Decode(r, f)
	if e != nil {
		return nil, e
	}
	return New(d, opts...)
}

// LoadFile reads catalog file, format is defined by file name extension.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	f, e := FormatOf(path)
	if e != nil {
		return nil, e
	}

	file, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	defer file.Close()

	return Load(file, f, opts...)
}

// Embedded creates Catalog from embedded UCUM essence data.
func Embedded(opts ...Option) (*Catalog, error) {
	return Load(bytes.NewReader(essence), YAML, opts...)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultError   error
)

// Default returns shared case sensitive Catalog created from embedded data.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultError = Embedded()
	})
	return defaultCatalog, defaultError
}

type xmlText struct {
	Inner string `xml:",innerxml"`
}

// text keeps inline markup such as <sub> and decodes character references.
func (t xmlText) text() string {
	return html.UnescapeString(strings.TrimSpace(t.Inner))
}

type xmlPrefix struct {
	Code        string   `xml:"Code,attr"`
	CodeCI      string   `xml:"CODE,attr"`
	Names       []string `xml:"name"`
	PrintSymbol xmlText  `xml:"printSymbol"`
	Value       struct {
		Value string `xml:"value,attr"`
	} `xml:"value"`
}

type xmlUnit struct {
	Code        string   `xml:"Code,attr"`
	CodeCI      string   `xml:"CODE,attr"`
	Metric      string   `xml:"isMetric,attr"`
	Special     string   `xml:"isSpecial,attr"`
	Arbitrary   string   `xml:"isArbitrary,attr"`
	Class       string   `xml:"class,attr"`
	Dim         string   `xml:"dim,attr"`
	Names       []string `xml:"name"`
	PrintSymbol xmlText  `xml:"printSymbol"`
	Property    string   `xml:"property"`
	Value       struct {
		Unit     string `xml:"Unit,attr"`
		Value    string `xml:"value,attr"`
		Function *struct {
			Name  string `xml:"name,attr"`
			Value string `xml:"value,attr"`
			Unit  string `xml:"Unit,attr"`
		} `xml:"function"`
	} `xml:"value"`
}

type xmlRoot struct {
	XMLName   xml.Name    `xml:"root"`
	Version   string      `xml:"version,attr"`
	Prefixes  []xmlPrefix `xml:"prefix"`
	BaseUnits []xmlUnit   `xml:"base-unit"`
	Units     []xmlUnit   `xml:"unit"`
}

func firstName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func (u xmlUnit) record() UnitRecord {
	r := UnitRecord{
		Code:        u.Code,
		CodeCI:      u.CodeCI,
		Metric:      u.Metric == "yes",
		Special:     u.Special == "yes",
		Arbitrary:   u.Arbitrary == "yes",
		Class:       u.Class,
		Name:        firstName(u.Names),
		PrintSymbol: u.PrintSymbol.text(),
		Property:    u.Property,
		Unit:        u.Value.Unit,
		Value:       u.Value.Value,
		Dim:         u.Dim,
	}
	if r.Special && u.Value.Function != nil {
		r.Unit = u.Value.Function.Unit
	}
	return r
}

func decodeXML(r io.Reader) (*Data, error) {
	var root xmlRoot
	if e := filefmt.Decode(r, XML, &root); e != nil {
		return nil, e
	}

	d := &Data{Version: root.Version}
	for _, p := range root.Prefixes {
		d.Prefixes = append(d.Prefixes, PrefixRecord{
			Code:        p.Code,
			CodeCI:      p.CodeCI,
			Name:        firstName(p.Names),
			PrintSymbol: p.PrintSymbol.text(),
			Value:       p.Value.Value,
		})
	}
	for _, u := range root.BaseUnits {
		d.BaseUnits = append(d.BaseUnits, u.record())
	}
	for _, u := range root.Units {
		d.Units = append(d.Units, u.record())
	}
	return d, nil
}
