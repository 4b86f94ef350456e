package filefmt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `yaml:"name" toml:"name" xml:"name"`
	Codes []string `yaml:"codes" toml:"codes" xml:"code"`
}

func TestOf(t *testing.T) {
	samples := map[string]Format{
		"a.yaml": YAML, "a.YML": YAML, "dir.d/a.toml": TOML, "ucum-essence.xml": XML,
	}
	for path, expected := range samples {
		f, e := Of(path)
		require.NoError(t, e, path)
		assert.Equal(t, expected, f, path)
	}

	_, e := Of("a.json")
	assert.Error(t, e)
	_, e = Of("noext")
	assert.Error(t, e)
}

func TestDecode(t *testing.T) {
	expected := sample{Name: "x", Codes: []string{"m", "s"}}
	inputs := map[Format]string{
		YAML: "name: x\ncodes: [m, s]\n",
		TOML: "name = \"x\"\ncodes = [\"m\", \"s\"]\n",
		XML:  "<sample><name>x</name><code>m</code><code>s</code></sample>",
	}
	for f, src := range inputs {
		var s sample
		require.NoError(t, Decode(strings.NewReader(src), f, &s), f)
		assert.Equal(t, expected, s, f)
	}

	var s sample
	assert.NoError(t, Decode(strings.NewReader(""), YAML, &s))
	assert.Error(t, Decode(strings.NewReader("name = "), TOML, &s))
	assert.Error(t, Decode(strings.NewReader(""), Format("ini"), &s))
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: y\n"), 0o666))

	var s sample
	require.NoError(t, DecodeFile(path, &s))
	assert.Equal(t, "y", s.Name)

	assert.Error(t, DecodeFile(filepath.Join(dir, "missing.yml"), &s))
	assert.Error(t, DecodeFile(filepath.Join(dir, "sample.ini"), &s))
}
