package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadJSON_KeepsDocumentOrder(t *testing.T) {
	p := writeFile(t, "image_map.json", `{
	"zani_icon": "https://cdn/zani.png",
	"aalto_icon": "https://cdn/aalto.png",
	"mid_ascii": "https://cdn/m.png"
}`)
	tbl, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"zani_icon", "aalto_icon", "mid_ascii"}, tbl.Keys())
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"a": "x",`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`["a"]`))
	assert.True(t, errors.Is(err, ErrNotObject))

	_, err = ParseJSON([]byte(`{"a": 1}`))
	assert.True(t, errors.Is(err, ErrNonStringValue))
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "image_map.yaml", "zani_icon: https://cdn/zani.png\naalto_icon: \"https://cdn/aalto.png\"\n")
	tbl, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"zani_icon", "aalto_icon"}, tbl.Keys())
	u, _ := tbl.Lookup("aalto_icon")
	assert.Equal(t, "https://cdn/aalto.png", u)
}

func TestParseYAML_Errors(t *testing.T) {
	_, err := ParseYAML([]byte("- a\n- b\n"))
	assert.True(t, errors.Is(err, ErrNotObject))

	_, err = ParseYAML([]byte("a: 12\n"))
	assert.True(t, errors.Is(err, ErrNonStringValue))

	_, err = ParseYAML([]byte(""))
	assert.True(t, errors.Is(err, ErrNotObject))
}

func TestLoad_MissingFileAndFormat(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "table.csv", "a,b\n"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadTOML_KeepsDocumentOrder(t *testing.T) {
	p := writeFile(t, "image_map.toml", "zani_icon = \"https://cdn/zani.png\"\n\"aalto-icon\" = \"https://cdn/aalto.png\"\n")
	tbl, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"zani_icon", "aalto-icon"}, tbl.Keys())
}

func TestParseTOML_Errors(t *testing.T) {
	_, err := ParseTOML([]byte("a = 1\n"))
	assert.True(t, errors.Is(err, ErrNonStringValue))

	_, err = ParseTOML([]byte("[characters]\njiyan = \"x\"\n"))
	assert.True(t, errors.Is(err, ErrNonStringValue))

	_, err = ParseTOML([]byte("a = \n"))
	assert.Error(t, err)
}
