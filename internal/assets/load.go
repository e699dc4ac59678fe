package assets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Load reads an asset table artifact, choosing the decoder by file extension.
// Key order in the file becomes table order.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".toml":
		return LoadTOML(path)
	default:
		return nil, errors.WithHint(
			errors.Wrapf(ErrUnsupportedFormat, "cannot load %s", path),
			"asset tables must be .json, .yaml, .yml or .toml files")
	}
}

// LoadJSON reads a JSON object of key → URL strings.
func LoadJSON(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read asset table %s", path)
	}
	t, err := ParseJSON(b)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid asset table %s", path)
	}
	return t, nil
}

// ParseJSON decodes a JSON object of key → URL strings, keeping document order.
func ParseJSON(data []byte) (*Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.WithHint(errors.New("malformed JSON"),
			"regenerate the asset table; partial tables are never accepted")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotObject
	}

	var (
		entries []Entry
		bad     error
	)
	root.ForEach(func(k, v gjson.Result) bool {
		if v.Type != gjson.String {
			bad = errors.Wrapf(ErrNonStringValue, "key %q holds %s", k.String(), v.Type)
			return false
		}
		entries = append(entries, Entry{Key: k.String(), URL: v.String()})
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return NewTable(entries), nil
}

// LoadYAML reads a YAML mapping of key → URL strings.
func LoadYAML(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read asset table %s", path)
	}
	t, err := ParseYAML(b)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid asset table %s", path)
	}
	return t, nil
}

// ParseYAML decodes a YAML mapping of key → URL strings, keeping document order.
func ParseYAML(data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "malformed YAML")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}
	m := doc.Content[0]
	entries := make([]Entry, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if v.Kind != yaml.ScalarNode || v.ShortTag() != "!!str" {
			return nil, errors.Wrapf(ErrNonStringValue, "key %q at line %d", k.Value, v.Line)
		}
		entries = append(entries, Entry{Key: k.Value, URL: v.Value})
	}
	return NewTable(entries), nil
}

// LoadTOML reads a TOML document of top-level key = "URL" pairs.
func LoadTOML(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read asset table %s", path)
	}
	t, err := ParseTOML(b)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid asset table %s", path)
	}
	return t, nil
}

// ParseTOML decodes top-level TOML pairs, keeping document order. Tables and
// arrays of tables are not URLs and are rejected.
func ParseTOML(data []byte) (*Table, error) {
	var m map[string]any
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.Wrap(err, "malformed TOML")
	}
	var entries []Entry
	for _, k := range md.Keys() {
		if len(k) != 1 {
			continue
		}
		u, ok := m[k[0]].(string)
		if !ok {
			return nil, errors.Wrapf(ErrNonStringValue, "key %q holds %s", k[0], md.Type(k...))
		}
		entries = append(entries, Entry{Key: k[0], URL: u})
	}
	return NewTable(entries), nil
}
