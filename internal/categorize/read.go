package categorize

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ReadFile reads a categorized document written by WriteFile. The format is
// taken from the extension; anything but .yaml or .yml is read as JSON.
func ReadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "cannot read categorized document %s", path),
			"run 'wuwa-assets categorize' to generate it")
	}
	f := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f = FormatYAML
	}
	res, err := Decode(data, f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return res, nil
}

// Decode parses a categorized document, keeping document order. Missing
// buckets decode as empty.
func Decode(data []byte, f Format) (*Result, error) {
	switch f {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", f)
}

func emptyResult() *Result {
	return &Result{
		Characters: newBucket(),
		Echoes:     newBucket(),
		Weapons:    newBucket(),
		Other:      newGroup(),
		placements: make(map[string]Placement),
	}
}

// file records key under (c, name) in r.
func (r *Result) file(c Category, name, key, url string) {
	if c == Other {
		r.Other.add(key, url)
	} else {
		r.Bucket(c).add(name, key, url)
	}
	r.placements[key] = Placement{Category: c, Name: name}
}

func decodeJSON(data []byte) (*Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(ErrBadDocument, "invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.Wrap(ErrBadDocument, "root is not an object")
	}

	res := emptyResult()
	var bad error
	for _, c := range Categories {
		v := root.Get(string(c))
		if !v.Exists() {
			continue
		}
		if !v.IsObject() {
			return nil, errors.Wrapf(ErrBadDocument, "%s is not an object", c)
		}
		if c == Other {
			bad = jsonGroup(v, string(c), func(k, u string) { res.file(Other, k, k, u) })
		} else {
			v.ForEach(func(name, g gjson.Result) bool {
				if !g.IsObject() {
					bad = errors.Wrapf(ErrBadDocument, "%s[%q] is not an object", c, name.String())
					return false
				}
				n := name.String()
				bad = jsonGroup(g, string(c)+"."+n, func(k, u string) { res.file(c, n, k, u) })
				return bad == nil
			})
		}
		if bad != nil {
			return nil, bad
		}
	}
	return res, nil
}

func jsonGroup(g gjson.Result, where string, add func(key, url string)) error {
	var bad error
	g.ForEach(func(k, u gjson.Result) bool {
		if u.Type != gjson.String {
			bad = errors.Wrapf(ErrBadDocument, "%s[%q] is not a string", where, k.String())
			return false
		}
		add(k.String(), u.String())
		return true
	})
	return bad
}

func decodeYAML(data []byte) (*Result, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(ErrBadDocument, err.Error())
	}
	res := emptyResult()
	if doc.Kind == 0 {
		return res, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.Wrap(ErrBadDocument, "root is not a mapping")
	}

	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		c := Category(root.Content[i].Value)
		v := root.Content[i+1]
		if _, err := ParseCategory(string(c)); err != nil {
			continue
		}
		if v.Kind != yaml.MappingNode {
			return nil, errors.Wrapf(ErrBadDocument, "%s is not a mapping", c)
		}
		if c == Other {
			if err := yamlGroup(v, string(c), func(k, u string) { res.file(Other, k, k, u) }); err != nil {
				return nil, err
			}
			continue
		}
		for j := 0; j+1 < len(v.Content); j += 2 {
			name, g := v.Content[j].Value, v.Content[j+1]
			if g.Kind != yaml.MappingNode {
				return nil, errors.Wrapf(ErrBadDocument, "%s[%q] is not a mapping", c, name)
			}
			if err := yamlGroup(g, string(c)+"."+name, func(k, u string) { res.file(c, name, k, u) }); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

func yamlGroup(g *yaml.Node, where string, add func(key, url string)) error {
	for i := 0; i+1 < len(g.Content); i += 2 {
		k, u := g.Content[i], g.Content[i+1]
		if u.Kind != yaml.ScalarNode || u.ShortTag() != "!!str" {
			return errors.Wrapf(ErrBadDocument, "%s[%q] is not a string", where, k.Value)
		}
		add(k.Value, u.Value)
	}
	return nil
}

// ParseCategory converts a bucket name into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", errors.WithHintf(errors.Newf("unknown bucket %q", s), "use one of %v", Categories)
}
