package categorize

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of the categorized document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.WithHint(errors.Wrapf(ErrUnknownFormat, "%q", s), "use json or yaml")
}

// Encode renders r in the given format. Buckets and groups keep insertion
// order; JSON is indented with two spaces.
func Encode(r *Result, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return EncodeJSON(r)
	case FormatYAML:
		return EncodeYAML(r)
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", f)
}

// EncodeJSON renders r as a JSON document indented with two spaces.
func EncodeJSON(r *Result) ([]byte, error) {
	root := orderedmap.New[string, json.Marshaler]()
	for _, c := range Categories {
		if c == Other {
			root.Set(string(c), r.Other)
		} else {
			root.Set(string(c), r.Bucket(c))
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return nil, errors.Wrap(err, "cannot encode categorized document")
	}
	return buf.Bytes(), nil
}

// EncodeYAML renders r as a YAML document with the same ordering as JSON.
func EncodeYAML(r *Result) ([]byte, error) {
	root := mapping()
	for _, c := range Categories {
		var v *yaml.Node
		if c == Other {
			v = groupNode(r.Other)
		} else {
			b := r.Bucket(c)
			v = mapping()
			for _, name := range b.Names() {
				g, _ := b.Group(name)
				v.Content = append(v.Content, scalar(name), groupNode(g))
			}
		}
		root.Content = append(root.Content, scalar(string(c)), v)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, errors.Wrap(err, "cannot encode categorized document")
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func groupNode(g *Group) *yaml.Node {
	n := mapping()
	for k, u := range g.All() {
		n.Content = append(n.Content, scalar(k), scalar(u))
	}
	return n
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// EncodeReport renders ambiguities as an indented JSON array.
func EncodeReport(ambs []Ambiguity) ([]byte, error) {
	if ambs == nil {
		ambs = []Ambiguity{}
	}
	b, err := json.MarshalIndent(ambs, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode ambiguity report")
	}
	return append(b, '\n'), nil
}

// WriteFile replaces path with data. The bytes go to a temp file in the same
// directory which is renamed over path, so readers see either the previous
// document or the complete new one. A sidecar lock file serializes writers.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "cannot create output dir %s", dir)
	}

	lockPath := path + ".lock"
	l := flock.New(lockPath)
	locked, err := l.TryLock()
	if err != nil {
		return errors.Wrapf(err, "cannot acquire output lock %s", lockPath)
	}
	if !locked {
		return errors.WithHintf(errors.Wrapf(ErrLocked, "%s", path),
			"wait for the other run to finish or remove %s if it is stale", lockPath)
	}
	defer func() { _ = l.Unlock() }()

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "cannot create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrapf(err, "cannot write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrapf(err, "cannot sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrapf(err, "cannot install %s", path)
	}
	return nil
}
