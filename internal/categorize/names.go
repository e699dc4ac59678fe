package categorize

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

// LoadStats describes one name-set file after loading.
type LoadStats struct {
	Path    string
	Names   int
	Skipped int
}

// NamePaths locates the three name-set documents.
type NamePaths struct {
	Characters string
	Echoes     string
	Weapons    string
}

// LoadNameSet reads all three name sets. Any unreadable or malformed document
// is fatal; individual records without a usable name are skipped and counted.
func LoadNameSet(p NamePaths) (NameSet, []LoadStats, error) {
	var ns NameSet
	chars, cs, err := LoadCharacters(p.Characters)
	if err != nil {
		return ns, nil, err
	}
	echoes, es, err := LoadEchoes(p.Echoes)
	if err != nil {
		return ns, nil, err
	}
	weapons, ws, err := LoadWeapons(p.Weapons)
	if err != nil {
		return ns, nil, err
	}
	ns = NameSet{Characters: chars, Echoes: echoes, Weapons: weapons}
	return ns, []LoadStats{cs, es, ws}, nil
}

// LoadCharacters reads an array of character records with a "name" field.
func LoadCharacters(path string) ([]string, LoadStats, error) {
	root, st, err := readDoc(path)
	if err != nil {
		return nil, st, err
	}
	if !root.IsArray() {
		return nil, st, shapeError(path, "an array of character records")
	}
	names := fromRecords(root, &st, "name")
	return names, st, nil
}

// LoadEchoes reads either an array of echo records ("name" or "Echo") or an
// object whose keys are echo names.
func LoadEchoes(path string) ([]string, LoadStats, error) {
	root, st, err := readDoc(path)
	if err != nil {
		return nil, st, err
	}
	switch {
	case root.IsArray():
		return fromRecords(root, &st, "name", "Echo"), st, nil
	case root.IsObject():
		var names []string
		root.ForEach(func(k, _ gjson.Result) bool {
			if k.String() == "" {
				st.Skipped++
				return true
			}
			names = append(names, k.String())
			return true
		})
		st.Names = len(names)
		return names, st, nil
	}
	return nil, st, shapeError(path, "an array of echo records or an object keyed by echo name")
}

// LoadWeapons reads either an array of weapon records ("name", "w" or
// "Weapon") or an object grouping arrays of {"name"} records by weapon type.
func LoadWeapons(path string) ([]string, LoadStats, error) {
	root, st, err := readDoc(path)
	if err != nil {
		return nil, st, err
	}
	switch {
	case root.IsArray():
		return fromRecords(root, &st, "name", "w", "Weapon"), st, nil
	case root.IsObject():
		var names []string
		root.ForEach(func(_, group gjson.Result) bool {
			if !group.IsArray() {
				st.Skipped++
				return true
			}
			group.ForEach(func(_, rec gjson.Result) bool {
				if n, ok := recordName(rec, "name"); ok {
					names = append(names, n)
				} else {
					st.Skipped++
				}
				return true
			})
			return true
		})
		st.Names = len(names)
		return names, st, nil
	}
	return nil, st, shapeError(path, "an array of weapon records or an object of weapon-type groups")
}

func readDoc(path string) (gjson.Result, LoadStats, error) {
	st := LoadStats{Path: path}
	b, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, st, errors.Wrapf(err, "cannot read name set %s", path)
	}
	if !gjson.ValidBytes(b) {
		return gjson.Result{}, st, errors.WithHint(
			errors.Newf("invalid JSON in name set %s", path),
			"fix or regenerate the file; no output is written from partial inputs")
	}
	return gjson.ParseBytes(b), st, nil
}

func fromRecords(root gjson.Result, st *LoadStats, fields ...string) []string {
	var names []string
	root.ForEach(func(_, rec gjson.Result) bool {
		if n, ok := recordName(rec, fields...); ok {
			names = append(names, n)
		} else {
			st.Skipped++
		}
		return true
	})
	st.Names = len(names)
	return names
}

// recordName returns the first non-empty string among fields of rec. A bare
// string element is its own name.
func recordName(rec gjson.Result, fields ...string) (string, bool) {
	if rec.Type == gjson.String {
		return rec.String(), rec.String() != ""
	}
	if !rec.IsObject() {
		return "", false
	}
	for _, f := range fields {
		v := rec.Get(f)
		if v.Type == gjson.String && v.String() != "" {
			return v.String(), true
		}
	}
	return "", false
}

func shapeError(path, want string) error {
	return errors.WithHintf(errors.Wrapf(ErrBadShape, "name set %s", path), "expected %s", want)
}
