// Package assets holds the immutable key/URL asset table, the key normalizer
// shared by every consumer of the table, and the substring search over it.
package assets

import "iter"

// Table is an ordered, read-only mapping from asset key to URL.
// The zero value is an empty table. A Table is safe for concurrent readers.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable builds a table from entries in the given order. A repeated key keeps
// the position of its first occurrence and the URL of its last one.
func NewTable(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if i, ok := t.index[e.Key]; ok {
			t.entries[i].URL = e.URL
			continue
		}
		t.index[e.Key] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t
}

// Lookup returns the URL stored under key.
func (t *Table) Lookup(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	i, ok := t.index[key]
	if !ok {
		return "", false
	}
	return t.entries[i].URL, true
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// All yields every key and URL in table order.
func (t *Table) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if t == nil {
			return
		}
		for _, e := range t.entries {
			if !yield(e.Key, e.URL) {
				return
			}
		}
	}
}

// Keys returns a copy of the keys in table order.
func (t *Table) Keys() []string {
	out := make([]string, 0, t.Len())
	for k := range t.All() {
		out = append(out, k)
	}
	return out
}
