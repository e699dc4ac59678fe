package assets

import "strings"

// Search returns every entry whose key contains query, in table order.
// Matching is plain substring containment: "lin" matches "yinlin_icon".
// An empty query matches every entry; callers guard against that upstream.
func (t *Table) Search(query string) []Match {
	var out []Match
	for k, u := range t.All() {
		if strings.Contains(k, query) {
			out = append(out, Match{Key: k, URL: u})
		}
	}
	return out
}

// First returns the first match whose key contains sub.
func First(matches []Match, sub string) (Match, bool) {
	for _, m := range matches {
		if strings.Contains(m.Key, sub) {
			return m, true
		}
	}
	return Match{}, false
}
