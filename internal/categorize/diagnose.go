package categorize

import (
	"sort"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Ambiguity is a table key that contains candidates from more than one
// placement. Chosen is where the key was filed.
type Ambiguity struct {
	Key          string      `json:"key"`
	Chosen       Placement   `json:"chosen"`
	Alternatives []Placement `json:"alternatives"`
}

type rankedPlacement struct {
	rank int
	Placement
}

// scanner finds every candidate contained in a key with a single pass of an
// Aho-Corasick automaton over the distinct normalized candidate keys.
type scanner struct {
	automaton aho.AhoCorasick
	owners    [][]rankedPlacement
	empty     bool
}

func newScanner(order []categoryCandidates) *scanner {
	var (
		patterns []string
		owners   [][]rankedPlacement
	)
	byNorm := make(map[string]int)
	rank := 0
	for _, cc := range order {
		for _, c := range cc.list {
			idx, ok := byNorm[c.norm]
			if !ok {
				idx = len(patterns)
				byNorm[c.norm] = idx
				patterns = append(patterns, c.norm)
				owners = append(owners, nil)
			}
			owners[idx] = append(owners[idx], rankedPlacement{
				rank:      rank,
				Placement: Placement{Category: cc.category, Name: c.name},
			})
			rank++
		}
	}
	if len(patterns) == 0 {
		return &scanner{empty: true}
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{DFA: true})
	return &scanner{automaton: builder.Build(patterns), owners: owners}
}

// candidates returns every distinct placement whose candidate key occurs in
// key, in priority order.
func (s *scanner) candidates(key string) []Placement {
	if s.empty {
		return nil
	}
	hit := make(map[int]bool)
	iter := s.automaton.IterOverlappingByte([]byte(key))
	for next := iter.Next(); next != nil; next = iter.Next() {
		hit[next.Pattern()] = true
	}
	if len(hit) == 0 {
		return nil
	}

	var ranked []rankedPlacement
	for idx := range hit {
		ranked = append(ranked, s.owners[idx]...)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].rank < ranked[j].rank })

	seen := make(map[Placement]bool, len(ranked))
	out := make([]Placement, 0, len(ranked))
	for _, rp := range ranked {
		if seen[rp.Placement] {
			continue
		}
		seen[rp.Placement] = true
		out = append(out, rp.Placement)
	}
	return out
}

func (s *scanner) ambiguity(key string, chosen Placement) (Ambiguity, bool) {
	all := s.candidates(key)
	if len(all) < 2 {
		return Ambiguity{}, false
	}
	alts := make([]Placement, 0, len(all)-1)
	for _, p := range all {
		if p != chosen {
			alts = append(alts, p)
		}
	}
	return Ambiguity{Key: key, Chosen: chosen, Alternatives: alts}, true
}
