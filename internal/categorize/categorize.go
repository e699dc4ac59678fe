// Package categorize partitions an asset table into per-entity-type buckets.
//
// Every table key is tested against the candidate names of each category in a
// fixed priority order (characters, echoes, weapons, weapon-type literals) and
// lands in the first candidate whose normalized name it contains. Keys that
// match nothing go to the "other" bucket under their raw key.
package categorize

import (
	"strings"

	"github.com/kamusis/wuwa-assets/internal/assets"
	"github.com/rs/zerolog"
)

// Category identifies a bucket of the categorized document.
type Category string

const (
	Characters Category = "characters"
	Echoes     Category = "echoes"
	Weapons    Category = "weapons"
	Other      Category = "other"
)

// Categories lists the buckets in document order.
var Categories = []Category{Characters, Echoes, Weapons, Other}

// WeaponTypes are the generic weapon-type literals tried after every named
// weapon. Matches land in the weapons bucket under the literal itself.
var WeaponTypes = []string{"broadblade", "sword", "pistols", "gauntlets", "rectifier"}

// NameSet holds the ordered display names of each entity type.
type NameSet struct {
	Characters []string
	Echoes     []string
	Weapons    []string
}

// Placement is where a table key was filed. For Other, Name is the key.
type Placement struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
}

// Options tunes a run.
type Options struct {
	// Diagnose records every candidate each key contains, not just the winner.
	Diagnose bool
	// Logger receives skipped-candidate warnings and run statistics.
	Logger *zerolog.Logger
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	l := zerolog.Nop()
	return &l
}

// Result is the categorized table.
type Result struct {
	Characters *Bucket
	Echoes     *Bucket
	Weapons    *Bucket
	Other      *Group

	// Ambiguities is filled only when Options.Diagnose is set.
	Ambiguities []Ambiguity

	placements map[string]Placement
}

// Bucket returns the named bucket; Other has no Bucket and returns nil.
func (r *Result) Bucket(c Category) *Bucket {
	switch c {
	case Characters:
		return r.Characters
	case Echoes:
		return r.Echoes
	case Weapons:
		return r.Weapons
	}
	return nil
}

// Placement reports where key was filed.
func (r *Result) Placement(key string) (Placement, bool) {
	p, ok := r.placements[key]
	return p, ok
}

// Total returns the number of classified entries across every bucket.
func (r *Result) Total() int {
	return r.Characters.Entries() + r.Echoes.Entries() + r.Weapons.Entries() + r.Other.Len()
}

type candidate struct {
	name string
	norm string
}

type categoryCandidates struct {
	category Category
	list     []candidate
}

// Categorize files every entry of table, in table order, into exactly one
// bucket entry.
func Categorize(table *assets.Table, names NameSet, opts Options) *Result {
	log := opts.logger()

	order := []categoryCandidates{
		{Characters, buildCandidates(Characters, names.Characters, log)},
		{Echoes, buildCandidates(Echoes, names.Echoes, log)},
		{Weapons, buildCandidates(Weapons, names.Weapons, log)},
		{Weapons, weaponTypeCandidates()},
	}

	res := &Result{
		Characters: newBucket(),
		Echoes:     newBucket(),
		Weapons:    newBucket(),
		Other:      newGroup(),
		placements: make(map[string]Placement, table.Len()),
	}

	var sc *scanner
	if opts.Diagnose {
		sc = newScanner(order)
	}

	for key, url := range table.All() {
		p := place(key, order)
		switch p.Category {
		case Other:
			res.Other.add(key, url)
		default:
			res.Bucket(p.Category).add(p.Name, key, url)
		}
		res.placements[key] = p

		if sc != nil {
			if amb, ok := sc.ambiguity(key, p); ok {
				res.Ambiguities = append(res.Ambiguities, amb)
			}
		}
	}

	log.Debug().
		Int("entries", table.Len()).
		Int("characters", res.Characters.Len()).
		Int("echoes", res.Echoes.Len()).
		Int("weapons", res.Weapons.Len()).
		Int("other", res.Other.Len()).
		Int("ambiguous", len(res.Ambiguities)).
		Msg("categorized asset table")
	return res
}

// place returns the first candidate, in priority order, contained in key.
func place(key string, order []categoryCandidates) Placement {
	for _, cc := range order {
		for _, c := range cc.list {
			if strings.Contains(key, c.norm) {
				return Placement{Category: cc.category, Name: c.name}
			}
		}
	}
	return Placement{Category: Other, Name: key}
}

func buildCandidates(cat Category, names []string, log *zerolog.Logger) []candidate {
	out := make([]candidate, 0, len(names))
	for _, n := range names {
		norm := assets.NormalizeKey(n)
		if assets.IsBlankKey(norm) {
			log.Warn().Str("category", string(cat)).Str("name", n).Msg("skipping name with no usable key")
			continue
		}
		out = append(out, candidate{name: n, norm: norm})
	}
	return out
}

func weaponTypeCandidates() []candidate {
	out := make([]candidate, len(WeaponTypes))
	for i, wt := range WeaponTypes {
		out[i] = candidate{name: wt, norm: wt}
	}
	return out
}

// BucketSummary counts the groups and entries of one bucket. In Other every
// entry is its own group.
type BucketSummary struct {
	Category Category
	Groups   int
	Entries  int
}

// Summary returns one BucketSummary per category in document order.
func (r *Result) Summary() []BucketSummary {
	out := make([]BucketSummary, 0, len(Categories))
	for _, c := range Categories {
		if c == Other {
			out = append(out, BucketSummary{Category: c, Groups: r.Other.Len(), Entries: r.Other.Len()})
			continue
		}
		b := r.Bucket(c)
		out = append(out, BucketSummary{Category: c, Groups: b.Len(), Entries: b.Entries()})
	}
	return out
}
