// Package resolver maps entity identifiers and free-text queries to asset URLs.
//
// Every lookup is an ordered fallback through increasingly loose matches over
// one asset table: overrides, exact constructed keys, substring search filtered
// by role, then any substring match. A miss is a normal outcome.
package resolver

import (
	"github.com/cockroachdb/errors"
	"github.com/kamusis/wuwa-assets/internal/assets"
)

// Kind selects a lookup chain.
type Kind string

const (
	KindIcon     Kind = "icon"
	KindPortrait Kind = "portrait"
	KindCard     Kind = "card"
	KindFuzzy    Kind = "fuzzy"
)

// Kinds lists every lookup chain in display order.
var Kinds = []Kind{KindIcon, KindPortrait, KindCard, KindFuzzy}

// ErrUnknownKind is returned by ParseKind.
var ErrUnknownKind = errors.New("unknown lookup kind")

// ParseKind converts a command-line word into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.WithHintf(errors.Wrapf(ErrUnknownKind, "%q", s),
		"use one of %v", Kinds)
}

// Rule names the step of a chain that produced a Resolution.
type Rule string

const (
	RuleOverride     Rule = "override"
	RuleExact        Rule = "exact"
	RuleSearch       Rule = "search"
	RuleSearchAny    Rule = "search-any"
	RuleIconFallback Rule = "icon-fallback"
)

// Resolution is a successful lookup with the key and rule that produced it.
type Resolution struct {
	Kind Kind
	Key  string
	URL  string
	Rule Rule
}

// Resolver answers lookups against one immutable table.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	table     *assets.Table
	overrides []Override
}

// New returns a resolver over table. overrides are consulted, in order, before
// any card lookup.
func New(table *assets.Table, overrides []Override) *Resolver {
	o := make([]Override, len(overrides))
	copy(o, overrides)
	return &Resolver{table: table, overrides: o}
}

// Icon returns the icon URL for id.
func (r *Resolver) Icon(id string) (string, bool) {
	return urlOf(r.Resolve(KindIcon, id))
}

// Portrait returns the splash-art URL for id.
func (r *Resolver) Portrait(id string) (string, bool) {
	return urlOf(r.Resolve(KindPortrait, id))
}

// Card returns the card URL for id, degrading to the icon chain.
func (r *Resolver) Card(id string) (string, bool) {
	return urlOf(r.Resolve(KindCard, id))
}

// Fuzzy returns the best URL for a free-text name such as a weapon or set.
func (r *Resolver) Fuzzy(query string) (string, bool) {
	return urlOf(r.Resolve(KindFuzzy, query))
}

// Resolve runs the chain for kind. Unknown kinds and blank ids miss.
func (r *Resolver) Resolve(kind Kind, id string) (Resolution, bool) {
	q := assets.NormalizeKey(id)
	if assets.IsBlankKey(q) {
		return Resolution{}, false
	}
	var (
		res Resolution
		ok  bool
	)
	switch kind {
	case KindIcon:
		res, ok = r.icon(q)
	case KindPortrait:
		res, ok = r.portrait(q)
	case KindCard:
		res, ok = r.card(q)
	case KindFuzzy:
		res, ok = r.fuzzy(q)
	default:
		return Resolution{}, false
	}
	res.Kind = kind
	return res, ok
}

func (r *Resolver) icon(q string) (Resolution, bool) {
	if res, ok := r.exact(q + "_icon"); ok {
		return res, true
	}
	return r.searchFor(q, "icon")
}

func (r *Resolver) portrait(q string) (Resolution, bool) {
	for _, k := range []string{q + "_splash_art", q + "_splash"} {
		if res, ok := r.exact(k); ok {
			return res, true
		}
	}
	return r.searchFor(q, "splash")
}

func (r *Resolver) card(q string) (Resolution, bool) {
	for _, o := range r.overrides {
		if o.ID != q {
			continue
		}
		if u, ok := r.table.Lookup(o.Key); ok {
			return Resolution{Key: o.Key, URL: u, Rule: RuleOverride}, true
		}
	}
	if res, ok := r.exact(q + "_card"); ok {
		return res, true
	}
	if m, ok := assets.First(r.table.Search(q), "card"); ok {
		return Resolution{Key: m.Key, URL: m.URL, Rule: RuleSearch}, true
	}
	res, ok := r.icon(q)
	if ok {
		res.Rule = RuleIconFallback
	}
	return res, ok
}

func (r *Resolver) fuzzy(q string) (Resolution, bool) {
	if res, ok := r.exact(q); ok {
		return res, true
	}
	matches := r.table.Search(q)
	want := q + "_icon"
	for _, m := range matches {
		if m.Key == want {
			return Resolution{Key: m.Key, URL: m.URL, Rule: RuleSearch}, true
		}
	}
	return pick(matches, "icon")
}

func (r *Resolver) exact(key string) (Resolution, bool) {
	u, ok := r.table.Lookup(key)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Key: key, URL: u, Rule: RuleExact}, true
}

// searchFor prefers the first match whose key contains role, then the first
// match of any kind.
func (r *Resolver) searchFor(q, role string) (Resolution, bool) {
	return pick(r.table.Search(q), role)
}

func pick(matches []assets.Match, role string) (Resolution, bool) {
	if m, ok := assets.First(matches, role); ok {
		return Resolution{Key: m.Key, URL: m.URL, Rule: RuleSearch}, true
	}
	if len(matches) > 0 {
		return Resolution{Key: matches[0].Key, URL: matches[0].URL, Rule: RuleSearchAny}, true
	}
	return Resolution{}, false
}

func urlOf(res Resolution, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	return res.URL, true
}
