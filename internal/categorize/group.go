package categorize

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Group is an insertion-ordered mapping of asset key to URL.
type Group struct {
	urls *orderedmap.OrderedMap[string, string]
}

func newGroup() *Group {
	return &Group{urls: orderedmap.New[string, string]()}
}

// add stores url under key. A repeated key keeps its first position.
func (g *Group) add(key, url string) {
	g.urls.Set(key, url)
}

// Len returns the number of entries in g.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return g.urls.Len()
}

// Lookup returns the URL for key.
func (g *Group) Lookup(key string) (string, bool) {
	if g == nil {
		return "", false
	}
	return g.urls.Get(key)
}

// All yields the entries of g in insertion order.
func (g *Group) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if g == nil {
			return
		}
		for p := g.urls.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// MarshalJSON encodes g as a JSON object in insertion order.
func (g *Group) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("{}"), nil
	}
	return g.urls.MarshalJSON()
}

// Bucket maps display names (or weapon-type literals) to groups, in the order
// the names were first used.
type Bucket struct {
	groups *orderedmap.OrderedMap[string, *Group]
}

func newBucket() *Bucket {
	return &Bucket{groups: orderedmap.New[string, *Group]()}
}

func (b *Bucket) add(name, key, url string) {
	g, ok := b.groups.Get(name)
	if !ok {
		g = newGroup()
		b.groups.Set(name, g)
	}
	g.add(key, url)
}

// Names returns the group names in insertion order.
func (b *Bucket) Names() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, b.groups.Len())
	for p := b.groups.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Group returns the group stored under name.
func (b *Bucket) Group(name string) (*Group, bool) {
	if b == nil {
		return nil, false
	}
	return b.groups.Get(name)
}

// Len returns the number of groups.
func (b *Bucket) Len() int {
	if b == nil {
		return 0
	}
	return b.groups.Len()
}

// Entries returns the number of asset entries across all groups.
func (b *Bucket) Entries() int {
	n := 0
	if b == nil {
		return n
	}
	for p := b.groups.Oldest(); p != nil; p = p.Next() {
		n += p.Value.Len()
	}
	return n
}

// MarshalJSON encodes b as a JSON object of groups in insertion order.
func (b *Bucket) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("{}"), nil
	}
	return b.groups.MarshalJSON()
}
