package realize

import (
	"sort"

	"github.com/maruel/natural"
)

// Counter implements the numbering state `counter(name)` exposes to
// introspection (§4.6): a sequence of (location, value) updates recorded
// in realization order, queryable by any later point in the document
// asking "what is this counter's value here" (`.at(loc)`,
// `.final()`/`.here()` in the surface language's terms).
type Counter struct {
	name    string
	entries []counterEntry
}

type counterEntry struct {
	location string
	value    int
}

func NewCounter(name string) *Counter { return &Counter{name: name} }

// Step records the counter advancing by delta at location, returning the
// new value.
func (c *Counter) Step(location string, delta int) int {
	v := delta
	if len(c.entries) > 0 {
		v = c.entries[len(c.entries)-1].value + delta
	}
	c.entries = append(c.entries, counterEntry{location: location, value: v})
	return v
}

// At returns the counter's value as of the last update at or before
// location. Locations compare in natural order (digit runs numerically),
// so content.Content.Location's unpadded "file:byteoffset" format orders
// correctly within one file.
func (c *Counter) At(location string) int {
	idx := sort.Search(len(c.entries), func(i int) bool {
		return natural.Less(location, c.entries[i].location)
	})
	if idx == 0 {
		return 0
	}
	return c.entries[idx-1].value
}

// Final returns the counter's value after every recorded update.
func (c *Counter) Final() int {
	if len(c.entries) == 0 {
		return 0
	}
	return c.entries[len(c.entries)-1].value
}

// Registry indexes Counters by name, created lazily on first Step/At so
// the realize pass never needs a pre-declared list of counter names.
type Registry struct {
	byName map[string]*Counter
}

func NewRegistry() *Registry { return &Registry{byName: make(map[string]*Counter)} }

func (r *Registry) Get(name string) *Counter {
	if c, ok := r.byName[name]; ok {
		return c
	}
	c := NewCounter(name)
	r.byName[name] = c
	return c
}

// Names returns every counter name seen so far, naturally ordered (so
// "heading2" sorts before "heading10" the way a reader expects) rather
// than plain lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}
