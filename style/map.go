package style

// entry is a single style declaration: either a property assignment or a
// show-rule recipe, matching §3's "a StyleMap is a set of style entries:
// (property-key, value) plus recipes (selector, transform)".
type entry struct {
	key   Key
	value any
	rec   *Recipe
}

// Recipe pairs a selector with a transform applied during realization
// (§4.7). Transform receives the matched content and returns either
// replacement content (Content set) or an additional style set (Styles
// set) to fold into the chain before re-dispatch — never both, mirroring
// §4.5's "a recipe may yield either transformed content ... or a style
// set".
type Recipe struct {
	Selector Selector
	Apply    func(c Matchable) (Content any, Styles *Map, err error)
}

// Map is an ordered set of style entries accumulated within one scope
// (one `set`/`show` block). Entries are appended in evaluation order;
// StyleChain.Get walks maps innermost-first, and within a map iterates
// entries in reverse so the most recently set value within a scope wins
// over an earlier one in the same scope.
type Map struct {
	entries []entry
}

func NewMap() *Map { return &Map{} }

// Set appends a property assignment.
func (m *Map) Set(key Key, value any) *Map {
	m.entries = append(m.entries, entry{key: key, value: value})
	return m
}

// Show appends a show-rule recipe.
func (m *Map) Show(r Recipe) *Map {
	m.entries = append(m.entries, entry{rec: &r})
	return m
}

// Recipes returns the recipes in this map, innermost scope order
// (evaluation order), for Chain.Recipes to walk.
func (m *Map) Recipes() []Recipe {
	var out []Recipe
	for _, e := range m.entries {
		if e.rec != nil {
			out = append(out, *e.rec)
		}
	}
	return out
}

// IsEmpty reports whether the map carries no entries — used by Chain.Add
// to skip pushing a no-op frame (keeping `styles + empty == styles`, §8).
func (m *Map) IsEmpty() bool {
	return m == nil || len(m.entries) == 0
}
