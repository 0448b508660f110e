package style

// Chain is an immutable stack of Maps, innermost first. Chains are
// value-typed and shared via structural sharing (a new frame just points
// at its parent) rather than copying, the same persistence the content
// package uses for its copy-on-write Content tree.
type Chain struct {
	maps []*Map // index 0 is innermost
}

// Empty is the identity chain: Get on it always returns each key's
// default, and `chain.Add(empty) == chain` (§8: "styles + empty ==
// styles").
var Empty = Chain{}

// Add pushes a new innermost map onto the chain, returning a new Chain
// (the receiver is left unmodified). Adding an empty map is a no-op,
// preserving the `styles + empty == styles` law.
func (c Chain) Add(m *Map) Chain {
	if m.IsEmpty() {
		return c
	}
	next := make([]*Map, 0, len(c.maps)+1)
	next = append(next, m)
	next = append(next, c.maps...)
	return Chain{maps: next}
}

// Get looks up key by walking from innermost to outermost. For a
// replace-semantics key, the first matching entry wins (§4.5 step 2,
// "if fold is replace — return the first hit"). For a foldable key, every
// matching entry accumulates via key.fold in innermost-to-outermost order,
// then the accumulator is folded once more against the key's initial
// value (§8 invariant 3: "fold(b,a) for foldable p (innermost folded into
// outer)").
func (c Chain) Get(key Key) any {
	if !key.Foldable() {
		for _, m := range c.maps {
			if v, ok := lookupReplace(m, key); ok {
				return v
			}
		}
		return key.initial
	}

	var acc any
	haveAcc := false
	for _, m := range c.maps {
		for _, v := range valuesFor(m, key) {
			if !haveAcc {
				acc = v
				haveAcc = true
				continue
			}
			acc = key.fold(acc, v)
		}
	}
	if !haveAcc {
		return key.initial
	}
	return key.fold(acc, key.initial)
}

// lookupReplace returns the innermost-scope value for key within a single
// map (a map itself may carry multiple set(key, ...) entries if the
// evaluator re-executed a set statement; the last one in evaluation order
// wins within the scope).
func lookupReplace(m *Map, key Key) (any, bool) {
	var found any
	ok := false
	for _, e := range m.entries {
		if e.rec == nil && e.key.name == key.name {
			found = e.value
			ok = true
		}
	}
	return found, ok
}

// valuesFor returns every value assigned to key within a single map, in
// evaluation order, for fold accumulation.
func valuesFor(m *Map, key Key) []any {
	var out []any
	for _, e := range m.entries {
		if e.rec == nil && e.key.name == key.name {
			out = append(out, e.value)
		}
	}
	return out
}

// Recipes returns every recipe in the chain, innermost-first — the order
// §4.5 step 2 requires dispatch to apply in ("apply the innermost first").
func (c Chain) Recipes() []Recipe {
	var out []Recipe
	for _, m := range c.maps {
		out = append(out, m.Recipes()...)
	}
	return out
}

// Depth returns the number of non-empty frames pushed onto the chain,
// mostly useful for tests asserting structural sharing behaviour.
func (c Chain) Depth() int { return len(c.maps) }
