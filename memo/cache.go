// Package memo implements the tracked-input memoisation cache of §4.8
// (component J): call-site interning keyed by function identity plus
// by-value arguments, invalidated when the World accesses the cached call
// made now differ in method, key or whether they failed (the values the
// accesses returned are not compared), evicted LRU-by-generation.
package memo

import (
	"sync"

	"github.com/inkwell-lang/inkwell/world"
)

// Key identifies one cached call: Site distinguishes call sites sharing
// the same function (so two different `#let` bindings calling the same
// stdlib function don't collide), and Args is a comparable encoding of
// the by-value arguments (callers build this, typically by formatting
// the argument values — the cache itself is argument-type-agnostic).
type Key struct {
	Site string
	Args string
}

type entry struct {
	value      any
	accesses   []world.Access
	generation int
}

// Cache is the process-wide memoisation table. It is safe for concurrent
// reads (Get takes an RLock) and uses a short critical section for
// writes (Put), per §5's "internally synchronised for shared read
// access; writes use short critical sections".
type Cache struct {
	mu         sync.RWMutex
	entries    map[Key]*entry
	generation int
	maxEntries int
	maxGens    int
}

func NewCache(maxEntries, maxGenerationsRetained int) *Cache {
	if maxGenerationsRetained < 1 {
		maxGenerationsRetained = 1
	}
	return &Cache{
		entries:    make(map[Key]*entry),
		maxEntries: maxEntries,
		maxGens:    maxGenerationsRetained,
	}
}

// Advance starts a new generation (§4.8: "a generation advances at the
// top of each introspection iteration") and evicts every entry untouched
// for maxGens generations.
func (c *Cache) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	for k, e := range c.entries {
		if c.generation-e.generation >= c.maxGens {
			delete(c.entries, k)
		}
	}
}

// Get returns the cached value for key if present and the access list
// current returns agrees with the recorded one position by position:
// same length, and at each position the same Method, the same Key and an
// error on both sides or on neither. The values the accesses returned
// are not compared, so a World whose answer for the same key changed
// without a change in error status still gets the cached value.
func (c *Cache) Get(key Key, current func() []world.Access) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	replay := current()
	if !accessesAgree(e.accesses, replay) {
		return nil, false
	}
	c.mu.Lock()
	e.generation = c.generation
	c.mu.Unlock()
	return e.value, true
}

// Put records value as the result of key, tagged with the World accesses
// made while computing it (so a future Get can detect staleness) and the
// current generation.
func (c *Cache) Put(key Key, value any, accesses []world.Access) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = &entry{value: value, accesses: accesses, generation: c.generation}
}

// evictOldestLocked drops one entry from the oldest generation present,
// called with c.mu held. Ties break arbitrarily (map iteration order),
// which is acceptable since all tied entries are equally eligible.
func (c *Cache) evictOldestLocked() {
	var oldestKey Key
	oldestGen := c.generation + 1
	found := false
	for k, e := range c.entries {
		if e.generation < oldestGen {
			oldestGen = e.generation
			oldestKey = k
			found = true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

// Len reports the number of live entries, mostly for tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func accessesAgree(recorded, current []world.Access) bool {
	if len(recorded) != len(current) {
		return false
	}
	for i := range recorded {
		a, b := recorded[i], current[i]
		if a.Method != b.Method || a.Key != b.Key {
			return false
		}
		if (a.Err == nil) != (b.Err == nil) {
			return false
		}
	}
	return true
}
