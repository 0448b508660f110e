package memo

import (
	"testing"

	"github.com/inkwell-lang/inkwell/world"
)

func TestCacheHitWhenAccessesAgree(t *testing.T) {
	c := NewCache(10, 3)
	key := Key{Site: "fn@1", Args: `"a"`}
	accesses := []world.Access{{Method: "font", Key: 2}}

	c.Put(key, 42, accesses)

	got, ok := c.Get(key, func() []world.Access { return accesses })
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if got.(int) != 42 {
		t.Fatalf("got %v, want 42", got)
	}
}

func TestCacheMissWhenAccessesDiffer(t *testing.T) {
	c := NewCache(10, 3)
	key := Key{Site: "fn@1", Args: `"a"`}
	c.Put(key, 42, []world.Access{{Method: "font", Key: 2}})

	_, ok := c.Get(key, func() []world.Access {
		return []world.Access{{Method: "font", Key: 3}}
	})
	if ok {
		t.Fatalf("expected cache miss after access change")
	}
}

func TestCacheMissWhenErrPresenceDiffers(t *testing.T) {
	c := NewCache(10, 3)
	key := Key{Site: "fn@1"}
	c.Put(key, 1, []world.Access{{Method: "file", Key: 0, Err: nil}})

	_, ok := c.Get(key, func() []world.Access {
		return []world.Access{{Method: "file", Key: 0, Err: errBoom}}
	})
	if ok {
		t.Fatalf("expected cache miss when error presence changes")
	}
}

func TestAdvanceEvictsAfterMaxGenerations(t *testing.T) {
	c := NewCache(10, 2)
	key := Key{Site: "fn@1"}
	c.Put(key, 1, nil)

	c.Advance() // generation 1, entry untouched since generation 0 -> retained (diff 1 < 2)
	if c.Len() != 1 {
		t.Fatalf("expected entry retained after one generation, got len=%d", c.Len())
	}

	c.Advance() // generation 2, diff 2 >= maxGens(2) -> evicted
	if c.Len() != 0 {
		t.Fatalf("expected entry evicted after maxGenerationsRetained, got len=%d", c.Len())
	}
}

func TestPutEvictsOldestWhenFull(t *testing.T) {
	c := NewCache(2, 10)
	c.Put(Key{Site: "a"}, 1, nil)
	c.Advance()
	c.Put(Key{Site: "b"}, 2, nil)
	c.Put(Key{Site: "c"}, 3, nil) // cache full (2 entries), evicts oldest generation ("a")

	if _, ok := c.Get(Key{Site: "a"}, func() []world.Access { return nil }); ok {
		t.Fatalf("expected oldest entry evicted")
	}
	if c.Len() != 2 {
		t.Fatalf("expected len 2, got %d", c.Len())
	}
}

var errBoom = errTest("boom")

type errTest string

func (e errTest) Error() string { return string(e) }
