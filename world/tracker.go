package world

import (
	"sync"
	"time"

	"github.com/inkwell-lang/inkwell/source"
)

// Access records one World method call: its method, its key and the
// error it returned; the returned value itself is not kept. memo
// (package memo) compares recorded accesses against fresh ones by these
// fields, invalidating any cached call whose recorded accesses no longer
// agree (§5:
// "Memoisation never reorders observable World accesses relative to a
// from-scratch run").
type Access struct {
	Method string // "source", "file", "font", "today"
	Key    any    // source.FileId, int index, or nil for today()
	Err    error
}

// Tracker wraps a World, recording every access in call order. The
// compile package wraps the main World in one and logs how many accesses
// it recorded; the introspection loop does not read Tracker.Accesses().
type Tracker struct {
	inner World

	mu       sync.Mutex
	accesses []Access
}

func NewTracker(inner World) *Tracker {
	return &Tracker{inner: inner}
}

func (t *Tracker) record(a Access) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.accesses = append(t.accesses, a)
}

// Accesses returns a copy of the accesses recorded so far, in call order.
func (t *Tracker) Accesses() []Access {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Access, len(t.accesses))
	copy(out, t.accesses)
	return out
}

func (t *Tracker) Library() Library { return t.inner.Library() }
func (t *Tracker) Book() FontBook   { return t.inner.Book() }
func (t *Tracker) Main() *source.Source { return t.inner.Main() }

func (t *Tracker) Source(id source.FileId) (*source.Source, error) {
	src, err := t.inner.Source(id)
	t.record(Access{Method: "source", Key: id, Err: err})
	return src, err
}

func (t *Tracker) File(id source.FileId) ([]byte, error) {
	data, err := t.inner.File(id)
	t.record(Access{Method: "file", Key: id, Err: err})
	return data, err
}

func (t *Tracker) Font(index int) (Font, bool) {
	f, ok := t.inner.Font(index)
	t.record(Access{Method: "font", Key: index})
	return f, ok
}

func (t *Tracker) Today(utcOffsetMinutes *int) (*time.Time, bool) {
	d, ok := t.inner.Today(utcOffsetMinutes)
	var offset int
	if utcOffsetMinutes != nil {
		offset = *utcOffsetMinutes
	}
	t.record(Access{Method: "today", Key: offset})
	return d, ok
}

var _ World = (*Tracker)(nil)
