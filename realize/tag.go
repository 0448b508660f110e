package realize

import "github.com/google/uuid"

// Tag is the stable identity introspect.Loop and layout attach to a
// realized Element so later queries (`query(selector)`, `counter(...)
// .at(loc)`) can reference "this particular realized instance" even
// across re-realization passes of the fixed-point loop. Anonymous
// elements (no user label) get a fresh uuid each realize pass; labeled
// elements keep their label as the stable half of the identity instead,
// so counters keyed off a label survive a convergence re-run unchanged.
type Tag struct {
	ID    string
	Label string
}

func newAnonymousTag() Tag {
	return Tag{ID: uuid.NewString()}
}

func labeledTag(label string) Tag {
	return Tag{ID: label, Label: label}
}
