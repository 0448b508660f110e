package style

import "testing"

func TestChainGetReplace(t *testing.T) {
	key := NewKey("align", "left")

	chain := Empty.Add(NewMap().Set(key, "center"))
	if got := chain.Get(key); got != "center" {
		t.Errorf("Get() = %v, want center", got)
	}

	// Innermost wins over outer for replace semantics.
	chain = chain.Add(NewMap().Set(key, "right"))
	if got := chain.Get(key); got != "right" {
		t.Errorf("Get() after second Add = %v, want right (innermost)", got)
	}
}

func TestChainGetDefault(t *testing.T) {
	key := NewKey("align", "left")
	if got := Empty.Get(key); got != "left" {
		t.Errorf("Get() on empty chain = %v, want default left", got)
	}
}

func TestChainFold(t *testing.T) {
	key := NewFoldKey("margin", 0.0, Sum)

	chain := Empty.Add(NewMap().Set(key, 4.0))
	chain = chain.Add(NewMap().Set(key, 2.0))

	// innermost (2.0) folded with outer (4.0), then with initial (0.0)
	got := chain.Get(key)
	want := 6.0
	if got != want {
		t.Errorf("Get() fold = %v, want %v", got, want)
	}
}

func TestChainAddEmptyIsNoOp(t *testing.T) {
	key := NewKey("align", "left")
	chain := Empty.Add(NewMap().Set(key, "center"))
	same := chain.Add(NewMap())
	if same.Depth() != chain.Depth() {
		t.Errorf("Add(empty) changed depth: %d vs %d", same.Depth(), chain.Depth())
	}
	if same.Get(key) != chain.Get(key) {
		t.Error("Add(empty) changed the resolved value")
	}
}

func TestChainRecipesInnermostFirst(t *testing.T) {
	outer := NewMap().Show(Recipe{Selector: OfKind("a")})
	inner := NewMap().Show(Recipe{Selector: OfKind("b")})

	chain := Empty.Add(outer).Add(inner)
	recs := chain.Recipes()
	if len(recs) != 2 {
		t.Fatalf("Recipes() len = %d, want 2", len(recs))
	}
	if recs[0].Selector.elementKind != "b" {
		t.Errorf("first recipe selector = %q, want innermost (b)", recs[0].Selector.elementKind)
	}
}

// fakeContent is a minimal Matchable for selector tests.
type fakeContent struct {
	kind   string
	fields map[string]any
	label  string
	loc    string
}

func (f fakeContent) ElementKind() string { return f.kind }
func (f fakeContent) Field(name string) (any, bool) {
	v, ok := f.fields[name]
	return v, ok
}
func (f fakeContent) Label() (string, bool) { return f.label, f.label != "" }
func (f fakeContent) Location() string      { return f.loc }

func TestSelectorMatchesKind(t *testing.T) {
	sel := OfKind("heading")
	if !sel.Matches(fakeContent{kind: "heading"}, nil) {
		t.Error("expected heading to match OfKind(heading)")
	}
	if sel.Matches(fakeContent{kind: "paragraph"}, nil) {
		t.Error("did not expect paragraph to match OfKind(heading)")
	}
}

func TestSelectorAndOr(t *testing.T) {
	heading := fakeContent{kind: "heading", fields: map[string]any{"level": 1}}
	sel := And(OfKind("heading"), WithField("level", 1))
	if !sel.Matches(heading, nil) {
		t.Error("expected And selector to match")
	}

	sel2 := Or(OfKind("figure"), OfKind("heading"))
	if !sel2.Matches(heading, nil) {
		t.Error("expected Or selector to match on second branch")
	}
}

func TestSelectorDescendant(t *testing.T) {
	sel := Descendant(OfKind("list"), OfKind("paragraph"))
	item := fakeContent{kind: "paragraph"}
	ancestors := []Matchable{fakeContent{kind: "list"}}
	if !sel.Matches(item, ancestors) {
		t.Error("expected descendant selector to match paragraph under list")
	}
	if sel.Matches(item, nil) {
		t.Error("did not expect descendant selector to match without matching ancestor")
	}
}

func TestSelectorBeforeAfter(t *testing.T) {
	before := Before("doc:100")
	after := After("doc:100")

	early := fakeContent{loc: "doc:050"}
	late := fakeContent{loc: "doc:150"}

	if !before.Matches(early, nil) {
		t.Error("expected early content to match Before")
	}
	if before.Matches(late, nil) {
		t.Error("did not expect late content to match Before")
	}
	if !after.Matches(late, nil) {
		t.Error("expected late content to match After")
	}
}
