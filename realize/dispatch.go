// Package realize implements the show-rule dispatch loop of §4.4
// (component G): walking evaluated content, matching style.Chain
// recipes innermost-first, applying the first match, and re-dispatching
// the result until every node either matches no recipe or hits the
// recursion guard — at which point the node's default per-kind show is
// used and a Tag/counter update is recorded for introspection.
package realize

import (
	"fmt"

	"github.com/gosimple/slug"

	"github.com/inkwell-lang/inkwell/content"
	"github.com/inkwell-lang/inkwell/diag"
	"github.com/inkwell-lang/inkwell/style"
)

// Element is one fully-realized node: its show rule (if any) has already
// run, so Kind/Fields reflect what layout should actually draw, and
// Styles is the complete Chain in effect at this point (layout queries
// it directly via Chain.Get rather than re-walking content).
type Element struct {
	Kind     string
	Fields   map[string]any
	Tag      Tag
	Styles   style.Chain
	Children []Element
}

// Realizer holds the state that must survive across the whole content
// tree's dispatch (counters, the recursion guard) — one Realizer per
// realize pass; introspect.Loop constructs a fresh one every iteration
// since counters restart from the top each time content may have
// changed.
type Realizer struct {
	Counters *Registry
	Diags    *diag.Sink

	applied map[appliedKey]bool
}

type appliedKey struct {
	node   string // content.Location(), "" for not-yet-realized synthetic nodes
	recipe int    // index into the dispatching Chain.Recipes() slice
}

func NewRealizer(diags *diag.Sink) *Realizer {
	return &Realizer{Counters: NewRegistry(), Diags: diags, applied: make(map[appliedKey]bool)}
}

// Realize walks c under base (the document-level style.Chain set up by
// #set/#show statements outside any content, if any) and returns the
// realized element tree.
func (r *Realizer) Realize(c content.Content, base style.Chain) ([]Element, error) {
	return r.dispatch(c, base, nil)
}

func (r *Realizer) dispatch(c content.Content, chain style.Chain, ancestors []style.Matchable) ([]Element, error) {
	if c.Kind == "sequence" {
		chain = chain.Add(c.Styles)
		var out []Element
		for _, child := range c.Children {
			els, err := r.dispatch(child, chain, ancestors)
			if err != nil {
				return nil, err
			}
			out = append(out, els...)
		}
		return out, nil
	}

	chain = chain.Add(c.Styles)

	recipes := chain.Recipes()
	for i, rec := range recipes {
		loc := c.Location()
		key := appliedKey{node: loc, recipe: i}
		if r.applied[key] {
			continue
		}
		if !rec.Selector.Matches(c, ancestors) {
			continue
		}
		r.applied[key] = true
		out, styles, err := rec.Apply(c)
		if err != nil {
			return nil, diag.Errorf(diag.KindLayout, c.Span, "show rule failed: %v", err)
		}
		if styles != nil {
			return r.dispatch(c, chain.Add(styles), ancestors)
		}
		if newContent, ok := out.(content.Content); ok {
			return r.dispatch(newContent, chain, ancestors)
		}
		// transform returned something other than content or styles:
		// fall through to default realization of the original node.
		break
	}

	return r.realizeDefault(c, chain, ancestors)
}

// realizeDefault assigns a Tag (minting a counter update for numbered
// kinds) and recurses into children once no recipe claims the node.
func (r *Realizer) realizeDefault(c content.Content, chain style.Chain, ancestors []style.Matchable) ([]Element, error) {
	tag := newAnonymousTag()
	if label, ok := c.Label(); ok {
		tag = labeledTag(label)
	} else if isNumberedKind(c.Kind) {
		tag = labeledTag(slug.Make(fmt.Sprintf("%s-%d", c.Kind, r.Counters.Get(c.Kind).Final()+1)))
	}

	if isNumberedKind(c.Kind) {
		r.Counters.Get(c.Kind).Step(c.Location(), 1)
	}

	childAncestors := append(append([]style.Matchable{}, c), ancestors...)
	var children []Element
	for _, cc := range c.Children {
		els, err := r.dispatch(cc, chain, childAncestors)
		if err != nil {
			return nil, err
		}
		children = append(children, els...)
	}

	return []Element{{
		Kind:     c.Kind,
		Fields:   c.Fields,
		Tag:      tag,
		Styles:   chain,
		Children: children,
	}}, nil
}

func isNumberedKind(kind string) bool {
	return kind == "heading" || kind == "figure"
}
