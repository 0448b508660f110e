// Package style implements the StyleMap/StyleChain/Selector/Recipe model of
// §3 and §4 (component F): cascading property lookup with per-key fold
// semantics, and selector-matched show-rule dispatch.
//
// The selector design generalizes the teacher's CSS selector
// (css/types.go's Selector: Element/Class/Pseudo/Ancestor for descendant
// matching) from element/class/pseudo-element matching over a DOM-like tree
// to kind/field/label/location matching over the content tree, with logical
// composition (and/or/before/after) the CSS selector never needed.
package style

import "github.com/maruel/natural"

// Matchable is the minimal surface a content node must expose for selector
// matching. The content package's Content type satisfies this; style stays
// decoupled from content's concrete representation to avoid an import
// cycle (content depends on style for its embedded StyleChain).
type Matchable interface {
	ElementKind() string
	Field(name string) (any, bool)
	Label() (string, bool)
	// Location returns a stable locator string (e.g. "file:offset") used by
	// before/after ordering predicates; content without a location (not yet
	// realized) returns "".
	Location() string
}

// Kind tags which predicate a Selector applies.
type Kind int

const (
	SelKind     Kind = iota // matches by ElementKind()
	SelField                // matches a field equaling a value
	SelLabel                // matches a specific label
	SelAnd                  // logical conjunction of Subs
	SelOr                   // logical disjunction of Subs
	SelBefore               // matches content whose location precedes an anchor
	SelAfter                // matches content whose location follows an anchor
	SelDescendant           // Base matches only within an ancestor matching Of
)

// Selector is a predicate over content, matched by element kind, field
// equality, label, location ordering, or logical/structural composition.
type Selector struct {
	kind Kind

	elementKind string
	fieldName   string
	fieldValue  any
	label       string

	subs []Selector // SelAnd / SelOr operands

	anchor string   // SelBefore / SelAfter: the locator to compare against
	base   *Selector // SelDescendant: the selector being constrained
	of     *Selector // SelDescendant: the required ancestor selector
}

// OfKind selects content by element kind (e.g. "heading", "figure").
func OfKind(kind string) Selector {
	return Selector{kind: SelKind, elementKind: kind}
}

// WithField selects content whose named field equals value.
func WithField(name string, value any) Selector {
	return Selector{kind: SelField, fieldName: name, fieldValue: value}
}

// WithLabel selects the single element carrying the given label.
func WithLabel(label string) Selector {
	return Selector{kind: SelLabel, label: label}
}

// And returns a selector matching content satisfying every sub-selector.
func And(subs ...Selector) Selector {
	return Selector{kind: SelAnd, subs: subs}
}

// Or returns a selector matching content satisfying any sub-selector.
func Or(subs ...Selector) Selector {
	return Selector{kind: SelOr, subs: subs}
}

// Before returns a selector matching content located earlier in the
// document than the element at anchor.
func Before(anchor string) Selector {
	return Selector{kind: SelBefore, anchor: anchor}
}

// After returns a selector matching content located later in the document
// than the element at anchor.
func After(anchor string) Selector {
	return Selector{kind: SelAfter, anchor: anchor}
}

// Descendant constrains base to only match when some ancestor (supplied by
// the caller through Matches' ancestors argument) satisfies of — mirroring the teacher's
// "p code" descendant selector (css/types.go: Selector.Ancestor), but over
// the content tree's kind/field predicates instead of element/class names.
func Descendant(of, base Selector) Selector {
	b, o := base, of
	return Selector{kind: SelDescendant, base: &b, of: &o}
}

// Matches reports whether c satisfies the selector. ancestors lists c's
// strict ancestors from nearest to furthest, needed only for SelDescendant.
func (s Selector) Matches(c Matchable, ancestors []Matchable) bool {
	switch s.kind {
	case SelKind:
		return c.ElementKind() == s.elementKind
	case SelField:
		v, ok := c.Field(s.fieldName)
		return ok && v == s.fieldValue
	case SelLabel:
		l, ok := c.Label()
		return ok && l == s.label
	case SelAnd:
		for _, sub := range s.subs {
			if !sub.Matches(c, ancestors) {
				return false
			}
		}
		return true
	case SelOr:
		for _, sub := range s.subs {
			if sub.Matches(c, ancestors) {
				return true
			}
		}
		return false
	case SelBefore:
		loc := c.Location()
		return loc != "" && natural.Less(loc, s.anchor)
	case SelAfter:
		loc := c.Location()
		return loc != "" && natural.Less(s.anchor, loc)
	case SelDescendant:
		if !s.base.Matches(c, ancestors) {
			return false
		}
		for _, a := range ancestors {
			if s.of.Matches(a, nil) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsSimple reports whether the selector is a single non-composed predicate
// (kind/field/label), mirroring css/types.go's Selector.IsSimple.
func (s Selector) IsSimple() bool {
	return s.kind == SelKind || s.kind == SelField || s.kind == SelLabel
}
