// Package content implements the Content tree of §3 (component G's input,
// produced by eval): a tree of element instances, each with a kind, named
// fields, optional label, attached styles, and a span. Content composes
// by sequencing and by wrapping, with empty content as the sequencing
// identity.
package content

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/inkwell-lang/inkwell/source"
	"github.com/inkwell-lang/inkwell/style"
)

// Content is a single element instance or a sequence/wrapper node. Nodes
// are value-typed and shared via copy-on-write: Seq/Wrap never mutate
// their operands, only build a new slice/node referencing them.
type Content struct {
	Kind     string
	Fields   map[string]any
	label    string
	hasLabel bool
	Styles   *style.Map // local style entries attached at this node, nil if none
	Span     source.Span
	Children []Content
}

// newTagID mints a unique synthetic id for an anonymous (unlabeled)
// element so two auto-inserted location tags never collide structurally
// — the same synthetic-identity problem the teacher's `github.com/
// google/uuid` usage solves for synthetic FileIds, reused here for
// content identity.
func newTagID() string {
	return uuid.NewString()
}

// Empty is the sequencing identity: `Empty.Seq(c) == c` and
// `c.Seq(Empty) == c` (§8: "empty with Empty as unit").
var Empty = Content{Kind: "sequence"}

// Text builds a leaf text element.
func Text(s string, span source.Span) Content {
	return Content{Kind: "text", Fields: map[string]any{"text": s}, Span: span}
}

// Elem builds an element instance of the given kind with the given
// fields, wrapping children.
func Elem(kind string, fields map[string]any, span source.Span, children ...Content) Content {
	return Content{Kind: kind, Fields: fields, Span: span, Children: children}
}

// Seq concatenates c with others into a flat sequence. Concatenation is
// associative with Empty as unit (§3).
func (c Content) Seq(others ...Content) Content {
	out := Content{Kind: "sequence"}
	if c.Kind == "sequence" {
		out.Children = append(out.Children, c.Children...)
	} else if !c.IsEmpty() {
		out.Children = append(out.Children, c)
	}
	for _, o := range others {
		if o.Kind == "sequence" {
			out.Children = append(out.Children, o.Children...)
		} else if !o.IsEmpty() {
			out.Children = append(out.Children, o)
		}
	}
	return out
}

// IsEmpty reports whether c is the sequencing identity.
func (c Content) IsEmpty() bool {
	return c.Kind == "sequence" && len(c.Children) == 0 && c.Styles == nil
}

// WithStyles returns a copy of c with m folded in as its locally-attached
// style entries (the teacher-analogue-free mechanism by which `set`/`show`
// inside a block attach to the content that block produced, per §4.4's
// "Evaluating set f(args…) ... is appended to the active style map").
func (c Content) WithStyles(m *style.Map) Content {
	c.Styles = m
	return c
}

// Labeled returns a copy of c carrying label. If label is empty, a fresh
// synthetic label is minted so every realized element has a stable
// identity for introspection queries even when the user supplied none.
func (c Content) Labeled(label string) Content {
	if label == "" {
		label = "tag-" + newTagID()
	}
	c.label = label
	c.hasLabel = true
	return c
}

// The following four methods implement style.Matchable so Content can be
// matched by show-rule selectors without style importing content (which
// would cycle, since content needs style.Map for Styles).

func (c Content) ElementKind() string { return c.Kind }

func (c Content) Field(name string) (any, bool) {
	v, ok := c.Fields[name]
	return v, ok
}

func (c Content) Label() (string, bool) { return c.label, c.hasLabel }

func (c Content) Location() string {
	return c.Span.File.String() + ":" + strconv.Itoa(c.Span.Start)
}
