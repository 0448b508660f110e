package syntax

import (
	"github.com/inkwell-lang/inkwell/diag"
	"github.com/inkwell-lang/inkwell/source"
)

// triggerBytes are the characters whose presence changes how surrounding
// markup tokenizes (heading markers, emphasis delimiters, escapes, block
// brackets). An edit that inserts or removes none of these, and that
// lands entirely inside one SynText leaf, cannot change any token
// boundary outside that leaf — the reparser's sole fast path.
func hasTrigger(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '=', '*', '_', '#', '[', ']', '\n':
			return true
		}
	}
	return false
}

// findTextLeaf returns the single SynText leaf whose span fully contains
// [start,end), or nil if no such leaf exists (the edit spans a node
// boundary, or lands in a non-text node).
func findTextLeaf(n *SyntaxNode, start, end int) *SyntaxNode {
	if n.Kind == SynText && n.Span.Start <= start && end <= n.Span.End {
		return n
	}
	for _, c := range n.Children {
		if c.Span.Start <= start && end <= c.Span.End {
			return findTextLeaf(c, start, end)
		}
	}
	return nil
}

// Reparse incrementally updates old (the tree parsed from the source
// text before the edit) for an edit replacing the byte range [start,end)
// with replacement. newSrc must already be oldSrc.Edit(start,end,
// replacement). When the edit falls entirely inside one text leaf and
// introduces no token-boundary trigger character, only that leaf (and
// the spans of its ancestors) is patched in place; every other subtree is
// reused by pointer, satisfying §3's "incremental reparse... reuses
// unaffected subtrees". Anything else falls back to a full Parse.
func Reparse(old *SyntaxNode, newSrc *source.Source, start, end int, replacement string) (*SyntaxNode, []diag.Diagnostic) {
	if hasTrigger(replacement) {
		return Parse(newSrc)
	}
	leaf := findTextLeaf(old, start, end)
	if leaf == nil {
		return Parse(newSrc)
	}

	delta := len(replacement) - (end - start)
	grownEnd := leaf.Span.End + delta
	if hasTrigger(newSrc.Slice(source.Span{File: leaf.Span.File, Start: leaf.Span.Start, End: grownEnd})) {
		return Parse(newSrc)
	}

	patched := patchSpans(old, start, delta)
	newLeaf := findTextLeaf(patched, leaf.Span.Start, leaf.Span.Start)
	if newLeaf != nil {
		newLeaf.Text = newSrc.Slice(newLeaf.Span)
	}
	return patched, patched.AllErrors()
}

// patchSpans returns a structurally-shared copy of n with every span that
// starts at or after the edit point shifted by delta bytes, and every
// span that contains the edit point extended/shrunk by delta. Nodes
// entirely before the edit point are reused unchanged (same pointer),
// which is the "reuse unaffected subtrees" payoff.
func patchSpans(n *SyntaxNode, editStart, delta int) *SyntaxNode {
	if n.Span.End <= editStart {
		return n // wholly before the edit: untouched, same pointer
	}
	cp := *n
	if n.Span.Start >= editStart {
		cp.Span.Start += delta
	}
	cp.Span.End += delta
	if len(n.Children) > 0 {
		cp.Children = make([]*SyntaxNode, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = patchSpans(c, editStart, delta)
		}
	}
	return &cp
}
