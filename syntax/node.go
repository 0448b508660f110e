package syntax

import "github.com/inkwell-lang/inkwell/diag"

// SyntaxKind tags a green-tree node. Unlike the token kinds, syntax kinds
// name syntactic constructs (a whole heading, a whole function call), not
// individual lexemes.
type SyntaxKind int

const (
	SynMarkup SyntaxKind = iota
	SynText
	SynStrong
	SynEmph
	SynHeading
	SynParagraph
	SynCodeEscape // `#expr` inside markup
	SynContentBlock
	SynIdent
	SynLiteral
	SynString
	SynArray
	SynDict
	SynFuncCall
	SynArgs
	SynNamedArg
	SynLetBinding
	SynSetRule
	SynShowRule
	SynIfExpr
	SynWhileLoop
	SynForLoop
	SynClosure
	SynParams
	SynBinary
	SynUnary
	SynReturn
	SynBreak
	SynContinue
	SynImport
	SynFieldAccess
	SynError
)

func (k SyntaxKind) String() string {
	names := [...]string{
		"markup", "text", "strong", "emph", "heading", "paragraph",
		"code-escape", "content-block", "ident", "literal", "string",
		"array", "dict", "func-call", "args", "named-arg", "let-binding",
		"set-rule", "show-rule", "if-expr", "while-loop", "for-loop",
		"closure", "params", "binary", "unary", "return", "break",
		"continue", "import", "field-access", "error",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// SyntaxNode is one node of the lossless green tree (§3: "a lossless
// concrete syntax tree... every byte of source is accounted for by some
// node"). Leaves carry Text; interior nodes carry Children. Errors
// attaches parse diagnostics discovered while building this node, so a
// single malformed construct doesn't need to abort the whole parse.
type SyntaxNode struct {
	Kind     SyntaxKind
	Span     Span
	Text     string
	Children []*SyntaxNode
	Errors   []diag.Diagnostic

	// Op/Value carry kind-specific payloads too irregular to model as
	// children (Op for SynBinary/SynUnary, a pre-parsed literal Value for
	// SynLiteral) without inventing a new node per variant.
	Op    TokKind
	Value any
}

// Leaf builds a childless node covering span.
func Leaf(kind SyntaxKind, span Span, text string) *SyntaxNode {
	return &SyntaxNode{Kind: kind, Span: span, Text: text}
}

// Node builds an interior node whose span is the union of its children's
// spans (or the given span if there are none).
func Node(kind SyntaxKind, span Span, children ...*SyntaxNode) *SyntaxNode {
	n := &SyntaxNode{Kind: kind, Span: span, Children: children}
	for _, c := range children {
		if c == nil {
			continue
		}
		n.Span = n.Span.Union(c.Span)
	}
	return n
}

// Len returns the number of bytes this node's span covers, the green
// tree's notion of node length used by incremental reparse to find which
// subtree an edit falls within without re-walking byte offsets.
func (n *SyntaxNode) Len() int { return n.Span.Len() }

// Walk calls visit for n and every descendant, depth-first pre-order.
func (n *SyntaxNode) Walk(visit func(*SyntaxNode)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// AllErrors collects every diagnostic attached anywhere in the subtree.
func (n *SyntaxNode) AllErrors() []diag.Diagnostic {
	var out []diag.Diagnostic
	n.Walk(func(c *SyntaxNode) {
		out = append(out, c.Errors...)
	})
	return out
}
