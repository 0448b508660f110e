package syntax

// This file is the "typed AST view" over the green tree §3 calls for:
// thin accessor methods that destructure a SyntaxNode of a known Kind
// into its meaningful parts, so eval never pattern-matches on
// Children[i] offsets directly.

// HeadingLevel returns the number of '=' in a SynHeading's marker.
func (n *SyntaxNode) HeadingLevel() int {
	if lvl, ok := n.Value.(int); ok {
		return lvl
	}
	return 1
}

// LetName returns a SynLetBinding's bound identifier.
func (n *SyntaxNode) LetName() string { return n.Text }

// LetValue returns the bound expression (the closure body, if Params is
// present).
func (n *SyntaxNode) LetValue() *SyntaxNode {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LetParams returns the parameter list for `let f(a, b) = ...`, or nil
// for a plain binding.
func (n *SyntaxNode) LetParams() *SyntaxNode {
	for _, c := range n.Children {
		if c.Kind == SynParams {
			return c
		}
	}
	return nil
}

// ParamNames returns a SynParams node's parameter identifiers in order.
func (n *SyntaxNode) ParamNames() []string {
	out := make([]string, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.Text
	}
	return out
}

// SetTarget/SetCondition destructure a SynSetRule.
func (n *SyntaxNode) SetTarget() *SyntaxNode    { return n.Children[0] }
func (n *SyntaxNode) SetCondition() *SyntaxNode {
	if len(n.Children) > 1 {
		return n.Children[1]
	}
	return nil
}

// ShowSelector/ShowTransform destructure a SynShowRule. ShowSelector is
// nil for a bare `show: transform`.
func (n *SyntaxNode) ShowSelector() *SyntaxNode {
	if len(n.Children) == 2 {
		return n.Children[0]
	}
	return nil
}

func (n *SyntaxNode) ShowTransform() *SyntaxNode {
	return n.Children[len(n.Children)-1]
}

// IfCond/IfThen/IfElse destructure a SynIfExpr; IfElse is nil when there
// is no else branch.
func (n *SyntaxNode) IfCond() *SyntaxNode { return n.Children[0] }
func (n *SyntaxNode) IfThen() *SyntaxNode { return n.Children[1] }
func (n *SyntaxNode) IfElse() *SyntaxNode {
	if len(n.Children) > 2 {
		return n.Children[2]
	}
	return nil
}

// WhileCond/WhileBody destructure a SynWhileLoop.
func (n *SyntaxNode) WhileCond() *SyntaxNode { return n.Children[0] }
func (n *SyntaxNode) WhileBody() *SyntaxNode { return n.Children[1] }

// ForName/ForIter/ForBody destructure a SynForLoop.
func (n *SyntaxNode) ForName() string       { return n.Text }
func (n *SyntaxNode) ForIter() *SyntaxNode   { return n.Children[0] }
func (n *SyntaxNode) ForBody() *SyntaxNode   { return n.Children[1] }

// CallCallee/CallArgs destructure a SynFuncCall.
func (n *SyntaxNode) CallCallee() *SyntaxNode { return n.Children[0] }
func (n *SyntaxNode) CallArgs() *SyntaxNode   { return n.Children[1] }

// PositionalArgs and NamedArgs split a SynArgs node's children; a
// trailing SynContentBlock argument (the `f(..)[content]` sugar) is
// returned as the final positional argument.
func (n *SyntaxNode) PositionalArgs() []*SyntaxNode {
	var out []*SyntaxNode
	for _, c := range n.Children {
		if c.Kind != SynNamedArg {
			out = append(out, c)
		}
	}
	return out
}

func (n *SyntaxNode) NamedArgs() []*SyntaxNode {
	var out []*SyntaxNode
	for _, c := range n.Children {
		if c.Kind == SynNamedArg {
			out = append(out, c)
		}
	}
	return out
}

// BinaryLeft/BinaryRight destructure a SynBinary/SynUnary node (Right is
// nil for unary).
func (n *SyntaxNode) BinaryLeft() *SyntaxNode { return n.Children[0] }
func (n *SyntaxNode) BinaryRight() *SyntaxNode {
	if len(n.Children) > 1 {
		return n.Children[1]
	}
	return nil
}

// FieldAccessBase returns the object a SynFieldAccess node projects from;
// the field name itself is n.Text.
func (n *SyntaxNode) FieldAccessBase() *SyntaxNode { return n.Children[0] }
