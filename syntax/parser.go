package syntax

import (
	"github.com/inkwell-lang/inkwell/diag"
	"github.com/inkwell-lang/inkwell/source"
)

// Parser is a recursive-descent parser over the token stream the Lexer
// produces, building the green tree directly (no separate CST-then-AST
// pass — the teacher's css/parser.go instead streams grammar events
// straight into its own Stylesheet; here the intermediate SyntaxNode tree
// is kept because §3 requires a lossless tree for incremental reparse,
// which css/parser.go's one-shot Stylesheet never needed).
type Parser struct {
	lex  *Lexer
	tok  Token
	errs []diag.Diagnostic
}

// Parse lexes and parses src's full text as top-level markup, returning
// the root SyntaxNode and every diagnostic found along the way.
func Parse(src *source.Source) (*SyntaxNode, []diag.Diagnostic) {
	p := &Parser{lex: NewLexer(src)}
	p.advance()
	root := p.parseMarkup(0)
	root.Errors = append(root.Errors, p.errs...)
	return root, p.errs
}

func (p *Parser) advance() { p.tok = p.lex.Next() }

func (p *Parser) errorf(span Span, format string, args ...any) {
	p.errs = append(p.errs, diag.Errorf(diag.KindSyntax, span, format, args...))
}

func (p *Parser) expect(k TokKind) Span {
	span := p.tok.Span
	if p.tok.Kind != k {
		p.errorf(p.tok.Span, "expected %s, found %s", k, p.tok.Kind)
		return span
	}
	p.advance()
	return span
}

// parseMarkup parses a run of markup up to EOF or, when depth > 0 (inside
// a `[...]` content block), up to the matching ']'.
func (p *Parser) parseMarkup(depth int) *SyntaxNode {
	start := p.tok.Span
	var children []*SyntaxNode
	for {
		switch p.tok.Kind {
		case TEOF:
			return Node(SynMarkup, start, children...)
		case TRightBracket:
			if depth > 0 {
				return Node(SynMarkup, start, children...)
			}
			p.errorf(p.tok.Span, "unmatched ']'")
			p.advance()
		case TNewline:
			p.advance()
		case TEqRun:
			children = append(children, p.parseHeading())
		case TStar:
			children = append(children, p.parseDelimited(TStar, SynStrong))
		case TUnderscore:
			children = append(children, p.parseDelimited(TUnderscore, SynEmph))
		case THash:
			children = append(children, p.parseCodeEscape())
		case TLeftBracket:
			children = append(children, p.parseContentBlock())
		case TText:
			children = append(children, Leaf(SynText, p.tok.Span, p.tok.Text))
			p.advance()
		default:
			p.errorf(p.tok.Span, "unexpected token %s in markup", p.tok.Kind)
			p.advance()
		}
	}
}

func (p *Parser) parseHeading() *SyntaxNode {
	marker := p.tok.Span
	level := marker.Len()
	p.advance()
	var body []*SyntaxNode
	for p.tok.Kind != TNewline && p.tok.Kind != TEOF && p.tok.Kind != TRightBracket {
		switch p.tok.Kind {
		case THash:
			body = append(body, p.parseCodeEscape())
		case TStar:
			body = append(body, p.parseDelimited(TStar, SynStrong))
		case TUnderscore:
			body = append(body, p.parseDelimited(TUnderscore, SynEmph))
		case TText:
			body = append(body, Leaf(SynText, p.tok.Span, p.tok.Text))
			p.advance()
		default:
			p.advance()
		}
	}
	n := Node(SynHeading, marker, body...)
	n.Value = level
	return n
}

// parseDelimited parses `<delim> ... <delim>`-bracketed emphasis/strong
// text, stopping at the closing delimiter, a newline, or EOF (an
// unclosed delimiter is reported but still yields a best-effort node
// covering what was seen, keeping the tree total per §3).
func (p *Parser) parseDelimited(delim TokKind, kind SyntaxKind) *SyntaxNode {
	start := p.tok.Span
	p.advance()
	var body []*SyntaxNode
	for p.tok.Kind != delim && p.tok.Kind != TNewline && p.tok.Kind != TEOF && p.tok.Kind != TRightBracket {
		if p.tok.Kind == TText {
			body = append(body, Leaf(SynText, p.tok.Span, p.tok.Text))
			p.advance()
			continue
		}
		if p.tok.Kind == THash {
			body = append(body, p.parseCodeEscape())
			continue
		}
		p.advance()
	}
	n := Node(kind, start, body...)
	if p.tok.Kind == delim {
		n.Span = n.Span.Union(p.tok.Span)
		p.advance()
	} else {
		p.errorf(start, "unclosed %s", kind)
	}
	return n
}

func (p *Parser) parseContentBlock() *SyntaxNode {
	start := p.tok.Span
	p.advance() // consume '['
	body := p.parseMarkup(1)
	end := p.expect(TRightBracket)
	n := Node(SynContentBlock, start, body)
	n.Span = n.Span.Union(end)
	return n
}

// parseCodeEscape parses `#` followed by one code expression, popping
// the lexer back to markup mode unless the expression itself ended in a
// trailing content block (which already closed its own mode frame).
func (p *Parser) parseCodeEscape() *SyntaxNode {
	start := p.tok.Span
	p.advance() // consume '#', lexer already pushed modeCode
	expr := p.parseExpr(0)
	p.lex.PopToMarkup()
	p.advance()
	return Node(SynCodeEscape, start, expr)
}

// --- code expressions ---

// binPrec gives each binary operator's precedence; "and"/"or" (TKeyword
// text, not a distinct TokKind) are handled separately in parseExpr at
// precedence 1, below every entry here.
var binPrec = map[TokKind]int{
	TEqEq: 3, TNotEq: 3, TLt: 3, TLtEq: 3, TGt: 3, TGtEq: 3,
	TPlus: 4, TMinus: 4,
	TSlash: 5, TPercent: 5,
	TDotDot: 2,
}

func (p *Parser) keywordIs(s string) bool {
	return p.tok.Kind == TKeyword && p.tok.Text == s
}

func (p *Parser) parseExpr(minPrec int) *SyntaxNode {
	left := p.parseUnary()
	for {
		if p.keywordIs("and") || p.keywordIs("or") {
			op := p.tok
			prec := 1
			if prec < minPrec {
				break
			}
			p.advance()
			right := p.parseExpr(prec + 1)
			n := Node(SynBinary, left.Span, left, right)
			n.Op = TKeyword
			n.Text = op.Text
			left = n
			continue
		}
		prec, ok := binPrec[p.tok.Kind]
		if !ok || p.tok.Kind == TKeyword || prec < minPrec {
			break
		}
		op := p.tok.Kind
		p.advance()
		right := p.parseExpr(prec + 1)
		n := Node(SynBinary, left.Span, left, right)
		n.Op = op
		left = n
	}
	return left
}

func (p *Parser) parseUnary() *SyntaxNode {
	if p.tok.Kind == TMinus || p.keywordIs("not") {
		op := p.tok
		p.advance()
		operand := p.parseUnary()
		n := Node(SynUnary, op.Span, operand)
		n.Op = op.Kind
		n.Text = op.Text
		return n
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() *SyntaxNode {
	e := p.parsePrimary()
	for {
		switch p.tok.Kind {
		case TDot:
			p.advance()
			field := p.tok
			p.expect(TIdent)
			n := Node(SynFieldAccess, e.Span, e)
			n.Text = field.Text
			e = n
		case TLeftParen:
			e = p.parseCall(e)
		case TLeftBracket:
			block := p.parseContentBlock()
			call := Node(SynFuncCall, e.Span, e, Node(SynArgs, block.Span, block))
			e = call
		default:
			return e
		}
	}
}

func (p *Parser) parseCall(callee *SyntaxNode) *SyntaxNode {
	start := p.tok.Span
	p.advance() // '('
	var args []*SyntaxNode
	for p.tok.Kind != TRightParen && p.tok.Kind != TEOF {
		if p.tok.Kind == TIdent {
			save := p.tok
			// lookahead for `name: value` named arg without backtracking
			// the whole lexer: peek is approximated by trying colon next.
			p.advance()
			if p.tok.Kind == TColon {
				p.advance()
				val := p.parseExpr(0)
				n := Node(SynNamedArg, save.Span, val)
				n.Text = save.Text
				args = append(args, n)
			} else {
				ident := Leaf(SynIdent, save.Span, save.Text)
				args = append(args, p.continuePostfixFrom(ident))
			}
		} else {
			args = append(args, p.parseExpr(0))
		}
		if p.tok.Kind == TComma {
			p.advance()
		}
	}
	end := p.tok.Span
	p.expect(TRightParen)
	argsNode := Node(SynArgs, start, args...)
	argsNode.Span = argsNode.Span.Union(end)
	n := Node(SynFuncCall, callee.Span, callee, argsNode)
	if p.tok.Kind == TLeftBracket {
		block := p.parseContentBlock()
		argsNode.Children = append(argsNode.Children, block)
	}
	return n
}

// continuePostfixFrom resumes postfix/binary parsing when parseCall has
// already consumed a leading identifier to check for the `name:` named-arg
// form and found it wasn't one.
func (p *Parser) continuePostfixFrom(start *SyntaxNode) *SyntaxNode {
	e := start
	for {
		switch p.tok.Kind {
		case TDot:
			p.advance()
			field := p.tok
			p.expect(TIdent)
			n := Node(SynFieldAccess, e.Span, e)
			n.Text = field.Text
			e = n
		case TLeftParen:
			e = p.parseCall(e)
		default:
			return p.continueBinaryFrom(e)
		}
	}
}

func (p *Parser) continueBinaryFrom(left *SyntaxNode) *SyntaxNode {
	for {
		prec, ok := binPrec[p.tok.Kind]
		if !ok || p.tok.Kind == TKeyword {
			return left
		}
		op := p.tok.Kind
		p.advance()
		right := p.parseExpr(prec + 1)
		n := Node(SynBinary, left.Span, left, right)
		n.Op = op
		left = n
	}
}

func (p *Parser) parsePrimary() *SyntaxNode {
	switch {
	case p.tok.Kind == TIdent:
		n := Leaf(SynIdent, p.tok.Span, p.tok.Text)
		p.advance()
		return n
	case p.tok.Kind == TString:
		n := Leaf(SynString, p.tok.Span, p.tok.Text)
		p.advance()
		return n
	case p.tok.Kind == TNumber:
		n := Leaf(SynLiteral, p.tok.Span, p.tok.Text)
		p.advance()
		return n
	case p.tok.Kind == TLeftParen:
		start := p.tok.Span
		p.advance()
		inner := p.parseExpr(0)
		end := p.expect(TRightParen)
		inner.Span = start.Union(end)
		return inner
	case p.tok.Kind == TLeftBracket:
		return p.parseContentBlock()
	case p.keywordIs("let"):
		return p.parseLet()
	case p.keywordIs("set"):
		return p.parseSet()
	case p.keywordIs("show"):
		return p.parseShow()
	case p.keywordIs("if"):
		return p.parseIf()
	case p.keywordIs("while"):
		return p.parseWhile()
	case p.keywordIs("for"):
		return p.parseFor()
	case p.keywordIs("return"):
		start := p.tok.Span
		p.advance()
		var val *SyntaxNode
		if p.tok.Kind != TNewline && p.tok.Kind != TRightBracket && p.tok.Kind != TEOF && p.tok.Kind != TSemicolon {
			val = p.parseExpr(0)
		}
		var children []*SyntaxNode
		if val != nil {
			children = append(children, val)
		}
		return Node(SynReturn, start, children...)
	case p.keywordIs("break"):
		n := Leaf(SynBreak, p.tok.Span, "")
		p.advance()
		return n
	case p.keywordIs("continue"):
		n := Leaf(SynContinue, p.tok.Span, "")
		p.advance()
		return n
	case p.keywordIs("none") || p.keywordIs("auto") || p.keywordIs("true") || p.keywordIs("false"):
		n := Leaf(SynLiteral, p.tok.Span, p.tok.Text)
		p.advance()
		return n
	case p.tok.Kind == TLeftBrace:
		return p.parseDict()
	default:
		p.errorf(p.tok.Span, "unexpected token %s in expression", p.tok.Kind)
		n := Leaf(SynError, p.tok.Span, "")
		p.advance()
		return n
	}
}

func (p *Parser) parseDict() *SyntaxNode {
	start := p.tok.Span
	p.advance() // '{'
	var entries []*SyntaxNode
	for p.tok.Kind != TRightBrace && p.tok.Kind != TEOF {
		key := p.tok
		p.expect(TIdent)
		p.expect(TColon)
		val := p.parseExpr(0)
		n := Node(SynNamedArg, key.Span, val)
		n.Text = key.Text
		entries = append(entries, n)
		if p.tok.Kind == TComma {
			p.advance()
		}
	}
	end := p.expect(TRightBrace)
	n := Node(SynDict, start, entries...)
	n.Span = n.Span.Union(end)
	return n
}

func (p *Parser) parseLet() *SyntaxNode {
	start := p.tok.Span
	p.advance()
	name := p.tok
	p.expect(TIdent)
	var params *SyntaxNode
	if p.tok.Kind == TLeftParen {
		params = p.parseParams()
	}
	p.expect(TEq)
	val := p.parseExpr(0)
	children := []*SyntaxNode{val}
	if params != nil {
		children = append(children, params)
	}
	n := Node(SynLetBinding, start, children...)
	n.Text = name.Text
	return n
}

func (p *Parser) parseParams() *SyntaxNode {
	start := p.tok.Span
	p.advance() // '('
	var params []*SyntaxNode
	for p.tok.Kind != TRightParen && p.tok.Kind != TEOF {
		name := p.tok
		p.expect(TIdent)
		params = append(params, Leaf(SynIdent, name.Span, name.Text))
		if p.tok.Kind == TComma {
			p.advance()
		}
	}
	end := p.expect(TRightParen)
	n := Node(SynParams, start, params...)
	n.Span = n.Span.Union(end)
	return n
}

func (p *Parser) parseSet() *SyntaxNode {
	start := p.tok.Span
	p.advance()
	target := p.parsePostfix()
	var cond *SyntaxNode
	if p.keywordIs("if") {
		p.advance()
		cond = p.parseExpr(0)
	}
	children := []*SyntaxNode{target}
	if cond != nil {
		children = append(children, cond)
	}
	return Node(SynSetRule, start, children...)
}

func (p *Parser) parseShow() *SyntaxNode {
	start := p.tok.Span
	p.advance()
	var selector *SyntaxNode
	if !p.keywordIsColonFollows() {
		selector = p.parseExpr(0)
	}
	p.expect(TColon)
	transform := p.parseExpr(0)
	children := []*SyntaxNode{transform}
	if selector != nil {
		children = append([]*SyntaxNode{selector}, children...)
	}
	return Node(SynShowRule, start, children...)
}

// keywordIsColonFollows reports a bare `show: transform` (no selector,
// applies to everything in scope) by checking whether ':' is the very
// next token.
func (p *Parser) keywordIsColonFollows() bool {
	return p.tok.Kind == TColon
}

func (p *Parser) parseIf() *SyntaxNode {
	start := p.tok.Span
	p.advance()
	cond := p.parseExpr(0)
	then := p.parseExpr(0)
	children := []*SyntaxNode{cond, then}
	if p.keywordIs("else") {
		p.advance()
		els := p.parseExpr(0)
		children = append(children, els)
	}
	return Node(SynIfExpr, start, children...)
}

func (p *Parser) parseWhile() *SyntaxNode {
	start := p.tok.Span
	p.advance()
	cond := p.parseExpr(0)
	body := p.parseExpr(0)
	return Node(SynWhileLoop, start, cond, body)
}

func (p *Parser) parseFor() *SyntaxNode {
	start := p.tok.Span
	p.advance()
	name := p.tok
	p.expect(TIdent)
	if !p.keywordIs("in") {
		p.errorf(p.tok.Span, "expected 'in'")
	} else {
		p.advance()
	}
	iter := p.parseExpr(0)
	body := p.parseExpr(0)
	n := Node(SynForLoop, start, iter, body)
	n.Text = name.Text
	return n
}
