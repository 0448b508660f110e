package syntax

import (
	"github.com/tdewolff/parse/v2/buffer"

	"github.com/inkwell-lang/inkwell/source"
)

// mode tracks whether the lexer is scanning prose or an expression; Hash
// and content blocks (`[`/`]`) push/pop it, mirroring the teacher's
// css/parser.go delegating token classification to the grammar state the
// underlying tdewolff/parse/v2 tokenizer is in, generalized here from
// CSS's single at-rule/declaration state machine to markup/code.
type mode int

const (
	modeMarkup mode = iota
	modeCode
)

// Lexer scans a Source into Tokens. It is built directly on
// github.com/tdewolff/parse/v2/buffer.Reader, the same cheap-rewind byte
// cursor the teacher's css/parser.go relies on (there, wrapped by
// tdewolff/parse/v2/css.Parser; here driven directly since no ready-made
// grammar exists for this markup language).
type Lexer struct {
	file   source.FileId
	text   string
	r      *buffer.Reader
	modes  []mode
	atLine bool // true at the start of a markup line (heading/list position)
}

func NewLexer(src *source.Source) *Lexer {
	return &Lexer{
		file:   src.Id(),
		text:   src.Text(),
		r:      buffer.NewReader([]byte(src.Text())),
		modes:  []mode{modeMarkup},
		atLine: true,
	}
}

func (l *Lexer) mode() mode { return l.modes[len(l.modes)-1] }
func (l *Lexer) push(m mode) { l.modes = append(l.modes, m) }
func (l *Lexer) pop() {
	if len(l.modes) > 1 {
		l.modes = l.modes[:len(l.modes)-1]
	}
}

func (l *Lexer) span(start int) Span {
	return Span{File: l.file, Start: start, End: l.r.Pos()}
}

// Next returns the next token, advancing the cursor.
func (l *Lexer) Next() Token {
	if l.mode() == modeMarkup {
		return l.nextMarkup()
	}
	return l.nextCode()
}

func (l *Lexer) nextMarkup() Token {
	start := l.r.Pos()
	c := l.r.Peek(0)
	if c == 0 {
		return Token{Kind: TEOF, Span: l.span(start)}
	}

	switch {
	case c == '\n':
		l.r.Move(1)
		l.atLine = true
		return Token{Kind: TNewline, Span: l.span(start)}
	case c == '=' && l.atLine:
		n := 0
		for l.r.Peek(n) == '=' {
			n++
		}
		l.r.Move(n)
		l.atLine = false
		return Token{Kind: TEqRun, Span: l.span(start), Text: "="}
	case c == '*':
		l.r.Move(1)
		l.atLine = false
		return Token{Kind: TStar, Span: l.span(start)}
	case c == '_':
		l.r.Move(1)
		l.atLine = false
		return Token{Kind: TUnderscore, Span: l.span(start)}
	case c == '#':
		l.r.Move(1)
		l.atLine = false
		l.push(modeCode)
		return Token{Kind: THash, Span: l.span(start)}
	case c == '[':
		l.r.Move(1)
		l.atLine = false
		l.push(modeMarkup)
		return Token{Kind: TLeftBracket, Span: l.span(start)}
	case c == ']':
		l.r.Move(1)
		l.atLine = false
		l.pop()
		return Token{Kind: TRightBracket, Span: l.span(start)}
	default:
		n := 0
		for {
			p := l.r.Peek(n)
			if p == 0 || p == '\n' || p == '=' || p == '*' || p == '_' || p == '#' || p == '[' || p == ']' {
				break
			}
			n++
		}
		if n == 0 {
			// Single unclassifiable byte (e.g. a lone '=' mid-line): emit
			// it as text so the lexer always makes forward progress.
			n = 1
		}
		l.r.Move(n)
		l.atLine = false
		return Token{Kind: TText, Span: l.span(start), Text: l.text[start:l.r.Pos()]}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) nextCode() Token {
	// Skip horizontal whitespace; a newline inside code mode just
	// separates tokens, it never terminates the escape — only the
	// matching ']' (content block) or statement-level heuristics do, so
	// callers (parser) decide when to pop back to markup via PopToMarkup.
	for {
		c := l.r.Peek(0)
		if c == ' ' || c == '\t' || c == '\r' {
			l.r.Move(1)
			continue
		}
		break
	}

	start := l.r.Pos()
	c := l.r.Peek(0)
	switch {
	case c == 0:
		return Token{Kind: TEOF, Span: l.span(start)}
	case c == '\n':
		l.r.Move(1)
		return Token{Kind: TNewline, Span: l.span(start)}
	case c == '[':
		l.r.Move(1)
		l.push(modeMarkup)
		return Token{Kind: TLeftBracket, Span: l.span(start)}
	case c == ']':
		l.r.Move(1)
		l.pop()
		return Token{Kind: TRightBracket, Span: l.span(start)}
	case c == '(':
		l.r.Move(1)
		return Token{Kind: TLeftParen, Span: l.span(start)}
	case c == ')':
		l.r.Move(1)
		return Token{Kind: TRightParen, Span: l.span(start)}
	case c == '{':
		l.r.Move(1)
		return Token{Kind: TLeftBrace, Span: l.span(start)}
	case c == '}':
		l.r.Move(1)
		return Token{Kind: TRightBrace, Span: l.span(start)}
	case c == ':':
		l.r.Move(1)
		return Token{Kind: TColon, Span: l.span(start)}
	case c == ',':
		l.r.Move(1)
		return Token{Kind: TComma, Span: l.span(start)}
	case c == ';':
		l.r.Move(1)
		return Token{Kind: TSemicolon, Span: l.span(start)}
	case c == '.':
		if l.r.Peek(1) == '.' {
			l.r.Move(2)
			return Token{Kind: TDotDot, Span: l.span(start)}
		}
		l.r.Move(1)
		return Token{Kind: TDot, Span: l.span(start)}
	case c == '+':
		l.r.Move(1)
		return Token{Kind: TPlus, Span: l.span(start)}
	case c == '-':
		l.r.Move(1)
		return Token{Kind: TMinus, Span: l.span(start)}
	case c == '/':
		if l.r.Peek(1) == '/' {
			n := 0
			for l.r.Peek(n) != '\n' && l.r.Peek(n) != 0 {
				n++
			}
			l.r.Move(n)
			return l.nextCode()
		}
		l.r.Move(1)
		return Token{Kind: TSlash, Span: l.span(start)}
	case c == '%':
		l.r.Move(1)
		return Token{Kind: TPercent, Span: l.span(start)}
	case c == '=':
		if l.r.Peek(1) == '=' {
			l.r.Move(2)
			return Token{Kind: TEqEq, Span: l.span(start)}
		}
		if l.r.Peek(1) == '>' {
			l.r.Move(2)
			return Token{Kind: TFatArrow, Span: l.span(start)}
		}
		l.r.Move(1)
		return Token{Kind: TEq, Span: l.span(start)}
	case c == '!':
		if l.r.Peek(1) == '=' {
			l.r.Move(2)
			return Token{Kind: TNotEq, Span: l.span(start)}
		}
		l.r.Move(1)
		return Token{Kind: TError, Span: l.span(start), Text: "unexpected '!'"}
	case c == '<':
		if l.r.Peek(1) == '=' {
			l.r.Move(2)
			return Token{Kind: TLtEq, Span: l.span(start)}
		}
		l.r.Move(1)
		return Token{Kind: TLt, Span: l.span(start)}
	case c == '>':
		if l.r.Peek(1) == '=' {
			l.r.Move(2)
			return Token{Kind: TGtEq, Span: l.span(start)}
		}
		l.r.Move(1)
		return Token{Kind: TGt, Span: l.span(start)}
	case c == '"':
		l.r.Move(1)
		n := 0
		for {
			p := l.r.Peek(n)
			if p == 0 || p == '"' {
				break
			}
			if p == '\\' {
				n++
			}
			n++
		}
		text := l.text[l.r.Pos() : l.r.Pos()+n]
		l.r.Move(n)
		if l.r.Peek(0) == '"' {
			l.r.Move(1)
		}
		return Token{Kind: TString, Span: l.span(start), Text: unescape(text)}
	case isDigit(c):
		n := 0
		for isDigit(l.r.Peek(n)) {
			n++
		}
		if l.r.Peek(n) == '.' && isDigit(l.r.Peek(n+1)) {
			n++
			for isDigit(l.r.Peek(n)) {
				n++
			}
		}
		for isIdentCont(l.r.Peek(n)) || l.r.Peek(n) == '%' {
			n++
		}
		text := l.text[l.r.Pos() : l.r.Pos()+n]
		l.r.Move(n)
		return Token{Kind: TNumber, Span: l.span(start), Text: text}
	case isIdentStart(c):
		n := 0
		for isIdentCont(l.r.Peek(n)) {
			n++
		}
		text := l.text[l.r.Pos() : l.r.Pos()+n]
		l.r.Move(n)
		kind := TIdent
		if keywords[text] {
			kind = TKeyword
		}
		return Token{Kind: kind, Span: l.span(start), Text: text}
	default:
		l.r.Move(1)
		return Token{Kind: TError, Span: l.span(start), Text: "unexpected byte"}
	}
}

func unescape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				out = append(out, s[i])
			}
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// PopToMarkup discards the mode frame a leading '#' pushed, once the
// parser has finished the one expression that escape introduces — the
// single place the teacher's own grammar doesn't need, since CSS has no
// markup/code mode switch at all.
func (l *Lexer) PopToMarkup() {
	if l.mode() == modeCode {
		l.pop()
		l.atLine = false
	}
}
