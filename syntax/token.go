package syntax

import "github.com/inkwell-lang/inkwell/source"

// Span is a byte range within the source being lexed.
type Span = source.Span

// TokKind tags a lexical token. The lexer is mode-aware (§3/§4.2): markup
// mode produces Text/Star/Underscore/Eq/Hash runs, code mode (entered via
// Hash or inside a content/code block) produces the usual expression
// tokens.
type TokKind int

const (
	TEOF TokKind = iota
	TText
	TNewline
	TEqRun     // run of '=' at line start: heading marker
	TStar      // '*' strong delimiter
	TUnderscore
	THash      // '#' markup-to-code escape
	TIdent
	TKeyword
	TString
	TNumber
	TLeftParen
	TRightParen
	TLeftBrace
	TRightBrace
	TLeftBracket
	TRightBracket
	TColon
	TComma
	TDot
	TEq
	TEqEq
	TNotEq
	TLt
	TLtEq
	TGt
	TGtEq
	TPlus
	TMinus
	TSlash
	TPercent
	TFatArrow // =>
	TDotDot   // ..
	TSemicolon
	TError
)

var keywords = map[string]bool{
	"let": true, "set": true, "show": true, "if": true, "else": true,
	"while": true, "for": true, "in": true, "return": true, "break": true,
	"continue": true, "none": true, "auto": true, "true": true, "false": true,
	"and": true, "or": true, "not": true, "import": true,
}

// Token is one lexical unit with its source span and, for Text/Ident/
// String/Number, the literal text it covers (no separate interning table
// — markup documents are short-lived per compile and the teacher's own
// lexers don't intern either).
type Token struct {
	Kind TokKind
	Span Span
	Text string
}

func (k TokKind) String() string {
	names := map[TokKind]string{
		TEOF: "eof", TText: "text", TNewline: "newline", TEqRun: "heading-marker",
		TStar: "star", TUnderscore: "underscore", THash: "hash", TIdent: "ident",
		TKeyword: "keyword", TString: "string", TNumber: "number",
		TLeftParen: "(", TRightParen: ")", TLeftBrace: "{", TRightBrace: "}",
		TLeftBracket: "[", TRightBracket: "]", TColon: ":", TComma: ",", TDot: ".",
		TEq: "=", TEqEq: "==", TNotEq: "!=", TLt: "<", TLtEq: "<=", TGt: ">", TGtEq: ">=",
		TPlus: "+", TMinus: "-", TSlash: "/", TPercent: "%", TFatArrow: "=>",
		TDotDot: "..", TSemicolon: ";", TError: "error",
	}
	if n, ok := names[k]; ok {
		return n
	}
	return "unknown"
}
