// Package diag implements the diagnostic format and error taxonomy of §6
// and §7: a severity-tagged {message, span, trace, hints} record, the
// eight non-type-name error kinds, and caret-annotated user-visible
// printing grounded on the teacher's zap-based diagnostic logging.
package diag

import (
	"fmt"
	"strings"

	"github.com/inkwell-lang/inkwell/source"
)

// Severity distinguishes fatal diagnostics from accumulating warnings
// (§6: "Severity error aborts; warnings accumulate and are surfaced").
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Kind is the error taxonomy of §7 — a classification, not a Go type
// hierarchy, attached to every Error diagnostic for reporting and for the
// introspection loop to tell a Convergence warning apart from a fatal
// Layout error.
type Kind int

const (
	KindSyntax Kind = iota
	KindType
	KindName
	KindArgument
	KindIntrospectionUnavailable
	KindFile
	KindLayout
	KindConvergence
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindType:
		return "type error"
	case KindName:
		return "unknown name"
	case KindArgument:
		return "argument error"
	case KindIntrospectionUnavailable:
		return "introspection unavailable"
	case KindFile:
		return "file error"
	case KindLayout:
		return "layout error"
	case KindConvergence:
		return "did not converge"
	default:
		return "error"
	}
}

// Diagnostic is the wire format of §6: severity, message, the span it
// anchors to, an optional call-trace stack of spans, and hints.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Span     source.Span
	Trace    []source.Span
	Hints    []string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Errorf builds an Error-severity Diagnostic of the given kind.
func Errorf(kind Kind, span source.Span, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: Error, Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// Warningf builds a Warning-severity Diagnostic of the given kind.
func Warningf(kind Kind, span source.Span, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: Warning, Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// WithHint appends a hint and returns the diagnostic (builder style, used
// at the call site that has the fix-it suggestion in hand).
func (d Diagnostic) WithHint(hint string) Diagnostic {
	d.Hints = append(d.Hints, hint)
	return d
}

// WithTrace appends one frame to the call-trace stack, innermost call
// last, matching how a user-defined function's invocation chain is
// reported per §7 ("an optional call-trace stack").
func (d Diagnostic) WithTrace(span source.Span) Diagnostic {
	d.Trace = append(d.Trace, span)
	return d
}

// Sink collects diagnostics across one compile: errors and warnings
// accumulate independently so a host can report every warning even when
// the compile ultimately aborts, per §6/§7.
type Sink struct {
	diagnostics []Diagnostic
}

func (s *Sink) Push(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

func (s *Sink) All() []Diagnostic { return s.diagnostics }

func (s *Sink) Errors() []Diagnostic {
	return s.filter(Error)
}

func (s *Sink) Warnings() []Diagnostic {
	return s.filter(Warning)
}

func (s *Sink) filter(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range s.diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether the compile must exit with a non-zero status
// (§7: "compile exits with non-zero status when any error is reported").
func (s *Sink) HasErrors() bool {
	return len(s.Errors()) > 0
}

// Format renders d as user-visible text with source context, a caret at
// the span, and any hints — the §7 "printed with source, caret at span,
// and hints" presentation.
func Format(d Diagnostic, src *source.Source) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", d.Severity, d.Message)

	if src != nil {
		line, col := src.LineCol(d.Span.Start)
		fmt.Fprintf(&b, "  --> %s:%d:%d\n", src.Id(), line+1, col+1)
		text := src.LineText(line)
		fmt.Fprintf(&b, "   | %s\n", text)
		fmt.Fprintf(&b, "   | %s^\n", strings.Repeat(" ", col))
	}

	for _, frame := range d.Trace {
		fmt.Fprintf(&b, "  in call at %v\n", frame)
	}
	for _, h := range d.Hints {
		fmt.Fprintf(&b, "  hint: %s\n", h)
	}
	return b.String()
}
