package diag

import (
	"strings"
	"testing"

	"github.com/inkwell-lang/inkwell/source"
)

func TestSinkAccumulatesErrorsAndWarnings(t *testing.T) {
	var sink Sink
	sink.Push(Errorf(KindSyntax, source.Span{}, "unexpected token"))
	sink.Push(Warningf(KindConvergence, source.Span{}, "did not converge after 5 iterations"))
	sink.Push(Errorf(KindName, source.Span{}, "unknown identifier %q", "foo"))

	if len(sink.Errors()) != 2 {
		t.Errorf("Errors() len = %d, want 2", len(sink.Errors()))
	}
	if len(sink.Warnings()) != 1 {
		t.Errorf("Warnings() len = %d, want 1", len(sink.Warnings()))
	}
	if !sink.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
}

func TestSinkNoErrors(t *testing.T) {
	var sink Sink
	sink.Push(Warningf(KindConvergence, source.Span{}, "slow convergence"))
	if sink.HasErrors() {
		t.Error("HasErrors() = true, want false for warning-only sink")
	}
}

func TestDiagnosticWithHintAndTrace(t *testing.T) {
	d := Errorf(KindArgument, source.Span{}, "missing required argument %q", "size")
	d = d.WithHint("add a `size:` argument")
	d = d.WithTrace(source.Span{Start: 10, End: 20})

	if len(d.Hints) != 1 || d.Hints[0] != "add a `size:` argument" {
		t.Errorf("WithHint did not attach hint: %+v", d.Hints)
	}
	if len(d.Trace) != 1 {
		t.Errorf("WithTrace did not attach frame: %+v", d.Trace)
	}
}

func TestFormatIncludesCaretAndHint(t *testing.T) {
	id := source.FileId{}
	src := source.New(id, "let x = \n")
	d := Errorf(KindSyntax, source.Span{File: id, Start: 8, End: 9}, "unexpected end of expression").
		WithHint("did you forget a value?")

	out := Format(d, src)
	if !strings.Contains(out, "unexpected end of expression") {
		t.Error("Format() missing message")
	}
	if !strings.Contains(out, "hint: did you forget a value?") {
		t.Error("Format() missing hint")
	}
	if !strings.Contains(out, "^") {
		t.Error("Format() missing caret")
	}
}
