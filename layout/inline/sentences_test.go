package text

import (
	"fmt"
	"slices"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type failingModelSource struct{}

func (failingModelSource) Load(name string) ([]byte, error) {
	return nil, fmt.Errorf("no model for %s", name)
}

func TestSplitterNilSourceIsPassthrough(t *testing.T) {
	s := NewSplitter(language.MustParse("xx-YY"), failingModelSource{}, zap.NewNop())
	if s != nil {
		t.Fatal("expected a nil splitter when no model is available")
	}

	in := "One. Two. Three."
	if got := s.Split(in); len(got) != 1 || got[0] != in {
		t.Errorf("a nil splitter should return the input as a single sentence, got %v", got)
	}

	seen := slices.Collect(s.Sentences(in))
	if len(seen) != 1 || seen[0] != in {
		t.Errorf("a nil splitter's Sentences iterator should yield the input unchanged, got %v", seen)
	}
}

func TestSplitWords(t *testing.T) {
	var s *Splitter

	got := s.SplitWords("one two  three", false)
	want := []string{"one", "two", "", "three"}
	if !slices.Equal(got, want) {
		t.Errorf("SplitWords(%q) = %v, want %v", "one two  three", got, want)
	}
}

func TestWordsIteratorMatchesSplitWords(t *testing.T) {
	var s *Splitter

	for _, in := range []string{"hello world", "a\tb\nc", "single", ""} {
		for _, ignoreNBSP := range []bool{true, false} {
			want := s.SplitWords(in, ignoreNBSP)
			got := slices.Collect(s.Words(in, ignoreNBSP))
			if !slices.Equal(got, want) {
				t.Errorf("Words(%q, %v) = %v, want %v", in, ignoreNBSP, got, want)
			}
		}
	}
}

func TestIsSeparatorNBSP(t *testing.T) {
	if isSeparator(0xA0, false) {
		t.Error("NBSP should not be a separator when ignoreNBSP is false")
	}
	if !isSeparator(0xA0, true) {
		t.Error("NBSP should be a separator when ignoreNBSP is true")
	}
	if !isSeparator(' ', false) {
		t.Error("a plain space is always a separator")
	}
}
