package text

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// mapDictionarySource serves patterns/exceptions out of an in-memory map
// keyed "name.suffix", standing in for assets a World implementation would
// read from package files.
type mapDictionarySource map[string][]byte

func (m mapDictionarySource) Load(name, suffix string) ([]byte, error) {
	key := fmt.Sprintf("%s.%s", name, suffix)
	data, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("no dictionary for %s", key)
	}
	return data, nil
}

func TestHyphenatorLanguageResolution(t *testing.T) {
	src := mapDictionarySource{
		"en-us.pat": []byte("hy3phe2n5a4t2io2n\n"),
	}
	log := zap.NewNop()

	// "en" is not a direct match but resolves through langMap to "en-us".
	h := NewHyphenator(language.English, src, log)
	if h == nil {
		t.Fatal("expected hyphenator to resolve en -> en-us")
	}

	out := h.Hyphenate("hyphenation")
	if !strings.Contains(out, SOFTHYPHEN) {
		t.Errorf("expected a soft hyphen in %q", out)
	}
	if strings.ReplaceAll(out, SOFTHYPHEN, "") != "hyphenation" {
		t.Errorf("hyphenation should not change the letters: got %q", out)
	}
}

func TestHyphenatorUnknownLanguage(t *testing.T) {
	src := mapDictionarySource{}
	h := NewHyphenator(language.MustParse("xx-YY"), src, zap.NewNop())
	if h != nil {
		t.Error("expected nil hyphenator for a language with no dictionary")
	}
	if h.Hyphenate("whatever") != "whatever" {
		t.Error("a nil hyphenator should pass text through unchanged")
	}
}

func TestHyphenatorExceptionsOverridePatterns(t *testing.T) {
	src := mapDictionarySource{
		"en-us.pat": []byte("hy3phe2n5a4t2io2n\n"),
		"en-us.hyp": []byte("hy-phen-ation\n"),
	}
	h := NewHyphenator(language.English, src, zap.NewNop())
	if h == nil {
		t.Fatal("expected hyphenator to load")
	}
	if got := h.Hyphenate("hyphenation"); got != "hy"+SOFTHYPHEN+"phen"+SOFTHYPHEN+"ation" {
		t.Errorf("exception entry should win over computed pattern, got %q", got)
	}
}
