package compile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inkwell-lang/inkwell/config"
)

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	return cfg
}

func writeSource(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ink")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestCompilePlainTextProducesOnePage(t *testing.T) {
	path := writeSource(t, "hello world")
	c := New(loadTestConfig(t), nil)

	doc, err := c.Compile(path)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if doc.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", doc.Diags.Errors())
	}
	if len(doc.Pages) == 0 {
		t.Fatalf("expected at least one page")
	}
}

func TestCompileMissingFileReportsError(t *testing.T) {
	c := New(loadTestConfig(t), nil)
	if _, err := c.Compile(filepath.Join(t.TempDir(), "missing.ink")); err == nil {
		t.Fatalf("expected an error for a nonexistent main file")
	}
}

func TestCompileHeadingAndParagraph(t *testing.T) {
	path := writeSource(t, "== Title\n\nSome body text that should flow into a paragraph block.")
	c := New(loadTestConfig(t), nil)

	doc, err := c.Compile(path)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if doc.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", doc.Diags.Errors())
	}
	if len(doc.Pages) == 0 {
		t.Fatalf("expected at least one page")
	}
}
