// Package source implements the interned source-file store of §3/§4.1
// (component A): stable FileIds, a precomputed line map for fast
// byte-offset-to-line/column conversion, and edit-driven Source
// replacement that reuses the previous syntax tree where possible
// (incremental reparse itself lives in the syntax package; source only
// owns the buffer and its identity).
package source

import (
	"fmt"
	"sync"
)

// FileId is a stable, interned identity for a source file. Two Sources
// loaded for the same logical file (including synthetic ones created by
// #include expansion) share a FileId only if interned through the same
// Store.
type FileId struct {
	id int
}

func (f FileId) String() string { return fmt.Sprintf("file#%d", f.id) }

// IsSynthetic reports whether the id was minted by Store.Synthetic rather
// than Store.Intern, i.e. it has no on-disk path of its own.
func (f FileId) IsSynthetic() bool { return f.id < 0 }

// Store interns file paths to FileIds and synthesizes new ids for
// virtual/templated sources (e.g. #include expansion), mirroring the
// teacher's use of github.com/google/uuid for synthetic file identities
// where a stable path-derived id doesn't apply.
type Store struct {
	mu        sync.Mutex
	byPath    map[string]FileId
	byId      map[FileId]string
	nextId    int
	nextSynth int
}

func NewStore() *Store {
	return &Store{byPath: make(map[string]FileId), byId: make(map[FileId]string)}
}

// Intern returns the FileId for path, minting a new one on first sight.
func (s *Store) Intern(path string) FileId {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byPath[path]; ok {
		return id
	}
	s.nextId++
	id := FileId{id: s.nextId}
	s.byPath[path] = id
	s.byId[id] = path
	return id
}

// Path returns the path a FileId was interned from, the reverse of
// Intern — the World implementation needs this to resolve an id handed
// back to it (e.g. by the image() builtin, which interns through the
// Store shared with the World rather than through World itself) into
// something it can actually read from disk or an archive.
func (s *Store) Path(id FileId) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byId[id]
	return p, ok
}

// Synthetic mints a new FileId with no backing path, for in-memory
// sources created during evaluation (templated/generated content).
func (s *Store) Synthetic() FileId {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSynth--
	return FileId{id: s.nextSynth}
}

// Span is a half-open byte range `[Start, End)` within a single file,
// per §3's "Spans reference (FileId, byte-range)".
type Span struct {
	File  FileId
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Union returns the smallest span covering both s and o. Both must share
// a FileId; callers (the parser building a node's span from its
// children) never union spans across files.
func (s Span) Union(o Span) Span {
	u := s
	if o.Start < u.Start {
		u.Start = o.Start
	}
	if o.End > u.End {
		u.End = o.End
	}
	return u
}

// Source is an immutable text buffer with a stable FileId and a
// precomputed line map (§3: "an immutable buffer of text with a stable
// identity (FileId), a precomputed newline index (line map)"). Edits
// produce a new Source value; the line map and AST attached to it are
// rebuilt by the caller (syntax package) which may reuse unaffected
// subtrees of the previous tree.
type Source struct {
	id    FileId
	text  string
	lines []int // byte offset of the start of each line; lines[0] == 0
}

// New builds a Source over text, computing its line map eagerly — the
// line map is small relative to the text and is needed on essentially
// every diagnostic, so there is no value in deferring it.
func New(id FileId, text string) *Source {
	return &Source{id: id, text: text, lines: computeLineMap(text)}
}

func computeLineMap(text string) []int {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}

func (s *Source) Id() FileId    { return s.id }
func (s *Source) Text() string  { return s.text }
func (s *Source) Len() int      { return len(s.text) }
func (s *Source) LineCount() int { return len(s.lines) }

// Slice returns the text covered by span. span.File is not checked
// against s.id — callers are expected to only slice spans they obtained
// from this Source (or from a node built while parsing it).
func (s *Source) Slice(span Span) string {
	return s.text[span.Start:span.End]
}

// LineCol converts a byte offset into a 0-based (line, column) pair,
// column counted in bytes from the start of the line. Binary search over
// the line-start table keeps this O(log lines) even for very large
// documents repeatedly queried during diagnostic formatting.
func (s *Source) LineCol(offset int) (line, col int) {
	lo, hi := 0, len(s.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lines[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, offset - s.lines[lo]
}

// LineText returns the full text of the given 0-based line number,
// excluding its trailing newline.
func (s *Source) LineText(line int) string {
	if line < 0 || line >= len(s.lines) {
		return ""
	}
	start := s.lines[line]
	end := len(s.text)
	if line+1 < len(s.lines) {
		end = s.lines[line+1] - 1 // exclude the newline
	}
	if end < start {
		end = start
	}
	return s.text[start:end]
}

// Edit replaces the byte range [start,end) with replacement and returns
// the new Source. Per §3, an edit produces a new Source rather than
// mutating in place — the previous Source (and its attached syntax tree)
// remains valid for the incremental reparser to diff against.
func (s *Source) Edit(start, end int, replacement string) *Source {
	next := s.text[:start] + replacement + s.text[end:]
	return New(s.id, next)
}
