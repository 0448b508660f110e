// Package world defines the single host-implemented interface of §6: the
// World boundary through which the core requests sources, raw file bytes,
// fonts, and the current date. Every method must be deterministic within
// one compile — the compile package wraps a World in a tracking decorator
// (see Tracker) that records every access in call order.
package world

import (
	"time"

	"github.com/inkwell-lang/inkwell/source"
)

// FileError classifies why a World.Source/World.File request failed,
// mapped to diag.KindFile by callers.
type FileError struct {
	Path   string
	Reason string // "not found", "is a directory", "invalid encoding", etc.
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Reason
}

// Library is a snapshot of built-in names, element definitions, and
// default settings the evaluator bootstraps its root scope from. Its
// shape is intentionally left to eval/style to define — World only hands
// back an opaque handle so a host can swap in a customized library
// without the World interface itself changing.
type Library any

// FontBook is a font-metadata index: family names, available
// weights/styles, and enough metrics (ascent/descent/units-per-em) for
// layout to reserve vertical space before a glyph is actually shaped.
type FontBook any

// Font is font program bytes plus the subset of FontBook metadata
// describing this particular face, returned by index into Book() so
// repeated font() calls for the same index are guaranteed to agree
// (determinism requirement of §6).
type Font any

// World is the single host-implemented boundary named in §6. All I/O —
// file discovery, font loading, wall-clock time — is out of scope for the
// core (§1's explicit non-goals) and reached only through this interface.
type World interface {
	// Library returns the built-in scope snapshot.
	Library() Library

	// Book returns the font metadata index.
	Book() FontBook

	// Main returns the entry-point Source for this compile.
	Main() *source.Source

	// Source returns an additional source by FileId (e.g. an #include
	// target or imported module).
	Source(id source.FileId) (*source.Source, error)

	// File returns arbitrary byte blobs (images, raw data files) by
	// FileId.
	File(id source.FileId) ([]byte, error)

	// Font returns font data by index into Book(); Font, nil means the
	// index is out of range or unavailable.
	Font(index int) (Font, bool)

	// Today returns the current date, optionally offset by utcOffset
	// minutes; (nil, false) when the host declines to supply a date
	// (e.g. reproducible-build mode).
	Today(utcOffsetMinutes *int) (*time.Time, bool)
}
