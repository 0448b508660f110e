// Package compile ties the pipeline's components together into a single
// entry point (§4.6's closing step, "the concatenation of page runs from
// the root flow"): parse, the introspection fixed-point loop, and the
// layout bridge that turns realize.Element trees into page frames. This
// is the host the rest of the engine was written to be embedded in, the
// analogue of the teacher's state package wiring config/logging/reporting
// into one LocalEnv the cmd/fbc subcommands share.
package compile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inkwell-lang/inkwell/source"
	"github.com/inkwell-lang/inkwell/world"
)

// OSWorld is the disk-backed World implementation: the main document plus
// any auxiliary file (images, included modules) are read relative to the
// main document's directory, resolved back from a FileId via the same
// source.Store the evaluator interns through.
type OSWorld struct {
	store *source.Store
	root  string
	main  *source.Source
}

// NewOSWorld reads mainPath and builds a World rooted at its containing
// directory. store must be the same Store later handed to eval.Evaluator
// (via introspect.Loop) so FileIds minted by builtins like image() and
// FileIds resolved here agree.
func NewOSWorld(store *source.Store, mainPath string) (*OSWorld, error) {
	data, err := os.ReadFile(mainPath)
	if err != nil {
		return nil, fmt.Errorf("compile: reading main file: %w", err)
	}
	id := store.Intern(mainPath)
	return &OSWorld{
		store: store,
		root:  filepath.Dir(mainPath),
		main:  source.New(id, string(data)),
	}, nil
}

func (w *OSWorld) Library() world.Library { return nil }
func (w *OSWorld) Book() world.FontBook   { return nil }
func (w *OSWorld) Main() *source.Source   { return w.main }

func (w *OSWorld) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.root, path)
}

func (w *OSWorld) Source(id source.FileId) (*source.Source, error) {
	if id == w.main.Id() {
		return w.main, nil
	}
	path, ok := w.store.Path(id)
	if !ok {
		return nil, &world.FileError{Path: id.String(), Reason: "unknown file id"}
	}
	data, err := os.ReadFile(w.resolve(path))
	if err != nil {
		return nil, &world.FileError{Path: path, Reason: "not found"}
	}
	return source.New(id, string(data)), nil
}

func (w *OSWorld) File(id source.FileId) ([]byte, error) {
	path, ok := w.store.Path(id)
	if !ok {
		return nil, &world.FileError{Path: id.String(), Reason: "unknown file id"}
	}
	data, err := os.ReadFile(w.resolve(path))
	if err != nil {
		return nil, &world.FileError{Path: path, Reason: "not found"}
	}
	return data, nil
}

// Font always reports unavailable: the corpus carries no font-shaping
// backend (see layout/flow's package doc), so there is nothing a real
// Font payload could usefully carry yet.
func (w *OSWorld) Font(index int) (world.Font, bool) { return nil, false }

func (w *OSWorld) Today(utcOffsetMinutes *int) (*time.Time, bool) {
	now := time.Now().UTC()
	if utcOffsetMinutes != nil {
		now = now.Add(time.Duration(*utcOffsetMinutes) * time.Minute)
	}
	return &now, true
}

var _ world.World = (*OSWorld)(nil)
