package compile

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inkwell-lang/inkwell/config"
	"github.com/inkwell-lang/inkwell/diag"
	"github.com/inkwell-lang/inkwell/introspect"
	"github.com/inkwell-lang/inkwell/layout"
	"github.com/inkwell-lang/inkwell/layout/flow"
	"github.com/inkwell-lang/inkwell/layout/page"
	"github.com/inkwell-lang/inkwell/memo"
	"github.com/inkwell-lang/inkwell/source"
	"github.com/inkwell-lang/inkwell/syntax"
	"github.com/inkwell-lang/inkwell/world"
)

// maxPages bounds how many page-sized regions ContentRegion precomputes
// up front; the layout.Region backlog it returns is a fixed slice rather than a lazily
// grown one (see layout.Region's doc), so a compile that genuinely needs
// more pages than this reports the same "content does not fit" error
// flow.Stack returns for any other region exhaustion.
const maxPages = 2000

// Document is one finished compile: the realized page sequence plus
// every diagnostic accumulated along the way (errors and warnings both,
// per §7 — a host decides whether warnings are fatal).
type Document struct {
	Pages []layout.Frame
	Diags *diag.Sink
}

// Compiler holds the configuration and logger a compile runs under,
// mirroring how the teacher's state.LocalEnv bundles Cfg/Log/Rpt for its
// convert subcommand rather than threading them as loose parameters.
type Compiler struct {
	Cfg *config.Config
	Log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Compiler {
	return &Compiler{Cfg: cfg, Log: log}
}

// Compile runs the whole pipeline against the file at mainPath: parse,
// the evaluate/realize fixed-point loop (package introspect), and the
// layout bridge, returning the realized page sequence. A non-nil error
// means the compile could not proceed at all (file I/O, or the
// introspection loop erroring outright). Parse errors are pushed to
// Document.Diags and end the compile with a nil error and no pages;
// other recoverable problems are pushed to Document.Diags too, and the
// caller decides via Diags.HasErrors() whether to still emit pages.
func (c *Compiler) Compile(mainPath string) (*Document, error) {
	diags := &diag.Sink{}
	store := source.NewStore()

	osWorld, err := NewOSWorld(store, mainPath)
	if err != nil {
		return nil, err
	}
	tracked := world.NewTracker(osWorld)

	root, errs := syntax.Parse(osWorld.Main())
	for _, d := range errs {
		diags.Push(d)
	}
	if diags.HasErrors() {
		return &Document{Diags: diags}, nil
	}

	cache := memo.NewCache(c.Cfg.Compile.Memo.MaxEntries, c.Cfg.Compile.Memo.MaxGenerationsRetained)

	result, err := introspect.Loop(tracked, root, diags, c.Cfg.Compile.Introspection, store, cache)
	if err != nil {
		if d, ok := err.(diag.Diagnostic); ok {
			diags.Push(d)
			return &Document{Diags: diags}, nil
		}
		return nil, fmt.Errorf("compile: introspection loop: %w", err)
	}

	if c.Log != nil {
		c.Log.Debug("introspection converged",
			zap.Int("iterations", result.Iterations),
			zap.Bool("converged", result.Converged),
			zap.Int("accesses", len(tracked.Accesses())))
	}

	setup := page.Setup{Paper: page.A4, Margins: page.Margins{Top: 56, Right: 56, Bottom: 56, Left: 56}}
	targetWidth := setup.Paper.Width - setup.Margins.Left - setup.Margins.Right

	blocks := newBridge(targetWidth, c.Cfg.Compile.Layout.LineBreak).Build(result.Elements)

	region := setup.ContentRegion(maxPages)
	frags, err := flow.Stack(blocks, region)
	if err != nil {
		diags.Push(diag.Warningf(diag.KindLayout, root.Span, "layout: %v", err))
	}

	pages := page.Pages(setup, frags)
	if len(pages) == 0 {
		pages = append(pages, setup.Compose(layout.Frame{}))
	}
	return &Document{Pages: pages, Diags: diags}, nil
}
