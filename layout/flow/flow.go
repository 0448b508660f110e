package flow

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/inkwell-lang/inkwell/config"
	"github.com/inkwell-lang/inkwell/layout"
	"github.com/inkwell-lang/inkwell/layout/inline"
)

// Block is one vertical-flow input: either a paragraph of text (Lines
// populated by BreakParagraph) or an already-laid-out nested frame
// (Nested), stacked in source order with Spacing above it. Weak spacing
// (§4.6 "a 'weak' spacing is removed at region boundaries") is dropped
// when a Block lands as the first item of a region.
type Block struct {
	Lines   []Line   // set for paragraph blocks
	LineH   float64  // line height in points, used to stack Lines
	Nested  *layout.Frame // set for already-laid-out blocks (e.g. a figure)
	Spacing float64
	Weak    bool
}

// Paragraph builds a flow Block from raw text: splits it into line-break
// segments, runs the cost-based breaker, and records the per-line
// height.
func Paragraph(body string, fontSize, lineHeight, targetWidth float64, hyph *text.Hyphenator, cfg config.LineBreakConfig, spacing float64, weak bool) Block {
	segs := Segments(body, fontSize, hyph)
	lines := BreakParagraph(segs, targetWidth, cfg)
	return Block{Lines: lines, LineH: lineHeight, Spacing: spacing, Weak: weak}
}

// Stack lays blocks down a sequence of regions, breaking between blocks
// (never mid-paragraph: a paragraph's lines are never split across a
// region boundary) when the next
// block would overflow the current region's remaining height. It returns
// one Fragment per consumed region.
func Stack(blocks []Block, region layout.Region) ([]layout.Fragment, error) {
	var frags []layout.Fragment
	cur := region
	frame := layout.Frame{Size: cur.Current}
	y := 0.0
	first := true

	flush := func() {
		frags = append(frags, layout.Fragment{Frame: frame, Region: cur})
	}

	for _, b := range blocks {
		h := blockHeight(b)
		spacing := b.Spacing
		if first || (b.Weak && y == 0) {
			spacing = 0
		}
		if cur.Finite && y+spacing+h > cur.Current.H {
			flush()
			next, ok := cur.Next()
			if !ok {
				return frags, fmt.Errorf("flow: content does not fit in a fixed-size region with no overflow strategy")
			}
			cur = next
			frame = layout.Frame{Size: cur.Current}
			y = 0
			spacing = 0
			first = true
		}
		y += spacing
		placeBlock(&frame, b, y)
		y += h
		first = false
	}
	flush()
	return frags, nil
}

func blockHeight(b Block) float64 {
	if b.Nested != nil {
		return b.Nested.Size.H
	}
	return float64(len(b.Lines)) * b.LineH
}

func placeBlock(frame *layout.Frame, b Block, y float64) {
	if b.Nested != nil {
		frame.Place(0, y, *b.Nested)
		return
	}
	for i, l := range b.Lines {
		frame.Place(0, y+float64(i)*b.LineH, l)
	}
}

// StackParallel lays out one independent flow per entry of columns
// concurrently, bounded by cfg.Workers (0 means unlimited), per §5's
// permitted-but-not-required internal layout parallelism: the result is
// observationally identical to laying each column out sequentially,
// since columns share no mutable state. Errors from every column are
// combined with multierr rather than stopping at the first failure, so
// one bad column doesn't hide diagnostics from the others.
func StackParallel(columns [][]Block, region layout.Region, cfg config.LayoutConfig) ([][]layout.Fragment, error) {
	results := make([][]layout.Fragment, len(columns))
	if !cfg.Parallel || len(columns) <= 1 {
		var err error
		for i, blocks := range columns {
			frags, e := Stack(blocks, region)
			results[i] = frags
			err = multierr.Append(err, e)
		}
		return results, err
	}

	var g errgroup.Group
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	errs := make([]error, len(columns))
	for i, blocks := range columns {
		i, blocks := i, blocks
		g.Go(func() error {
			frags, err := Stack(blocks, region)
			results[i] = frags
			errs[i] = err
			return nil // collect per-column errors instead of aborting the group early
		})
	}
	_ = g.Wait()

	var combined error
	for _, e := range errs {
		combined = multierr.Append(combined, e)
	}
	return results, combined
}
