// Package flow implements the paragraph/inline and vertical flow
// procedures of §4.6 (component H): breaking a run of text into lines by
// a Knuth-Plass-style cost minimisation, then stacking laid-out elements
// down a sequence of page regions.
//
// The corpus (the teacher and the rest of the example pack) ships no
// font-shaping backend — fb2cng converts markup to EPUB/KFX and leaves
// glyph shaping to the e-reader's own renderer. Without a shaping
// dependency to ground one on, line width here is approximated from
// grapheme-cluster count times an average advance derived from the font size
// (DESIGN.md's open-question decision for §4.6 step 1); cluster
// boundaries themselves are exact, computed with rivo/uniseg rather than
// a byte-oriented approximation.
package flow

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/inkwell-lang/inkwell/config"
	"github.com/inkwell-lang/inkwell/layout/inline"
)

// avgAdvanceFactor times the font size approximates a character's
// advance width in points, absent real glyph metrics.
const avgAdvanceFactor = 0.5

// Segment is one line-break candidate: a run of text ending at either a
// UAX#14 break opportunity or a mandatory break (paragraph end, forced
// newline).
type Segment struct {
	Text       string
	Width      float64
	MustBreak  bool
	Hyphenated bool // this segment ends with a soft hyphen inserted by the hyphenator
}

// Segments splits text into line-break candidates using uniseg's Unicode
// line-breaking algorithm (UAX#14), measuring each with the approximate
// advance described above. If hyph is non-nil, words are pre-hyphenated
// so breaks can additionally occur at soft-hyphen positions.
func Segments(text0 string, fontSize float64, hyph *text.Hyphenator) []Segment {
	source := text0
	if hyph != nil {
		source = hyph.Hyphenate(text0)
	}

	advance := fontSize * avgAdvanceFactor
	var segs []Segment
	state := -1
	remaining := source
	for len(remaining) > 0 {
		seg, rest, mustBreak, newState := uniseg.FirstLineSegmentInString(remaining, state)
		state = newState
		remaining = rest

		runes := uniseg.GraphemeClusterCount(seg)
		segs = append(segs, Segment{
			Text:       seg,
			Width:      float64(runes) * advance,
			MustBreak:  mustBreak,
			Hyphenated: strings.HasSuffix(seg, text.SOFTHYPHEN),
		})
	}
	return segs
}

// Line is one committed output line: the concatenated text and its
// measured width. BreakParagraph admits lines up to
// targetWidth*(1+StretchTolerance) wide (a tolerance of 1.5 when unset),
// and a single segment wider than that becomes a line of its own.
type Line struct {
	Text  string
	Width float64
	Last  bool // true for a paragraph's final line (no justification, per §4.6 step 4)
}

// BreakParagraph runs the cost-based line breaker of §4.6 step 3: a
// dynamic program over break opportunities minimising the sum of squared
// badness (how far each line's width falls short of targetWidth) plus
// configured penalty terms for orphans/widows/hyphenation, scaled by
// cfg's weights. The DP state is, per spec, (break_index); transitions
// fan out to every feasible next break within the stretch-tolerance
// window.
func BreakParagraph(segs []Segment, targetWidth float64, cfg config.LineBreakConfig) []Line {
	n := len(segs)
	if n == 0 {
		return nil
	}

	const inf = 1e18
	// cost[i] = minimum total cost to break segs[i:] into lines.
	// next[i] = index of the first segment of the line following segs[i:]'s first line.
	cost := make([]float64, n+1)
	next := make([]int, n+1)
	cost[n] = 0

	stretch := cfg.StretchTolerance
	if stretch <= 0 {
		stretch = 1.5
	}

	for i := n - 1; i >= 0; i-- {
		cost[i] = inf
		width := 0.0
		for j := i; j < n; j++ {
			width += segs[j].Width
			if width > targetWidth*(1+stretch) && j > i {
				break
			}
			if cost[j+1] >= inf {
				continue
			}
			badness := targetWidth - width
			lineCost := badness * badness
			if j < n-1 && !segs[j].MustBreak {
				if segs[j].Hyphenated {
					lineCost += cfg.HyphenPenalty
				}
			}
			if i == 0 {
				lineCost += cfg.OrphanWeight
			}
			if j == n-1 {
				lineCost += cfg.WidowWeight
			}
			total := lineCost + cost[j+1]
			if total < cost[i] {
				cost[i] = total
				next[i] = j + 1
			}
			if segs[j].MustBreak {
				break
			}
		}
		if cost[i] >= inf {
			// No feasible break within tolerance: force a single-segment
			// overlong line rather than fail the whole paragraph.
			cost[i] = (targetWidth-segs[i].Width)*(targetWidth-segs[i].Width) + cost[i+1]
			next[i] = i + 1
		}
	}

	var lines []Line
	for i := 0; i < n; {
		j := next[i]
		var text string
		var width float64
		for k := i; k < j; k++ {
			text += segs[k].Text
			width += segs[k].Width
		}
		lines = append(lines, Line{Text: text, Width: width, Last: j == n})
		i = j
	}
	return lines
}
