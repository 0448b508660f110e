// Package page implements §4.6's "Page layout": each page consumes one
// region of the declared paper size minus margins, with headers/footers
// laid out separately and composed onto the page frame; the page
// sequence is the concatenation of page runs from the root flow.
package page

import (
	"github.com/inkwell-lang/inkwell/layout"
)

// Paper is a named paper size in points, the unit the rest of layout
// works in (value.Length.Resolve already yields points).
type Paper struct {
	Width, Height float64
}

var (
	A4     = Paper{Width: 595.28, Height: 841.89}
	Letter = Paper{Width: 612, Height: 792}
)

// Margins in points on each edge.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Setup describes one page sequence's geometry and optional running
// header/footer frames, already laid out against the header/footer
// band's own region by the caller.
type Setup struct {
	Paper   Paper
	Margins Margins
	Header  *layout.Frame
	Footer  *layout.Frame
}

// ContentRegion returns the region the body flow lays out into: the
// paper size minus margins and minus the header/footer bands, as
// pageCount identical regions: Current plus pageCount-1 sizes in the
// Backlog (one per page the flow may need — §4.6: "the page sequence is
// the concatenation of page runs from the root flow").
func (s Setup) ContentRegion(pageCount int) layout.Region {
	headerH, footerH := 0.0, 0.0
	if s.Header != nil {
		headerH = s.Header.Size.H
	}
	if s.Footer != nil {
		footerH = s.Footer.Size.H
	}

	w := s.Paper.Width - s.Margins.Left - s.Margins.Right
	h := s.Paper.Height - s.Margins.Top - s.Margins.Bottom - headerH - footerH
	size := layout.Size{W: w, H: h}

	backlog := make([]layout.Size, 0)
	if pageCount > 1 {
		for i := 1; i < pageCount; i++ {
			backlog = append(backlog, size)
		}
	}
	return layout.Region{Current: size, Base: size, Expand: [2]bool{true, true}, Finite: true, Backlog: backlog}
}

// Compose places one content Fragment onto a full page Frame at its
// margin offset, with the header/footer bands composed above and below
// it, per §4.6's "headers/footers laid out separately and composed onto
// the page frame".
func (s Setup) Compose(content layout.Frame) layout.Frame {
	page := layout.Frame{Size: layout.Size{W: s.Paper.Width, H: s.Paper.Height}}
	y := s.Margins.Top
	if s.Header != nil {
		page.Place(s.Margins.Left, y, *s.Header)
		y += s.Header.Size.H
	}
	page.Place(s.Margins.Left, y, content)
	y += content.Size.H
	if s.Footer != nil {
		page.Place(s.Margins.Left, y, *s.Footer)
	}
	return page
}

// Pages runs the body content's fragments (one per consumed region)
// through Compose, producing the final page sequence.
func Pages(s Setup, bodyFragments []layout.Fragment) []layout.Frame {
	pages := make([]layout.Frame, len(bodyFragments))
	for i, f := range bodyFragments {
		pages[i] = s.Compose(f.Frame)
	}
	return pages
}
