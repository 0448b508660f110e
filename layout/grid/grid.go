// Package grid implements the column-track sizing and row layout of
// §4.6's "Grid/table layout": a three-phase algorithm (sum intrinsic
// widths, distribute remaining width to auto/fractional tracks, lay out
// row by row with row-breaking across regions). Driven by the
// evaluator's table() builtin through compile/bridge.go's tableBlocks.
package grid

import (
	"github.com/inkwell-lang/inkwell/layout"
	"github.com/inkwell-lang/inkwell/value"
)

// TrackKind distinguishes how a column track is sized.
type TrackKind int

const (
	TrackAuto TrackKind = iota // sized to its content's intrinsic width
	TrackFixed                 // a fixed length
	TrackFraction              // a share of remaining width (value.Fraction)
)

type Track struct {
	Kind     TrackKind
	Fixed    value.Length
	Fraction value.Fraction
	// Intrinsic is filled in by SizeColumns from each column's widest cell.
	Intrinsic float64
	Resolved  float64
}

// Cell is one grid cell's content, already measured to an intrinsic
// width/height (a real implementation would re-run paragraph layout per
// candidate column width; here the caller supplies the pre-measured
// size, keeping this package's job to track sizing and row placement).
type Cell struct {
	Col, Row           int
	ColSpan, RowSpan   int
	Width, Height      float64
	Payload            any
}

// SizeColumns runs phases 1-2 of §4.6's algorithm: intrinsic widths are
// summed from single-column cells, then availableWidth minus the fixed
// and auto tracks' totals is distributed across TrackFraction tracks in
// proportion to their Fraction.
func SizeColumns(tracks []Track, cells []Cell, availableWidth, fontSize float64) []Track {
	out := make([]Track, len(tracks))
	copy(out, tracks)

	for _, c := range cells {
		if c.ColSpan > 1 || c.Col >= len(out) {
			continue
		}
		if out[c.Col].Intrinsic < c.Width {
			out[c.Col].Intrinsic = c.Width
		}
	}

	used := 0.0
	var totalFraction value.Fraction
	for i, t := range out {
		switch t.Kind {
		case TrackFixed:
			out[i].Resolved = t.Fixed.Resolve(fontSize)
			used += out[i].Resolved
		case TrackAuto:
			out[i].Resolved = t.Intrinsic
			used += out[i].Resolved
		case TrackFraction:
			totalFraction += t.Fraction
		}
	}

	remaining := availableWidth - used
	if remaining < 0 {
		remaining = 0
	}
	if totalFraction > 0 {
		for i, t := range out {
			if t.Kind == TrackFraction {
				out[i].Resolved = float64(t.Fraction/totalFraction) * remaining
			}
		}
	}
	return out
}

// LayoutRows places cells row by row into regions, breaking the row
// sequence across regions when a row would overflow the current
// region's remaining height. Cell.RowSpan is not consulted: each cell
// occupies only its own row, and a row that doesn't fit is pushed whole
// to the next region.
func LayoutRows(tracks []Track, cells []Cell, rowHeights map[int]float64, region layout.Region) ([]layout.Fragment, error) {
	colX := make([]float64, len(tracks)+1)
	for i, t := range tracks {
		colX[i+1] = colX[i] + t.Resolved
	}

	rows := distinctRows(cells)

	var frags []layout.Fragment
	cur := region
	frame := layout.Frame{Size: cur.Current}
	y := 0.0

	flushRegion := func() {
		frags = append(frags, layout.Fragment{Frame: frame, Region: cur})
	}

	for _, row := range rows {
		h := rowHeights[row]
		if cur.Finite && y+h > cur.Current.H && y > 0 {
			flushRegion()
			next, ok := cur.Next()
			if !ok {
				return frags, errNoMoreRegions
			}
			cur = next
			frame = layout.Frame{Size: cur.Current}
			y = 0
		}
		for _, c := range cells {
			if c.Row != row {
				continue
			}
			frame.Place(colX[c.Col], y, c.Payload)
		}
		y += h
	}
	flushRegion()
	return frags, nil
}

func distinctRows(cells []Cell) []int {
	seen := make(map[int]bool)
	var rows []int
	for _, c := range cells {
		if !seen[c.Row] {
			seen[c.Row] = true
			rows = append(rows, c.Row)
		}
	}
	// insertion order from `cells` is assumed already row-ascending, per how
	// the realizer walks table rows in document order.
	return rows
}

type gridError string

func (e gridError) Error() string { return string(e) }

const errNoMoreRegions = gridError("grid: rows do not fit in a fixed-size region with no overflow strategy")
