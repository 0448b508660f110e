package grid

import (
	"testing"

	"github.com/inkwell-lang/inkwell/layout"
	"github.com/inkwell-lang/inkwell/value"
)

func TestSizeColumnsResolvesFixedAutoAndFraction(t *testing.T) {
	tracks := []Track{
		{Kind: TrackFixed, Fixed: value.Pt(50)},
		{Kind: TrackAuto},
		{Kind: TrackFraction, Fraction: 1},
		{Kind: TrackFraction, Fraction: 2},
	}
	cells := []Cell{
		{Col: 1, Row: 0, ColSpan: 1, Width: 30},
	}
	out := SizeColumns(tracks, cells, 300, 12)

	if out[0].Resolved != 50 {
		t.Fatalf("fixed track: got %v, want 50", out[0].Resolved)
	}
	if out[1].Resolved != 30 {
		t.Fatalf("auto track: got %v, want 30 (intrinsic)", out[1].Resolved)
	}
	remaining := 300.0 - 50 - 30
	const epsilon = 1e-9
	if diff := out[2].Resolved - (1.0/3.0)*remaining; diff > epsilon || diff < -epsilon {
		t.Fatalf("fraction track 1fr: got %v, want %v", out[2].Resolved, (1.0/3.0)*remaining)
	}
	if diff := out[3].Resolved - (2.0/3.0)*remaining; diff > epsilon || diff < -epsilon {
		t.Fatalf("fraction track 2fr: got %v, want %v", out[3].Resolved, (2.0/3.0)*remaining)
	}
}

func TestLayoutRowsSingleRegion(t *testing.T) {
	tracks := []Track{{Kind: TrackFixed, Fixed: value.Pt(50), Resolved: 50}}
	cells := []Cell{{Col: 0, Row: 0, Payload: "a"}, {Col: 0, Row: 1, Payload: "b"}}
	region := layout.Region{Current: layout.Size{W: 50, H: 100}, Finite: true}

	frags, err := LayoutRows(tracks, cells, map[int]float64{0: 10, 1: 10}, region)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 || len(frags[0].Frame.Items) != 2 {
		t.Fatalf("expected 1 fragment with 2 placed cells, got %+v", frags)
	}
}

func TestLayoutRowsBreaksAcrossRegions(t *testing.T) {
	tracks := []Track{{Kind: TrackFixed, Fixed: value.Pt(50), Resolved: 50}}
	cells := []Cell{{Col: 0, Row: 0, Payload: "a"}, {Col: 0, Row: 1, Payload: "b"}}
	region := layout.Region{
		Current: layout.Size{W: 50, H: 10},
		Finite:  true,
		Backlog: []layout.Size{{W: 50, H: 10}},
	}

	frags, err := LayoutRows(tracks, cells, map[int]float64{0: 10, 1: 10}, region)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("expected rows to break across 2 regions, got %d", len(frags))
	}
}
