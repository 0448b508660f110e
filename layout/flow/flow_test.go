package flow

import (
	"testing"

	"github.com/inkwell-lang/inkwell/config"
	"github.com/inkwell-lang/inkwell/layout"
)

func block(lines int) Block {
	ls := make([]Line, lines)
	for i := range ls {
		ls[i] = Line{Text: "x", Width: 1}
	}
	return Block{Lines: ls, LineH: 10, Spacing: 5}
}

func TestStackFitsWithinSingleRegion(t *testing.T) {
	region := layout.Region{Current: layout.Size{W: 100, H: 100}, Finite: true}
	frags, err := Stack([]Block{block(2), block(2)}, region)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(frags))
	}
	if len(frags[0].Frame.Items) != 4 {
		t.Fatalf("expected 4 placed lines, got %d", len(frags[0].Frame.Items))
	}
}

func TestStackOverflowsToNextRegion(t *testing.T) {
	region := layout.Region{
		Current: layout.Size{W: 100, H: 15},
		Finite:  true,
		Backlog: []layout.Size{{W: 100, H: 15}},
	}
	frags, err := Stack([]Block{block(1), block(1)}, region)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("expected content to spill into a second region, got %d fragments", len(frags))
	}
}

func TestStackFailsWhenNoMoreRegions(t *testing.T) {
	region := layout.Region{Current: layout.Size{W: 100, H: 5}, Finite: true}
	_, err := Stack([]Block{block(3)}, region)
	if err == nil {
		t.Fatalf("expected an overflow error with no further region")
	}
}

func TestStackParallelSequentialMatchesDirect(t *testing.T) {
	region := layout.Region{Current: layout.Size{W: 100, H: 100}, Finite: true}
	columns := [][]Block{{block(1)}, {block(2)}}
	results, err := StackParallel(columns, region, config.LayoutConfig{Parallel: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected one result per column, got %d", len(results))
	}
}

func TestStackParallelConcurrent(t *testing.T) {
	region := layout.Region{Current: layout.Size{W: 100, H: 100}, Finite: true}
	columns := [][]Block{{block(1)}, {block(2)}, {block(1)}}
	results, err := StackParallel(columns, region, config.LayoutConfig{Parallel: true, Workers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected one result per column, got %d", len(results))
	}
}
