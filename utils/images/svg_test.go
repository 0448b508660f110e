package images

import "testing"

func TestMeasureSVGIntrinsicSize(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50"/></svg>`)
	w, h, err := MeasureSVG(svg, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 100 || h != 50 {
		t.Fatalf("MeasureSVG() = (%d,%d), want (100,50)", w, h)
	}
}

func TestMeasureSVGScalesToTargetWidth(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"></svg>`)
	w, h, err := MeasureSVG(svg, 200, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 200 || h != 100 {
		t.Fatalf("MeasureSVG() = (%d,%d), want (200,100)", w, h)
	}
}

func TestMeasureSVGFallsBackWithoutViewBox(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	w, h, err := MeasureSVG(svg, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != defaultSVGSize || h != defaultSVGSize {
		t.Fatalf("MeasureSVG() = (%d,%d), want (%d,%d)", w, h, defaultSVGSize, defaultSVGSize)
	}
}

func TestScaleSVGStrokeWidth(t *testing.T) {
	svg := []byte(`<path stroke-width="2" d="M0 0"/>`)
	scaled := ScaleSVGStrokeWidth(svg, 4)
	if string(scaled) != `<path stroke-width="8" d="M0 0"/>` {
		t.Fatalf("ScaleSVGStrokeWidth() = %q", scaled)
	}
}
