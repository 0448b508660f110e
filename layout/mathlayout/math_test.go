package mathlayout

import "testing"

func TestSpacingBinaryAfterOrdinaryIsMedium(t *testing.T) {
	if got := Spacing(ClassOrd, ClassBinary, false); got != MediumSpace {
		t.Fatalf("got %v, want MediumSpace", got)
	}
}

func TestSpacingSuppressedAtScriptSize(t *testing.T) {
	if got := Spacing(ClassOrd, ClassRelation, true); got != NoSpace {
		t.Fatalf("expected script-size spacing suppressed, got %v", got)
	}
}

func TestSpacingBetweenOpenersIsZero(t *testing.T) {
	if got := Spacing(ClassOpen, ClassOpen, false); got != NoSpace {
		t.Fatalf("got %v, want NoSpace", got)
	}
}

func TestStretchDelimitersResizeToBodyExtent(t *testing.T) {
	items := []Item{
		{Class: ClassFence, Stretchy: true},
		{Class: ClassOrd, Ascent: 10, Descent: 3},
		{Class: ClassFence, Stretchy: true},
	}
	out := StretchDelimiters(items)
	if out[0].Ascent != 10 || out[0].Descent != 3 {
		t.Fatalf("left delimiter not resized: %+v", out[0])
	}
	if out[2].Ascent != 10 || out[2].Descent != 3 {
		t.Fatalf("right delimiter not resized: %+v", out[2])
	}
	if out[1].Ascent != 10 {
		t.Fatalf("non-stretchy body item should be unchanged")
	}
}
