package gesture

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func rightHand(selected bool) HandSample {
	return HandSample{
		Position:   mgl64.Vec3{0.1, 0.2, 0.5},
		Selected:   selected,
		Handedness: Right,
		Tracked:    true,
	}
}

func leftHand(selected bool) HandSample {
	return HandSample{
		Position:   mgl64.Vec3{-0.1, 0.2, 0.5},
		Selected:   selected,
		Handedness: Left,
		Tracked:    true,
	}
}

func TestClassifier_SingleHandDrag(t *testing.T) {
	for _, held := range []int{1, 2, 5, 30} {
		c := NewClassifier()
		var got []Gesture

		got = append(got, c.Classify([]HandSample{rightHand(false)}, true).Gesture)
		for i := 0; i < held; i++ {
			got = append(got, c.Classify([]HandSample{rightHand(true)}, true).Gesture)
		}
		got = append(got, c.Classify([]HandSample{rightHand(false)}, true).Gesture)
		got = append(got, c.Classify([]HandSample{rightHand(false)}, true).Gesture)

		counts := map[Gesture]int{}
		for _, g := range got {
			counts[g]++
		}

		if counts[StartDrag] != 1 {
			t.Errorf("held %d: StartDrag count = %d, want 1 (%v)", held, counts[StartDrag], got)
		}
		if counts[DoneDragging] != 1 {
			t.Errorf("held %d: DoneDragging count = %d, want 1 (%v)", held, counts[DoneDragging], got)
		}
		if counts[Dragging] != held-1 {
			t.Errorf("held %d: Dragging count = %d, want %d", held, counts[Dragging], held-1)
		}
		if got[1] != StartDrag {
			t.Errorf("held %d: first selected frame = %v, want StartDrag", held, got[1])
		}
		if got[held+1] != DoneDragging {
			t.Errorf("held %d: release frame = %v, want DoneDragging", held, got[held+1])
		}
	}
}

func TestClassifier_DragNotPermitted(t *testing.T) {
	c := NewClassifier()

	for i := 0; i < 5; i++ {
		r := c.Classify([]HandSample{rightHand(true)}, false)
		if r.Gesture != None {
			t.Fatalf("frame %d: gesture = %v, want None while dragging is not permitted", i, r.Gesture)
		}
		if !r.Selected {
			t.Error("selection should still be reported")
		}
	}

	// Permission arrives while the press is still held: the drag starts now.
	if g := c.Classify([]HandSample{rightHand(true)}, true).Gesture; g != StartDrag {
		t.Errorf("gesture = %v, want StartDrag", g)
	}
}

func TestClassifier_BothHandsSelected(t *testing.T) {
	c := NewClassifier()

	r := c.Classify([]HandSample{leftHand(true), rightHand(true)}, true)
	if r.Gesture != None {
		t.Errorf("gesture = %v, want None with both hands selected", r.Gesture)
	}
	if !r.BothSelected || !r.TwoHandsTracked {
		t.Errorf("expected BothSelected and TwoHandsTracked, got %+v", r)
	}

	// An open drag is closed when the second hand joins.
	c = NewClassifier()
	c.Classify([]HandSample{rightHand(true)}, true)
	c.Classify([]HandSample{rightHand(true)}, true)
	if g := c.Classify([]HandSample{leftHand(true), rightHand(true)}, true).Gesture; g != DoneDragging {
		t.Errorf("gesture = %v, want DoneDragging when second hand selects", g)
	}
	if g := c.Classify([]HandSample{leftHand(true), rightHand(true)}, true).Gesture; g != None {
		t.Errorf("gesture = %v, want None after the drag closed", g)
	}
}

func TestClassifier_HandLost(t *testing.T) {
	c := NewClassifier()
	c.Classify([]HandSample{rightHand(true)}, true)
	c.Classify([]HandSample{rightHand(true)}, true)

	r := c.Classify(nil, true)
	if !r.HandLost {
		t.Error("expected HandLost when a selected hand disappears")
	}
	if r.Gesture != DoneDragging {
		t.Errorf("gesture = %v, want DoneDragging on hand loss", r.Gesture)
	}

	r = c.Classify(nil, true)
	if r.HandLost {
		t.Error("HandLost must fire only once")
	}

	// An unselected hand disappearing is not a loss.
	c = NewClassifier()
	c.Classify([]HandSample{rightHand(false)}, true)
	if c.Classify(nil, true).HandLost {
		t.Error("unselected hand leaving should not fire HandLost")
	}
}

func TestClassifier_UntrackedSamplesIgnored(t *testing.T) {
	c := NewClassifier()
	h := rightHand(true)
	h.Tracked = false

	r := c.Classify([]HandSample{h}, true)
	if r.Tracked || r.Selected || r.Gesture != None {
		t.Errorf("untracked sample should be ignored, got %+v", r)
	}
}

func TestClassifier_CursorState(t *testing.T) {
	c := NewClassifier()

	r := c.Classify([]HandSample{rightHand(false)}, true)
	if !r.CursorChanged || !r.Tracked {
		t.Errorf("first tracked frame should change cursor state: %+v", r)
	}
	if r.Cursor != rightHand(false).Position {
		t.Errorf("cursor = %v, want right hand position", r.Cursor)
	}

	r = c.Classify([]HandSample{rightHand(false)}, true)
	if r.CursorChanged {
		t.Error("unchanged state should not report a cursor change")
	}

	r = c.Classify([]HandSample{rightHand(false), leftHand(true)}, true)
	if !r.CursorChanged || !r.Selected {
		t.Errorf("selection should change cursor state: %+v", r)
	}
	if r.Cursor != leftHand(true).Position {
		t.Errorf("cursor = %v, want the selected hand position", r.Cursor)
	}

	// Cursor keeps its last position when tracking drops.
	r = c.Classify(nil, true)
	if r.Cursor != leftHand(true).Position {
		t.Errorf("cursor = %v, want last known position", r.Cursor)
	}
}

func TestGesture_String(t *testing.T) {
	tests := map[Gesture]string{
		None:         "None",
		StartDrag:    "StartDrag",
		Dragging:     "Dragging",
		DoneDragging: "DoneDragging",
	}
	for g, want := range tests {
		if g.String() != want {
			t.Errorf("String() = %q, want %q", g.String(), want)
		}
	}
}
