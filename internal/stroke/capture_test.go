package stroke

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const dt = 1.0 / 60

func TestCapture_SmoothedStroke(t *testing.T) {
	c := NewCapture(5, 0.0005, 0.05)
	style := Style{Color: colorful.Color{R: 1, G: 1, B: 1}, Width: 0.01}
	c.SetStyle(style)

	c.Begin(mgl64.Vec3{})
	if !c.Active() {
		t.Fatal("capture should be active after Begin")
	}

	target := mgl64.Vec3{1, 0, 0}
	if !c.Extend(target, dt) {
		t.Fatal("first Extend must append the start anchor")
	}
	if !c.Extend(target, dt) {
		t.Fatal("second Extend should move the anchor past the spacing threshold")
	}

	want := 1 - math.Exp(-5*dt)
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}

	s, ok := c.Finish()
	if !ok {
		t.Fatal("stroke with two vertices must be kept")
	}
	if c.Active() {
		t.Error("capture should be idle after Finish")
	}
	if s.ID == "" {
		t.Error("finalized stroke needs an ID")
	}
	if s.Style != style {
		t.Errorf("style = %+v, want %+v", s.Style, style)
	}
	if got := s.Points[1].X(); math.Abs(got-want) > 1e-12 {
		t.Errorf("smoothed x = %v, want %v", got, want)
	}
	if s.Points[1].X() >= target.X() {
		t.Error("smoothed anchor must lag the raw position")
	}
	if s.Bounds != Bounds(s.Points, style.Width, 0.05) {
		t.Errorf("bounds = %+v, want box around points", s.Bounds)
	}
	if s.Anchor != s.Bounds.Corner() {
		t.Errorf("anchor = %v, want box corner %v", s.Anchor, s.Bounds.Corner())
	}
}

func TestCapture_MinimumSpacing(t *testing.T) {
	c := NewCapture(5, 0.0005, 0.05)
	c.Begin(mgl64.Vec3{})

	c.Extend(mgl64.Vec3{}, dt)
	for i := 0; i < 10; i++ {
		if c.Extend(mgl64.Vec3{0.0001, 0, 0}, dt) {
			t.Fatalf("tick %d appended a vertex closer than the spacing", i)
		}
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestCapture_DegenerateDiscarded(t *testing.T) {
	tests := []struct {
		name    string
		extends int
	}{
		{"no vertices", 0},
		{"single vertex", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCapture(5, 0.0005, 0.05)
			c.Begin(mgl64.Vec3{1, 1, 1})
			for i := 0; i < tt.extends; i++ {
				c.Extend(mgl64.Vec3{1, 1, 1}, dt)
			}
			if _, ok := c.Finish(); ok {
				t.Error("stroke with fewer than two vertices should be discarded")
			}
			if c.Active() {
				t.Error("capture should be idle after discard")
			}
		})
	}
}

func TestCapture_ExtendWithoutBegin(t *testing.T) {
	c := NewCapture(5, 0.0005, 0.05)
	if c.Extend(mgl64.Vec3{1, 0, 0}, dt) {
		t.Error("Extend without Begin must not append")
	}
	if _, ok := c.Finish(); ok {
		t.Error("Finish without Begin must not produce a stroke")
	}
}

func TestCapture_BeginResets(t *testing.T) {
	c := NewCapture(5, 0.0005, 0.05)
	c.Begin(mgl64.Vec3{})
	c.Extend(mgl64.Vec3{1, 0, 0}, dt)
	c.Extend(mgl64.Vec3{1, 0, 0}, dt)

	c.Begin(mgl64.Vec3{5, 5, 5})
	if c.Len() != 0 {
		t.Errorf("len after Begin = %d, want 0", c.Len())
	}
}
