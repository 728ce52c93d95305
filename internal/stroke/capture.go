package stroke

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Capture accumulates a drag into a smoothed polyline. Vertices are taken
// from a smoothing anchor that trails the raw hand position.
type Capture struct {
	rate    float64
	spacing float64
	margin  float64

	style  Style
	active bool
	points []mgl64.Vec3
	anchor mgl64.Vec3
	raw    mgl64.Vec3
}

// NewCapture creates a Capture. rate is the smoothing constant k, spacing the
// minimum vertex distance and margin the bounding box padding.
func NewCapture(rate, spacing, margin float64) *Capture {
	return &Capture{
		rate:    rate,
		spacing: spacing,
		margin:  margin,
	}
}

// SetStyle sets the style used by the next Begin.
func (c *Capture) SetStyle(s Style) {
	c.style = s
}

// Style returns the current style.
func (c *Capture) Style() Style {
	return c.style
}

// SetTuning replaces the smoothing and spacing constants.
func (c *Capture) SetTuning(rate, spacing, margin float64) {
	c.rate = rate
	c.spacing = spacing
	c.margin = margin
}

// Begin starts a new empty stroke anchored at p. An unfinished stroke is dropped.
func (c *Capture) Begin(p mgl64.Vec3) {
	c.active = true
	c.points = nil
	c.anchor = p
	c.raw = p
}

// Extend feeds the next raw position and reports whether a vertex was appended.
func (c *Capture) Extend(p mgl64.Vec3, dt float64) bool {
	if !c.active {
		return false
	}

	if len(c.points) > 0 {
		t := 1 - math.Exp(-c.rate*dt)
		c.anchor = c.anchor.Add(c.raw.Sub(c.anchor).Mul(t))
	}

	appended := false
	if len(c.points) == 0 || c.points[len(c.points)-1].Sub(c.anchor).Len() > c.spacing {
		c.points = append(c.points, c.anchor)
		appended = true
	}

	c.raw = p
	return appended
}

// Finish closes the stroke. It returns false when the stroke has fewer than
// two vertices and was discarded.
func (c *Capture) Finish() (Stroke, bool) {
	if !c.active {
		return Stroke{}, false
	}
	c.active = false

	points := c.points
	c.points = nil
	if len(points) < 2 {
		return Stroke{}, false
	}

	box := Bounds(points, c.style.Width, c.margin)
	return Stroke{
		ID:     uuid.NewString(),
		Points: points,
		Style:  c.style,
		Bounds: box,
		Anchor: box.Corner(),
	}, true
}

// Active reports whether a stroke is open.
func (c *Capture) Active() bool {
	return c.active
}

// Len returns the vertex count of the open stroke.
func (c *Capture) Len() int {
	return len(c.points)
}
