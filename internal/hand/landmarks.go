// Package hand turns 21-point hand landmark sets into the hand samples and
// tap events the interaction engine consumes.
package hand

import "github.com/go-gl/mathgl/mgl64"

// Landmark indices in the MediaPipe hand model.
const (
	Wrist        = 0
	ThumbTip     = 4
	IndexMCP     = 5
	IndexTip     = 8
	MiddleMCP    = 9
	NumLandmarks = 21
)

// Landmarks is one detected hand in normalized image coordinates: x and y
// in [0, 1] with y pointing down, z relative depth.
type Landmarks struct {
	Points     [NumLandmarks]mgl64.Vec3 `json:"points"`
	Handedness string                   `json:"handedness"` // "Left" or "Right"
	Score      float64                  `json:"score"`
}

// HandSize returns the wrist to middle knuckle distance, the reference length
// that makes pinch detection independent of distance to the camera.
func (l *Landmarks) HandSize() float64 {
	return l.Points[MiddleMCP].Sub(l.Points[Wrist]).Len()
}

// Pinch returns the thumb to index tip distance relative to HandSize.
// It returns a large value for a degenerate hand.
func (l *Landmarks) Pinch() float64 {
	size := l.HandSize()
	if size < 1e-10 {
		return 1e9
	}
	return l.Points[ThumbTip].Sub(l.Points[IndexTip]).Len() / size
}

// PinchPoint is the midpoint between thumb and index tips.
func (l *Landmarks) PinchPoint() mgl64.Vec3 {
	return l.Points[ThumbTip].Add(l.Points[IndexTip]).Mul(0.5)
}
