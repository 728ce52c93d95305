// Package stroke captures freehand 3D polylines and keeps the finalized ones.
package stroke

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Style is the color and width applied to new strokes.
type Style struct {
	Color colorful.Color
	Width float64
}

type styleJSON struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// MarshalJSON encodes the color as a hex string.
func (s Style) MarshalJSON() ([]byte, error) {
	return json.Marshal(styleJSON{Color: s.Color.Hex(), Width: s.Width})
}

// UnmarshalJSON decodes a style written by MarshalJSON.
func (s *Style) UnmarshalJSON(data []byte) error {
	var v styleJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c, err := colorful.Hex(v.Color)
	if err != nil {
		return fmt.Errorf("style color %q: %w", v.Color, err)
	}
	s.Color = c
	s.Width = v.Width
	return nil
}

// Box is an axis-aligned bounding volume.
type Box struct {
	Size   mgl64.Vec3 `json:"size"`
	Center mgl64.Vec3 `json:"center"`
}

// Corner returns the top-right-front corner, where the host anchors the
// per-stroke delete affordance.
func (b Box) Corner() mgl64.Vec3 {
	return mgl64.Vec3{
		b.Center.X() + b.Size.X()/2,
		b.Center.Y() + b.Size.Y()/2,
		b.Center.Z() - b.Size.Z()/2,
	}
}

// Contains reports whether p lies inside the box, faces included.
func (b Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(p[i]-b.Center[i]) > b.Size[i]/2 {
			return false
		}
	}
	return true
}

// Stroke is a finalized polyline.
type Stroke struct {
	ID     string       `json:"id"`
	Points []mgl64.Vec3 `json:"points"`
	Style  Style        `json:"style"`
	Bounds Box          `json:"bounds"`
	// Anchor is where the host places the stroke's delete affordance.
	Anchor mgl64.Vec3 `json:"anchor"`
}

// Bounds computes the axis-aligned box around points, grown by width+margin
// on every axis. It is a pure function of its inputs.
func Bounds(points []mgl64.Vec3, width, margin float64) Box {
	if len(points) == 0 {
		return Box{}
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], p[i])
			hi[i] = math.Max(hi[i], p[i])
		}
	}

	grow := width + margin
	return Box{
		Size:   hi.Sub(lo).Add(mgl64.Vec3{grow, grow, grow}),
		Center: hi.Add(lo).Mul(0.5),
	}
}
