package config

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrPresetIndex is returned for an index outside a preset table.
var ErrPresetIndex = errors.New("preset index out of range")

// Presets holds the pickable values. Every table is 1-based: slot 0 is an
// unused placeholder so picker indexes map straight onto table entries.
type Presets struct {
	Colors []colorful.Color
	Sizes  []float64
	// CursorSizes is parallel to Sizes.
	CursorSizes []float64
	// SizeIconPositions is parallel to Sizes.
	SizeIconPositions []float64
}

// DefaultPresets returns the shipped color and size tables.
func DefaultPresets() *Presets {
	return &Presets{
		Colors: []colorful.Color{
			{R: 0, G: 0, B: 0}, // empty
			{R: 1, G: 1, B: 1},
			{R: 0.7411765, G: 0.2627451, B: 0.3137255},
			{R: 0, G: 0.764706, B: 0.3411765},
			{R: 1, G: 0.7686275, B: 0},
			{R: 0, G: 0.7176471, B: 1},
		},
		Sizes:             []float64{0, 0.003, 0.01, 0.02, 0.03},
		CursorSizes:       []float64{0, 0.0005, 0.001, 0.002, 0.003},
		SizeIconPositions: []float64{0, -173, -103, -31, 0},
	}
}

// ColorCount returns the number of selectable colors.
func (p *Presets) ColorCount() int {
	return len(p.Colors) - 1
}

// SizeCount returns the number of selectable sizes.
func (p *Presets) SizeCount() int {
	return len(p.Sizes) - 1
}

// CheckSettings reports a start index in s that falls outside the tables.
func (p *Presets) CheckSettings(s Settings) error {
	if s.InitialColorIndex > p.ColorCount() {
		return fmt.Errorf("%w: initial color %d of %d", ErrPresetIndex, s.InitialColorIndex, p.ColorCount())
	}
	if s.InitialSizeIndex > p.SizeCount() {
		return fmt.Errorf("%w: initial size %d of %d", ErrPresetIndex, s.InitialSizeIndex, p.SizeCount())
	}
	return nil
}

// Color returns the color at a 1-based index.
func (p *Presets) Color(index int) (colorful.Color, error) {
	if index < 1 || index > p.ColorCount() {
		return colorful.Color{}, fmt.Errorf("%w: color %d of %d", ErrPresetIndex, index, p.ColorCount())
	}
	return p.Colors[index], nil
}

// MustColor is Color for callers that already guarantee the index. It panics
// on a bad index since that is a programming error.
func (p *Presets) MustColor(index int) colorful.Color {
	c, err := p.Color(index)
	if err != nil {
		panic(err)
	}
	return c
}

// Size returns the stroke width at a 1-based index.
func (p *Presets) Size(index int) (float64, error) {
	if index < 1 || index > p.SizeCount() {
		return 0, fmt.Errorf("%w: size %d of %d", ErrPresetIndex, index, p.SizeCount())
	}
	return p.Sizes[index], nil
}

// MustSize panics on a bad index.
func (p *Presets) MustSize(index int) float64 {
	s, err := p.Size(index)
	if err != nil {
		panic(err)
	}
	return s
}

// CursorScale returns the cursor scale matching a stroke width.
func (p *Presets) CursorScale(width float64) (float64, bool) {
	for i := 1; i < len(p.Sizes) && i < len(p.CursorSizes); i++ {
		if p.Sizes[i] == width {
			return p.CursorSizes[i], true
		}
	}
	return 0, false
}

// SizeIconPosition returns the vertical icon offset for a size index.
func (p *Presets) SizeIconPosition(index int) (float64, error) {
	if index < 1 || index >= len(p.SizeIconPositions) {
		return 0, fmt.Errorf("%w: size icon %d", ErrPresetIndex, index)
	}
	return p.SizeIconPositions[index], nil
}

// RotatedColors returns the color table rotated so that start is at slot 1.
// Slot 0 stays the placeholder. The receiver is not modified.
func (p *Presets) RotatedColors(start int) ([]colorful.Color, error) {
	n := p.ColorCount()
	if start < 1 || start > n {
		return nil, fmt.Errorf("%w: color %d of %d", ErrPresetIndex, start, n)
	}

	rotated := make([]colorful.Color, n+1)
	rotated[0] = colorful.Color{R: 1, G: 1, B: 1}
	idx := start
	for i := 1; i <= n; i++ {
		rotated[i] = p.Colors[idx]
		idx++
		if idx > n {
			idx = 1
		}
	}
	return rotated, nil
}
