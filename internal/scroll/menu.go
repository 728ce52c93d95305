package scroll

import (
	"fmt"

	"github.com/ayusman/airdoodle/internal/config"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Kind names one of the two sub-menu pickers.
type Kind int

const (
	ColorPicker Kind = iota
	SizePicker
)

func (k Kind) String() string {
	switch k {
	case ColorPicker:
		return "color"
	case SizePicker:
		return "size"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Menu owns the color and size pickers and the rotated color table the color
// picker indexes into. At most one picker is active at a time.
type Menu struct {
	presets *config.Presets
	color   *Picker
	size    *Picker

	colors []colorful.Color
	active *Picker
	kind   Kind
}

// NewMenu builds both pickers from settings and presets and initializes them
// to the configured start indexes.
func NewMenu(s config.Settings, presets *config.Presets) (*Menu, error) {
	m := &Menu{
		presets: presets,
		color: NewPicker(Options{
			Circular:      true,
			Count:         presets.ColorCount(),
			Pitch:         s.ColorPitch,
			SnapRate:      s.SnapRate,
			SettleEpsilon: s.SettleEpsilon,
			SpikeFactor:   s.SpikeFactor,
			SoftClamp:     s.ColorSoftClamp,
			Slots:         s.WindowSlots,
		}),
		size: NewPicker(Options{
			Count:         presets.SizeCount(),
			Pitch:         s.SizePitch,
			ArrangeOffset: s.SizeArrangeOffset,
			SnapRate:      s.SnapRate,
			SettleEpsilon: s.SettleEpsilon,
		}),
	}
	if _, err := m.InitColor(s.InitialColorIndex); err != nil {
		return nil, err
	}
	if _, err := m.InitSize(s.InitialSizeIndex); err != nil {
		return nil, err
	}
	return m, nil
}

// Configure makes the picker of kind k the active one and returns it.
func (m *Menu) Configure(k Kind) *Picker {
	m.kind = k
	m.active = m.Picker(k)
	m.active.Configure()
	return m.active
}

// Close deactivates the active picker.
func (m *Menu) Close() {
	m.active = nil
}

// Active returns the active picker and its kind.
func (m *Menu) Active() (*Picker, Kind, bool) {
	if m.active == nil {
		return nil, 0, false
	}
	return m.active, m.kind, true
}

// Picker returns the picker of kind k.
func (m *Menu) Picker(k Kind) *Picker {
	switch k {
	case ColorPicker:
		return m.color
	case SizePicker:
		return m.size
	default:
		panic(fmt.Sprintf("scroll: unknown picker %v", k))
	}
}

// Retune applies new timing settings to both pickers.
func (m *Menu) Retune(s config.Settings) {
	m.color.SetTiming(s.SnapRate, s.SettleEpsilon, s.SpikeFactor)
	m.size.SetTiming(s.SnapRate, s.SettleEpsilon, 0)
}

// InitColor rotates the color table so index is shown first and resets the
// color picker onto it. It returns the picker index now selected.
func (m *Menu) InitColor(index int) (int, error) {
	colors, err := m.presets.RotatedColors(index)
	if err != nil {
		return 0, fmt.Errorf("init color picker: %w", err)
	}
	m.colors = colors
	return m.color.InitIndex(index), nil
}

// InitSize jumps the size picker to index.
func (m *Menu) InitSize(index int) (int, error) {
	if _, err := m.presets.Size(index); err != nil {
		return 0, fmt.Errorf("init size picker: %w", err)
	}
	return m.size.InitIndex(index), nil
}

// Color resolves a color picker index through the rotated table.
func (m *Menu) Color(index int) (colorful.Color, error) {
	if index < 1 || index >= len(m.colors) {
		return colorful.Color{}, fmt.Errorf("%w: color slot %d", config.ErrPresetIndex, index)
	}
	return m.colors[index], nil
}

// Size resolves a size picker index.
func (m *Menu) Size(index int) (float64, error) {
	return m.presets.Size(index)
}

// Presets returns the preset tables the menu was built from.
func (m *Menu) Presets() *config.Presets {
	return m.presets
}
