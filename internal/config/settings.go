// Package config holds the tunable constants and preset tables used by the
// interaction core.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrUnknownSetting is returned when a setting key is not recognized.
var ErrUnknownSetting = errors.New("unknown setting")

// Settings holds every numeric constant of the interaction core.
// Times are in seconds, lengths in world units, scroll values in picker units.
type Settings struct {
	// DoubleTapWindow is the maximum time between two taps of a double tap.
	DoubleTapWindow float64 `yaml:"double_tap_window"`
	// DragCooldown is how long a press must age before it may start a drag.
	DragCooldown float64 `yaml:"drag_cooldown"`

	// SmoothingRate is k in the stroke smoothing factor 1 - e^(-k*dt).
	SmoothingRate float64 `yaml:"smoothing_rate"`
	// MinPointSpacing is the minimum distance between appended stroke vertices.
	MinPointSpacing float64 `yaml:"min_point_spacing"`
	// BoundsMargin is added to the stroke width on every bounding box axis.
	BoundsMargin float64 `yaml:"bounds_margin"`

	ColorPitch        float64 `yaml:"color_pitch"`
	SizePitch         float64 `yaml:"size_pitch"`
	SizeArrangeOffset float64 `yaml:"size_arrange_offset"`
	SnapRate          float64 `yaml:"snap_rate"`
	SettleEpsilon     float64 `yaml:"settle_epsilon"`
	SpikeFactor       float64 `yaml:"spike_factor"`
	// ColorSoftClamp bounds a single color drag, in pitches.
	ColorSoftClamp float64 `yaml:"color_soft_clamp"`
	// WindowSlots is the number of materialized color slots (odd).
	WindowSlots int `yaml:"window_slots"`

	InitialColorIndex int `yaml:"initial_color_index"`
	InitialSizeIndex  int `yaml:"initial_size_index"`

	FPSSampleInterval float64 `yaml:"fps_sample_interval"`
	// FrameRate is the host pipeline tick rate. Zero lets the renderer drive
	// the clock: every frame it sends is one tick with its own dt.
	FrameRate int `yaml:"frame_rate"`
}

// DefaultSettings returns the settings the application ships with.
func DefaultSettings() Settings {
	return Settings{
		DoubleTapWindow:   0.5,
		DragCooldown:      0.5,
		SmoothingRate:     5,
		MinPointSpacing:   0.0005,
		BoundsMargin:      0.05,
		ColorPitch:        100,
		SizePitch:         175,
		SizeArrangeOffset: 5,
		SnapRate:          20,
		SettleEpsilon:     0.1,
		SpikeFactor:       1.3,
		ColorSoftClamp:    3,
		WindowSlots:       7,
		InitialColorIndex: 1,
		InitialSizeIndex:  1,
		FPSSampleInterval: 0.5,
		FrameRate:         60,
	}
}

func (s *Settings) floats() map[string]*float64 {
	return map[string]*float64{
		"double_tap_window":   &s.DoubleTapWindow,
		"drag_cooldown":       &s.DragCooldown,
		"smoothing_rate":      &s.SmoothingRate,
		"min_point_spacing":   &s.MinPointSpacing,
		"bounds_margin":       &s.BoundsMargin,
		"color_pitch":         &s.ColorPitch,
		"size_pitch":          &s.SizePitch,
		"size_arrange_offset": &s.SizeArrangeOffset,
		"snap_rate":           &s.SnapRate,
		"settle_epsilon":      &s.SettleEpsilon,
		"spike_factor":        &s.SpikeFactor,
		"color_soft_clamp":    &s.ColorSoftClamp,
		"fps_sample_interval": &s.FPSSampleInterval,
	}
}

func (s *Settings) ints() map[string]*int {
	return map[string]*int{
		"window_slots":        &s.WindowSlots,
		"initial_color_index": &s.InitialColorIndex,
		"initial_size_index":  &s.InitialSizeIndex,
		"frame_rate":          &s.FrameRate,
	}
}

// Keys returns all setting names in sorted order.
func Keys() []string {
	var s Settings
	keys := make([]string, 0, 17)
	for k := range s.floats() {
		keys = append(keys, k)
	}
	for k := range s.ints() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of the named setting.
func (s *Settings) Get(key string) (string, error) {
	if f, ok := s.floats()[key]; ok {
		return strconv.FormatFloat(*f, 'g', -1, 64), nil
	}
	if i, ok := s.ints()[key]; ok {
		return strconv.Itoa(*i), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
}

// Set parses value and assigns it to the named setting.
func (s *Settings) Set(key, value string) error {
	if f, ok := s.floats()[key]; ok {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		*f = v
		return nil
	}
	if i, ok := s.ints()[key]; ok {
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		*i = v
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
}

// Values returns every setting in string form, keyed by name.
func (s *Settings) Values() map[string]string {
	out := make(map[string]string, len(s.floats())+len(s.ints()))
	for _, k := range Keys() {
		v, _ := s.Get(k)
		out[k] = v
	}
	return out
}

// Apply assigns every override in order and stops at the first error.
func (s *Settings) Apply(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := s.Set(k, overrides[k]); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports the first setting that would break the core.
func (s Settings) Validate() error {
	for key, f := range s.floats() {
		if math.IsNaN(*f) || math.IsInf(*f, 0) {
			return fmt.Errorf("setting %s must be finite", key)
		}
		if key == "size_arrange_offset" {
			if *f < 0 {
				return fmt.Errorf("setting %s must not be negative", key)
			}
			continue
		}
		if *f <= 0 {
			return fmt.Errorf("setting %s must be positive", key)
		}
	}
	if s.WindowSlots < 3 || s.WindowSlots%2 == 0 {
		return fmt.Errorf("setting window_slots must be odd and at least 3, got %d", s.WindowSlots)
	}
	if s.FrameRate < 0 {
		return fmt.Errorf("setting frame_rate must not be negative, got %d", s.FrameRate)
	}
	if s.InitialColorIndex < 1 || s.InitialSizeIndex < 1 {
		return errors.New("initial preset indexes start at 1")
	}
	return nil
}

// Load reads a YAML file on top of DefaultSettings. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return s, nil
}
