package hand

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ayusman/airdoodle/internal/gesture"
)

// Config holds the landmark to sample conversion parameters.
type Config struct {
	// PinchOn and PinchOff are relative pinch distances. A hand becomes
	// selected below PinchOn and stays selected until it rises above PinchOff.
	PinchOn  float64
	PinchOff float64

	// MinScore drops detections below this confidence.
	MinScore float64

	// TapMaxHold is the longest press, in seconds, that still counts as a tap.
	TapMaxHold float64

	// Origin and Scale map image space into world space.
	Origin mgl64.Vec3
	Scale  float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		PinchOn:    0.25,
		PinchOff:   0.35,
		MinScore:   0.5,
		TapMaxHold: 0.3,
		Origin:     mgl64.Vec3{0, 0, 0.5},
		Scale:      1,
	}
}

type handState struct {
	selected bool
	held     float64
}

// Adapter converts landmark sets frame by frame. It keeps per-hand pinch
// state, so one Adapter serves one input stream.
type Adapter struct {
	config Config
	hands  map[gesture.Handedness]*handState
}

// NewAdapter creates an Adapter.
func NewAdapter(config Config) *Adapter {
	return &Adapter{
		config: config,
		hands:  make(map[gesture.Handedness]*handState),
	}
}

// Convert turns one frame of detections into hand samples plus the tap
// events implied by pinch transitions. dt is the time since the last call.
func (a *Adapter) Convert(dt float64, detections []Landmarks) ([]gesture.HandSample, []gesture.TapKind) {
	var samples []gesture.HandSample
	var taps []gesture.TapKind
	seen := make(map[gesture.Handedness]bool, 2)

	for i := range detections {
		d := &detections[i]
		if d.Score < a.config.MinScore {
			continue
		}
		side := gesture.Handedness(d.Handedness)
		if side != gesture.Left && side != gesture.Right {
			continue
		}
		if seen[side] {
			continue
		}
		seen[side] = true

		st, ok := a.hands[side]
		if !ok {
			st = &handState{}
			a.hands[side] = st
		}

		pinch := d.Pinch()
		switch {
		case !st.selected && pinch < a.config.PinchOn:
			st.selected = true
			st.held = 0
			taps = append(taps, gesture.TapDown)
		case st.selected && pinch > a.config.PinchOff:
			st.selected = false
			if st.held <= a.config.TapMaxHold {
				taps = append(taps, gesture.TapUp)
			}
		case st.selected:
			st.held += dt
		}

		samples = append(samples, gesture.HandSample{
			Position:   a.toWorld(d.PinchPoint()),
			Selected:   st.selected,
			Handedness: side,
			Tracked:    true,
		})
	}

	// A hand that disappears loses its pinch without producing a tap.
	for side := range a.hands {
		if !seen[side] {
			delete(a.hands, side)
		}
	}

	return samples, taps
}

func (a *Adapter) toWorld(p mgl64.Vec3) mgl64.Vec3 {
	local := mgl64.Vec3{p.X() - 0.5, 0.5 - p.Y(), -p.Z()}
	return a.config.Origin.Add(local.Mul(a.config.Scale))
}
