package gesture

// TapPhase is the state of the double-tap state machine.
type TapPhase int

const (
	// Idle waits for a first tap.
	Idle TapPhase = iota
	// WaitingSecondTap has seen one tap and runs the double-tap window.
	WaitingSecondTap
)

func (p TapPhase) String() string {
	if p == WaitingSecondTap {
		return "WaitingSecondTap"
	}
	return "Idle"
}

// TapKind distinguishes the two pointer events a tap is made of.
type TapKind string

const (
	TapDown TapKind = "down"
	TapUp   TapKind = "up"
)

// TapState is a snapshot of the detector's bookkeeping.
type TapState struct {
	Phase      TapPhase
	ClickCount int
	Timer      float64 // time since the first tap
}

// TapDetector discriminates double taps and gates dragging behind a cooldown
// that starts on every press. It is advanced by Tick with the frame delta.
type TapDetector struct {
	window   float64
	cooldown float64

	phase  TapPhase
	clicks int
	timer  float64

	cooling       bool
	coolElapsed   float64
	dragPermitted bool
	eligible      bool
}

// NewTapDetector creates a detector with the given double-tap window and drag
// cooldown, both in seconds. Dragging starts out permitted.
func NewTapDetector(window, cooldown float64) *TapDetector {
	return &TapDetector{
		window:        window,
		cooldown:      cooldown,
		dragPermitted: true,
		eligible:      true,
	}
}

// SetEligible turns tap counting on or off. The classifier clears it while
// both hands are selected.
func (d *TapDetector) SetEligible(eligible bool) {
	d.eligible = eligible
}

// TapDown records the start of a press. A held press only becomes a drag
// candidate after the cooldown has elapsed.
func (d *TapDetector) TapDown() {
	d.startCooldown()
}

// TapUp records a completed tap and reports whether it completed a double tap.
func (d *TapDetector) TapUp() bool {
	if !d.eligible {
		return false
	}

	d.startCooldown()
	d.clicks++

	if d.clicks >= 2 {
		d.resetTaps()
		return true
	}

	d.phase = WaitingSecondTap
	d.timer = 0
	return false
}

// Tick advances the double-tap window and the drag cooldown by dt seconds.
// The window is frozen while taps are ineligible.
func (d *TapDetector) Tick(dt float64) {
	if d.eligible && d.phase == WaitingSecondTap {
		d.timer += dt
		if d.timer >= d.window {
			// a lone tap is dropped silently
			d.resetTaps()
		}
	}

	if d.cooling {
		d.coolElapsed += dt
		if d.coolElapsed >= d.cooldown {
			d.cooling = false
			d.dragPermitted = true
		}
	}
}

// DragPermitted reports whether a held selection may start a drag.
func (d *TapDetector) DragPermitted() bool {
	return d.dragPermitted
}

// State returns the current tap bookkeeping.
func (d *TapDetector) State() TapState {
	return TapState{Phase: d.phase, ClickCount: d.clicks, Timer: d.timer}
}

// SetTiming replaces the window and cooldown durations.
func (d *TapDetector) SetTiming(window, cooldown float64) {
	d.window = window
	d.cooldown = cooldown
}

func (d *TapDetector) startCooldown() {
	d.dragPermitted = false
	d.cooling = true
	d.coolElapsed = 0
}

func (d *TapDetector) resetTaps() {
	d.phase = Idle
	d.clicks = 0
	d.timer = 0
}
