package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ayusman/airdoodle/internal/config"
	"github.com/ayusman/airdoodle/internal/gesture"
	"github.com/ayusman/airdoodle/internal/scroll"
	"github.com/ayusman/airdoodle/internal/stroke"
)

// EngineConfig holds the engine dependencies.
type EngineConfig struct {
	Settings config.Settings
	Presets  *config.Presets
	Logger   *zap.Logger
}

// DefaultEngineConfig returns the shipped settings and presets with logging off.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Settings: config.DefaultSettings(),
		Presets:  config.DefaultPresets(),
		Logger:   zap.NewNop(),
	}
}

// Engine is the interaction core. It routes per-frame gestures and UI
// commands through the mode state machine. It is not safe for concurrent
// use: one goroutine ticks it and issues every command.
type Engine struct {
	settings config.Settings
	presets  *config.Presets
	log      *zap.Logger

	classifier *gesture.Classifier
	taps       *gesture.TapDetector
	capture    *stroke.Capture
	strokes    *stroke.Registry
	menu       *scroll.Menu
	fps        fpsMeter

	mode        Mode
	transformOn bool
	subMenu     SubMenu
	phase       DrawPhase
	last        gesture.Result

	colorIndex  int
	sizeIndex   int
	cursorScale float64

	frame     uint64
	listeners []Listener
}

// NewEngine creates an Engine in Drawing mode with the pickers initialized
// to the configured start indexes.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("engine settings: %w", err)
	}
	if cfg.Presets == nil {
		cfg.Presets = config.DefaultPresets()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := cfg.Settings
	menu, err := scroll.NewMenu(s, cfg.Presets)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		settings:   s,
		presets:    cfg.Presets,
		log:        cfg.Logger,
		classifier: gesture.NewClassifier(),
		taps:       gesture.NewTapDetector(s.DoubleTapWindow, s.DragCooldown),
		capture:    stroke.NewCapture(s.SmoothingRate, s.MinPointSpacing, s.BoundsMargin),
		strokes:    stroke.NewRegistry(),
		menu:       menu,
		fps:        fpsMeter{interval: s.FPSSampleInterval},
		mode:       Drawing,
		subMenu:    DoneMoving,
		phase:      DoneCreate,
	}

	// The pickers start settled on index 1 (color, after rotation) and the
	// configured size.
	e.applySelection(scroll.ColorPicker, 1, false)
	e.applySelection(scroll.SizePicker, s.InitialSizeIndex, false)

	return e, nil
}

// Subscribe registers a listener for every subsequent event.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

func (e *Engine) emit(ev Event) {
	ev.Frame = e.frame
	for _, l := range e.listeners {
		l(ev)
	}
}

// Tick runs one frame: pending taps, timers, gesture classification, mode
// routing and picker animation.
func (e *Engine) Tick(f Frame) {
	e.frame++
	dt := f.DT
	if dt < 0 {
		dt = 0
	}
	e.fps.tick(dt)

	for _, t := range f.Taps {
		switch t {
		case gesture.TapDown:
			e.TapDown()
		case gesture.TapUp:
			e.TapUp()
		}
	}
	e.taps.Tick(dt)

	r := e.classifier.Classify(f.Hands, e.taps.DragPermitted())
	e.taps.SetEligible(!r.BothSelected)
	e.last = r

	if r.CursorChanged {
		e.emit(Event{Kind: EventCursorChanged, Tracked: r.Tracked, Selected: r.Selected})
	}

	if e.mode == Drawing {
		e.routeGesture(r, dt)
	}

	if r.HandLost {
		e.handLost()
	}

	e.tickPicker(f, dt)
}

// TapDown forwards a pointer press to the double-tap detector.
func (e *Engine) TapDown() {
	e.taps.TapDown()
}

// TapUp forwards a pointer release. A completed double tap toggles Setting.
func (e *Engine) TapUp() {
	if e.taps.TapUp() {
		e.doubleTapped()
	}
}

func (e *Engine) routeGesture(r gesture.Result, dt float64) {
	switch r.Gesture {
	case gesture.StartDrag:
		if e.capture.Active() {
			e.doneCreate()
		}
		e.phase = Create
		e.capture.Begin(r.Cursor)

	case gesture.Dragging:
		if !e.capture.Active() {
			return
		}
		e.phase = AddPoint
		e.capture.Extend(r.Cursor, dt)

	case gesture.DoneDragging:
		if e.capture.Active() {
			e.doneCreate()
		}
	}
}

// doneCreate finalizes the open stroke.
func (e *Engine) doneCreate() {
	e.phase = DoneCreate
	s, ok := e.capture.Finish()
	if !ok {
		e.log.Debug("stroke discarded", zap.Uint64("frame", e.frame))
		e.emit(Event{Kind: EventStrokeDiscarded})
		return
	}

	e.strokes.Add(s)
	e.log.Debug("stroke finalized",
		zap.String("id", s.ID),
		zap.Int("points", len(s.Points)),
	)
	e.emit(Event{Kind: EventStrokeFinalized, Stroke: &s, StrokeID: s.ID})
}

func (e *Engine) handLost() {
	e.emit(Event{Kind: EventHandLost})

	switch e.mode {
	case Drawing:
		if e.phase == AddPoint && e.capture.Active() {
			e.doneCreate()
		}
	case Setting:
		e.doneSelection()
	}
}

func (e *Engine) tickPicker(f Frame, dt float64) {
	if e.mode != Setting {
		return
	}
	p, kind, ok := e.menu.Active()
	if !ok {
		return
	}

	if e.subMenu == SubMenuColor || e.subMenu == SubMenuSize {
		if f.Scroll != 0 {
			p.Drag(f.Scroll)
		}
		if f.Release {
			e.doneSelection()
		}
	}

	if e.subMenu == DoneMoving {
		return
	}
	if idx, settled := p.Tick(dt); settled {
		e.doneMoving(kind, idx)
	}
}

// Settings returns the active settings.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// ApplySettings validates s and retunes every component. Picker geometry
// (pitches, window size, start indexes) only applies to a new engine.
func (e *Engine) ApplySettings(s config.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := e.presets.CheckSettings(s); err != nil {
		return err
	}
	e.settings = s
	e.taps.SetTiming(s.DoubleTapWindow, s.DragCooldown)
	e.capture.SetTuning(s.SmoothingRate, s.MinPointSpacing, s.BoundsMargin)
	e.menu.Retune(s)
	e.fps.interval = s.FPSSampleInterval
	return nil
}

// Strokes returns the finalized strokes in creation order.
func (e *Engine) Strokes() []stroke.Stroke {
	return e.strokes.List()
}

// Mode returns the current application mode.
func (e *Engine) Mode() Mode {
	return e.mode
}
