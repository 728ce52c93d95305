// Package app provides the interaction engine of the doodling application
// and the pipeline that hosts it.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/airdoodle/internal/config"
	"github.com/ayusman/airdoodle/internal/store"
	"github.com/ayusman/airdoodle/internal/stroke"
)

// ErrInvalidSetting is returned by UpdateSetting for a value the engine rejects.
var ErrInvalidSetting = errors.New("invalid setting")

// Config holds configuration options for the application.
type Config struct {
	Settings config.Settings
	Presets  *config.Presets
	Store    *store.Store
	Logger   *zap.Logger

	// Record stores every frame and command as a recording named RecordingName.
	Record        bool
	RecordingName string
}

// App wires the engine, its pipeline and the settings store together.
type App struct {
	store    *store.Store
	log      *zap.Logger
	engine   *Engine
	pipeline *Pipeline
	recorder *StoreRecorder
	started  time.Time
}

// New creates a new App. Setting overrides saved in the store are applied
// on top of cfg.Settings.
func New(cfg Config) (*App, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	settings := cfg.Settings
	if cfg.Store != nil {
		overrides, err := cfg.Store.Settings().All()
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		if err := settings.Apply(overrides); err != nil {
			return nil, fmt.Errorf("applying stored settings: %w", err)
		}
		if len(overrides) > 0 {
			cfg.Logger.Info("applied stored settings", zap.Int("count", len(overrides)))
		}
	}

	engine, err := NewEngine(EngineConfig{
		Settings: settings,
		Presets:  cfg.Presets,
		Logger:   cfg.Logger.Named("engine"),
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		store:   cfg.Store,
		log:     cfg.Logger,
		engine:  engine,
		started: time.Now(),
	}

	pcfg := PipelineConfig{
		FrameRate: settings.FrameRate,
		Logger:    cfg.Logger.Named("pipeline"),
	}
	if cfg.Record {
		if cfg.Store == nil {
			return nil, errors.New("recording requires a store")
		}
		rec, err := NewStoreRecorder(cfg.Store, cfg.RecordingName, settings)
		if err != nil {
			return nil, err
		}
		a.recorder = rec
		pcfg.Recorder = rec
		cfg.Logger.Info("recording session", zap.String("recording", rec.ID()))
	}
	a.pipeline = NewPipeline(engine, pcfg)

	return a, nil
}

// Run runs the pipeline until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.pipeline.Run(ctx)
}

// Submit queues a frame for the engine.
func (a *App) Submit(f Frame) bool {
	return a.pipeline.Submit(f)
}

// Command runs a UI command on the engine.
func (a *App) Command(ctx context.Context, c Command) error {
	return a.pipeline.Command(ctx, c)
}

// State returns an engine snapshot.
func (a *App) State(ctx context.Context) (State, error) {
	var st State
	err := a.pipeline.Do(ctx, func(e *Engine) error {
		st = e.State()
		return nil
	})
	return st, err
}

// Strokes returns the finalized strokes.
func (a *App) Strokes(ctx context.Context) ([]stroke.Stroke, error) {
	var out []stroke.Stroke
	err := a.pipeline.Do(ctx, func(e *Engine) error {
		out = e.Strokes()
		return nil
	})
	return out, err
}

// Subscribe registers a listener for engine events.
func (a *App) Subscribe(l Listener) {
	a.pipeline.Subscribe(l)
}

// Settings returns the active settings.
func (a *App) Settings(ctx context.Context) (config.Settings, error) {
	var s config.Settings
	err := a.pipeline.Do(ctx, func(e *Engine) error {
		s = e.Settings()
		return nil
	})
	return s, err
}

// UpdateSetting changes one setting on the running engine and saves it to
// the store so it survives a restart.
func (a *App) UpdateSetting(ctx context.Context, key, value string) (config.Settings, error) {
	var updated config.Settings
	err := a.pipeline.Do(ctx, func(e *Engine) error {
		s := e.Settings()
		if err := s.Set(key, value); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSetting, err)
		}
		if err := e.ApplySettings(s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSetting, err)
		}
		updated = s
		return nil
	})
	if err != nil {
		return config.Settings{}, err
	}

	if a.store != nil {
		// Store the normalized form so the row matches what Get returns.
		v, _ := updated.Get(key)
		if err := a.store.Settings().Set(key, v); err != nil {
			return updated, fmt.Errorf("saving setting %s: %w", key, err)
		}
	}
	a.log.Info("setting updated", zap.String("key", key), zap.String("value", value))
	return updated, nil
}

// RecordingID returns the ID of the session recording, or "" when the
// session is not recorded.
func (a *App) RecordingID() string {
	if a.recorder == nil {
		return ""
	}
	return a.recorder.ID()
}

// Uptime returns the time since the app was created.
func (a *App) Uptime() time.Duration {
	return time.Since(a.started)
}

// Store returns the settings and recording store, which may be nil.
func (a *App) Store() *store.Store {
	return a.store
}
