package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayusman/airdoodle/internal/config"
	"github.com/ayusman/airdoodle/internal/store"
)

// Replay is a recorded session loaded for playback.
type Replay struct {
	Recording *store.Recording
	Settings  config.Settings
	Entries   []store.Entry
}

// OpenReplay loads recording id and the settings it was made with.
func OpenReplay(s *store.Store, id string) (*Replay, error) {
	repo := s.Recordings()
	rec, err := repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("recording %s: %w", id, err)
	}

	var values map[string]string
	if err := json.Unmarshal(rec.Settings, &values); err != nil {
		return nil, fmt.Errorf("recording %s settings: %w", id, err)
	}
	settings := config.DefaultSettings()
	if err := settings.Apply(values); err != nil {
		return nil, fmt.Errorf("recording %s settings: %w", id, err)
	}

	entries, err := repo.Entries(id)
	if err != nil {
		return nil, fmt.Errorf("recording %s entries: %w", id, err)
	}

	return &Replay{Recording: rec, Settings: settings, Entries: entries}, nil
}

// Run feeds every entry to engine in order. With pace set, it waits each
// frame's DT before ticking, reproducing the original timing. Commands that
// failed when recorded fail again and are not treated as replay errors.
func (r *Replay) Run(ctx context.Context, engine *Engine, pace bool) error {
	for _, e := range r.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch e.Kind {
		case store.EntryFrame:
			var f Frame
			if err := json.Unmarshal(e.Data, &f); err != nil {
				return fmt.Errorf("entry %d: %w", e.Sequence, err)
			}
			if pace && f.DT > 0 {
				timer := time.NewTimer(time.Duration(f.DT * float64(time.Second)))
				select {
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				case <-timer.C:
				}
			}
			engine.Tick(f)

		case store.EntryCommand:
			var c Command
			if err := json.Unmarshal(e.Data, &c); err != nil {
				return fmt.Errorf("entry %d: %w", e.Sequence, err)
			}
			_ = engine.Command(c)

		default:
			return fmt.Errorf("entry %d: unknown kind %q", e.Sequence, e.Kind)
		}
	}
	return nil
}
