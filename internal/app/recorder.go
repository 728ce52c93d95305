package app

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ayusman/airdoodle/internal/config"
	"github.com/ayusman/airdoodle/internal/store"
)

// recordBatch is the number of entries buffered before a write.
const recordBatch = 120

// StoreRecorder writes the pipeline input to a store recording so that the
// session can be replayed later.
type StoreRecorder struct {
	repo    *store.RecordingRepository
	id      string
	seq     int
	pending []store.Entry
}

// NewStoreRecorder creates a recording named name that remembers the
// settings in force.
func NewStoreRecorder(s *store.Store, name string, settings config.Settings) (*StoreRecorder, error) {
	data, err := json.Marshal(settings.Values())
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}

	rec := &store.Recording{
		ID:        uuid.New().String(),
		Name:      name,
		FrameRate: settings.FrameRate,
		Settings:  data,
	}
	repo := s.Recordings()
	if err := repo.Create(rec); err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}

	return &StoreRecorder{repo: repo, id: rec.ID}, nil
}

// ID returns the recording ID.
func (r *StoreRecorder) ID() string {
	return r.id
}

// RecordFrame buffers a frame.
func (r *StoreRecorder) RecordFrame(f Frame) error {
	return r.add(store.EntryFrame, f)
}

// RecordCommand buffers a command.
func (r *StoreRecorder) RecordCommand(c Command) error {
	return r.add(store.EntryCommand, c)
}

func (r *StoreRecorder) add(kind store.EntryKind, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s entry: %w", kind, err)
	}
	r.pending = append(r.pending, store.Entry{Sequence: r.seq, Kind: kind, Data: data})
	r.seq++
	if len(r.pending) >= recordBatch {
		return r.Flush()
	}
	return nil
}

// Flush writes the buffered entries.
func (r *StoreRecorder) Flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	if err := r.repo.Append(r.id, r.pending); err != nil {
		return err
	}
	r.pending = r.pending[:0]
	return nil
}
