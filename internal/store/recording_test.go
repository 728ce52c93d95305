package store

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRecordingRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	rec := &Recording{
		ID:        "rec-1",
		Name:      "first session",
		FrameRate: 60,
		Settings:  json.RawMessage(`{"snap_rate":20}`),
	}
	if err := repo.Create(rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	got, err := repo.GetByID("rec-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != rec.Name || got.FrameRate != 60 || string(got.Settings) != `{"snap_rate":20}` {
		t.Errorf("got %+v", got)
	}

	if _, err := repo.GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(missing) = %v, want ErrNotFound", err)
	}
}

func TestRecordingRepository_DefaultSettings(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	if err := repo.Create(&Recording{ID: "r", Name: "n", FrameRate: 30}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID("r")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if string(got.Settings) != "{}" {
		t.Errorf("settings = %s, want {}", got.Settings)
	}
}

func TestRecordingRepository_AppendAndEntries(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()
	repo.Create(&Recording{ID: "rec", Name: "n", FrameRate: 60})

	batch1 := []Entry{
		{Sequence: 0, Kind: EntryFrame, Data: json.RawMessage(`{"dt":0.016}`)},
		{Sequence: 1, Kind: EntryCommand, Data: json.RawMessage(`{"command":"edit"}`)},
	}
	batch2 := []Entry{
		{Sequence: 2, Kind: EntryFrame, Data: json.RawMessage(`{"dt":0.017}`)},
	}
	if err := repo.Append("rec", batch1); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append("rec", batch2); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append("rec", nil); err != nil {
		t.Errorf("empty Append: %v", err)
	}

	entries, err := repo.Entries("rec")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, e := range entries {
		if e.Sequence != i {
			t.Errorf("entry %d sequence = %d", i, e.Sequence)
		}
	}
	if entries[1].Kind != EntryCommand || string(entries[1].Data) != `{"command":"edit"}` {
		t.Errorf("entry 1 = %+v", entries[1])
	}

	rec, _ := repo.GetByID("rec")
	if rec.Entries != 3 {
		t.Errorf("entry count = %d, want 3", rec.Entries)
	}
}

func TestRecordingRepository_AppendUnknown(t *testing.T) {
	s := newTestStore(t)

	err := s.Recordings().Append("missing", []Entry{{Kind: EntryFrame, Data: json.RawMessage(`{}`)}})
	if err == nil {
		t.Fatal("Append to a missing recording should fail")
	}
}

func TestRecordingRepository_ListAndDelete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Recordings()

	for _, id := range []string{"a", "b"} {
		if err := repo.Create(&Recording{ID: id, Name: id, FrameRate: 60}); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}
	repo.Append("a", []Entry{{Kind: EntryFrame, Data: json.RawMessage(`{}`)}})

	list, err := repo.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d, want 2", len(list))
	}

	if err := repo.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}

	entries, err := repo.Entries("a")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries of deleted recording = %d, want 0 (cascade)", len(entries))
	}
}
