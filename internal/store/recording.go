package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// EntryKind tells what a recording entry holds.
type EntryKind string

const (
	// EntryFrame is a JSON-encoded engine frame.
	EntryFrame EntryKind = "frame"
	// EntryCommand is a JSON-encoded engine command.
	EntryCommand EntryKind = "command"
)

// Recording is a recorded input session.
type Recording struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	FrameRate int             `json:"frame_rate"`
	Settings  json.RawMessage `json:"settings"`
	Entries   int             `json:"entries"`
	CreatedAt time.Time       `json:"created_at"`
}

// Entry is one frame or command of a recording.
type Entry struct {
	Sequence int             `json:"sequence"`
	Kind     EntryKind       `json:"kind"`
	Data     json.RawMessage `json:"data"`
}

// RecordingRepository provides CRUD operations for recordings.
type RecordingRepository struct {
	db *sql.DB
}

// Recordings returns the recording repository for this store.
func (s *Store) Recordings() *RecordingRepository {
	return &RecordingRepository{db: s.db}
}

// Create inserts a new recording.
func (r *RecordingRepository) Create(rec *Recording) error {
	rec.CreatedAt = time.Now()

	settings := rec.Settings
	if settings == nil {
		settings = json.RawMessage("{}")
	}

	_, err := r.db.Exec(
		`INSERT INTO recordings (id, name, frame_rate, settings, entries, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.FrameRate, string(settings), rec.Entries, rec.CreatedAt,
	)
	return err
}

// GetByID retrieves a recording by its ID.
func (r *RecordingRepository) GetByID(id string) (*Recording, error) {
	rec := &Recording{}
	var settings string

	err := r.db.QueryRow(
		`SELECT id, name, frame_rate, settings, entries, created_at
		 FROM recordings WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Name, &rec.FrameRate, &settings, &rec.Entries, &rec.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rec.Settings = json.RawMessage(settings)
	return rec, nil
}

// List retrieves all recordings, newest first.
func (r *RecordingRepository) List() ([]*Recording, error) {
	rows, err := r.db.Query(
		`SELECT id, name, frame_rate, settings, entries, created_at
		 FROM recordings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recordings []*Recording
	for rows.Next() {
		rec := &Recording{}
		var settings string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.FrameRate, &settings, &rec.Entries, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Settings = json.RawMessage(settings)
		recordings = append(recordings, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recordings, nil
}

// Append stores entries for a recording in a single transaction and bumps
// its entry count.
func (r *RecordingRepository) Append(id string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO recording_entries (recording_id, sequence, kind, data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(id, e.Sequence, string(e.Kind), string(e.Data)); err != nil {
			return err
		}
	}

	result, err := tx.Exec(`UPDATE recordings SET entries = entries + ? WHERE id = ?`, len(entries), id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// Entries retrieves the entries of a recording in sequence order.
func (r *RecordingRepository) Entries(id string) ([]Entry, error) {
	rows, err := r.db.Query(
		`SELECT sequence, kind, data
		 FROM recording_entries
		 WHERE recording_id = ?
		 ORDER BY sequence, id`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, data string
		if err := rows.Scan(&e.Sequence, &kind, &data); err != nil {
			return nil, err
		}
		e.Kind = EntryKind(kind)
		e.Data = json.RawMessage(data)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Delete removes a recording and its entries.
func (r *RecordingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
