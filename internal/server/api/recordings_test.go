package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/airdoodle/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestRecordingHandler(t *testing.T) {
	s := newTestStore(t)
	handler := NewRecordingHandler(s)

	rec := &store.Recording{ID: "rec-1", Name: "morning", FrameRate: 60}
	if err := s.Recordings().Create(rec); err != nil {
		t.Fatalf("failed to create recording: %v", err)
	}
	entries := []store.Entry{
		{Sequence: 0, Kind: store.EntryFrame, Data: json.RawMessage(`{"dt":0.016}`)},
		{Sequence: 1, Kind: store.EntryCommand, Data: json.RawMessage(`{"command":"new"}`)},
	}
	if err := s.Recordings().Append("rec-1", entries); err != nil {
		t.Fatalf("failed to append entries: %v", err)
	}

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recordings", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		var response listRecordingsResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(response.Recordings) != 1 || response.Recordings[0].Entries != 2 {
			t.Errorf("recordings = %+v, want one with 2 entries", response.Recordings)
		}
	})

	t.Run("get", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recordings/rec-1", nil))

		var response recordingResponse
		json.NewDecoder(w.Body).Decode(&response)
		if w.Code != http.StatusOK || response.Name != "morning" {
			t.Errorf("status %d name %q, want 200 morning", w.Code, response.Name)
		}
	})

	t.Run("entries", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recordings/rec-1/entries", nil))

		var response entriesResponse
		json.NewDecoder(w.Body).Decode(&response)
		if len(response.Entries) != 2 || response.Entries[1].Kind != store.EntryCommand {
			t.Errorf("entries = %+v", response.Entries)
		}
	})

	t.Run("missing", func(t *testing.T) {
		for _, path := range []string{"/api/recordings/none", "/api/recordings/none/entries"} {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			if w.Code != http.StatusNotFound {
				t.Errorf("GET %s: status = %d, want 404", path, w.Code)
			}
		}
	})

	t.Run("delete", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/recordings/rec-1", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
		}

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/recordings/rec-1", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("second delete: status = %d, want 404", w.Code)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recordings", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", w.Code)
		}
	})
}
