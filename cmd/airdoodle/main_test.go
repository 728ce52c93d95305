package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/airdoodle/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRecordCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := execute(t, "record", "list", "--db", db)
	if err != nil {
		t.Fatalf("record list error = %v", err)
	}
	if !strings.Contains(out, "no recordings") {
		t.Errorf("output = %q, want no recordings", out)
	}

	st, err := store.New(db)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	rec := &store.Recording{ID: "rec-1", Name: "demo", FrameRate: 60}
	if err := st.Recordings().Create(rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	st.Close()

	out, err = execute(t, "record", "list", "--db", db)
	if err != nil {
		t.Fatalf("record list error = %v", err)
	}
	if !strings.Contains(out, "rec-1") || !strings.Contains(out, "demo") {
		t.Errorf("output = %q, want the recording", out)
	}

	if _, err := execute(t, "record", "delete", "rec-1", "--db", db); err != nil {
		t.Fatalf("record delete error = %v", err)
	}
	if _, err := execute(t, "record", "delete", "rec-1", "--db", db); err == nil {
		t.Error("deleting a missing recording should fail")
	}
}

func TestReplayCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	st, err := store.New(db)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	rec := &store.Recording{ID: "rec-1", Name: "demo", FrameRate: 60, Settings: json.RawMessage(`{}`)}
	if err := st.Recordings().Create(rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	entries := []store.Entry{
		{Sequence: 0, Kind: store.EntryFrame, Data: json.RawMessage(`{"dt":0.016}`)},
		{Sequence: 1, Kind: store.EntryCommand, Data: json.RawMessage(`{"command":"edit"}`)},
	}
	if err := st.Recordings().Append("rec-1", entries); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	st.Close()

	out, err := execute(t, "replay", "rec-1", "--fast", "--db", db)
	if err != nil {
		t.Fatalf("replay error = %v", err)
	}
	if !strings.Contains(out, `"kind":"mode_changed"`) || !strings.Contains(out, "mode transform") {
		t.Errorf("output = %q, want the mode change and summary", out)
	}

	if _, err := execute(t, "replay", "missing", "--db", db); err == nil {
		t.Error("replaying a missing recording should fail")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestReplayCommand_WriteErrorLogged(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "cli.db")
	logPath := filepath.Join(dir, "replay.log")
	t.Cleanup(func() { logFile = "" })

	st, err := store.New(db)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	rec := &store.Recording{ID: "rec-1", Name: "demo", FrameRate: 60, Settings: json.RawMessage(`{}`)}
	if err := st.Recordings().Create(rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	entries := []store.Entry{
		{Sequence: 0, Kind: store.EntryCommand, Data: json.RawMessage(`{"command":"edit"}`)},
	}
	if err := st.Recordings().Append("rec-1", entries); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	st.Close()

	var stderr bytes.Buffer
	rootCmd.SetOut(failingWriter{})
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"replay", "rec-1", "--fast", "--db", db, "--log-file", logPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("replay error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "writing event failed") {
		t.Errorf("log = %q, want the write failure", data)
	}
}
