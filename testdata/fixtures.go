// Package testdata holds recorded renderer sessions for integration tests.
package testdata

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
)

//go:embed sessions/*
var sessionsFS embed.FS

// Session names.
const (
	// PinchStroke holds one right-hand pinch dragged left to right for a
	// second, long enough to pass the drag cooldown.
	PinchStroke = "pinch_stroke.jsonl"
	// DoublePinch holds two quick pinches, a double tap.
	DoublePinch = "double_pinch.jsonl"
)

// LoadSession returns the bridge messages of a session, one per line.
func LoadSession(name string) ([][]byte, error) {
	data, err := sessionsFS.ReadFile("sessions/" + name)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", name, err)
	}

	var msgs [][]byte
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		msgs = append(msgs, append([]byte(nil), line...))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read session %s: %w", name, err)
	}
	return msgs, nil
}
