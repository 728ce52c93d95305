package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ayusman/airdoodle/internal/app"
	"github.com/ayusman/airdoodle/internal/config"
	"github.com/ayusman/airdoodle/internal/stroke"
)

// fakeEngine is an in-memory Engine. It accepts draw, edit and delete.
type fakeEngine struct {
	mode     app.Mode
	strokes  []stroke.Stroke
	settings config.Settings
	commands []app.Command
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		settings: config.DefaultSettings(),
		strokes: []stroke.Stroke{
			{ID: "a", Points: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}}},
			{ID: "b", Points: []mgl64.Vec3{{0, 1, 0}, {1, 1, 0}}},
		},
	}
}

func (f *fakeEngine) State(context.Context) (app.State, error) {
	return app.State{Mode: f.mode, Strokes: len(f.strokes)}, nil
}

func (f *fakeEngine) Command(_ context.Context, c app.Command) error {
	f.commands = append(f.commands, c)
	switch c.Kind {
	case app.CmdDraw:
		f.mode = app.Drawing
	case app.CmdEdit:
		f.mode = app.Transform
	case app.CmdDelete:
		for i, s := range f.strokes {
			if s.ID == c.Stroke {
				f.strokes = append(f.strokes[:i], f.strokes[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("delete %q: %w", c.Stroke, stroke.ErrNotFound)
	default:
		return fmt.Errorf("%w: %q", app.ErrUnknownCommand, c.Kind)
	}
	return nil
}

func (f *fakeEngine) Strokes(context.Context) ([]stroke.Stroke, error) {
	return append([]stroke.Stroke(nil), f.strokes...), nil
}

func (f *fakeEngine) Settings(context.Context) (config.Settings, error) {
	return f.settings, nil
}

func (f *fakeEngine) UpdateSetting(_ context.Context, key, value string) (config.Settings, error) {
	s := f.settings
	if err := s.Set(key, value); err != nil {
		return config.Settings{}, fmt.Errorf("%w: %w", app.ErrInvalidSetting, err)
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, fmt.Errorf("%w: %w", app.ErrInvalidSetting, err)
	}
	f.settings = s
	return s, nil
}

func TestCommandHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
	}{
		{"edit", http.MethodPost, `{"command":"edit"}`, http.StatusOK},
		{"unknown command", http.MethodPost, `{"command":"fly"}`, http.StatusBadRequest},
		{"missing command", http.MethodPost, `{}`, http.StatusBadRequest},
		{"invalid json", http.MethodPost, `{`, http.StatusBadRequest},
		{"missing stroke", http.MethodPost, `{"command":"delete","stroke":"zz"}`, http.StatusNotFound},
		{"wrong method", http.MethodGet, ``, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCommandHandler(newFakeEngine())
			req := httptest.NewRequest(tt.method, "/api/commands", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestCommandHandler_ReturnsState(t *testing.T) {
	handler := NewCommandHandler(newFakeEngine())
	req := httptest.NewRequest(http.MethodPost, "/api/commands", bytes.NewBufferString(`{"command":"edit"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	var st struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if st.Mode != "transform" {
		t.Errorf("mode = %q, want transform", st.Mode)
	}
}

func TestStateHandler(t *testing.T) {
	handler := NewStateHandler(newFakeEngine())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var st struct {
		Mode    string `json:"mode"`
		Strokes int    `json:"strokes"`
	}
	json.NewDecoder(rec.Body).Decode(&st)
	if st.Mode != "drawing" || st.Strokes != 2 {
		t.Errorf("state = %+v, want drawing with 2 strokes", st)
	}
}

func TestStrokeHandler(t *testing.T) {
	e := newFakeEngine()
	handler := NewStrokeHandler(e)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/strokes", nil))
	var listed listStrokesResponse
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listed.Strokes) != 2 {
		t.Fatalf("listed %d strokes, want 2", len(listed.Strokes))
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/strokes/b", nil))
	var got stroke.Stroke
	json.NewDecoder(rec.Body).Decode(&got)
	if rec.Code != http.StatusOK || got.ID != "b" {
		t.Errorf("GET stroke: status %d id %q", rec.Code, got.ID)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/strokes/a", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", rec.Code)
	}
	if len(e.strokes) != 1 || e.strokes[0].ID != "b" {
		t.Errorf("strokes after delete = %+v", e.strokes)
	}
	if last := e.commands[len(e.commands)-1]; last.Kind != app.CmdDelete || last.Stroke != "a" {
		t.Errorf("delete went through %+v, want a delete command", last)
	}

	for _, tc := range []struct {
		method, path string
		want         int
	}{
		{http.MethodDelete, "/api/strokes/a", http.StatusNotFound},
		{http.MethodGet, "/api/strokes/a", http.StatusNotFound},
		{http.MethodPost, "/api/strokes", http.StatusMethodNotAllowed},
		{http.MethodPut, "/api/strokes/b", http.StatusMethodNotAllowed},
	} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.want {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, rec.Code, tc.want)
		}
	}
}

func TestStrokeHandler_EmptyList(t *testing.T) {
	e := newFakeEngine()
	e.strokes = nil
	rec := httptest.NewRecorder()
	NewStrokeHandler(e).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/strokes", nil))

	if body := rec.Body.String(); body != "{\"strokes\":[]}\n" {
		t.Errorf("body = %q, want an empty array", body)
	}
}

func TestSettingsHandler(t *testing.T) {
	e := newFakeEngine()
	handler := NewSettingsHandler(e)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	var all map[string]string
	json.NewDecoder(rec.Body).Decode(&all)
	if all["snap_rate"] != "20" {
		t.Errorf("snap_rate = %q, want 20", all["snap_rate"])
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/settings/snap_rate", bytes.NewBufferString(`{"value":"12"}`)))
	var one settingResponse
	json.NewDecoder(rec.Body).Decode(&one)
	if rec.Code != http.StatusOK || one.Value != "12" || e.settings.SnapRate != 12 {
		t.Errorf("PUT: status %d value %q engine %v", rec.Code, one.Value, e.settings.SnapRate)
	}

	rec = httptest.NewRecorder()
	body := `{"drag_cooldown":"0.4","double_tap_window":"0.3"}`
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewBufferString(body)))
	if rec.Code != http.StatusOK || e.settings.DragCooldown != 0.4 || e.settings.DoubleTapWindow != 0.3 {
		t.Errorf("bulk PUT: status %d settings %+v", rec.Code, e.settings)
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"get one", http.MethodGet, "/api/settings/window_slots", "", http.StatusOK},
		{"get unknown", http.MethodGet, "/api/settings/nope", "", http.StatusNotFound},
		{"put unknown", http.MethodPut, "/api/settings/nope", `{"value":"1"}`, http.StatusNotFound},
		{"put invalid", http.MethodPut, "/api/settings/window_slots", `{"value":"4"}`, http.StatusBadRequest},
		{"put garbage", http.MethodPut, "/api/settings/snap_rate", `{"value":"x"}`, http.StatusBadRequest},
		{"bad json", http.MethodPut, "/api/settings", `[`, http.StatusBadRequest},
		{"delete", http.MethodDelete, "/api/settings", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
