// Package api provides HTTP API handlers for the doodling engine.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/airdoodle/internal/app"
	"github.com/ayusman/airdoodle/internal/config"
	"github.com/ayusman/airdoodle/internal/stroke"
)

// Engine is the running application as seen by the handlers.
type Engine interface {
	State(ctx context.Context) (app.State, error)
	Command(ctx context.Context, c app.Command) error
	Strokes(ctx context.Context) ([]stroke.Stroke, error)
	Settings(ctx context.Context) (config.Settings, error)
	UpdateSetting(ctx context.Context, key, value string) (config.Settings, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// engineStatus maps an engine error to an HTTP status.
func engineStatus(err error) int {
	switch {
	case errors.Is(err, app.ErrUnknownCommand),
		errors.Is(err, config.ErrPresetIndex),
		errors.Is(err, app.ErrInvalidSetting):
		return http.StatusBadRequest
	case errors.Is(err, stroke.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
