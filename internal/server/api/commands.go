package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/airdoodle/internal/app"
)

// CommandHandler handles POST /api/commands and returns the engine state
// after the command ran.
type CommandHandler struct {
	engine Engine
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(e Engine) *CommandHandler {
	return &CommandHandler{engine: e}
}

// ServeHTTP implements the http.Handler interface.
func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var c app.Command
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if c.Kind == "" {
		writeError(w, http.StatusBadRequest, "Command is required")
		return
	}

	if err := h.engine.Command(r.Context(), c); err != nil {
		writeError(w, engineStatus(err), err.Error())
		return
	}

	st, err := h.engine.State(r.Context())
	if err != nil {
		writeError(w, engineStatus(err), "Failed to read state")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// StateHandler handles GET /api/state.
type StateHandler struct {
	engine Engine
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(e Engine) *StateHandler {
	return &StateHandler{engine: e}
}

// ServeHTTP implements the http.Handler interface.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	st, err := h.engine.State(r.Context())
	if err != nil {
		writeError(w, engineStatus(err), "Failed to read state")
		return
	}
	writeJSON(w, http.StatusOK, st)
}
