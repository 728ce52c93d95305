package api

import (
	"net/http"
	"strings"

	"github.com/ayusman/airdoodle/internal/app"
	"github.com/ayusman/airdoodle/internal/stroke"
)

// StrokeHandler handles HTTP requests for finalized strokes.
type StrokeHandler struct {
	engine Engine
}

// NewStrokeHandler creates a new StrokeHandler.
func NewStrokeHandler(e Engine) *StrokeHandler {
	return &StrokeHandler{engine: e}
}

type listStrokesResponse struct {
	Strokes []stroke.Stroke `json:"strokes"`
}

// ServeHTTP routes /api/strokes and /api/strokes/{id}.
func (h *StrokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/strokes")
	id = strings.TrimPrefix(id, "/")

	if id == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *StrokeHandler) list(w http.ResponseWriter, r *http.Request) {
	strokes, err := h.engine.Strokes(r.Context())
	if err != nil {
		writeError(w, engineStatus(err), "Failed to list strokes")
		return
	}
	if strokes == nil {
		strokes = []stroke.Stroke{}
	}
	writeJSON(w, http.StatusOK, listStrokesResponse{Strokes: strokes})
}

func (h *StrokeHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	strokes, err := h.engine.Strokes(r.Context())
	if err != nil {
		writeError(w, engineStatus(err), "Failed to get stroke")
		return
	}
	for _, s := range strokes {
		if s.ID == id {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Stroke not found")
}

// delete removes a stroke through the engine so listeners see the event.
func (h *StrokeHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.engine.Command(r.Context(), app.Command{Kind: app.CmdDelete, Stroke: id})
	if err != nil {
		status := engineStatus(err)
		if status == http.StatusNotFound {
			writeError(w, status, "Stroke not found")
			return
		}
		writeError(w, status, "Failed to delete stroke")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
