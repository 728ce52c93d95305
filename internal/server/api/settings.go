package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/ayusman/airdoodle/internal/app"
	"github.com/ayusman/airdoodle/internal/config"
)

// SettingsHandler handles HTTP requests for the tunable settings.
type SettingsHandler struct {
	engine Engine
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(e Engine) *SettingsHandler {
	return &SettingsHandler{engine: e}
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type updateSettingRequest struct {
	Value string `json:"value"`
}

// ServeHTTP routes /api/settings and /api/settings/{key}.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/settings")
	key = strings.TrimPrefix(key, "/")

	if key == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPut:
			h.updateAll(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, key)
	case http.MethodPut:
		h.update(w, r, key)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	s, err := h.engine.Settings(r.Context())
	if err != nil {
		writeError(w, engineStatus(err), "Failed to read settings")
		return
	}
	writeJSON(w, http.StatusOK, s.Values())
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request, key string) {
	s, err := h.engine.Settings(r.Context())
	if err != nil {
		writeError(w, engineStatus(err), "Failed to read settings")
		return
	}
	v, err := s.Get(key)
	if err != nil {
		writeError(w, http.StatusNotFound, "Setting not found")
		return
	}
	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: v})
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request, key string) {
	var req updateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s, err := h.engine.UpdateSetting(r.Context(), key, req.Value)
	if err != nil {
		h.writeUpdateError(w, err)
		return
	}
	v, _ := s.Get(key)
	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: v})
}

// updateAll applies a map of settings in key order. It stops at the first
// rejected value; earlier keys stay applied.
func (h *SettingsHandler) updateAll(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	keys := make([]string, 0, len(req))
	for k := range req {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := h.engine.UpdateSetting(r.Context(), k, req[k]); err != nil {
			h.writeUpdateError(w, err)
			return
		}
	}
	h.list(w, r)
}

func (h *SettingsHandler) writeUpdateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, config.ErrUnknownSetting):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrInvalidSetting):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, engineStatus(err), err.Error())
	}
}
