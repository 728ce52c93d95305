// Package server provides the HTTP server and renderer bridge for the
// doodling engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/airdoodle/internal/app"
	"github.com/ayusman/airdoodle/internal/hand"
	"github.com/ayusman/airdoodle/internal/server/api"
	"github.com/ayusman/airdoodle/internal/store"
)

// Application is the running engine host the server exposes.
type Application interface {
	api.Engine
	Submit(f app.Frame) bool
	Subscribe(l app.Listener)
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	App       Application
	Store     *store.Store
	Hand      hand.Config
	Logger    *zap.Logger
}

// Server represents the HTTP server for the application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	bridge *Bridge
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if a := s.config.App; a != nil {
		s.mux.Handle("/api/state", api.NewStateHandler(a))
		s.mux.Handle("/api/commands", api.NewCommandHandler(a))

		strokes := api.NewStrokeHandler(a)
		s.mux.Handle("/api/strokes", strokes)
		s.mux.Handle("/api/strokes/", strokes)

		settings := api.NewSettingsHandler(a)
		s.mux.Handle("/api/settings", settings)
		s.mux.Handle("/api/settings/", settings)

		s.bridge = NewBridge(a, s.config.Hand, s.config.Logger.Named("bridge"))
		s.mux.Handle("/api/bridge", s.bridge)
	}

	if s.config.Store != nil {
		recordings := api.NewRecordingHandler(s.config.Store)
		s.mux.Handle("/api/recordings", recordings)
		s.mux.Handle("/api/recordings/", recordings)
	}

	// Serve the renderer's static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.config.App != nil {
		st, err := s.config.App.State(r.Context())
		if err != nil {
			response["status"] = "degraded"
		} else {
			response["mode"] = st.Mode
			response["fps"] = st.FPS
		}
	}
	if s.bridge != nil {
		response["clients"] = s.bridge.Clients()
	}

	writeJSON(w, response)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.config.Logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.bridge.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
