package api

import (
	"bufio"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/vecedit/internal/auth"
)

// NewRouter wires the handler's routes. When authSvc is enabled, /api and /ws
// require a bearer token.
func NewRouter(h *Handler, authSvc *auth.Service) *mux.Router {
	r := mux.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)

	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authSvc.Middleware)

	api.HandleFunc("/transform", h.Transform).Methods("POST")
	api.HandleFunc("/draw_settings", h.DrawSettings).Methods("POST")
	api.HandleFunc("/draw_mode", h.DrawMode).Methods("POST")
	api.HandleFunc("/clipping", h.Clipping).Methods("POST")
	api.HandleFunc("/commands", h.Commands).Methods("POST")
	api.HandleFunc("/input", h.Input).Methods("POST")
	api.HandleFunc("/frame", h.Frame).Methods("GET")
	api.HandleFunc("/frame.png", h.FramePNG).Methods("GET")
	api.HandleFunc("/operations", h.Operations).Methods("GET")

	r.Handle("/ws", authSvc.Middleware(http.HandlerFunc(h.ServeWS)))

	return r
}

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic in handler", "error", rec, "path", r.URL.Path, "stack", string(debug.Stack()))
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Hijack is needed by the websocket upgrade on /ws.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	s.status = http.StatusSwitchingProtocols
	return http.NewResponseController(s.ResponseWriter).Hijack()
}

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
