// Package server exposes the graph editor over HTTP.
//
// Each editor session is identified by a session ID and holds the full
// multi-day graph state plus undo/redo history in a session store. Every
// request loads the session, applies one synchronous editor operation, and
// writes the session back - the editor itself stays single-threaded per
// session, matching its concurrency model.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/wayfare/wayfare/pkg/errors"
	"github.com/wayfare/wayfare/pkg/schedule"
	"github.com/wayfare/wayfare/pkg/session"
	"github.com/wayfare/wayfare/pkg/workflow"
)

// Server is the HTTP editor API.
type Server struct {
	sessions  session.Store
	schedules schedule.Store
	logger    *log.Logger
	ttl       time.Duration
	vopts     workflow.ValidateOptions
	lopts     workflow.LayoutOptions
}

// Option configures a Server.
type Option func(*Server)

// WithSessionTTL sets the editor session lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) { s.ttl = ttl }
}

// WithValidateOptions sets validation thresholds for all sessions.
func WithValidateOptions(opts workflow.ValidateOptions) Option {
	return func(s *Server) { s.vopts = opts }
}

// WithLayoutOptions sets auto-layout geometry for all sessions.
func WithLayoutOptions(opts workflow.LayoutOptions) Option {
	return func(s *Server) { s.lopts = opts }
}

// New creates a server over the given stores.
func New(sessions session.Store, schedules schedule.Store, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		schedules: schedules,
		logger:    logger,
		ttl:       session.DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
			r.Post("/apply", s.handleApply)
			r.Route("/days/{dayNumber}", func(r chi.Router) {
				r.Get("/validation", s.handleValidation)
				r.Post("/layout", s.handleLayout)
				r.Post("/nodes", s.handleAddNode)
				r.Patch("/nodes/{nodeID}", s.handleUpdateNode)
				r.Delete("/nodes/{nodeID}", s.handleDeleteNode)
				r.Post("/edges", s.handleConnect)
				r.Delete("/edges", s.handleDisconnect)
			})
		})
	})

	return r
}

// ListenAndServe runs the API until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("editor API listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// requestLogger logs each request with method, path, status, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Response Helpers
// =============================================================================

// errorResponse is the JSON error envelope returned by every handler.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, apperrors.HTTPStatus(err), errorResponse{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	})
}
