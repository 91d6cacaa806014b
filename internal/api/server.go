package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/brandeval/brandeval/internal/engine"
	"github.com/brandeval/brandeval/internal/store"
)

// maxRequestBody is the maximum allowed request body size (1 MB).
const maxRequestBody int64 = 1 << 20

// Evaluator runs the evaluation pipeline for one artifact.
type Evaluator interface {
	Evaluate(ctx context.Context, artifactID string) (*engine.Result, error)
}

// Options holds API-surface configuration.
type Options struct {
	// JWTSecret signs and verifies access tokens.
	JWTSecret string

	// TokenTTL is the lifetime of issued access tokens.
	TokenTTL time.Duration

	// CORSOrigin is the allowed CORS origin.
	CORSOrigin string
}

// Server holds the HTTP handlers and dependencies.
type Server struct {
	store     store.Repository
	evaluator Evaluator
	opts      Options
	mux       *http.ServeMux
}

// New creates a new API server.
func New(s store.Repository, evaluator Evaluator, opts Options) *Server {
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}
	srv := &Server{store: s, evaluator: evaluator, opts: opts, mux: http.NewServeMux()}
	srv.routes()
	return srv
}

// Handler returns the root http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.corsMiddleware(limitBody(jsonContent(s.mux)))
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	// Everything under /api/protected requires a bearer token.
	s.mux.Handle("POST /api/protected/evaluate", s.requireAuth(s.handleEvaluate))
	s.mux.Handle("GET /api/protected/artifacts", s.requireAuth(s.handleListArtifacts))
	s.mux.Handle("GET /api/protected/artifacts/{id}", s.requireAuth(s.handleGetArtifact))
}

// ---------------------------------------------------------------------------
// Middleware
// ---------------------------------------------------------------------------

// corsMiddleware sets CORS headers. The allowed origin defaults to "*" for
// development.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.opts.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limitBody restricts the request body to maxRequestBody bytes.
func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		next.ServeHTTP(w, r)
	})
}

func jsonContent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
