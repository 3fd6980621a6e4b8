// Package server exposes an editor session over HTTP.
//
// One [Server] wraps one [editor.Editor]. Requests are serialized with a
// mutex, so the single-threaded engine can sit behind a concurrent
// net/http listener. Pointer and key requests answer with the resulting
// model version and drag state, which lets a client poll GET /graph only
// when something changed.
//
//	GET  /graph            versioned snapshot
//	PUT  /graph            replace the diagram
//	GET  /graph.svg        rendered snapshot
//	GET  /selection        current selection
//	GET  /state            drag state, hover and version
//	POST /pointer/{action} down, move or up with a PointerEvent body
//	POST /keys             {"key": "c", "ctrl": true}
//	POST /cancel           abandon the gesture in progress
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphedit/pkg/buildinfo"
	"github.com/matzehuels/graphedit/pkg/editor"
	"github.com/matzehuels/graphedit/pkg/export"
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/observability"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// Server is the HTTP host for one editor session.
type Server struct {
	mu       sync.Mutex
	ed       *editor.Editor
	codec    graph.Codec
	renderer export.Renderer
	logger   *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRenderer sets the renderer behind GET /graph.svg.
func WithRenderer(r export.Renderer) Option {
	return func(s *Server) { s.renderer = r }
}

// New returns a server for ed. Graph documents use the editor's configured
// key field.
func New(ed *editor.Editor, opts ...Option) *Server {
	s := &Server{
		ed:     ed,
		codec:  ed.Config().Codec(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))
	r.Use(s.logRequests)

	r.Get("/graph", s.getGraph)
	r.Put("/graph", s.putGraph)
	r.Get("/graph.svg", s.getSVG)
	r.Get("/selection", s.getSelection)
	r.Get("/state", s.getState)
	r.Post("/pointer/{action}", s.postPointer)
	r.Post("/keys", s.postKey)
	r.Post("/cancel", s.postCancel)
	return r
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warnf("encode response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	s.respondJSON(w, statusFor(err), errorBody(err))
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
