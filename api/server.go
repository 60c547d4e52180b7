// Package api is the HTTP layer over the pricing engine. Handlers decode,
// delegate and encode; they never price anything themselves.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"poolcost/core/engine"
	"poolcost/internal/logging"
)

// RequestIDHeader carries the per-request id
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	engine  *engine.Engine
	router  chi.Router
	version string
}

// NewServer creates a server over eng
func NewServer(eng *engine.Engine, version string) *Server {
	s := &Server{
		engine:  eng,
		router:  chi.NewRouter(),
		version: version,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Post("/diff", s.handleDiff)
		r.Post("/export.xlsx", s.handleExport)

		r.Route("/franchises/{franchiseID}/rate-tables", func(r chi.Router) {
			r.Get("/", s.handleListTables)
			r.Put("/", s.handlePutTable)
			r.Get("/{id}", s.handleGetTable)
		})
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer wraps the router in an http.Server with timeouts
func (s *Server) HTTPServer(addr string, read, write time.Duration) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  read,
		WriteTimeout: write,
	}
}

type ctxKey struct{}

// RequestID returns the id assigned to the request
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// requestID keeps a caller-supplied id or assigns a new uuid
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		fields := []zap.Field{
			zap.String("requestId", RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		}
		if ww.Status() >= http.StatusInternalServerError {
			logging.Warn("request failed", fields...)
			return
		}
		logging.Info("request", fields...)
	})
}
