// Package api serves invoice rendering over HTTP.
//
// Routes:
//
//	GET  /health                 liveness probe with build information
//	POST /render?format=xlsx     render the invoice in the request body
//
// The request body is a YAML, TOML or JSON invoice, chosen by Content-Type
// (YAML when absent). Each render response carries an X-Render-ID header;
// failures answer with a JSON body {"error", "code", "render_id"}.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/invoicer/pkg/buildinfo"
	"github.com/matzehuels/invoicer/pkg/pipeline"
	"github.com/matzehuels/invoicer/pkg/render/sheet/layout"
	"github.com/matzehuels/invoicer/pkg/render/sheet/sink"
)

// Server is the HTTP API server for invoicer.
type Server struct {
	router  chi.Router
	runner  *pipeline.Runner
	log     *log.Logger
	palette string
	page    sink.PageLayout
}

// Option configures a [Server].
type Option func(*Server)

// WithPalette sets the palette used when a request does not name one.
func WithPalette(name string) Option {
	return func(s *Server) { s.palette = name }
}

// WithPageLayout sets the print settings of rendered sheets.
func WithPageLayout(p sink.PageLayout) Option {
	return func(s *Server) { s.page = p }
}

// NewServer creates and configures the HTTP server. A nil runner renders
// without caching; a nil logger uses log.Default().
func NewServer(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		runner:  runner,
		log:     logger,
		palette: pipeline.DefaultPalette,
		page:    layout.DefaultPageLayout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/render", s.handleRender)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("shutdown", "err", err)
		}
	}()

	s.log.Info("starting invoicer api", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	<-done
	return nil
}
