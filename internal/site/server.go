// Package site serves the portfolio: static assets, the artifact and theme
// APIs, Markdown rendering, the resume pager, a performance panel and a
// live preview socket. It also exports the rendered pages to disk.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/folioworks/folio/internal/catalog"
	"github.com/folioworks/folio/internal/events"
	"github.com/folioworks/folio/internal/markdown"
	"github.com/folioworks/folio/internal/prefs"
)

// Config holds server configuration.
type Config struct {
	Port     int
	SiteDir  string // static assets; skipped when empty or missing
	AllowAll bool   // allow all CORS origins (dev mode)
	Resume   ResumePager
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Catalog  *catalog.Store
	Readmes  catalog.ReadmeSource
	Renderer markdown.Renderer
	Prefs    *prefs.Store
	Events   *events.Broker[events.ContentChange] // optional
}

// Server is the portfolio HTTP server.
type Server struct {
	cfg            Config
	catalog        *catalog.Store
	readmes        catalog.ReadmeSource
	renderer       markdown.Renderer
	prefs          *prefs.Store
	events         *events.Broker[events.ContentChange]
	resume         ResumePager
	metrics        *Metrics
	previewClients atomic.Int32
	router         chi.Router
	httpServer     *http.Server
}

// New creates a server. Every render made through it is counted in the
// performance panel.
func New(cfg Config, deps Deps) *Server {
	metrics := NewMetrics()
	s := &Server{
		cfg:      cfg,
		catalog:  deps.Catalog,
		readmes:  deps.Readmes,
		renderer: metrics.Instrument(deps.Renderer),
		prefs:    deps.Prefs,
		events:   deps.Events,
		resume:   cfg.Resume,
		metrics:  metrics,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.CountRequests)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// The preview socket is long-lived and stays outside the timeout.
	r.Get("/ws/preview", s.handlePreview)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		catalog.RegisterRoutes(r, s.catalog, s.readmes, s.renderer)
		prefs.RegisterRoutes(r, s.prefs)
		r.Post("/api/render", s.handleRender)
		r.Get("/api/resume/{page}", s.handleResume)
		r.Get("/api/perf", s.handlePerf)

		if s.cfg.SiteDir != "" {
			if info, err := os.Stat(s.cfg.SiteDir); err == nil && info.IsDir() {
				r.Handle("/*", http.FileServer(http.Dir(s.cfg.SiteDir)))
			} else {
				log.Printf("site: static dir %s not found, serving API only", s.cfg.SiteDir)
			}
		}
	})

	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Metrics returns the server's counters.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("folio listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
