package catalog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/folioworks/folio/internal/markdown"
)

// ReadmeSource loads README text for an artifact. It never fails; a
// missing document yields fallback text.
type ReadmeSource interface {
	Fetch(ctx context.Context, location string) string
}

// RegisterRoutes mounts the artifact API routes.
func RegisterRoutes(r chi.Router, store *Store, readmes ReadmeSource, renderer markdown.Renderer) {
	r.Route("/api/artifacts", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Get("/{key}", handleGet(store))
		r.Get("/{key}/readme", handleReadme(store, readmes, renderer))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifacts, err := store.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if artifacts == nil {
			artifacts = []Artifact{}
		}
		writeJSON(w, http.StatusOK, artifacts)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.Get(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if a == nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// handleReadme serves the artifact README as a rendered fragment, or as the
// raw text with ?format=markdown.
func handleReadme(store *Store, readmes ReadmeSource, renderer markdown.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.Get(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if a == nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		text := readmes.Fetch(r.Context(), a.ReadmePath)

		if r.URL.Query().Get("format") == "markdown" {
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Write([]byte(text))
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(renderer.Render(text)))
	}
}
