package prefs

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CookieName holds the visitor id.
const CookieName = "folio_visitor"

const cookieMaxAge = 365 * 24 * time.Hour

// VisitorID returns the visitor id from the request cookie, issuing a new
// one on w when the cookie is missing or malformed.
func VisitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

type themeBody struct {
	Theme string `json:"theme"`
}

// RegisterRoutes mounts the theme preference routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/theme", func(r chi.Router) {
		r.Get("/", handleGet(store))
		r.Put("/", handlePut(store))
		r.Post("/toggle", handleToggle(store))
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

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme, err := store.Theme(r.Context(), VisitorID(w, r))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, themeBody{Theme: theme})
	}
}

func handlePut(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body themeBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !ValidTheme(body.Theme) {
			writeError(w, http.StatusBadRequest, "theme must be dark or light")
			return
		}
		if err := store.SetTheme(r.Context(), VisitorID(w, r), body.Theme); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func handleToggle(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme, err := store.ToggleTheme(r.Context(), VisitorID(w, r))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, themeBody{Theme: theme})
	}
}
