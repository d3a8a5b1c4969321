package site

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/folioworks/folio/internal/readme"
)

// handleRender renders the raw Markdown request body. A JSON body of the
// form {"content": "..."} is accepted too.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, readme.MaxBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	source := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		source = req.Content
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.renderer.Render(source)))
}
