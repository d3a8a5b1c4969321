package site

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ResumePager maps page numbers to resume page images.
type ResumePager struct {
	Pages        int
	ImagePattern string // %d is replaced by the page number
}

// ResumePage describes one page of the resume viewer.
type ResumePage struct {
	Page    int    `json:"page"`
	Pages   int    `json:"pages"`
	Image   string `json:"image"`
	HasPrev bool   `json:"has_prev"`
	HasNext bool   `json:"has_next"`
}

// Page clamps page into [1, Pages] and describes it.
func (p ResumePager) Page(page int) ResumePage {
	pages := p.Pages
	if pages < 1 {
		pages = 1
	}
	page = max(1, min(pages, page))
	return ResumePage{
		Page:    page,
		Pages:   pages,
		Image:   fmt.Sprintf(p.ImagePattern, page),
		HasPrev: page > 1,
		HasNext: page < pages,
	}
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "page must be a number")
		return
	}
	writeJSON(w, http.StatusOK, s.resume.Page(page))
}
