package site

import (
	"net/http"

	"github.com/folioworks/folio/internal/prefs"
)

// perfReport is the JSON body of /api/perf.
type perfReport struct {
	UptimeSeconds  float64 `json:"uptime_seconds"`
	Requests       int64   `json:"requests"`
	Renders        int64   `json:"renders"`
	MeanRenderMS   float64 `json:"mean_render_ms"`
	Engine         string  `json:"engine"`
	DefaultTheme   string  `json:"default_theme"`
	Theme          string  `json:"theme"`
	PreviewClients int     `json:"preview_clients"`
}

func (s *Server) handlePerf(w http.ResponseWriter, r *http.Request) {
	snap := s.metrics.Snapshot()
	theme, err := s.prefs.Theme(r.Context(), prefs.VisitorID(w, r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, perfReport{
		UptimeSeconds:  snap.Uptime.Seconds(),
		Requests:       snap.Requests,
		Renders:        snap.Renders,
		MeanRenderMS:   float64(snap.MeanRenderTime.Microseconds()) / 1000,
		Engine:         s.renderer.Name(),
		DefaultTheme:   s.prefs.DefaultTheme(),
		Theme:          theme,
		PreviewClients: int(s.previewClients.Load()),
	})
}
