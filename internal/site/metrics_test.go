package site

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folioworks/folio/internal/markdown"
)

func TestMetricsInstrument(t *testing.T) {
	m := NewMetrics()
	r := m.Instrument(markdown.NewMinimal())

	if r.Name() != markdown.EngineMinimal {
		t.Errorf("Name() = %q", r.Name())
	}
	if got := r.Render("x"); got != markdown.Render("x") {
		t.Errorf("instrumented output differs: %q", got)
	}
	r.Render("y")

	snap := m.Snapshot()
	if snap.Renders != 2 {
		t.Errorf("renders = %d, want 2", snap.Renders)
	}
	if snap.MeanRenderTime < 0 {
		t.Errorf("mean render time = %v", snap.MeanRenderTime)
	}
}

func TestMetricsCountRequests(t *testing.T) {
	m := NewMetrics()
	h := m.CountRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	}
	if got := m.Snapshot().Requests; got != 3 {
		t.Errorf("requests = %d, want 3", got)
	}
	if m.Snapshot().MeanRenderTime != 0 {
		t.Error("mean render time should be zero before any render")
	}
}
