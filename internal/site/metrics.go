package site

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/folioworks/folio/internal/markdown"
)

// Metrics counts requests and renders for the performance panel.
type Metrics struct {
	started     time.Time
	requests    atomic.Int64
	renders     atomic.Int64
	renderNanos atomic.Int64
}

// NewMetrics starts the uptime clock.
func NewMetrics() *Metrics {
	return &Metrics{started: time.Now()}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Uptime         time.Duration
	Requests       int64
	Renders        int64
	MeanRenderTime time.Duration
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		Uptime:   time.Since(m.started),
		Requests: m.requests.Load(),
		Renders:  m.renders.Load(),
	}
	if s.Renders > 0 {
		s.MeanRenderTime = time.Duration(m.renderNanos.Load() / s.Renders)
	}
	return s
}

// CountRequests is middleware that counts every request.
func (m *Metrics) CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

// Instrument wraps r so that each render is counted and timed.
func (m *Metrics) Instrument(r markdown.Renderer) markdown.Renderer {
	return &timedRenderer{next: r, metrics: m}
}

type timedRenderer struct {
	next    markdown.Renderer
	metrics *Metrics
}

func (t *timedRenderer) Name() string { return t.next.Name() }

func (t *timedRenderer) Render(source string) string {
	start := time.Now()
	out := t.next.Render(source)
	t.metrics.renders.Add(1)
	t.metrics.renderNanos.Add(int64(time.Since(start)))
	return out
}
