package catalog

import (
	"time"

	"github.com/folioworks/folio/internal/config"
)

// Artifact is one portfolio piece shown in the artifact dialog.
type Artifact struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	Overview   string    `json:"overview"`
	Bullets    []string  `json:"bullets"`
	ReadmePath string    `json:"readme_path"` // content-relative path or http(s) URL
	Position   int       `json:"position"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromConfig converts configured artifacts, keeping their order.
func FromConfig(items []config.ArtifactConfig) []Artifact {
	out := make([]Artifact, 0, len(items))
	for i, a := range items {
		bullets := a.Bullets
		if bullets == nil {
			bullets = []string{}
		}
		out = append(out, Artifact{
			Key:        a.Key,
			Title:      a.Title,
			Overview:   a.Overview,
			Bullets:    bullets,
			ReadmePath: a.Readme,
			Position:   i,
		})
	}
	return out
}
