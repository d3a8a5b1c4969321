package config

import (
	"time"

	"github.com/folioworks/folio/internal/markdown"
)

// DefaultFallbackText is shown in place of a README that could not be loaded.
const DefaultFallbackText = "README content is not available."

// DefaultArtifacts is the portfolio's stock artifact catalog.
var DefaultArtifacts = []ArtifactConfig{
	{
		Key:      "swe",
		Title:    "Software Design & Engineering",
		Overview: "Enhanced modularity, separation of concerns, and maintainability.",
		Bullets: []string{
			"Clarified responsibilities",
			"Reduced coupling",
			"Improved validation",
			"Professional documentation",
		},
		Readme: "README.md",
	},
	{
		Key:      "ads",
		Title:    "Algorithms & Data Structures",
		Overview: "Optimized performance through correct data structure selection.",
		Bullets: []string{
			"Efficient lookup",
			"Deterministic output",
			"Runtime justification",
			"Cleaner user flow",
		},
		Readme: "README.md",
	},
	{
		Key:      "db",
		Title:    "Databases",
		Overview: "Improved validation, integrity, and predictable CRUD behavior.",
		Bullets: []string{
			"Stronger validation",
			"Isolated data access",
			"Reduced failure modes",
			"Clear usage documentation",
		},
		Readme: "README.md",
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	artifacts := make([]ArtifactConfig, len(DefaultArtifacts))
	for i, a := range DefaultArtifacts {
		a.Bullets = append([]string(nil), a.Bullets...)
		artifacts[i] = a
	}

	return &Config{
		SiteDir:    "site",
		ContentDir: ".",
		DataDir:    ".folio",
		OutputDir:  "dist",
		Server: ServerConfig{
			Port: 8080,
		},
		Markdown: MarkdownConfig{
			Engine: markdown.EngineMinimal,
		},
		Fetch: FetchConfig{
			Timeout:      10 * time.Second,
			CacheTTL:     5 * time.Minute,
			FallbackText: DefaultFallbackText,
		},
		Watch: WatchConfig{
			Enabled:  false,
			Include:  []string{"**/*.md"},
			Debounce: 300 * time.Millisecond,
		},
		Resume: ResumeConfig{
			Pages:        2,
			ImagePattern: "./assets/resume-page-%d.png",
		},
		Theme: ThemeConfig{
			Default: ThemeDark,
		},
		Artifacts: artifacts,
	}
}
