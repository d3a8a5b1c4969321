package config

import "time"

// Theme names accepted by the site.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	SiteDir    string           `yaml:"site_dir" koanf:"site_dir"`
	ContentDir string           `yaml:"content_dir" koanf:"content_dir"`
	DataDir    string           `yaml:"data_dir" koanf:"data_dir"`
	OutputDir  string           `yaml:"output_dir" koanf:"output_dir"`
	Server     ServerConfig     `yaml:"server" koanf:"server"`
	Markdown   MarkdownConfig   `yaml:"markdown" koanf:"markdown"`
	Fetch      FetchConfig      `yaml:"fetch" koanf:"fetch"`
	Watch      WatchConfig      `yaml:"watch" koanf:"watch"`
	Resume     ResumeConfig     `yaml:"resume" koanf:"resume"`
	Theme      ThemeConfig      `yaml:"theme" koanf:"theme"`
	Artifacts  []ArtifactConfig `yaml:"artifacts" koanf:"artifacts"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// MarkdownConfig selects the README renderer.
type MarkdownConfig struct {
	Engine             string   `yaml:"engine" koanf:"engine"`
	AllowedLinkSchemes []string `yaml:"allowed_link_schemes" koanf:"allowed_link_schemes"`
}

// FetchConfig controls how README text is loaded.
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout" koanf:"timeout"`
	CacheTTL     time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`
	FallbackText string        `yaml:"fallback_text" koanf:"fallback_text"`
}

// WatchConfig controls content directory watching during serve.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled" koanf:"enabled"`
	Include  []string      `yaml:"include" koanf:"include"`
	Debounce time.Duration `yaml:"debounce" koanf:"debounce"`
}

// ResumeConfig describes the paged resume images.
type ResumeConfig struct {
	Pages        int    `yaml:"pages" koanf:"pages"`
	ImagePattern string `yaml:"image_pattern" koanf:"image_pattern"` // %d is the page number
}

// ThemeConfig holds the theme used for visitors without a stored preference.
type ThemeConfig struct {
	Default string `yaml:"default" koanf:"default"`
}

// ArtifactConfig is one portfolio artifact as written in the config file.
type ArtifactConfig struct {
	Key      string   `yaml:"key" koanf:"key"`
	Title    string   `yaml:"title" koanf:"title"`
	Overview string   `yaml:"overview" koanf:"overview"`
	Bullets  []string `yaml:"bullets" koanf:"bullets"`
	Readme   string   `yaml:"readme" koanf:"readme"`
}
