package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/folioworks/folio/internal/markdown"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates nested keys: FOLIO_SERVER__PORT sets server.port.
const EnvPrefix = "FOLIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FOLIO_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validEngines is the set of recognized markdown engines.
var validEngines = map[string]bool{
	markdown.EngineMinimal:    true,
	markdown.EngineCommonMark: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Markdown.Engine != "" && !validEngines[c.Markdown.Engine] {
		return fmt.Errorf("invalid markdown.engine %q: must be one of minimal, commonmark", c.Markdown.Engine)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}

	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Fetch.Timeout < 0 || c.Fetch.CacheTTL < 0 || c.Watch.Debounce < 0 {
		return fmt.Errorf("durations must be non-negative")
	}

	if c.Resume.Pages < 1 {
		return fmt.Errorf("resume.pages must be at least 1")
	}

	if !validImagePattern(c.Resume.ImagePattern) {
		return fmt.Errorf("invalid resume.image_pattern %q: must contain exactly one %%d and no other verbs", c.Resume.ImagePattern)
	}

	if c.Theme.Default != ThemeDark && c.Theme.Default != ThemeLight {
		return fmt.Errorf("invalid theme.default %q: must be dark or light", c.Theme.Default)
	}

	seen := make(map[string]bool, len(c.Artifacts))
	for i, a := range c.Artifacts {
		if a.Key == "" {
			return fmt.Errorf("artifacts[%d]: key is required", i)
		}
		if seen[a.Key] {
			return fmt.Errorf("artifacts[%d]: duplicate key %q", i, a.Key)
		}
		seen[a.Key] = true
	}

	return nil
}

// validImagePattern reports whether p has exactly one %d verb. Literal
// percent signs must be written as %%.
func validImagePattern(p string) bool {
	verbs := strings.ReplaceAll(p, "%%", "")
	return strings.Count(verbs, "%") == 1 && strings.Count(verbs, "%d") == 1
}
