package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/folioworks/folio/internal/markdown"
)

// contentMarkers are files whose presence suggests a content directory.
var contentMarkers = []string{"README.md", "readme.md", "docs", "content"}

// detectContentDir returns the first marker found in the working directory,
// or "." if none is present.
func detectContentDir() string {
	for _, marker := range contentMarkers {
		info, err := os.Stat(marker)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return marker
		}
		return "."
	}
	return "."
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to folio! Let's configure your portfolio site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Renderer.
	enginePrompt := promptui.Select{
		Label: "Select README renderer",
		Items: []string{
			"minimal    (headings, lists, code, bold, links)",
			"commonmark (full GitHub-flavoured Markdown)",
		},
	}
	engineIdx, _, err := enginePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("engine selection: %w", err)
	}
	cfg.Markdown.Engine = []string{markdown.EngineMinimal, markdown.EngineCommonMark}[engineIdx]

	// 2. Default theme.
	themePrompt := promptui.Select{
		Label: "Default theme",
		Items: []string{ThemeDark, ThemeLight},
	}
	_, theme, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	cfg.Theme.Default = theme

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 4. Content directory.
	contentPrompt := promptui.Prompt{
		Label:   "Directory holding artifact READMEs",
		Default: detectContentDir(),
	}
	cfg.ContentDir, err = contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}

	// 5. Link schemes.
	schemePrompt := promptui.Prompt{
		Label:   "Allowed link schemes (comma-separated, blank allows all)",
		Default: "",
	}
	schemes, err := schemePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("link schemes: %w", err)
	}
	cfg.Markdown.AllowedLinkSchemes = splitAndTrim(schemes)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
