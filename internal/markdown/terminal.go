package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderTerminal renders source as ANSI-styled text for a terminal of the
// given width.
func RenderTerminal(source string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := r.Render(source)
	if err != nil {
		return "", fmt.Errorf("rendering for terminal: %w", err)
	}
	return out, nil
}
