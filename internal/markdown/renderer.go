package markdown

import "fmt"

// Engine names accepted by New.
const (
	EngineMinimal    = "minimal"
	EngineCommonMark = "commonmark"
)

// Renderer turns Markdown source into an HTML fragment. Implementations
// never fail: bad input degrades to escaped text.
type Renderer interface {
	Render(source string) string
	Name() string
}

// New returns the renderer for engine. An empty engine selects the minimal
// renderer. Options only apply to the minimal renderer.
func New(engine string, opts ...Option) (Renderer, error) {
	switch engine {
	case "", EngineMinimal:
		return NewMinimal(opts...), nil
	case EngineCommonMark:
		return NewCommonMark(), nil
	default:
		return nil, fmt.Errorf("unknown markdown engine %q: must be one of %s, %s", engine, EngineMinimal, EngineCommonMark)
	}
}
