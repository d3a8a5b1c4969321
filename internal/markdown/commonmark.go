package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// CommonMark renders full GitHub-flavoured Markdown with goldmark. Raw HTML
// in the source is dropped and links open in a new browsing context, the
// same as the minimal renderer.
type CommonMark struct {
	md goldmark.Markdown
}

// NewCommonMark creates a goldmark-backed renderer with GFM, heading ids and
// syntax highlighting of fenced code.
func NewCommonMark() *CommonMark {
	return &CommonMark{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(
					util.Prioritized(externalLinks{}, 100),
				),
			),
			goldmark.WithRendererOptions(
				html.WithXHTML(),
			),
		),
	}
}

// Name implements Renderer.
func (c *CommonMark) Name() string { return EngineCommonMark }

// Render implements Renderer. A conversion error falls back to the escaped
// source inside a pre block.
func (c *CommonMark) Render(source string) string {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(source), &buf); err != nil {
		return containerOpen + "<pre>" + EscapeStrict(source) + "</pre>" + containerClose
	}
	return containerOpen + buf.String() + containerClose
}

// externalLinks marks every link to open in a new context without referrer.
type externalLinks struct{}

func (externalLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			link.SetAttributeString("target", []byte("_blank"))
			link.SetAttributeString("rel", []byte("noopener noreferrer"))
		}
		return ast.WalkContinue, nil
	})
}
