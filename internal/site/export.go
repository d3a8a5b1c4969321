package site

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/folioworks/folio/internal/catalog"
	"github.com/folioworks/folio/internal/markdown"
	"github.com/folioworks/folio/internal/progress"
)

// DefaultAssets selects the static files copied from the site dir.
var DefaultAssets = []string{
	"**/*.{css,js}",
	"**/*.{png,jpg,jpeg,gif,svg,ico,webp}",
	"**/*.pdf",
}

// ExportOptions configures an Exporter.
type ExportOptions struct {
	OutputDir string
	SiteDir   string   // optional source of static assets
	Assets    []string // doublestar patterns relative to SiteDir
	SiteTitle string
	Theme     string
}

// ExportResult summarises an export.
type ExportResult struct {
	Pages  int
	Assets int
}

// Exporter writes the rendered portfolio to disk as static HTML.
type Exporter struct {
	catalog  *catalog.Store
	readmes  catalog.ReadmeSource
	renderer markdown.Renderer
	reporter progress.Reporter
	opts     ExportOptions
	page     *template.Template
	index    *template.Template
}

// pageData is passed to pageTemplate.
type pageData struct {
	SiteTitle string
	Theme     string
	BasePath  string
	Artifact  catalog.Artifact
	Content   template.HTML
}

// indexData is passed to indexTemplate.
type indexData struct {
	SiteTitle string
	Theme     string
	Artifacts []catalog.Artifact
}

// NewExporter creates an exporter. A nil reporter reports nothing.
func NewExporter(store *catalog.Store, readmes catalog.ReadmeSource, renderer markdown.Renderer, reporter progress.Reporter, opts ExportOptions) *Exporter {
	if reporter == nil {
		reporter = progress.Discard{}
	}
	if opts.Assets == nil {
		opts.Assets = DefaultAssets
	}
	if opts.SiteTitle == "" {
		opts.SiteTitle = "Portfolio"
	}
	if opts.Theme == "" {
		opts.Theme = "dark"
	}
	return &Exporter{
		catalog:  store,
		readmes:  readmes,
		renderer: renderer,
		reporter: reporter,
		opts:     opts,
		page:     template.Must(template.New("page").Parse(pageTemplate)),
		index:    template.Must(template.New("index").Parse(indexTemplate)),
	}
}

// Export renders every artifact page and the index into the output dir,
// then copies static assets.
func (e *Exporter) Export(ctx context.Context) (*ExportResult, error) {
	artifacts, err := e.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(e.opts.OutputDir, "artifacts"), 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	if err := e.writeStatic(); err != nil {
		return nil, err
	}

	result := &ExportResult{}
	e.reporter.Start(len(artifacts) + 1)
	defer e.reporter.Finish()

	for i, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := e.renderPage(ctx, a); err != nil {
			return result, fmt.Errorf("exporting %s: %w", a.Key, err)
		}
		result.Pages++
		e.reporter.Update(i+1, a.Key)
	}

	if err := e.renderIndex(artifacts); err != nil {
		return result, err
	}
	result.Pages++
	e.reporter.Update(len(artifacts)+1, "index")

	n, err := e.copyAssets()
	result.Assets = n
	if err != nil {
		return result, err
	}
	return result, nil
}

func (e *Exporter) renderPage(ctx context.Context, a catalog.Artifact) error {
	source := e.readmes.Fetch(ctx, a.ReadmePath)
	data := pageData{
		SiteTitle: e.opts.SiteTitle,
		Theme:     e.opts.Theme,
		BasePath:  "../",
		Artifact:  a,
		Content:   template.HTML(e.renderer.Render(source)),
	}
	return e.execute(e.page, filepath.Join(e.opts.OutputDir, "artifacts", a.Key+".html"), data)
}

func (e *Exporter) renderIndex(artifacts []catalog.Artifact) error {
	data := indexData{
		SiteTitle: e.opts.SiteTitle,
		Theme:     e.opts.Theme,
		Artifacts: artifacts,
	}
	return e.execute(e.index, filepath.Join(e.opts.OutputDir, "index.html"), data)
}

func (e *Exporter) execute(tmpl *template.Template, outPath string, data any) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("rendering %s: %w", outPath, err)
	}
	return nil
}

func (e *Exporter) writeStatic() error {
	files := map[string]string{
		"style.css": cssContent,
		"script.js": jsContent,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(e.opts.OutputDir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// copyAssets copies files under SiteDir matching the asset patterns. Files
// the exporter writes itself are not overwritten.
func (e *Exporter) copyAssets() (int, error) {
	if e.opts.SiteDir == "" {
		return 0, nil
	}
	if info, err := os.Stat(e.opts.SiteDir); err != nil || !info.IsDir() {
		return 0, nil
	}

	fsys := os.DirFS(e.opts.SiteDir)
	seen := make(map[string]bool)
	copied := 0
	for _, pattern := range e.opts.Assets {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return copied, fmt.Errorf("asset pattern %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] || reserved(rel) || hidden(rel) {
				continue
			}
			seen[rel] = true
			if err := copyFile(fsys, rel, filepath.Join(e.opts.OutputDir, filepath.FromSlash(rel))); err != nil {
				return copied, err
			}
			copied++
		}
	}
	return copied, nil
}

func reserved(rel string) bool {
	switch rel {
	case "style.css", "script.js", "index.html":
		return true
	}
	return strings.HasPrefix(rel, "artifacts/") && path.Ext(rel) == ".html"
}

func hidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

func copyFile(fsys fs.FS, rel, dst string) error {
	data, err := fs.ReadFile(fsys, rel)
	if err != nil {
		return fmt.Errorf("reading asset %s: %w", rel, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating asset dir: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing asset %s: %w", rel, err)
	}
	return nil
}
