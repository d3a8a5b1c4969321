package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/internal/markdown"
	"github.com/folioworks/folio/internal/progress"
)

type recordingReporter struct {
	total    int
	messages []string
	finished bool
}

func (r *recordingReporter) Start(total int)              { r.total = total }
func (r *recordingReporter) Update(_ int, message string) { r.messages = append(r.messages, message) }
func (r *recordingReporter) Finish()                      { r.finished = true }

func TestExport(t *testing.T) {
	env := setupTestServer(t)
	out := t.TempDir()

	os.MkdirAll(filepath.Join(env.siteDir, "assets"), 0o755)
	os.WriteFile(filepath.Join(env.siteDir, "assets", "resume-page-1.png"), []byte("png"), 0o644)
	os.WriteFile(filepath.Join(env.siteDir, "assets", "site.css"), []byte("body{}"), 0o644)
	os.WriteFile(filepath.Join(env.siteDir, "style.css"), []byte("overridden"), 0o644)
	os.MkdirAll(filepath.Join(env.siteDir, ".git"), 0o755)
	os.WriteFile(filepath.Join(env.siteDir, ".git", "x.js"), []byte("x"), 0o644)

	rep := &recordingReporter{}
	exp := NewExporter(env.store, fakeReadmes{"README.md": "# Readme\n<script>"}, markdown.NewMinimal(), rep, ExportOptions{
		OutputDir: out,
		SiteDir:   env.siteDir,
		SiteTitle: "Jane Doe",
		Theme:     "light",
	})

	result, err := exp.Export(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, result.Pages)
	require.Equal(t, 2, result.Assets)

	require.Equal(t, 4, rep.total)
	require.Equal(t, []string{"swe", "ads", "db", "index"}, rep.messages)
	require.True(t, rep.finished)

	page, err := os.ReadFile(filepath.Join(out, "artifacts", "swe.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), `<div class="markdown-body"><h1>Readme</h1><p>&lt;script&gt;</p></div>`)
	require.Contains(t, string(page), `data-theme="light"`)
	require.Contains(t, string(page), "Software Design")
	require.NotContains(t, string(page), "<script>\n")

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	for _, key := range []string{"swe", "ads", "db"} {
		require.Contains(t, string(index), "artifacts/"+key+".html")
	}

	css, err := os.ReadFile(filepath.Join(out, "style.css"))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(css), "--bg"), "generated stylesheet was overwritten")

	require.FileExists(t, filepath.Join(out, "assets", "resume-page-1.png"))
	require.FileExists(t, filepath.Join(out, "assets", "site.css"))
	require.NoFileExists(t, filepath.Join(out, ".git", "x.js"))
}

func TestExportFallbackText(t *testing.T) {
	env := setupTestServer(t)
	out := t.TempDir()

	exp := NewExporter(env.store, fakeReadmes{}, markdown.NewMinimal(), nil, ExportOptions{OutputDir: out})
	_, err := exp.Export(context.Background())
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(out, "artifacts", "db.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), "<p>README content is not available.</p>")
	require.Contains(t, string(page), `data-theme="dark"`)
}

func TestExportCancelled(t *testing.T) {
	env := setupTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := t.TempDir()
	exp := NewExporter(env.store, fakeReadmes{}, markdown.NewMinimal(), progress.Discard{}, ExportOptions{OutputDir: out})
	_, err := exp.Export(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NoFileExists(t, filepath.Join(out, "index.html"))
}
