package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/folioworks/folio/internal/catalog"
	"github.com/folioworks/folio/internal/config"
	"github.com/folioworks/folio/internal/db"
	"github.com/folioworks/folio/internal/markdown"
)

type mockReadmes map[string]string

func (m mockReadmes) Fetch(_ context.Context, location string) string {
	if s, ok := m[location]; ok {
		return s
	}
	return config.DefaultFallbackText
}

func setupTestServer(t *testing.T, seed bool) *Server {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := catalog.NewStore(database)
	if seed {
		if err := store.Seed(context.Background(), catalog.FromConfig(config.DefaultArtifacts)); err != nil {
			t.Fatalf("Seed: %v", err)
		}
	}
	return NewServer(store, mockReadmes{"README.md": "# Notes\n- **fast**"}, markdown.NewMinimal())
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		tool     mcp.Tool
		wantName string
	}{
		{renderMarkdownTool, "render_markdown"},
		{listArtifactsTool, "list_artifacts"},
		{getArtifactReadmeTool, "get_artifact_readme"},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := setupTestServer(t, false)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.renderer.Name() != markdown.EngineMinimal {
		t.Errorf("renderer = %q", srv.renderer.Name())
	}
}

func TestHandleRenderMarkdown(t *testing.T) {
	srv := setupTestServer(t, false)

	t.Run("renders", func(t *testing.T) {
		result := callTool(t, srv.handleRenderMarkdown, map[string]any{"content": "# Hi\n<i>"})
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		want := `<div class="markdown-body"><h1>Hi</h1><p>&lt;i&gt;</p></div>`
		if got := resultText(t, result); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		result := callTool(t, srv.handleRenderMarkdown, map[string]any{"content": ""})
		if got := resultText(t, result); got != `<div class="markdown-body"></div>` {
			t.Errorf("got %q", got)
		}
	})

	t.Run("missing content", func(t *testing.T) {
		result := callTool(t, srv.handleRenderMarkdown, map[string]any{})
		if !result.IsError {
			t.Error("expected error for missing content")
		}
	})
}

func TestHandleListArtifacts(t *testing.T) {
	t.Run("seeded", func(t *testing.T) {
		srv := setupTestServer(t, true)
		result := callTool(t, srv.handleListArtifacts, nil)
		text := resultText(t, result)
		if !strings.Contains(text, "Found 3 artifacts") {
			t.Errorf("unexpected text: %s", text)
		}
		for _, key := range []string{"`swe`", "`ads`", "`db`"} {
			if !strings.Contains(text, key) {
				t.Errorf("missing %s in %s", key, text)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		srv := setupTestServer(t, false)
		result := callTool(t, srv.handleListArtifacts, nil)
		if result.IsError {
			t.Fatal("empty catalog should not be an error")
		}
		if !strings.Contains(resultText(t, result), "No artifacts") {
			t.Errorf("unexpected text: %s", resultText(t, result))
		}
	})
}

func TestHandleGetArtifactReadme(t *testing.T) {
	srv := setupTestServer(t, true)

	t.Run("html by default", func(t *testing.T) {
		result := callTool(t, srv.handleGetArtifactReadme, map[string]any{"key": "swe"})
		want := `<div class="markdown-body"><h1>Notes</h1><ul><li><strong>fast</strong></li></ul></div>`
		if got := resultText(t, result); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("markdown", func(t *testing.T) {
		result := callTool(t, srv.handleGetArtifactReadme, map[string]any{"key": "ads", "format": "markdown"})
		if got := resultText(t, result); got != "# Notes\n- **fast**" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		result := callTool(t, srv.handleGetArtifactReadme, map[string]any{"key": "nope"})
		if !result.IsError {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("bad format", func(t *testing.T) {
		result := callTool(t, srv.handleGetArtifactReadme, map[string]any{"key": "swe", "format": "pdf"})
		if !result.IsError {
			t.Error("expected error for unknown format")
		}
	})

	t.Run("missing key", func(t *testing.T) {
		result := callTool(t, srv.handleGetArtifactReadme, map[string]any{})
		if !result.IsError {
			t.Error("expected error for missing key")
		}
	})
}

func TestFormatArtifacts(t *testing.T) {
	text := formatArtifacts([]catalog.Artifact{{
		Key:        "db",
		Title:      "Databases",
		Bullets:    []string{"CRUD"},
		ReadmePath: "README.md",
	}})
	for _, want := range []string{"## Databases (`db`)", "- CRUD", "README: README.md"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in %s", want, text)
		}
	}
}
