package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/folioworks/folio/internal/catalog"
)

func (s *Server) handleRenderMarkdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: content"), nil
	}
	return mcp.NewToolResultText(s.renderer.Render(content)), nil
}

func (s *Server) handleListArtifacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	artifacts, err := s.catalog.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list artifacts: %v", err)), nil
	}
	if len(artifacts) == 0 {
		return mcp.NewToolResultText("No artifacts in the catalog. Add them under `artifacts:` in .folio.yml."), nil
	}
	return mcp.NewToolResultText(formatArtifacts(artifacts)), nil
}

func (s *Server) handleGetArtifactReadme(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: key"), nil
	}

	format := request.GetString("format", "html")
	if format != "html" && format != "markdown" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (want html or markdown)", format)), nil
	}

	a, err := s.catalog.Get(ctx, key)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load artifact: %v", err)), nil
	}
	if a == nil {
		return mcp.NewToolResultError(fmt.Sprintf("No artifact with key %q.", key)), nil
	}

	source := s.readmes.Fetch(ctx, a.ReadmePath)
	if format == "markdown" {
		return mcp.NewToolResultText(source), nil
	}
	return mcp.NewToolResultText(s.renderer.Render(source)), nil
}

// formatArtifacts renders the catalog as a Markdown list.
func formatArtifacts(artifacts []catalog.Artifact) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d artifacts:\n\n", len(artifacts))
	for _, a := range artifacts {
		fmt.Fprintf(&sb, "## %s (`%s`)\n\n", a.Title, a.Key)
		if a.Overview != "" {
			sb.WriteString(a.Overview)
			sb.WriteString("\n\n")
		}
		for _, b := range a.Bullets {
			fmt.Fprintf(&sb, "- %s\n", b)
		}
		if a.ReadmePath != "" {
			fmt.Fprintf(&sb, "\nREADME: %s\n", a.ReadmePath)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
