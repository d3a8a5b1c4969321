package mcp

import "github.com/mark3labs/mcp-go/mcp"

var renderMarkdownTool = mcp.NewTool("render_markdown",
	mcp.WithDescription("Render Markdown text to the HTML fragment shown in the portfolio's artifact dialog."),
	mcp.WithString("content",
		mcp.Required(),
		mcp.Description("Markdown source text"),
	),
)

var listArtifactsTool = mcp.NewTool("list_artifacts",
	mcp.WithDescription("List the portfolio artifacts with their titles, overviews and highlights."),
)

var getArtifactReadmeTool = mcp.NewTool("get_artifact_readme",
	mcp.WithDescription("Get an artifact's README, rendered to HTML or as raw Markdown."),
	mcp.WithString("key",
		mcp.Required(),
		mcp.Description("Artifact key, for example swe"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default html)"),
		mcp.Enum("html", "markdown"),
	),
)
