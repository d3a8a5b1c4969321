package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/folioworks/folio/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the Markdown renderer and the artifact catalog as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, store, err := openCatalog(context.Background(), cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		renderer, err := newRenderer(cfg, "")
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "folio MCP server started on stdio (engine=%s, artifacts=%d)\n", renderer.Name(), len(cfg.Artifacts))

		srv := mcpserver.NewServer(store, newFetcher(cfg), renderer)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
