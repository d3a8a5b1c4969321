package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/folioworks/folio/internal/progress"
	"github.com/folioworks/folio/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the portfolio as a static site",
	Long:  `Renders every artifact README into a standalone HTML page, writes an index page and copies static assets from the site dir.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("output", "", "override output directory (defaults to config)")
	exportCmd.Flags().String("title", "Portfolio", "site title used in page headers")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	title, _ := cmd.Flags().GetString("title")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	database, store, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	renderer, err := newRenderer(cfg, "")
	if err != nil {
		return err
	}

	exporter := site.NewExporter(store, newFetcher(cfg), renderer, progress.NewReporter("Exporting pages"), site.ExportOptions{
		OutputDir: outputDir,
		SiteDir:   cfg.SiteDir,
		SiteTitle: title,
		Theme:     cfg.Theme.Default,
	})
	result, err := exporter.Export(ctx)
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Static site exported: %s (%d pages, %d assets)\n", outputDir, result.Pages, result.Assets)
	return nil
}
