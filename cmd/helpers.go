package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/folioworks/folio/internal/catalog"
	"github.com/folioworks/folio/internal/config"
	"github.com/folioworks/folio/internal/db"
	"github.com/folioworks/folio/internal/markdown"
	"github.com/folioworks/folio/internal/readme"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `folio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newRenderer builds the configured renderer. A non-empty engine overrides
// the config.
func newRenderer(cfg *config.Config, engine string) (markdown.Renderer, error) {
	if engine == "" {
		engine = cfg.Markdown.Engine
	}
	return markdown.New(engine, markdown.WithAllowedSchemes(cfg.Markdown.AllowedLinkSchemes...))
}

func newFetcher(cfg *config.Config) *readme.Fetcher {
	return readme.New(readme.Options{
		ContentDir:   cfg.ContentDir,
		Timeout:      cfg.Fetch.Timeout,
		CacheTTL:     cfg.Fetch.CacheTTL,
		FallbackText: cfg.Fetch.FallbackText,
	})
}

// openCatalog opens the database under the data dir and replaces the
// stored catalog with the one from the config.
func openCatalog(ctx context.Context, cfg *config.Config) (*db.DB, *catalog.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.Open(filepath.Join(cfg.DataDir, "folio.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	store := catalog.NewStore(database)
	if err := store.Seed(ctx, catalog.FromConfig(cfg.Artifacts)); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("seeding catalog: %w", err)
	}
	return database, store, nil
}
