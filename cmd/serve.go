package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/folioworks/folio/internal/events"
	"github.com/folioworks/folio/internal/prefs"
	"github.com/folioworks/folio/internal/site"
	"github.com/folioworks/folio/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	Long:  `Serves the portfolio site, the artifact and theme APIs, Markdown rendering and the live preview socket.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to config)")
	serveCmd.Flags().Bool("watch", false, "watch the content dir and refresh READMEs on change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch.Enabled, _ = cmd.Flags().GetBool("watch")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
	fetcher := newFetcher(cfg)

	bus := events.NewBroker[events.ContentChange](0)
	defer bus.Close()

	if cfg.Watch.Enabled {
		w, err := watcher.New(watcher.Config{
			Root:     cfg.ContentDir,
			Include:  cfg.Watch.Include,
			Debounce: cfg.Watch.Debounce,
		}, bus)
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer w.Stop()

		bus.Handle(ctx, func(ev events.Event[events.ContentChange]) {
			fetcher.Invalidate(ev.Payload.Paths...)
			if verbose {
				fmt.Fprintf(os.Stderr, "Content changed: %v\n", ev.Payload.Paths)
			}
		})
	}

	srv := site.New(site.Config{
		Port:     cfg.Server.Port,
		SiteDir:  cfg.SiteDir,
		AllowAll: cfg.Server.AllowAllOrigins,
		Resume: site.ResumePager{
			Pages:        cfg.Resume.Pages,
			ImagePattern: cfg.Resume.ImagePattern,
		},
	}, site.Deps{
		Catalog:  store,
		Readmes:  fetcher,
		Renderer: renderer,
		Prefs:    prefs.NewStore(database, cfg.Theme.Default),
		Events:   bus,
	})

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "folio v%s starting on port %d\n", Version, cfg.Server.Port)
	if verbose {
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		fmt.Fprintf(os.Stderr, "  Site: %s\n", cfg.SiteDir)
		fmt.Fprintf(os.Stderr, "  Content: %s (watch=%t)\n", cfg.ContentDir, cfg.Watch.Enabled)
		fmt.Fprintf(os.Stderr, "  Engine: %s\n", renderer.Name())
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
