// Package watcher watches the content directory and publishes debounced
// change notifications for README files.
package watcher

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/folioworks/folio/internal/events"
)

// Config holds watcher configuration options.
type Config struct {
	Root     string
	Include  []string // doublestar patterns relative to Root
	Debounce time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(root string) Config {
	return Config{
		Root:     root,
		Include:  []string{"**/*.md"},
		Debounce: 300 * time.Millisecond,
	}
}

// Watcher monitors the content directory and publishes ContentChanged
// events on bus.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	include   []string
	debounce  time.Duration
	bus       *events.Broker[events.ContentChange]
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// New creates a watcher. Patterns are validated here so a typo fails fast.
func New(cfg Config, bus *events.Broker[events.ContentChange]) (*Watcher, error) {
	for _, p := range cfg.Include {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern %q", p)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		root:      filepath.Clean(cfg.Root),
		include:   cfg.Include,
		debounce:  cfg.Debounce,
		bus:       bus,
		done:      make(chan struct{}),
	}, nil
}

// Start watches the root and every non-hidden directory below it.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("watching directory %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
	})
	return err
}

// loop collects relevant events and publishes them once the debounce
// window passes without further changes.
func (w *Watcher) loop() {
	defer w.wg.Done()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.trackNewDir(event)

			rel, ok := w.relevant(event)
			if !ok {
				continue
			}
			pending[rel] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})
			w.bus.Publish(events.ContentChanged, events.ContentChange{Paths: paths})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		}
	}
}

// trackNewDir starts watching directories created after Start.
func (w *Watcher) trackNewDir(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() || isHidden(info.Name()) {
		return
	}
	if err := w.fsWatcher.Add(event.Name); err != nil {
		log.Printf("watcher: watching new directory %s: %v", event.Name, err)
	}
}

// relevant reports whether event touches a file matching the include
// patterns, returning its slash-separated path relative to the root.
func (w *Watcher) relevant(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	return rel, Matches(w.include, rel)
}

// Matches reports whether rel matches any pattern. No patterns matches
// everything.
func Matches(patterns []string, rel string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
