// Package readme loads README text for artifacts from the content directory
// or over HTTP. Callers always get text back: failures turn into the
// configured fallback message, which is itself valid renderer input.
package readme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MaxBytes caps how much of a README is read. Longer documents are
// truncated.
const MaxBytes = 1 << 20

// ErrOutsideContent is returned for paths that resolve outside the content
// directory.
var ErrOutsideContent = errors.New("path escapes content directory")

// Options configures a Fetcher.
type Options struct {
	ContentDir   string
	Timeout      time.Duration
	CacheTTL     time.Duration // zero disables caching
	FallbackText string
	Client       *http.Client
}

// Fetcher loads README documents with caching and a per-fetch timeout.
type Fetcher struct {
	root     string
	timeout  time.Duration
	ttl      time.Duration
	fallback string
	client   *http.Client
	cache    *gocache.Cache
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	root := opts.ContentDir
	if root == "" {
		root = "."
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{
		root:     filepath.Clean(root),
		timeout:  opts.Timeout,
		ttl:      opts.CacheTTL,
		fallback: opts.FallbackText,
		client:   client,
		cache:    gocache.New(opts.CacheTTL, 2*opts.CacheTTL+time.Minute),
	}
}

// Fallback returns the text used in place of a document that failed to load.
func (f *Fetcher) Fallback() string { return f.fallback }

// Fetch returns the document at location, or the fallback text if it could
// not be loaded. Failures are logged.
func (f *Fetcher) Fetch(ctx context.Context, location string) string {
	text, err := f.FetchErr(ctx, location)
	if err != nil {
		log.Printf("readme: fetching %s: %v", location, err)
		return f.fallback
	}
	return text
}

// FetchErr is Fetch without the fallback.
func (f *Fetcher) FetchErr(ctx context.Context, location string) (string, error) {
	key, remote, err := f.key(location)
	if err != nil {
		return "", err
	}

	if f.ttl > 0 {
		if v, ok := f.cache.Get(key); ok {
			if text, ok := v.(string); ok {
				return text, nil
			}
		}
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	var text string
	if remote {
		text, err = f.fetchHTTP(ctx, location)
	} else {
		text, err = f.readFile(ctx, key)
	}
	if err != nil {
		return "", err
	}

	if f.ttl > 0 {
		f.cache.Set(key, text, f.ttl)
	}
	return text, nil
}

// Invalidate drops cached documents. Keys are URLs or slash-separated paths
// relative to the content directory.
func (f *Fetcher) Invalidate(keys ...string) {
	for _, k := range keys {
		if key, _, err := f.key(k); err == nil {
			f.cache.Delete(key)
		}
	}
}

// Flush drops every cached document.
func (f *Fetcher) Flush() {
	f.cache.Flush()
}

// key normalizes location into a cache key and reports whether it is a
// remote URL.
func (f *Fetcher) key(location string) (string, bool, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", false, fmt.Errorf("empty location")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return location, true, nil
	}

	full := filepath.Join(f.root, filepath.FromSlash(location))
	rel, err := filepath.Rel(f.root, full)
	if err != nil {
		return "", false, fmt.Errorf("resolving %s: %w", location, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false, ErrOutsideContent
	}
	return filepath.ToSlash(rel), false, nil
}

func (f *Fetcher) readFile(ctx context.Context, rel string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	file, err := os.Open(filepath.Join(f.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", rel, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	return string(data), nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("requesting %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBytes))
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(data), nil
}
