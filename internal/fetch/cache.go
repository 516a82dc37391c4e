package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sermonpipe/internal/logging"
	"sermonpipe/internal/services"
)

// Key identifies a cache entry within a category root. Date and StreamID are
// optional and only contribute path segments when set.
type Key struct {
	Date     string
	StreamID string
	Filename string
}

// Cache fronts a Fetcher with a deterministic on-disk layout.
type Cache struct {
	root     string
	fetcher  Fetcher
	resolver Resolver
	logger   *slog.Logger
}

// NewCache wraps a fetcher whose output path always equals the cache path.
func NewCache(root string, fetcher Fetcher, logger *slog.Logger) *Cache {
	return &Cache{
		root:    root,
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, "cache"),
	}
}

// NewResolvingCache wraps a fetcher that may rename its output; the cache
// asks it for the expected path before checking for a hit.
func NewResolvingCache(root string, fetcher ResolvingFetcher, logger *slog.Logger) *Cache {
	c := NewCache(root, fetcher, logger)
	c.resolver = fetcher
	return c
}

// Root returns the category root directory.
func (c *Cache) Root() string {
	return c.root
}

// Dir returns the directory holding entries for key: the root, root/stream,
// or root/date/stream.
func (c *Cache) Dir(key Key) string {
	switch {
	case key.StreamID == "":
		return c.root
	case key.Date == "":
		return filepath.Join(c.root, key.StreamID)
	default:
		return filepath.Join(c.root, key.Date, key.StreamID)
	}
}

// Path returns the naive cache path for key.
func (c *Cache) Path(key Key) string {
	return filepath.Join(c.Dir(key), key.Filename)
}

// Fetch returns the cached file for key, retrieving source only on a miss.
func (c *Cache) Fetch(ctx context.Context, source string, key Key) (string, error) {
	if key.Filename == "" {
		return "", services.Wrap(services.ErrConfiguration, "cache", "fetch", "empty filename", nil)
	}
	dir := c.Dir(key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cache: create %s: %w", dir, err)
	}
	naive := c.Path(key)

	expected := naive
	if c.resolver != nil {
		resolved, err := c.resolver.Resolve(ctx, source, naive)
		if err != nil {
			return "", err
		}
		expected = resolved
	}

	if exists(expected) {
		c.logger.Info("cache hit", logging.String("path", expected))
		return expected, nil
	}

	c.logger.Info("cache miss", logging.String("source", source), logging.String("path", naive))
	return c.fetcher.Fetch(ctx, source, naive)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
