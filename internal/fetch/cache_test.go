package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sermonpipe/internal/services"
)

type countingFetcher struct {
	calls int
	dests []string
	// rename, when set, replaces the destination's extension.
	rename string
}

func (f *countingFetcher) Fetch(_ context.Context, _ string, dest string) (string, error) {
	f.calls++
	f.dests = append(f.dests, dest)
	path := dest
	if f.rename != "" {
		path = dest[:len(dest)-len(filepath.Ext(dest))] + f.rename
	}
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type resolvingFetcher struct {
	countingFetcher
	resolveCalls int
	resolveErr   error
}

func (f *resolvingFetcher) Resolve(_ context.Context, _ string, dest string) (string, error) {
	f.resolveCalls++
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	return dest[:len(dest)-len(filepath.Ext(dest))] + f.rename, nil
}

func TestCacheDirLayout(t *testing.T) {
	root := filepath.Join("cache", "audio")
	c := NewCache(root, &countingFetcher{}, nil)
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"root only", Key{Filename: "f.wav"}, filepath.Join(root, "f.wav")},
		{"date without stream", Key{Date: "2026-10-11", Filename: "f.wav"}, filepath.Join(root, "f.wav")},
		{"stream only", Key{StreamID: "sermon-42", Filename: "f.wav"}, filepath.Join(root, "sermon-42", "f.wav")},
		{"date and stream", Key{Date: "2026-10-11", StreamID: "sermon-42", Filename: "f.wav"}, filepath.Join(root, "2026-10-11", "sermon-42", "f.wav")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Path(tt.key); got != tt.want {
				t.Fatalf("Path(%+v) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestCacheFetchesOncePerKey(t *testing.T) {
	root := t.TempDir()
	delegate := &countingFetcher{}
	c := NewCache(root, delegate, nil)
	key := Key{Date: "2026-10-11", StreamID: "sermon-42", Filename: "intro.wav"}

	first, err := c.Fetch(context.Background(), "https://example.com/intro.wav", key)
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	second, err := c.Fetch(context.Background(), "https://example.com/intro.wav", key)
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if delegate.calls != 1 {
		t.Fatalf("delegate called %d times, want 1", delegate.calls)
	}
	if first != second {
		t.Fatalf("paths differ: %q vs %q", first, second)
	}
	if want := filepath.Join(root, "2026-10-11", "sermon-42", "intro.wav"); first != want {
		t.Fatalf("path = %q, want %q", first, want)
	}
}

func TestCacheMissPassesNaiveHint(t *testing.T) {
	root := t.TempDir()
	delegate := &countingFetcher{rename: ".mp3"}
	c := NewCache(root, delegate, nil)

	got, err := c.Fetch(context.Background(), "src", Key{StreamID: "s", Filename: "audio.%(ext)s"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if want := filepath.Join(root, "s", "audio.%(ext)s"); delegate.dests[0] != want {
		t.Fatalf("hint = %q, want %q", delegate.dests[0], want)
	}
	if filepath.Ext(got) != ".mp3" {
		t.Fatalf("expected delegate-reported path, got %q", got)
	}
}

func TestResolvingCacheHitsOnResolvedPath(t *testing.T) {
	root := t.TempDir()
	delegate := &resolvingFetcher{countingFetcher: countingFetcher{rename: ".mp3"}}
	c := NewResolvingCache(root, delegate, nil)
	key := Key{Date: "2026-10-11", StreamID: "s", Filename: "audio.%(ext)s"}

	first, err := c.Fetch(context.Background(), "U", key)
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	second, err := c.Fetch(context.Background(), "U", key)
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if delegate.calls != 1 {
		t.Fatalf("delegate called %d times, want 1", delegate.calls)
	}
	if delegate.resolveCalls != 2 {
		t.Fatalf("resolver called %d times, want 2", delegate.resolveCalls)
	}
	if first != second || filepath.Ext(second) != ".mp3" {
		t.Fatalf("unexpected paths %q, %q", first, second)
	}
}

func TestPlainCacheNeverResolves(t *testing.T) {
	delegate := &resolvingFetcher{countingFetcher: countingFetcher{}}
	c := NewCache(t.TempDir(), delegate, nil)
	if _, err := c.Fetch(context.Background(), "U", Key{Filename: "x.wav"}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if delegate.resolveCalls != 0 {
		t.Fatalf("NewCache must not consult a resolver, got %d calls", delegate.resolveCalls)
	}
}

func TestResolvingCacheReturnsResolutionError(t *testing.T) {
	resolveErr := services.Wrap(services.ErrResolution, "fetch", "resolve", "no stream", nil)
	delegate := &resolvingFetcher{resolveErr: resolveErr}
	c := NewResolvingCache(t.TempDir(), delegate, nil)

	_, err := c.Fetch(context.Background(), "U", Key{Filename: "audio.%(ext)s"})
	if !errors.Is(err, services.ErrResolution) {
		t.Fatalf("expected ErrResolution, got %v", err)
	}
	if delegate.calls != 0 {
		t.Fatal("delegate must not run after resolution failure")
	}
}

func TestCacheRejectsEmptyFilename(t *testing.T) {
	c := NewCache(t.TempDir(), &countingFetcher{}, nil)
	if _, err := c.Fetch(context.Background(), "U", Key{}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
