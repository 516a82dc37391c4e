package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sermonpipe/internal/services"
)

type fakeEngine struct {
	downloads []Options
	simulates []Options
	// ext is the extension the fake source natively has before post-processing.
	ext string
	// single makes full-mode formats fall back to one pre-muxed file, so no
	// merge happens and the native extension survives.
	single     bool
	uploadDate string
	err        error
}

func (e *fakeEngine) Download(_ context.Context, _ string, opts Options) (string, error) {
	e.downloads = append(e.downloads, opts)
	if e.err != nil {
		return "", e.err
	}
	path := strings.Replace(opts.Output, "%(ext)s", strings.TrimPrefix(e.finalExt(opts), "."), 1)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (e *fakeEngine) Simulate(_ context.Context, _ string, opts Options) (string, error) {
	e.simulates = append(e.simulates, opts)
	if e.err != nil {
		return "", e.err
	}
	ext := e.ext
	if !opts.ExtractAudio && opts.MergeFormat != "" && !e.single {
		ext = opts.MergeFormat
	}
	return strings.Replace(opts.Output, "%(ext)s", ext, 1), nil
}

func (e *fakeEngine) UploadDate(context.Context, string) (string, error) {
	return e.uploadDate, e.err
}

func (e *fakeEngine) finalExt(opts Options) string {
	if opts.ExtractAudio {
		return opts.AudioFormat
	}
	if e.single {
		return e.ext
	}
	return opts.MergeFormat
}

func TestVideoFetcherAudioOptions(t *testing.T) {
	engine := &fakeEngine{ext: "webm"}
	f := NewVideoFetcher(engine, VideoOptions{Mode: ModeAudio}, nil)
	dest := filepath.Join(t.TempDir(), "audio.%(ext)s")

	got, err := f.Fetch(context.Background(), "U", dest)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := Options{Format: "bestaudio/best", Output: dest, ExtractAudio: true, AudioFormat: "mp3", AudioQuality: "192"}
	if diff := cmp.Diff(want, engine.downloads[0]); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if filepath.Base(got) != "audio.mp3" {
		t.Fatalf("path = %q", got)
	}
}

func TestVideoFetcherResolveExtension(t *testing.T) {
	tests := []struct {
		name   string
		opts   VideoOptions
		single bool
		want   string
	}{
		{"audio", VideoOptions{Mode: ModeAudio}, false, "audio.mp3"},
		{"audio custom codec", VideoOptions{Mode: ModeAudio, AudioFormat: "m4a"}, false, "audio.m4a"},
		{"full merged", VideoOptions{Mode: ModeFull}, false, "audio.mp4"},
		{"full single file", VideoOptions{Mode: ModeFull}, true, "audio.webm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{ext: "webm", single: tt.single}
			f := NewVideoFetcher(engine, tt.opts, nil)
			got, err := f.Resolve(context.Background(), "U", "cache/audio.%(ext)s")
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if filepath.Base(got) != tt.want {
				t.Fatalf("Resolve = %q, want %s", got, tt.want)
			}
			if len(engine.downloads) != 0 {
				t.Fatal("Resolve must not download")
			}
		})
	}
}

func TestVideoFetcherFullMode(t *testing.T) {
	engine := &fakeEngine{ext: "webm"}
	f := NewVideoFetcher(engine, VideoOptions{Mode: ModeFull, MergeFormat: "mkv"}, nil)
	if _, err := f.Resolve(context.Background(), "U", "video.%(ext)s"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Options{Format: "bestvideo+bestaudio/best", Output: "video.%(ext)s", MergeFormat: "mkv"}
	if diff := cmp.Diff(want, engine.simulates[0]); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestVideoFetcherFullModeSingleFileMatchesDownload(t *testing.T) {
	engine := &fakeEngine{ext: "webm", single: true}
	f := NewVideoFetcher(engine, VideoOptions{Mode: ModeFull}, nil)
	dest := filepath.Join(t.TempDir(), "video.%(ext)s")

	resolved, err := f.Resolve(context.Background(), "U", dest)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	fetched, err := f.Fetch(context.Background(), "U", dest)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resolved != fetched {
		t.Fatalf("Resolve = %q but Fetch wrote %q", resolved, fetched)
	}
}

func TestVideoFetcherEngineFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("Requested format is not available")}
	f := NewVideoFetcher(engine, VideoOptions{}, nil)
	if _, err := f.Resolve(context.Background(), "U", "audio.%(ext)s"); !errors.Is(err, services.ErrResolution) {
		t.Fatalf("Resolve error = %v, want ErrResolution", err)
	}
	if _, err := f.Fetch(context.Background(), "U", filepath.Join(t.TempDir(), "audio.%(ext)s")); !errors.Is(err, services.ErrResolution) {
		t.Fatalf("Fetch error = %v, want ErrResolution", err)
	}
}

func TestUploadDate(t *testing.T) {
	f := NewVideoFetcher(&fakeEngine{uploadDate: "20261011"}, VideoOptions{}, nil)
	got, err := f.UploadDate(context.Background(), "U")
	if err != nil {
		t.Fatalf("UploadDate: %v", err)
	}
	if got != "2026-10-11" {
		t.Fatalf("UploadDate = %q", got)
	}

	f = NewVideoFetcher(&fakeEngine{uploadDate: "NA"}, VideoOptions{}, nil)
	if _, err := f.UploadDate(context.Background(), "U"); !errors.Is(err, services.ErrResolution) {
		t.Fatalf("expected ErrResolution for malformed date, got %v", err)
	}
}

func TestLastLine(t *testing.T) {
	got, err := lastLine("[info] something\n/cache/audio.mp3\n\n")
	if err != nil || got != "/cache/audio.mp3" {
		t.Fatalf("lastLine = %q, %v", got, err)
	}
	if _, err := lastLine("  \n"); err == nil {
		t.Fatal("expected error for empty output")
	}
}
