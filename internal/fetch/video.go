package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sermonpipe/internal/logging"
	"sermonpipe/internal/services"
)

// Mode selects what VideoFetcher keeps from a platform video.
type Mode int

const (
	// ModeAudio keeps only the best audio stream, transcoded to AudioFormat.
	ModeAudio Mode = iota
	// ModeFull keeps the best video and audio streams merged into MergeFormat.
	ModeFull
)

func (m Mode) String() string {
	if m == ModeFull {
		return "full"
	}
	return "audio"
}

// VideoOptions configures a VideoFetcher.
type VideoOptions struct {
	Mode         Mode
	AudioFormat  string
	AudioQuality string
	MergeFormat  string
}

// VideoFetcher downloads YouTube media via an Engine.
type VideoFetcher struct {
	engine Engine
	opts   VideoOptions
	logger *slog.Logger
}

// NewVideoFetcher constructs a fetcher; empty options fall back to mp3/192
// for audio and mp4 for merged video.
func NewVideoFetcher(engine Engine, opts VideoOptions, logger *slog.Logger) *VideoFetcher {
	if opts.AudioFormat == "" {
		opts.AudioFormat = "mp3"
	}
	if opts.AudioQuality == "" {
		opts.AudioQuality = "192"
	}
	if opts.MergeFormat == "" {
		opts.MergeFormat = "mp4"
	}
	return &VideoFetcher{
		engine: engine,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "video-fetch"),
	}
}

func (f *VideoFetcher) engineOptions(dest string) Options {
	if f.opts.Mode == ModeFull {
		return Options{
			Format:      "bestvideo+bestaudio/best",
			Output:      dest,
			MergeFormat: f.opts.MergeFormat,
		}
	}
	return Options{
		Format:       "bestaudio/best",
		Output:       dest,
		ExtractAudio: true,
		AudioFormat:  f.opts.AudioFormat,
		AudioQuality: f.opts.AudioQuality,
	}
}

// Fetch downloads source using dest as the yt-dlp output template.
func (f *VideoFetcher) Fetch(ctx context.Context, source, dest string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", services.Wrap(services.ErrResolution, "fetch", "prepare destination", dest, err)
	}
	start := time.Now()
	path, err := f.engine.Download(ctx, source, f.engineOptions(dest))
	if err != nil {
		return "", services.Wrap(services.ErrResolution, "fetch", "download", source, err)
	}
	f.logger.Info("platform media downloaded",
		logging.String("source", source),
		logging.String("mode", f.opts.Mode.String()),
		logging.String("path", path),
		logging.Duration("elapsed", time.Since(start)),
	)
	return path, nil
}

// Resolve simulates the download with the same template and options. In
// audio mode the extraction codec replaces the simulated extension. In full
// mode the simulated name is kept: yt-dlp applies the merge container itself
// when it merges, and keeps the native extension when the format falls back
// to a single pre-muxed file.
func (f *VideoFetcher) Resolve(ctx context.Context, source, dest string) (string, error) {
	name, err := f.engine.Simulate(ctx, source, f.engineOptions(dest))
	if err != nil {
		return "", services.Wrap(services.ErrResolution, "fetch", "resolve", source, err)
	}
	if strings.TrimSpace(name) == "" {
		return "", services.Wrap(services.ErrResolution, "fetch", "resolve",
			fmt.Sprintf("no matching stream for %s", source), nil)
	}
	if f.opts.Mode == ModeFull {
		return name, nil
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + f.opts.AudioFormat, nil
}

// UploadDate returns the source's upload date formatted as YYYY-MM-DD.
func (f *VideoFetcher) UploadDate(ctx context.Context, source string) (string, error) {
	raw, err := f.engine.UploadDate(ctx, source)
	if err != nil {
		return "", services.Wrap(services.ErrResolution, "fetch", "upload date", source, err)
	}
	parsed, err := time.Parse("20060102", strings.TrimSpace(raw))
	if err != nil {
		return "", services.Wrap(services.ErrResolution, "fetch", "upload date",
			fmt.Sprintf("unexpected value %q", raw), err)
	}
	return parsed.Format(time.DateOnly), nil
}
