package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// Options carries the yt-dlp selection and post-processing flags for one call.
type Options struct {
	Format       string
	Output       string
	ExtractAudio bool
	AudioFormat  string
	AudioQuality string
	MergeFormat  string
}

// Engine is the subset of yt-dlp behaviour the fetcher relies on.
type Engine interface {
	// Download performs the transfer and returns the final file path.
	Download(ctx context.Context, url string, opts Options) (string, error)
	// Simulate returns the filename a download would use, without downloading.
	Simulate(ctx context.Context, url string, opts Options) (string, error)
	// UploadDate returns the raw YYYYMMDD upload date.
	UploadDate(ctx context.Context, url string) (string, error)
}

// YTDLP drives the yt-dlp executable through go-ytdlp.
type YTDLP struct {
	executable string
}

// NewYTDLP returns an engine bound to the given executable; an empty value
// lets go-ytdlp search PATH.
func NewYTDLP(executable string) *YTDLP {
	return &YTDLP{executable: strings.TrimSpace(executable)}
}

func (y *YTDLP) command(opts Options) *ytdlp.Command {
	cmd := ytdlp.New().NoPlaylist().NoProgress().NoWarnings()
	if y.executable != "" {
		cmd = cmd.SetExecutable(y.executable)
	}
	if opts.Format != "" {
		cmd = cmd.Format(opts.Format)
	}
	if opts.Output != "" {
		cmd = cmd.Output(opts.Output)
	}
	if opts.ExtractAudio {
		cmd = cmd.ExtractAudio()
		if opts.AudioFormat != "" {
			cmd = cmd.AudioFormat(opts.AudioFormat)
		}
		if opts.AudioQuality != "" {
			cmd = cmd.AudioQuality(opts.AudioQuality)
		}
	}
	if opts.MergeFormat != "" {
		cmd = cmd.MergeOutputFormat(opts.MergeFormat)
	}
	return cmd
}

// Download implements Engine.
func (y *YTDLP) Download(ctx context.Context, url string, opts Options) (string, error) {
	result, err := y.command(opts).Print("after_move:filepath").NoSimulate().Run(ctx, url)
	if err != nil {
		return "", runError("yt-dlp download", result, err)
	}
	return lastLine(result.Stdout)
}

// Simulate implements Engine.
func (y *YTDLP) Simulate(ctx context.Context, url string, opts Options) (string, error) {
	result, err := y.command(opts).Simulate().Print("filename").Run(ctx, url)
	if err != nil {
		return "", runError("yt-dlp simulate", result, err)
	}
	return lastLine(result.Stdout)
}

// UploadDate implements Engine.
func (y *YTDLP) UploadDate(ctx context.Context, url string) (string, error) {
	result, err := y.command(Options{}).Simulate().Print("%(upload_date)s").Run(ctx, url)
	if err != nil {
		return "", runError("yt-dlp upload date", result, err)
	}
	return lastLine(result.Stdout)
}

func runError(op string, result *ytdlp.Result, err error) error {
	if result != nil {
		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			return fmt.Errorf("%s: %w: %s", op, err, stderr)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func lastLine(stdout string) (string, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" && line != "NA" {
			return line, nil
		}
	}
	return "", errors.New("yt-dlp produced no output")
}
