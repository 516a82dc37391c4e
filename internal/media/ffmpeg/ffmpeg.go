package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"sermonpipe/internal/logging"
)

// CommandRunner executes an external command, returning an error that carries
// the command's diagnostic output on failure.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// AudioProfile describes the canonical audio encoding used before joins.
type AudioProfile struct {
	Codec      string
	SampleRate int
	Channels   int
	Bitrate    string
	Loudnorm   string
}

// VideoProfile describes the canonical video encoding used before joins.
type VideoProfile struct {
	Codec      string
	Resolution string
	FrameRate  int
	CRF        int
	Preset     string
	Audio      AudioProfile
}

// FadeSpec configures a combined fade-in/fade-out pass.
type FadeSpec struct {
	Seconds      float64
	OutStart     float64
	AudioCodec   string
	AudioBitrate string
	Video        bool
	VideoCodec   string
	CRF          int
	Preset       string
}

// Tool wraps an ffmpeg executable.
type Tool struct {
	binary string
	logger *slog.Logger
	run    CommandRunner
}

// New constructs a Tool for the given binary (defaults to "ffmpeg").
func New(binary string, logger *slog.Logger) *Tool {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Tool{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (t *Tool) WithCommandRunner(r CommandRunner) {
	if t != nil && r != nil {
		t.run = r
	}
}

// Trim cuts [start, end] out of input without re-encoding.
func (t *Tool) Trim(ctx context.Context, input, output, start, end string) error {
	args := baseArgs(input)
	args = append(args, "-ss", start, "-to", end, "-c", "copy", output)
	return t.exec(ctx, "trim", args)
}

// Fade applies an audio fade-in at zero and a fade-out at spec.OutStart, and
// the matching video fades when spec.Video is set.
func (t *Tool) Fade(ctx context.Context, input, output string, spec FadeSpec) error {
	d := formatSeconds(spec.Seconds)
	out := formatSeconds(spec.OutStart)

	args := baseArgs(input)
	args = append(args,
		"-af", fmt.Sprintf("afade=t=in:st=0:d=%s,afade=t=out:st=%s:d=%s", d, out, d),
		"-c:a", orDefault(spec.AudioCodec, "aac"),
	)
	if spec.AudioBitrate != "" && !isPCM(spec.AudioCodec) {
		args = append(args, "-b:a", spec.AudioBitrate)
	}
	if spec.Video {
		args = append(args,
			"-vf", fmt.Sprintf("fade=t=in:st=0:d=%s,fade=t=out:st=%s:d=%s", d, out, d),
			"-c:v", orDefault(spec.VideoCodec, "libx264"),
			"-crf", strconv.Itoa(spec.CRF),
			"-preset", orDefault(spec.Preset, "ultrafast"),
		)
	}
	args = append(args, output)
	return t.exec(ctx, "fade", args)
}

// NormalizeAudio re-encodes input to the profile's codec, rate, channel
// count, bitrate and loudness target.
func (t *Tool) NormalizeAudio(ctx context.Context, input, output string, profile AudioProfile) error {
	args := baseArgs(input)
	args = append(args, audioArgs(profile, "-acodec")...)
	if ln := strings.TrimSpace(profile.Loudnorm); ln != "" {
		args = append(args, "-af", "loudnorm="+ln+":linear=true")
	}
	args = append(args, output)
	return t.exec(ctx, "normalize audio", args)
}

// NormalizeVideo scales input to the profile's resolution and frame rate and
// re-encodes both streams so concat stream-copy sees matching parameters.
func (t *Tool) NormalizeVideo(ctx context.Context, input, output string, profile VideoProfile) error {
	args := baseArgs(input)
	args = append(args,
		"-vf", fmt.Sprintf("scale=%s,fps=%d", strings.Replace(profile.Resolution, "x", ":", 1), profile.FrameRate),
		"-crf", strconv.Itoa(profile.CRF),
		"-preset", orDefault(profile.Preset, "ultrafast"),
		"-c:v", orDefault(profile.Codec, "libx264"),
	)
	audio := profile.Audio
	audio.Codec = orDefault(audio.Codec, "aac")
	args = append(args, audioArgs(audio, "-c:a")...)
	args = append(args, output)
	return t.exec(ctx, "normalize video", args)
}

// Concat joins the files named in listPath using the concat demuxer. Audio
// joins copy every stream; video joins copy video and re-encode audio to AAC.
func (t *Tool) Concat(ctx context.Context, listPath, output string, video bool) error {
	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-f", "concat", "-safe", "0", "-i", listPath}
	if video {
		args = append(args, "-c:v", "copy", "-c:a", "aac")
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args, output)
	return t.exec(ctx, "concat", args)
}

func (t *Tool) exec(ctx context.Context, operation string, args []string) error {
	t.logger.Debug("executing ffmpeg",
		logging.String("operation", operation),
		logging.String("args", strings.Join(args, " ")),
	)
	if err := t.run(ctx, t.binary, args...); err != nil {
		return fmt.Errorf("ffmpeg %s: %w", operation, err)
	}
	return nil
}

func baseArgs(input string) []string {
	return []string{"-y", "-hide_banner", "-loglevel", "error", "-i", input}
}

func audioArgs(p AudioProfile, codecFlag string) []string {
	args := []string{codecFlag, orDefault(p.Codec, "pcm_s16le")}
	if p.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(p.SampleRate))
	}
	if p.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(p.Channels))
	}
	if p.Bitrate != "" {
		args = append(args, "-b:a", p.Bitrate)
	}
	return args
}

// AudioCodecFor picks an encoder that the container extension can hold.
func AudioCodecFor(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp3":
		return "libmp3lame"
	case "wav":
		return "pcm_s16le"
	default:
		return "aac"
	}
}

func isPCM(codec string) bool {
	return strings.HasPrefix(codec, "pcm_")
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr strings.Builder
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
