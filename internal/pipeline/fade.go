package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"sermonpipe/internal/fileutil"
	"sermonpipe/internal/logging"
	"sermonpipe/internal/media/ffmpeg"
	"sermonpipe/internal/services"
)

// FadeStep fades the active file in at the start and out at the end.
type FadeStep struct {
	Seconds float64
	Video   bool
	// Format, when set, re-encodes into that container instead of keeping
	// the input's extension.
	Format string
	// AudioBitrate, CRF and Preset come from the encoding profile.
	AudioBitrate string
	CRF          int
	Preset       string
	Tool         Transcoder
	Probe        Prober
	Logger       *slog.Logger
}

func (s *FadeStep) Run(ctx context.Context, rec *Record) error {
	input := rec.ActiveFile
	if input == "" {
		return services.Wrap(services.ErrMissingInput, "fade", "select input", "no active file", nil)
	}
	info, err := s.Probe(ctx, input)
	if err != nil {
		return services.Wrap(services.ErrProbe, "fade", "probe duration", input, err)
	}
	if s.Video && !info.Video {
		return services.Wrap(services.ErrInvalidFormat, "fade", "check streams", input+" has no video stream", nil)
	}
	duration := info.Seconds

	outStart := max(duration-s.Seconds, 0)
	output := fileutil.Sibling(input, "_faded", s.Format)

	spec := ffmpeg.FadeSpec{
		Seconds:      s.Seconds,
		OutStart:     outStart,
		AudioCodec:   ffmpeg.AudioCodecFor(filepath.Ext(output)),
		AudioBitrate: s.AudioBitrate,
		Video:        s.Video,
		CRF:          s.CRF,
		Preset:       s.Preset,
	}
	logging.WithContext(ctx, s.Logger).Info("applying fades",
		logging.String("input", input),
		logging.Any("duration_seconds", duration),
		logging.Any("fade_out_start", outStart),
	)
	if err := s.Tool.Fade(ctx, input, output, spec); err != nil {
		return services.Wrap(services.ErrToolExecution, "fade", "ffmpeg", input, err)
	}
	rec.ActiveFile = output
	rec.TrackIntermediate(output)
	return nil
}
