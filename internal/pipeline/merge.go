package pipeline

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"sermonpipe/internal/fileutil"
	"sermonpipe/internal/logging"
	"sermonpipe/internal/media/ffmpeg"
	"sermonpipe/internal/services"
)

// MergeStep joins intro, active and outro into one file of Format. Inputs
// are normalized first so the stream-copy concat sees matching parameters.
type MergeStep struct {
	Format string
	Video  bool
	Audio  ffmpeg.AudioProfile
	// VideoProfile is used when Video is set.
	VideoProfile ffmpeg.VideoProfile
	Tool         Transcoder
	Logger       *slog.Logger
}

func (s *MergeStep) Run(ctx context.Context, rec *Record) error {
	inputs := []string{rec.IntroFile, rec.ActiveFile, rec.OutroFile}
	var missing []string
	for i, name := range []string{"intro", "main", "outro"} {
		if !fileutil.Exists(inputs[i]) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return services.Wrap(services.ErrMissingInput, "merge", "check inputs",
			"missing "+strings.Join(missing, ", "), nil)
	}

	logger := logging.WithContext(ctx, s.Logger)
	var scratch []string
	defer func() {
		for _, path := range scratch {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				logger.Warn("failed to remove merge scratch file", logging.String("path", path), logging.Error(err))
			}
		}
	}()

	normalized := make([]string, 0, len(inputs))
	for _, input := range inputs {
		output := fileutil.Sibling(input, "_normalized", s.Format)
		scratch = append(scratch, output)
		if err := s.normalize(ctx, input, output); err != nil {
			return services.Wrap(services.ErrToolExecution, "merge", "normalize", input, err)
		}
		normalized = append(normalized, output)
	}

	active := rec.ActiveFile
	listPath := fileutil.Sibling(active, "_file_list", "txt")
	scratch = append(scratch, listPath)
	if err := ffmpeg.WriteConcatList(listPath, normalized); err != nil {
		return services.Wrap(services.ErrToolExecution, "merge", "write concat list", listPath, err)
	}

	merged := fileutil.Sibling(active, "_merged", s.Format)
	logger.Info("concatenating", logging.String("output", merged), logging.Int("inputs", len(normalized)))
	if err := s.Tool.Concat(ctx, listPath, merged, s.Video); err != nil {
		return services.Wrap(services.ErrToolExecution, "merge", "concat", merged, err)
	}

	rec.ActiveFile = merged
	rec.TrackIntermediate(merged)
	return nil
}

func (s *MergeStep) normalize(ctx context.Context, input, output string) error {
	if s.Video {
		return s.Tool.NormalizeVideo(ctx, input, output, s.VideoProfile)
	}
	profile := s.Audio
	if profile.Codec == "" {
		profile.Codec = ffmpeg.AudioCodecFor(s.Format)
	}
	return s.Tool.NormalizeAudio(ctx, input, output, profile)
}
