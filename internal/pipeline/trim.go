package pipeline

import (
	"context"
	"log/slog"

	"sermonpipe/internal/fileutil"
	"sermonpipe/internal/logging"
	"sermonpipe/internal/services"
)

// TrimStep losslessly cuts the active file to [Start, End]. An existing
// trimmed output is reused, with a warning, unless Overwrite is set; the
// reused file may have been cut with a different window.
type TrimStep struct {
	Start     string
	End       string
	Overwrite bool
	Tool      Transcoder
	Logger    *slog.Logger
}

func (s *TrimStep) Run(ctx context.Context, rec *Record) error {
	input := rec.ActiveFile
	if input == "" {
		return services.Wrap(services.ErrMissingInput, "trim", "select input", "no active file", nil)
	}
	output := fileutil.Sibling(input, "_trimmed", "")
	logger := logging.WithContext(ctx, s.Logger)

	if fileutil.Exists(output) && !s.Overwrite {
		logging.WarnWithContext(logger, "reusing existing trimmed file", "trim_reused",
			logging.String("path", output),
			logging.String("start", s.Start),
			logging.String("end", s.End),
			logging.String(logging.FieldImpact, "a changed trim window needs --retrim"),
		)
		rec.ActiveFile = output
		return nil
	}

	logger.Info("trimming",
		logging.String("input", input),
		logging.String("start", s.Start),
		logging.String("end", s.End),
	)
	if err := s.Tool.Trim(ctx, input, output, s.Start, s.End); err != nil {
		return services.Wrap(services.ErrToolExecution, "trim", "ffmpeg", input, err)
	}
	rec.ActiveFile = output
	return nil
}

// forceRetrim makes every trim step in p cut its input again.
func (p Plan) forceRetrim() {
	for _, d := range p.Steps {
		if trim, ok := d.Step.(*TrimStep); ok {
			trim.Overwrite = true
		}
	}
}
