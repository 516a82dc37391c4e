package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"sermonpipe/internal/fileutil"
	"sermonpipe/internal/logging"
	"sermonpipe/internal/services"
)

// MoveStep publishes the file in Source to Destination.
type MoveStep struct {
	Source      Slot
	Destination string
	Logger      *slog.Logger
}

func (s *MoveStep) Run(ctx context.Context, rec *Record) error {
	if strings.TrimSpace(s.Destination) == "" {
		return services.Wrap(services.ErrConfiguration, "move", "destination", "output path not specified", nil)
	}
	source := rec.Get(s.Source)
	if !fileutil.Exists(source) {
		return services.Wrap(services.ErrSourceMissing, "move", "source",
			s.Source.String()+" file missing: "+source, nil)
	}
	if err := fileutil.MoveFile(source, s.Destination); err != nil {
		return services.Wrap(services.ErrToolExecution, "move", "rename", source, err)
	}

	// The published file is no longer scratch.
	rec.untrack(source)
	rec.FinalOutput = s.Destination

	logging.WithContext(ctx, s.Logger).Info("output published",
		logging.String("source", source),
		logging.String("destination", s.Destination),
	)
	return nil
}
