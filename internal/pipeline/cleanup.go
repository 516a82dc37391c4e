package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"sermonpipe/internal/logging"
)

// CleanupStep deletes tracked intermediate files plus any files named by
// Slots. It never fails; missing files are logged and skipped.
type CleanupStep struct {
	Slots  []Slot
	Logger *slog.Logger
}

func (s *CleanupStep) Run(ctx context.Context, rec *Record) error {
	logger := logging.WithContext(ctx, s.Logger)

	paths := slices.Clone(rec.IntermediateFiles)
	for _, slot := range s.Slots {
		if path := rec.Get(slot); path != "" && !slices.Contains(paths, path) {
			paths = append(paths, path)
		}
	}

	removed := 0
	for _, path := range paths {
		err := os.Remove(path)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, fs.ErrNotExist):
			logging.WarnWithContext(logger, "cleanup target missing", "cleanup_missing",
				logging.String("path", path),
				logging.String(logging.FieldImpact, "nothing to delete"),
			)
		default:
			logging.WarnWithContext(logger, "cleanup failed", "cleanup_failed",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "scratch file left on disk"),
			)
		}
	}
	rec.IntermediateFiles = nil

	logger.Info("cleanup complete", logging.Int("removed", removed), logging.Int("considered", len(paths)))
	return nil
}
