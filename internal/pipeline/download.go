package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"sermonpipe/internal/fetch"
	"sermonpipe/internal/fileutil"
	"sermonpipe/internal/logging"
	"sermonpipe/internal/services"
)

// DownloadStep fetches Source through Cache and stores the result in Slot.
type DownloadStep struct {
	Cache  CachedFetcher
	Source string
	Key    fetch.Key
	Slot   Slot
	Logger *slog.Logger
}

func (s *DownloadStep) Run(ctx context.Context, rec *Record) error {
	path, err := s.Cache.Fetch(ctx, s.Source, s.Key)
	if err != nil {
		return err
	}
	if !fileutil.Exists(path) {
		return services.Wrap(services.ErrNotFound, "download", "verify", "fetched file missing: "+path, nil)
	}
	if filepath.Ext(path) == "" {
		return services.Wrap(services.ErrInvalidFormat, "download", "verify", "fetched file has no extension: "+path, nil)
	}

	rec.Set(s.Slot, path)
	rec.ActiveFile = path
	rec.AddDownloaded(path)

	logging.WithContext(ctx, s.Logger).Info("media ready",
		logging.String("slot", s.Slot.String()),
		logging.String("path", path),
	)
	return nil
}

// ManualLoadStep uses a file obtained out of band as the main media.
type ManualLoadStep struct {
	Path   string
	Logger *slog.Logger
}

func (s *ManualLoadStep) Run(ctx context.Context, rec *Record) error {
	if !fileutil.Exists(s.Path) {
		return services.Wrap(services.ErrNotFound, "manual load", "verify", "manual file missing: "+s.Path, nil)
	}
	rec.MainFile = s.Path
	rec.ActiveFile = s.Path
	logging.WithContext(ctx, s.Logger).Info("manual media loaded", logging.String("path", s.Path))
	return nil
}
