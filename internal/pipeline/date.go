package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"sermonpipe/internal/logging"
	"sermonpipe/internal/pipelineconfig"
)

// DateSource looks up the publication date (YYYY-MM-DD) of a remote source;
// *fetch.VideoFetcher satisfies it.
type DateSource interface {
	UploadDate(ctx context.Context, source string) (string, error)
}

// ResolveDate returns the date used to key caches and name the output. The
// upload date is preferred; manual runs and failed lookups use today.
func ResolveDate(ctx context.Context, src DateSource, cfg *pipelineconfig.Config, now func() time.Time, logger *slog.Logger) string {
	if now == nil {
		now = time.Now
	}
	today := now().Format(time.DateOnly)
	if src == nil || cfg == nil || cfg.ManualDownload || strings.TrimSpace(cfg.YouTubeURL) == "" {
		return today
	}
	date, err := src.UploadDate(ctx, cfg.YouTubeURL)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "upload date lookup failed", "upload_date_fallback",
			logging.String("url", cfg.YouTubeURL),
			logging.String("fallback", today),
			logging.Error(err),
			logging.String(logging.FieldImpact, "using today's date"),
		)
		return today
	}
	return date
}
