package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"sermonpipe/internal/logging"
	"sermonpipe/internal/services"
)

// HTTPFetcher downloads directly addressable objects with GET.
type HTTPFetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPFetcher builds a fetcher with the given request timeout. A zero
// timeout leaves transfers unbounded.
func NewHTTPFetcher(timeout time.Duration, logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logging.NewComponentLogger(logger, "http-fetch"),
	}
}

// WithClient swaps the HTTP client, primarily for tests.
func (f *HTTPFetcher) WithClient(client *http.Client) {
	if f != nil && client != nil {
		f.client = client
	}
}

// Fetch streams source into a .part sibling of dest and renames it into
// place once the body has been fully written.
func (f *HTTPFetcher) Fetch(ctx context.Context, source, dest string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", services.Wrap(services.ErrTransfer, "fetch", "prepare destination", dest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", services.Wrap(services.ErrTransfer, "fetch", "build request", source, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransfer, "fetch", "http get", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", services.Wrap(services.ErrTransfer, "fetch", "http get",
			fmt.Sprintf("%s returned status %d", source, resp.StatusCode), nil)
	}

	partial := dest + ".part"
	file, err := os.Create(partial)
	if err != nil {
		return "", services.Wrap(services.ErrTransfer, "fetch", "create file", partial, err)
	}
	written, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(partial)
		return "", services.Wrap(services.ErrTransfer, "fetch", "write body", source, copyErr)
	}
	if err := os.Rename(partial, dest); err != nil {
		_ = os.Remove(partial)
		return "", services.Wrap(services.ErrTransfer, "fetch", "finalize file", dest, err)
	}

	f.logger.Info("object downloaded",
		logging.String("source", source),
		logging.String("path", dest),
		logging.Any("bytes", written),
	)
	return dest, nil
}
