package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"sermonpipe/internal/config"
)

// Option adjusts a config produced by NewConfig.
type Option func(*fixture)

type fixture struct {
	t    testing.TB
	root string
	cfg  *config.Config
}

// NewConfig returns default settings whose cache, output, log and history
// locations all live under a fresh temp directory.
func NewConfig(t testing.TB, opts ...Option) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CacheDir = filepath.Join(root, "cache")
	cfg.Paths.OutputDir = filepath.Join(root, "output")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Paths.HistoryDB = filepath.Join(root, "state", "history.db")

	f := &fixture{t: t, root: root, cfg: &cfg}
	for _, opt := range opts {
		opt(f)
	}
	return f.cfg
}

func WithHistoryDisabled() Option {
	return func(f *fixture) { f.cfg.History.Enabled = false }
}

// WithStubbedBinaries installs script as each named tool under <root>/bin
// and points cfg.Tools at the stubs. No names means all three tools; an
// empty script exits 0.
func WithStubbedBinaries(script string, names ...string) Option {
	return func(f *fixture) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe", "yt-dlp"}
		}
		if script == "" {
			script = "#!/bin/sh\nexit 0\n"
		}
		bin := filepath.Join(f.root, "bin")
		if err := os.MkdirAll(bin, 0o755); err != nil {
			f.t.Fatalf("create stub dir: %v", err)
		}
		slots := map[string]*string{
			"ffmpeg":  &f.cfg.Tools.FFmpeg,
			"ffprobe": &f.cfg.Tools.FFprobe,
			"yt-dlp":  &f.cfg.Tools.YTDLP,
		}
		for _, name := range names {
			path := filepath.Join(bin, name)
			if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
				f.t.Fatalf("install stub %s: %v", name, err)
			}
			if slot, ok := slots[name]; ok {
				*slot = path
			}
		}
	}
}

// BaseDir is the temp root NewConfig placed cfg's directories under.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CacheDir)
}
