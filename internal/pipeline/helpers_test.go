package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sermonpipe/internal/fetch"
	"sermonpipe/internal/media/ffmpeg"
)

// fakeTool writes a placeholder file for every requested output.
type fakeTool struct {
	calls []string
	err   error
	// fades records fade specs in call order.
	fades []ffmpeg.FadeSpec
}

func (f *fakeTool) write(op, output string) error {
	f.calls = append(f.calls, op+" "+filepath.Base(output))
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(output, []byte(op), 0o644)
}

func (f *fakeTool) Trim(_ context.Context, _, output, _, _ string) error {
	return f.write("trim", output)
}

func (f *fakeTool) Fade(_ context.Context, _, output string, spec ffmpeg.FadeSpec) error {
	f.fades = append(f.fades, spec)
	return f.write("fade", output)
}

func (f *fakeTool) NormalizeAudio(_ context.Context, _, output string, _ ffmpeg.AudioProfile) error {
	return f.write("normalize", output)
}

func (f *fakeTool) NormalizeVideo(_ context.Context, _, output string, _ ffmpeg.VideoProfile) error {
	return f.write("normalize-video", output)
}

func (f *fakeTool) Concat(_ context.Context, listPath, output string, _ bool) error {
	if _, err := os.Stat(listPath); err != nil {
		return err
	}
	return f.write("concat", output)
}

// fakeCache returns a fixed path per filename without touching the network.
type fakeCache struct {
	paths map[string]string
	err   error
	keys  []fetch.Key
}

func (c *fakeCache) Fetch(_ context.Context, _ string, key fetch.Key) (string, error) {
	c.keys = append(c.keys, key)
	if c.err != nil {
		return "", c.err
	}
	path, ok := c.paths[key.Filename]
	if !ok {
		return "", errors.New("no fake path for " + key.Filename)
	}
	return path, nil
}

func fixedProbe(seconds float64) Prober {
	return func(context.Context, string) (MediaInfo, error) {
		return MediaInfo{Seconds: seconds, Video: true}, nil
	}
}

func writeFile(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected %s to be absent, stat err=%v", path, err)
	}
}
