package pipelineconfig_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"sermonpipe/internal/pipelineconfig"
	"sermonpipe/internal/services"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline_config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"youtube_url": "U",
		"stream_id": "sermon-42",
		"audio": {"intro_url": "I", "outro_url": "O", "trim": {"start_time": "00:00:10", "end_time": "00:01:00"}}
	}`)

	cfg, err := pipelineconfig.Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &pipelineconfig.Config{
		YouTubeURL: "U",
		StreamID:   "sermon-42",
		Audio: &pipelineconfig.Media{
			IntroURL: "I",
			OutroURL: "O",
			Trim:     &pipelineconfig.Trim{StartTime: "00:00:10", EndTime: "00:01:00"},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Media("audio").HasIntro() || cfg.Media("video").HasIntro() {
		t.Fatal("unexpected Media lookups")
	}
}

func TestLoadCollectsViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "missing youtube url",
			body: `{"stream_id": "s"}`,
			want: []string{"youtube_url is required"},
		},
		{
			name: "trim out of order",
			body: `{"youtube_url": "U", "video": {"trim": {"start_time": "00:02:00", "end_time": "00:01:00"}}}`,
			want: []string{"video.trim.start_time 00:02:00 must be before end_time 00:01:00"},
		},
		{
			name: "bad timestamp and missing url",
			body: `{"audio": {"trim": {"start_time": "10s", "end_time": "00:01:00"}}}`,
			want: []string{"youtube_url is required"},
		},
		{
			name: "unknown field",
			body: `{"youtube_url": "U", "colour": "blue"}`,
			want: []string{"(root): ", "colour"},
		},
		{
			name: "wrong type",
			body: `{"youtube_url": "U", "manual_download": "yes"}`,
			want: []string{"/manual_download: "},
		},
		{
			name: "malformed json",
			body: `{"youtube_url": `,
			want: []string{"invalid JSON"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipelineconfig.Load(writeConfig(t, tt.body), "")
			if !errors.Is(err, services.ErrConfigValidation) {
				t.Fatalf("expected ErrConfigValidation, got %v", err)
			}
			var verr *pipelineconfig.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			joined := strings.Join(verr.Violations, "\n")
			for _, want := range tt.want {
				if !strings.Contains(joined, want) {
					t.Fatalf("violations %q missing %q", verr.Violations, want)
				}
			}
		})
	}
}

func TestParseReportsEverySchemaViolation(t *testing.T) {
	body := `{
		"youtube_url": "U",
		"stream_id": "bad id!",
		"bogus": 1,
		"audio": {"trim": {"start_time": "1:2", "end_time": "x"}, "extra": true}
	}`
	_, err := pipelineconfig.Parse("weekly.json", []byte(body), pipelineconfig.EmbeddedSchema())
	var verr *pipelineconfig.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Violations) < 5 {
		t.Fatalf("expected at least 5 violations, got %d: %q", len(verr.Violations), verr.Violations)
	}

	found := func(parts ...string) bool {
		for _, v := range verr.Violations {
			matched := true
			for _, p := range parts {
				if !strings.Contains(v, p) {
					matched = false
					break
				}
			}
			if matched {
				return true
			}
		}
		return false
	}
	checks := [][]string{
		{"/stream_id: "},
		{"(root): ", "bogus"},
		{"/audio: ", "extra"},
		{"/audio/trim/start_time: "},
		{"/audio/trim/end_time: "},
	}
	for _, parts := range checks {
		if !found(parts...) {
			t.Fatalf("no violation matching %q in %q", parts, verr.Violations)
		}
	}
}

func TestManualDownloadWithoutURL(t *testing.T) {
	path := writeConfig(t, `{"manual_download": true, "audio": {"manual_file_path": "/media/sermon.wav"}}`)
	cfg, err := pipelineconfig.Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.ValidateFor("audio"); err != nil {
		t.Fatalf("ValidateFor(audio): %v", err)
	}
	err = cfg.ValidateFor("video")
	if !errors.Is(err, services.ErrConfigValidation) || !strings.Contains(err.Error(), "video.manual_file_path") {
		t.Fatalf("ValidateFor(video) = %v", err)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := pipelineconfig.Load(filepath.Join(t.TempDir(), "nope.json"), "")
	if !errors.Is(err, services.ErrConfigValidation) {
		t.Fatalf("expected ErrConfigValidation, got %v", err)
	}
}

func TestSchemaPathSelection(t *testing.T) {
	cfgPath := writeConfig(t, `{"youtube_url": "U"}`)

	t.Chdir(t.TempDir())
	if _, err := pipelineconfig.Load(cfgPath, pipelineconfig.DefaultSchemaPath); err != nil {
		t.Fatalf("absent default schema should fall back to embedded copy: %v", err)
	}

	custom := filepath.Join(t.TempDir(), "missing_schema.json")
	if _, err := pipelineconfig.Load(cfgPath, custom); !errors.Is(err, services.ErrConfigValidation) {
		t.Fatalf("absent explicit schema should fail, got %v", err)
	}

	strict := filepath.Join(t.TempDir(), "strict.json")
	body := `{"type": "object", "required": ["stream_id"]}`
	if err := os.WriteFile(strict, []byte(body), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	if _, err := pipelineconfig.Load(cfgPath, strict); !errors.Is(err, services.ErrConfigValidation) {
		t.Fatalf("custom schema should be enforced, got %v", err)
	}
}

func TestRepositorySchemaMatchesEmbedded(t *testing.T) {
	onDisk, err := os.ReadFile(filepath.Join("..", "..", "config", "pipeline_schema.json"))
	if err != nil {
		t.Fatalf("read repository schema: %v", err)
	}
	if !bytes.Equal(onDisk, pipelineconfig.EmbeddedSchema()) {
		t.Fatal("config/pipeline_schema.json and the embedded schema have diverged")
	}
}

func TestSampleConfigValidates(t *testing.T) {
	path := filepath.Join("..", "..", "config", "pipeline_config.json")
	if _, err := pipelineconfig.Load(path, ""); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := pipelineconfig.ParseTimestamp("01:02:03")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if want := time.Hour + 2*time.Minute + 3*time.Second; got != want {
		t.Fatalf("ParseTimestamp = %v, want %v", got, want)
	}
	if _, err := pipelineconfig.ParseTimestamp("00:75:00"); err == nil {
		t.Fatal("expected range error")
	}
}
