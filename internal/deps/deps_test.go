package deps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sermonpipe/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\necho \"present version 7.1\"\necho extra\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present, VersionArg: "-version"},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  ", Optional: true},
	}

	results := CheckBinaries(context.Background(), reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Version != "present version 7.1" {
		t.Fatalf("unexpected version line %q", results[0].Version)
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be reported, got %#v", results[1])
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for unset command: %q", results[2].Detail)
	}

	if diff := cmp.Diff([]string{"Missing"}, Missing(results)); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestRequirementsFollowSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.YTDLP = "/opt/bin/yt-dlp"

	reqs := Requirements(&cfg)
	var commands []string
	for _, r := range reqs {
		commands = append(commands, r.Command)
	}
	if diff := cmp.Diff([]string{"ffmpeg", "ffprobe", "/opt/bin/yt-dlp"}, commands); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}
