package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"sermonpipe/internal/config"
	"sermonpipe/internal/testsupport"
)

type cliTestEnv struct {
	cfg          *config.Config
	settingsPath string
	baseDir      string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.Option) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("SERMONPIPE_CACHE_DIR", "")
	t.Setenv("SERMONPIPE_OUTPUT_DIR", "")
	t.Setenv("SERMONPIPE_LOG_LEVEL", "error")

	env := &cliTestEnv{cfg: cfg, settingsPath: filepath.Join(base, "sermonpipe.toml"), baseDir: base}
	writeSettings(t, env)
	return env
}

// writeSettings persists env.cfg to env.settingsPath.
func writeSettings(t *testing.T, env *cliTestEnv) {
	t.Helper()
	data, err := toml.Marshal(env.cfg)
	if err != nil {
		t.Fatalf("marshal settings: %v", err)
	}
	if err := os.WriteFile(env.settingsPath, data, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
}

func (e *cliTestEnv) writePipelineConfig(t *testing.T, body string) string {
	t.Helper()
	return testsupport.WriteFile(t, filepath.Join(e.baseDir, "pipeline_config.json"), body)
}

func runCLI(t *testing.T, args []string, settingsPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if settingsPath != "" {
		flags = append(flags, "--settings", settingsPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
