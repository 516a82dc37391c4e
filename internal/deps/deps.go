// Package deps checks that the external tools sermonpipe drives are installed.
package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"sermonpipe/internal/config"
)

// versionTimeout bounds each version probe.
const versionTimeout = 5 * time.Second

// Requirement defines an external executable the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// VersionArg is passed to the binary to obtain a version line.
	VersionArg string
	Optional   bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Version     string
	Detail      string
}

// Requirements lists the tools named by cfg.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: cfg.Tools.FFmpeg, Description: "Trims, fades, normalizes and joins media", VersionArg: "-version"},
		{Name: "FFprobe", Command: cfg.Tools.FFprobe, Description: "Reads media durations for fades", VersionArg: "-version"},
		{Name: "yt-dlp", Command: cfg.Tools.YTDLP, Description: "Downloads sermon streams", VersionArg: "--version"},
	}
}

// CheckBinaries resolves each requirement on PATH and records its version line.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	statuses := make([]Status, len(requirements))
	for i, req := range requirements {
		statuses[i] = check(ctx, req)
	}
	return statuses
}

func check(ctx context.Context, req Requirement) Status {
	st := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if st.Command == "" {
		st.Detail = "command not configured"
		return st
	}
	resolved, err := exec.LookPath(st.Command)
	if err != nil {
		st.Detail = fmt.Sprintf("%s: not on PATH", st.Command)
		return st
	}
	st.Available, st.Path = true, resolved
	if req.VersionArg != "" {
		st.Version = versionLine(ctx, resolved, req.VersionArg)
	}
	return st
}

// Missing returns the names of required tools that are unavailable.
func Missing(statuses []Status) []string {
	var missing []string
	for _, st := range statuses {
		if !st.Available && !st.Optional {
			missing = append(missing, st.Name)
		}
	}
	return missing
}

func versionLine(ctx context.Context, path, arg string) string {
	probeCtx, stop := context.WithTimeout(ctx, versionTimeout)
	defer stop()
	out, err := exec.CommandContext(probeCtx, path, arg).Output()
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}
