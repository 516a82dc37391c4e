package preflight

import (
	"strings"

	"sermonpipe/internal/config"
)

// minFreeBytes is the free space below which a directory check fails.
// A single full-length sermon video plus its intermediates fits well within it.
const minFreeBytes = 2 << 30

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks the cache, output and log directories from cfg.
func RunAll(cfg *config.Config) []Result {
	dirs := []struct {
		name string
		path string
	}{
		{"Cache directory", cfg.Paths.CacheDir},
		{"Output directory", cfg.Paths.OutputDir},
	}
	if strings.TrimSpace(cfg.Paths.LogDir) != "" {
		dirs = append(dirs, struct {
			name string
			path string
		}{"Log directory", cfg.Paths.LogDir})
	}

	results := make([]Result, 0, len(dirs)*2)
	for _, d := range dirs {
		access := CheckDirectoryAccess(d.name, d.path)
		results = append(results, access)
		if access.Passed {
			results = append(results, CheckFreeSpace(d.name+" space", d.path, minFreeBytes))
		}
	}
	return results
}

// Failed returns the names of results that did not pass.
func Failed(results []Result) []string {
	var names []string
	for _, r := range results {
		if !r.Passed {
			names = append(names, r.Name)
		}
	}
	return names
}
