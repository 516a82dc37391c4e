package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoDuration reports that ffprobe ran but the file carried no usable duration.
var ErrNoDuration = errors.New("ffprobe: duration unavailable")

// entries limits ffprobe output to what the pipeline reads.
const entries = "format=duration,format_name:stream=index,codec_type,codec_name,duration"

// Report is the subset of ffprobe JSON the pipeline consumes.
type Report struct {
	Container Container `json:"format"`
	Streams   []Stream  `json:"streams"`
}

type Container struct {
	Name     string `json:"format_name"`
	Duration string `json:"duration"`
}

type Stream struct {
	Index    int    `json:"index"`
	Type     string `json:"codec_type"`
	Codec    string `json:"codec_name"`
	Duration string `json:"duration"`
}

// Probe runs binary (default "ffprobe") against path.
func Probe(ctx context.Context, binary, path string) (Report, error) {
	if strings.TrimSpace(path) == "" {
		return Report{}, errors.New("ffprobe: empty path")
	}
	if binary = strings.TrimSpace(binary); binary == "" {
		binary = "ffprobe"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-show_entries", entries, "-of", "json", "--", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return Report{}, fmt.Errorf("ffprobe %s: %w: %s", path, err, detail)
		}
		return Report{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var report Report
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		return Report{}, fmt.Errorf("decode ffprobe output: %w", err)
	}
	return report, nil
}

// Summary is what the fade step needs to know about a file.
type Summary struct {
	Seconds float64
	Video   bool
}

// Summarize probes path for its length and whether it carries video. A file
// without a usable duration yields ErrNoDuration.
func Summarize(ctx context.Context, binary, path string) (Summary, error) {
	report, err := Probe(ctx, binary, path)
	if err != nil {
		return Summary{}, err
	}
	seconds := report.Seconds()
	if math.IsNaN(seconds) || seconds <= 0 {
		return Summary{}, fmt.Errorf("%w: %s", ErrNoDuration, path)
	}
	return Summary{Seconds: seconds, Video: report.HasVideo()}, nil
}

// Seconds prefers the container duration and otherwise uses the longest
// stream. It is 0 when nothing is reported and NaN when the container value
// does not parse.
func (r Report) Seconds() float64 {
	if d := seconds(r.Container.Duration); d != 0 {
		return d
	}
	var longest float64
	for _, s := range r.Streams {
		if d := seconds(s.Duration); d > longest {
			longest = d
		}
	}
	return longest
}

// HasVideo reports whether any stream carries video.
func (r Report) HasVideo() bool {
	for _, s := range r.Streams {
		if strings.EqualFold(s.Type, "video") {
			return true
		}
	}
	return false
}

func seconds(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "N/A" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
