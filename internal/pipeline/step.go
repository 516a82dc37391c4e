package pipeline

import (
	"context"

	"sermonpipe/internal/fetch"
	"sermonpipe/internal/media/ffmpeg"
)

// Step is one unit of pipeline work.
type Step interface {
	Run(ctx context.Context, rec *Record) error
}

// Descriptor pairs a step with its human-readable label.
type Descriptor struct {
	Label string
	Step  Step
}

// Plan is the assembled, ordered list of steps for one kind.
type Plan struct {
	Kind     Kind
	Date     string
	StreamID string
	Output   string
	Steps    []Descriptor
}

// Labels returns the step labels in execution order.
func (p Plan) Labels() []string {
	labels := make([]string, 0, len(p.Steps))
	for _, d := range p.Steps {
		labels = append(labels, d.Label)
	}
	return labels
}

// CachedFetcher retrieves a source through a keyed cache; *fetch.Cache
// satisfies it.
type CachedFetcher interface {
	Fetch(ctx context.Context, source string, key fetch.Key) (string, error)
}

// Transcoder is the set of media transforms steps depend on; *ffmpeg.Tool
// satisfies it.
type Transcoder interface {
	Trim(ctx context.Context, input, output, start, end string) error
	Fade(ctx context.Context, input, output string, spec ffmpeg.FadeSpec) error
	NormalizeAudio(ctx context.Context, input, output string, profile ffmpeg.AudioProfile) error
	NormalizeVideo(ctx context.Context, input, output string, profile ffmpeg.VideoProfile) error
	Concat(ctx context.Context, listPath, output string, video bool) error
}

// MediaInfo is the probed length of a file and whether it has a video stream.
type MediaInfo struct {
	Seconds float64
	Video   bool
}

// Prober inspects a media file.
type Prober func(ctx context.Context, path string) (MediaInfo, error)
