package pipeline

import (
	"fmt"
	"strings"

	"sermonpipe/internal/services"
)

// Kind selects the audio or video variant of the pipeline.
type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// Kinds lists every kind in the order a combined run processes them.
var Kinds = []Kind{KindAudio, KindVideo}

// ParseKind converts user input into a Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindAudio:
		return KindAudio, nil
	case KindVideo:
		return KindVideo, nil
	default:
		return "", services.Wrap(services.ErrConfiguration, "assemble", "parse kind",
			fmt.Sprintf("unknown kind %q (want audio or video)", value), nil)
	}
}

// profile captures the per-kind naming constants.
type profile struct {
	introName     string
	outroName     string
	mainName      string
	ext           string
	defaultStream string
	video         bool
}

func (k Kind) profile() profile {
	if k == KindVideo {
		return profile{
			introName:     "video_intro.mp4",
			outroName:     "video_outro.mp4",
			mainName:      "video.%(ext)s",
			ext:           "mp4",
			defaultStream: "default-video-stream",
			video:         true,
		}
	}
	return profile{
		introName:     "audio_intro.wav",
		outroName:     "audio_outro.wav",
		mainName:      "audio.%(ext)s",
		ext:           "wav",
		defaultStream: "default-audio-stream",
	}
}

// Extension returns the published file extension for k.
func (k Kind) Extension() string {
	return k.profile().ext
}
