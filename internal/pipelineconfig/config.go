package pipelineconfig

import "strings"

const (
	// DefaultConfigPath is the pipeline configuration used when none is given.
	DefaultConfigPath = "config/pipeline_config.json"
	// DefaultSchemaPath is the schema used when none is given. When the file
	// is absent the embedded copy is used instead.
	DefaultSchemaPath = "config/pipeline_schema.json"
)

// Trim is an HH:MM:SS cut window.
type Trim struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Media holds the per-kind options of the audio and video blocks.
type Media struct {
	IntroURL       string `json:"intro_url,omitempty"`
	OutroURL       string `json:"outro_url,omitempty"`
	ManualFilePath string `json:"manual_file_path,omitempty"`
	Trim           *Trim  `json:"trim,omitempty"`
}

// HasIntro reports whether an intro clip is configured.
func (m Media) HasIntro() bool { return strings.TrimSpace(m.IntroURL) != "" }

// HasOutro reports whether an outro clip is configured.
func (m Media) HasOutro() bool { return strings.TrimSpace(m.OutroURL) != "" }

// Config is a validated pipeline configuration document.
type Config struct {
	YouTubeURL     string `json:"youtube_url,omitempty"`
	StreamID       string `json:"stream_id,omitempty"`
	ManualDownload bool   `json:"manual_download,omitempty"`
	Audio          *Media `json:"audio,omitempty"`
	Video          *Media `json:"video,omitempty"`
}

// Media returns the block for kind ("audio" or "video"); an absent block is
// the zero value.
func (c Config) Media(kind string) Media {
	var block *Media
	switch kind {
	case "audio":
		block = c.Audio
	case "video":
		block = c.Video
	}
	if block == nil {
		return Media{}
	}
	return *block
}
