package config

// Paths contains cache, output, and bookkeeping locations.
type Paths struct {
	CacheDir  string `toml:"cache_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	HistoryDB string `toml:"history_db"`
}

// Tools names the external executables invoked by the pipeline.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
	YTDLP   string `toml:"ytdlp"`
}

// Fetch contains settings for remote downloads.
type Fetch struct {
	HTTPTimeoutSeconds int    `toml:"http_timeout_seconds"`
	AudioCodec         string `toml:"audio_codec"`
	AudioQuality       string `toml:"audio_quality"`
	MergeFormat        string `toml:"merge_format"`
}

// Audio is the encoding profile used for audio fades and normalization.
type Audio struct {
	FadeSeconds float64 `toml:"fade_seconds"`
	SampleRate  int     `toml:"sample_rate"`
	Channels    int     `toml:"channels"`
	Bitrate     string  `toml:"bitrate"`
	Loudnorm    string  `toml:"loudnorm"`
}

// Video is the encoding profile used for video fades and normalization.
type Video struct {
	FadeSeconds float64 `toml:"fade_seconds"`
	Resolution  string  `toml:"resolution"`
	FrameRate   int     `toml:"frame_rate"`
	CRF         int     `toml:"crf"`
	Preset      string  `toml:"preset"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// History toggles the SQLite run history.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Config encapsulates all application settings for sermonpipe.
//
// Configuration sections:
//   - Paths: cache root, output root, log and history locations
//   - Tools: ffmpeg, ffprobe and yt-dlp executables
//   - Fetch: HTTP timeout and yt-dlp extraction options
//   - Audio / Video: encoding profiles for fades and normalization
//   - Logging: log format and level
//   - History: run history toggle
type Config struct {
	Paths   Paths   `toml:"paths"`
	Tools   Tools   `toml:"tools"`
	Fetch   Fetch   `toml:"fetch"`
	Audio   Audio   `toml:"audio"`
	Video   Video   `toml:"video"`
	Logging Logging `toml:"logging"`
	History History `toml:"history"`
}
