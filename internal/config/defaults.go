package config

const (
	defaultConfigPath         = "~/.config/sermonpipe/config.toml"
	projectConfigName         = "sermonpipe.toml"
	defaultCacheDir           = "cache"
	defaultOutputDir          = "output"
	defaultLogDir             = "~/.local/share/sermonpipe/logs"
	defaultHistoryDB          = "~/.local/share/sermonpipe/history.db"
	defaultFFmpeg             = "ffmpeg"
	defaultFFprobe            = "ffprobe"
	defaultYTDLP              = "yt-dlp"
	defaultHTTPTimeoutSeconds = 300
	defaultAudioCodec         = "mp3"
	defaultAudioQuality       = "192"
	defaultMergeFormat        = "mp4"
	defaultFadeSeconds        = 2
	defaultSampleRate         = 44100
	defaultChannels           = 2
	defaultBitrate            = "192k"
	defaultLoudnorm           = "I=-16:TP=-1:LRA=11"
	defaultResolution         = "1920x1080"
	defaultFrameRate          = 30
	defaultCRF                = 16
	defaultPreset             = "ultrafast"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir:  defaultCacheDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
			YTDLP:   defaultYTDLP,
		},
		Fetch: Fetch{
			HTTPTimeoutSeconds: defaultHTTPTimeoutSeconds,
			AudioCodec:         defaultAudioCodec,
			AudioQuality:       defaultAudioQuality,
			MergeFormat:        defaultMergeFormat,
		},
		Audio: Audio{
			FadeSeconds: defaultFadeSeconds,
			SampleRate:  defaultSampleRate,
			Channels:    defaultChannels,
			Bitrate:     defaultBitrate,
			Loudnorm:    defaultLoudnorm,
		},
		Video: Video{
			FadeSeconds: defaultFadeSeconds,
			Resolution:  defaultResolution,
			FrameRate:   defaultFrameRate,
			CRF:         defaultCRF,
			Preset:      defaultPreset,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
		},
	}
}
