package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	envCacheDir  = "SERMONPIPE_CACHE_DIR"
	envOutputDir = "SERMONPIPE_OUTPUT_DIR"
	envLogLevel  = "SERMONPIPE_LOG_LEVEL"
)

func (c *Config) normalize() error {
	c.applyEnvOverrides()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeFetch()
	c.normalizeProfiles()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnvOverrides() {
	if value, ok := lookupEnv(envCacheDir); ok {
		c.Paths.CacheDir = value
	}
	if value, ok := lookupEnv(envOutputDir); ok {
		c.Paths.OutputDir = value
	}
	if value, ok := lookupEnv(envLogLevel); ok {
		c.Logging.Level = value
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = ExpandPath(strings.TrimSpace(c.Paths.CacheDir)); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = ExpandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	// An empty log_dir disables the log file.
	if c.Paths.LogDir, err = ExpandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = ExpandPath(strings.TrimSpace(c.Paths.HistoryDB)); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = trimOr(c.Tools.FFmpeg, defaultFFmpeg)
	c.Tools.FFprobe = trimOr(c.Tools.FFprobe, defaultFFprobe)
	c.Tools.YTDLP = trimOr(c.Tools.YTDLP, defaultYTDLP)
}

func (c *Config) normalizeFetch() {
	if c.Fetch.HTTPTimeoutSeconds <= 0 {
		c.Fetch.HTTPTimeoutSeconds = defaultHTTPTimeoutSeconds
	}
	c.Fetch.AudioCodec = strings.ToLower(trimOr(c.Fetch.AudioCodec, defaultAudioCodec))
	c.Fetch.AudioQuality = trimOr(c.Fetch.AudioQuality, defaultAudioQuality)
	c.Fetch.MergeFormat = strings.ToLower(trimOr(c.Fetch.MergeFormat, defaultMergeFormat))
}

func (c *Config) normalizeProfiles() {
	c.Audio.Bitrate = trimOr(c.Audio.Bitrate, defaultBitrate)
	c.Audio.Loudnorm = trimOr(c.Audio.Loudnorm, defaultLoudnorm)
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = defaultSampleRate
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = defaultChannels
	}
	c.Video.Resolution = strings.ToLower(trimOr(c.Video.Resolution, defaultResolution))
	c.Video.Preset = trimOr(c.Video.Preset, defaultPreset)
	if c.Video.FrameRate == 0 {
		c.Video.FrameRate = defaultFrameRate
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
