package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.FadeSeconds < 0 {
		return errors.New("audio.fade_seconds must be zero or positive")
	}
	if c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	if c.Audio.Channels <= 0 {
		return errors.New("audio.channels must be positive")
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.FadeSeconds < 0 {
		return errors.New("video.fade_seconds must be zero or positive")
	}
	if c.Video.FrameRate <= 0 {
		return errors.New("video.frame_rate must be positive")
	}
	if c.Video.CRF < 0 || c.Video.CRF > 51 {
		return errors.New("video.crf must be between 0 and 51")
	}
	width, height, ok := strings.Cut(c.Video.Resolution, "x")
	if !ok || !positiveInt(width) || !positiveInt(height) {
		return fmt.Errorf("video.resolution %q must look like 1920x1080", c.Video.Resolution)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

func positiveInt(value string) bool {
	n, err := strconv.Atoi(value)
	return err == nil && n > 0
}
