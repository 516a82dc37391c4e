package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sermonpipe/internal/config"
	"sermonpipe/internal/fetch"
	"sermonpipe/internal/logging"
	"sermonpipe/internal/media/ffmpeg"
	"sermonpipe/internal/media/ffprobe"
	"sermonpipe/internal/pipeline"
	"sermonpipe/internal/pipelineconfig"
	"sermonpipe/internal/services"
)

type commandContext struct {
	settingsFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(settingsFlag *string) *commandContext {
	return &commandContext{settingsFlag: settingsFlag}
}

// loadDotEnv reads ./.env into the process environment; a missing file is fine.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (c *commandContext) settingsPath() string {
	if c.settingsFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.settingsFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.settingsPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// runContext tags ctx with a fresh run ID for log correlation.
func runContext(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return services.WithRunID(ctx, id), id
}

// newRunner wires the production fetchers, caches and tools from settings.
func newRunner(cfg *config.Config, logger *slog.Logger, observer pipeline.Observer) *pipeline.Runner {
	engine := fetch.NewYTDLP(cfg.Tools.YTDLP)
	audioFetcher := fetch.NewVideoFetcher(engine, fetch.VideoOptions{
		Mode:         fetch.ModeAudio,
		AudioFormat:  cfg.Fetch.AudioCodec,
		AudioQuality: cfg.Fetch.AudioQuality,
	}, logger)
	videoFetcher := fetch.NewVideoFetcher(engine, fetch.VideoOptions{
		Mode:        fetch.ModeFull,
		MergeFormat: cfg.Fetch.MergeFormat,
	}, logger)
	objects := fetch.NewHTTPFetcher(time.Duration(cfg.Fetch.HTTPTimeoutSeconds)*time.Second, logger)

	probeBinary := cfg.Tools.FFprobe
	return &pipeline.Runner{
		Assembler: &pipeline.Assembler{
			Settings:   cfg,
			AudioCache: fetch.NewResolvingCache(cfg.CacheCategoryDir(string(pipeline.KindAudio)), audioFetcher, logger),
			VideoCache: fetch.NewResolvingCache(cfg.CacheCategoryDir(string(pipeline.KindVideo)), videoFetcher, logger),
			S3Cache:    fetch.NewCache(cfg.CacheCategoryDir("s3"), objects, logger),
			Tool:       ffmpeg.New(cfg.Tools.FFmpeg, logger),
			Probe: func(ctx context.Context, path string) (pipeline.MediaInfo, error) {
				summary, err := ffprobe.Summarize(ctx, probeBinary, path)
				return pipeline.MediaInfo{Seconds: summary.Seconds, Video: summary.Video}, err
			},
			Logger: logger,
		},
		Dates:    audioFetcher,
		Observer: observer,
		Logger:   logger,
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// positionalPaths returns the optional [config] [schema] arguments with
// their defaults applied.
func positionalPaths(args []string) (string, string) {
	configPath := pipelineconfig.DefaultConfigPath
	schemaPath := pipelineconfig.DefaultSchemaPath
	if len(args) > 0 {
		configPath = args[0]
	}
	if len(args) > 1 {
		schemaPath = args[1]
	}
	return configPath, schemaPath
}
