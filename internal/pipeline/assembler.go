package pipeline

import (
	"log/slog"
	"path/filepath"
	"strings"

	"sermonpipe/internal/config"
	"sermonpipe/internal/fetch"
	"sermonpipe/internal/logging"
	"sermonpipe/internal/media/ffmpeg"
	"sermonpipe/internal/pipelineconfig"
	"sermonpipe/internal/services"
)

// Assembler turns a pipeline configuration into an ordered Plan. Build does
// no I/O; the caches and tools are only captured by the steps it returns.
type Assembler struct {
	Settings   *config.Config
	AudioCache CachedFetcher
	VideoCache CachedFetcher
	S3Cache    CachedFetcher
	Tool       Transcoder
	Probe      Prober
	Logger     *slog.Logger
}

// Build assembles the plan for kind using date as the cache and output key.
func (a *Assembler) Build(kind Kind, cfg *pipelineconfig.Config, date string) (Plan, error) {
	if a.Settings == nil {
		return Plan{}, services.Wrap(services.ErrConfiguration, "assemble", "settings", "settings not provided", nil)
	}
	if cfg == nil {
		return Plan{}, services.Wrap(services.ErrConfiguration, "assemble", "pipeline config", "pipeline config not provided", nil)
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return Plan{}, err
	}

	prof := kind.profile()
	media := cfg.Media(string(kind))
	streamID := strings.TrimSpace(cfg.StreamID)
	if streamID == "" {
		streamID = prof.defaultStream
	}
	logger := logging.NewComponentLogger(a.Logger, "pipeline")
	merging := media.HasIntro() && media.HasOutro()

	plan := Plan{
		Kind:     kind,
		Date:     date,
		StreamID: streamID,
		Output:   filepath.Join(a.Settings.Paths.OutputDir, streamID, date+"."+prof.ext),
	}
	add := func(label string, step Step) {
		plan.Steps = append(plan.Steps, Descriptor{Label: label, Step: step})
	}

	if media.HasIntro() {
		add("Download intro", &DownloadStep{
			Cache:  a.S3Cache,
			Source: media.IntroURL,
			Key:    fetch.Key{Filename: prof.introName},
			Slot:   SlotIntro,
			Logger: logger,
		})
	}
	if media.HasOutro() {
		add("Download outro", &DownloadStep{
			Cache:  a.S3Cache,
			Source: media.OutroURL,
			Key:    fetch.Key{Filename: prof.outroName},
			Slot:   SlotOutro,
			Logger: logger,
		})
	}

	if cfg.ManualDownload {
		add("Load manual file", &ManualLoadStep{Path: media.ManualFilePath, Logger: logger})
	} else {
		add("Download main", &DownloadStep{
			Cache:  a.platformCache(kind),
			Source: cfg.YouTubeURL,
			Key:    fetch.Key{Date: date, StreamID: streamID, Filename: prof.mainName},
			Slot:   SlotMain,
			Logger: logger,
		})
	}

	if media.Trim != nil {
		add("Trim", &TrimStep{
			Start:  media.Trim.StartTime,
			End:    media.Trim.EndTime,
			Tool:   a.Tool,
			Logger: logger,
		})
	}

	fade := &FadeStep{
		Video:        prof.video,
		AudioBitrate: a.Settings.Audio.Bitrate,
		CRF:          a.Settings.Video.CRF,
		Preset:       a.Settings.Video.Preset,
		Tool:         a.Tool,
		Probe:        a.Probe,
		Logger:       logger,
	}
	if prof.video {
		fade.Seconds = a.Settings.Video.FadeSeconds
	} else {
		fade.Seconds = a.Settings.Audio.FadeSeconds
	}
	if !merging {
		// Without a merge the faded file is published as-is, so it must
		// already be in the output container.
		fade.Format = prof.ext
	}
	add("Fade in/out", fade)

	if merging {
		add("Merge", &MergeStep{
			Format:       prof.ext,
			Video:        prof.video,
			Audio:        a.audioProfile(prof),
			VideoProfile: a.videoProfile(),
			Tool:         a.Tool,
			Logger:       logger,
		})
	}

	add("Move to output", &MoveStep{Source: SlotActive, Destination: plan.Output, Logger: logger})
	add("Cleanup", &CleanupStep{Logger: logger})
	return plan, nil
}

func (a *Assembler) platformCache(kind Kind) CachedFetcher {
	if kind == KindVideo {
		return a.VideoCache
	}
	return a.AudioCache
}

func (a *Assembler) audioProfile(prof profile) ffmpeg.AudioProfile {
	audio := a.Settings.Audio
	return ffmpeg.AudioProfile{
		Codec:      ffmpeg.AudioCodecFor(prof.ext),
		SampleRate: audio.SampleRate,
		Channels:   audio.Channels,
		Bitrate:    audio.Bitrate,
		Loudnorm:   audio.Loudnorm,
	}
}

func (a *Assembler) videoProfile() ffmpeg.VideoProfile {
	video := a.Settings.Video
	return ffmpeg.VideoProfile{
		Resolution: video.Resolution,
		FrameRate:  video.FrameRate,
		CRF:        video.CRF,
		Preset:     video.Preset,
		Audio: ffmpeg.AudioProfile{
			Codec:      "aac",
			SampleRate: a.Settings.Audio.SampleRate,
			Channels:   a.Settings.Audio.Channels,
			Bitrate:    a.Settings.Audio.Bitrate,
		},
	}
}
