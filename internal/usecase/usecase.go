package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/forPelevin/viralcut/internal/config"
	"github.com/forPelevin/viralcut/internal/domain/audiosync"
	"github.com/forPelevin/viralcut/internal/domain/clips"
	"github.com/forPelevin/viralcut/internal/domain/subtitles"
	"github.com/forPelevin/viralcut/internal/domain/textrender"
	"github.com/forPelevin/viralcut/internal/domain/timeline"
	"github.com/forPelevin/viralcut/internal/ports"
	"github.com/forPelevin/viralcut/internal/render"
	"github.com/forPelevin/viralcut/internal/types"
)

type Deps struct {
	Media      ports.MediaTool
	Thumbnails ports.ThumbnailFetcher

	// Fonts overrides the profile's font chain.
	Fonts []textrender.FontSource
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Profile   config.Profile
	Script    types.Script
	Source    types.SourceVideo
	Narration string

	WorkDir      string
	OutPath      string
	MetadataPath string
	CaptionsPath string

	Logf func(format string, args ...any)
}

type Result struct {
	Video    types.RenderedVideo
	Timeline []types.TimelineEntry
	Audio    types.AudioTrack
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	// script and narration first: bad inputs must fail before any network or
	// render work
	entries, err := timeline.Build(in.Script, in.Profile.Timeline)
	if err != nil {
		return Result{}, err
	}
	visual := timeline.Total(entries)
	logf("timeline: %d entries, %s", len(entries), visual)

	narration, err := u.probeNarration(ctx, in.Narration)
	if err != nil {
		return Result{}, err
	}
	audio, err := audiosync.Attach(visual, types.AudioTrack{Path: in.Narration, Duration: narration})
	if err != nil {
		return Result{}, err
	}
	if gap := audiosync.Silence(visual, audio); gap > 0 {
		logf("narration %s is shorter than video, %s without narration", narration.Round(time.Millisecond), gap)
	}

	logf("fetching thumbnail")
	thumb, err := u.d.Thumbnails.Fetch(ctx, in.Source.ThumbnailURL)
	if err != nil {
		return Result{}, err
	}

	fonts := u.d.Fonts
	if len(fonts) == 0 {
		fonts = textrender.Chain(in.Profile.Fonts...)
	}
	text := textrender.New(in.Profile.Width, in.Profile.Height, fonts, logf)
	rasters, err := clips.New(in.Profile, text).Assemble(entries, thumb)
	if err != nil {
		return Result{}, err
	}

	target := render.Target{
		WorkDir:      in.WorkDir,
		OutPath:      in.OutPath,
		MetadataPath: in.MetadataPath,
		VideoID:      in.Source.VideoID,
		Title:        in.Script.Title,
		Description:  in.Script.Description,
	}
	if in.Profile.Captions && in.CaptionsPath != "" {
		target.Captions = subtitles.RenderSRT(entries)
		target.CaptionsPath = in.CaptionsPath
	}

	logf("rendering %s", in.OutPath)
	video, err := render.New(in.Profile, u.d.Media, logf).Render(ctx, rasters, audio, target)
	if err != nil {
		return Result{}, err
	}
	return Result{Video: video, Timeline: entries, Audio: audio}, nil
}

// probeNarration treats an absent or undecodable narration as missing input.
// Only a missing probe binary is reported as is.
func (u Usecase) probeNarration(ctx context.Context, path string) (time.Duration, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("%w: narration: %v", types.ErrInputMissing, err)
	}
	d, err := u.d.Media.ProbeDuration(ctx, path)
	if errors.Is(err, exec.ErrNotFound) {
		return 0, fmt.Errorf("probe narration: %w", err)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: narration %s: %v", types.ErrInputMissing, path, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: narration %s has no duration", types.ErrInputMissing, path)
	}
	return d, nil
}
