package ports

import (
	"context"
	"image"
	"time"
)

type MediaTool interface {
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)
	TranscodeAudio(ctx context.Context, job AudioJob) error
	EncodeStills(ctx context.Context, job EncodeJob) error
}

type ThumbnailFetcher interface {
	Fetch(ctx context.Context, ref string) (image.Image, error)
}

// AudioJob re-encodes In to Out. A positive Limit keeps only the first
// Limit of the input.
type AudioJob struct {
	In      string
	Out     string
	Limit   time.Duration
	Codec   string
	Bitrate string
}

// EncodeJob concatenates still images, each held for its duration, into one
// video and muxes Audio (if set) alongside.
type EncodeJob struct {
	Stills []Still
	Audio  string
	Out    string

	Width, Height int
	FPS           int
	Threads       int
	VideoCodec    string
	AudioCodec    string
	AudioBitrate  string
	Preset        string
	PixelFormat   string
}

type Still struct {
	Path     string
	Duration time.Duration
}
