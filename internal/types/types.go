package types

import (
	"image"
	"time"
)

type Scene struct {
	Start      time.Duration
	End        time.Duration
	Text       string
	VisualNote string
}

func (s Scene) Duration() time.Duration { return s.End - s.Start }

type Script struct {
	Title       string
	Hook        string
	Scenes      []Scene
	Description string
	Tags        []string
}

// SourceVideo is the upstream selected_video.json record. Only VideoID and
// ThumbnailURL drive rendering; the rest is carried for logging.
type SourceVideo struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail"`
	ChannelTitle string `json:"channel_title,omitempty"`
	ViewCount    int64  `json:"view_count,omitempty"`
	Duration     string `json:"duration,omitempty"`
}

type EntryKind int

const (
	EntryIntro EntryKind = iota
	EntryThumbnailOverlay
	EntrySceneText
)

func (k EntryKind) String() string {
	switch k {
	case EntryIntro:
		return "intro"
	case EntryThumbnailOverlay:
		return "thumbnail_overlay"
	case EntrySceneText:
		return "scene_text"
	default:
		return "unknown"
	}
}

type TimelineEntry struct {
	Kind     EntryKind
	Duration time.Duration
	Text     string
}

// RasterClip is one canvas-sized still held for Duration.
type RasterClip struct {
	Kind     EntryKind
	Frame    *image.RGBA
	Duration time.Duration
}

type AudioTrack struct {
	Path     string
	Duration time.Duration
	// Trimmed marks that only the leading Duration of Path is attached.
	Trimmed bool
}

type VideoMetadata struct {
	OutputPath      string `json:"output_path"`
	OriginalVideoID string `json:"original_video_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	CaptionsPath    string `json:"captions_path,omitempty"`
}

type RenderedVideo struct {
	Path     string
	Duration time.Duration
	Metadata VideoMetadata
}
