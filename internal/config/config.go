// Package config holds the render profile: canvas, encoder settings, text
// styles and timeline rules. A Profile is a plain value; every stage gets its
// own copy so tests can render at small sizes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Profile struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
	// Threads bounds both the encoder threads and concurrent frame writes.
	Threads int `yaml:"threads"`

	VideoCodec   string `yaml:"video_codec"`
	AudioCodec   string `yaml:"audio_codec"`
	AudioBitrate string `yaml:"audio_bitrate"`
	Preset       string `yaml:"preset"`
	PixelFormat  string `yaml:"pixel_format"`
	Extension    string `yaml:"extension"`

	Intro   TextStyle `yaml:"intro"`
	Overlay TextStyle `yaml:"overlay"`
	Scene   TextStyle `yaml:"scene"`

	Timeline TimelineRules `yaml:"timeline"`

	// Fonts are tried in order before the bundled faces.
	Fonts []string `yaml:"fonts"`

	Captions bool `yaml:"captions"`
}

type TextStyle struct {
	FontSize     float64 `yaml:"font_size"`
	LineGap      int     `yaml:"line_gap"`
	Margin       int     `yaml:"margin"`
	Color        Color   `yaml:"color"`
	Background   Color   `yaml:"background"`
	ShadowOffset int     `yaml:"shadow_offset"`
	ShadowColor  Color   `yaml:"shadow_color"`
}

type TimelineRules struct {
	IntroSeconds   int    `yaml:"intro_seconds"`
	OverlaySeconds int    `yaml:"overlay_seconds"`
	OverlayCaption string `yaml:"overlay_caption"`
	// HookConsumesFirstScene drops scenes[0] because upstream scripts repeat
	// the hook as their first scene.
	HookConsumesFirstScene bool `yaml:"hook_consumes_first_scene"`
}

var DefaultFonts = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/Library/Fonts/Arial Bold.ttf",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
}

func Default() Profile {
	return Profile{
		Width:        1080,
		Height:       1920,
		FPS:          30,
		Threads:      4,
		VideoCodec:   "libx264",
		AudioCodec:   "aac",
		AudioBitrate: "192k",
		Preset:       "medium",
		PixelFormat:  "yuv420p",
		Extension:    "mp4",
		Intro:        defaultStyle(70, "yellow", "#1a1a1a"),
		Overlay:      defaultStyle(80, "white", "transparent"),
		Scene:        defaultStyle(55, "white", "#0f0f0f"),
		Timeline: TimelineRules{
			IntroSeconds:           3,
			OverlaySeconds:         5,
			OverlayCaption:         "Why did this video go viral?",
			HookConsumesFirstScene: true,
		},
		Fonts:    append([]string(nil), DefaultFonts...),
		Captions: true,
	}
}

func defaultStyle(size float64, fg, bg string) TextStyle {
	return TextStyle{
		FontSize:     size,
		LineGap:      20,
		Margin:       100,
		Color:        MustParseColor(fg),
		Background:   MustParseColor(bg),
		ShadowOffset: 3,
		ShadowColor:  MustParseColor("black"),
	}
}

// Load overlays the YAML file at path onto Default. An empty path returns
// Default unchanged.
func Load(path string) (Profile, error) {
	p := Default()
	if path == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

func (p Profile) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("canvas must be > 0, got %dx%d", p.Width, p.Height)
	}
	if p.Width%2 != 0 || p.Height%2 != 0 {
		return fmt.Errorf("canvas must have even dimensions, got %dx%d", p.Width, p.Height)
	}
	if p.FPS <= 0 {
		return fmt.Errorf("fps must be > 0")
	}
	if p.Threads <= 0 {
		return fmt.Errorf("threads must be > 0")
	}
	if p.VideoCodec == "" || p.AudioCodec == "" {
		return fmt.Errorf("video and audio codecs are required")
	}
	if strings.Trim(p.Extension, ".") == "" {
		return fmt.Errorf("extension is required")
	}
	for name, s := range map[string]TextStyle{"intro": p.Intro, "overlay": p.Overlay, "scene": p.Scene} {
		if s.FontSize <= 0 {
			return fmt.Errorf("%s: font size must be > 0", name)
		}
		if s.Margin < 0 || s.Margin >= p.Width {
			return fmt.Errorf("%s: margin must be in [0, width)", name)
		}
		if s.LineGap < 0 || s.ShadowOffset < 0 {
			return fmt.Errorf("%s: line gap and shadow offset must be >= 0", name)
		}
	}
	if p.Timeline.IntroSeconds <= 0 || p.Timeline.OverlaySeconds <= 0 {
		return fmt.Errorf("timeline: intro and overlay seconds must be > 0")
	}
	return nil
}
