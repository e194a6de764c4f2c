//go:build integration

package itest

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			break
		}
		wd = parent
	}
	return "", errors.New("could not locate go.mod")
}

const fixtureScript = `{
  "title": "Why this clip exploded",
  "hook": "Nobody expected this",
  "scenes": [
    {"timing": "0-3", "text": "Nobody expected this", "visual_note": "zoom"},
    {"timing": "3-8", "text": "The first three seconds carry the whole video"},
    {"timing": "8-15", "text": "Then the payoff lands right before people scroll away"}
  ],
  "description": "A short breakdown of a viral video.",
  "tags": ["shorts", "viral"]
}`

// smallProfile keeps encoding fast; layout rules stay the defaults.
const smallProfile = `width: 270
height: 480
preset: ultrafast
intro: {font_size: 18, margin: 24}
overlay: {font_size: 20, margin: 24}
scene: {font_size: 14, margin: 24}
`

type fixture struct {
	cache     string
	out       string
	profile   string
	narration string
}

// newFixture lays out a cache dir the way the upstream stages leave it, with
// a local PNG thumbnail and a sine narration of the given length.
func newFixture(t *testing.T, script string, narration float64) fixture {
	t.Helper()

	tmp := t.TempDir()
	f := fixture{
		cache:     filepath.Join(tmp, "cache"),
		out:       filepath.Join(tmp, "processed"),
		profile:   filepath.Join(tmp, "profile.yaml"),
		narration: filepath.Join(tmp, "cache", "voiceover.m4a"),
	}
	if err := os.MkdirAll(f.cache, 0o755); err != nil {
		t.Fatalf("mkdir cache: %v", err)
	}

	thumb := filepath.Join(f.cache, "thumb.png")
	writeThumbnail(t, thumb)
	source := fmt.Sprintf(`{"video_id": "itest_vid-1", "title": "Original", "thumbnail": %q}`, thumb)
	writeFile(t, filepath.Join(f.cache, "selected_video.json"), source)
	writeFile(t, filepath.Join(f.cache, "script.json"), script)
	writeFile(t, f.profile, smallProfile)

	if narration > 0 {
		cmd := exec.Command("ffmpeg",
			"-y",
			"-f", "lavfi",
			"-i", fmt.Sprintf("sine=frequency=440:duration=%g", narration),
			"-c:a", "aac",
			f.narration,
		)
		if b, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("ffmpeg narration fixture failed: %v\n%s", err, string(b))
		}
	}
	return f
}

func writeThumbnail(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 320, 180))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0x20, 0x60, 0xc0, 0xff}), image.Point{}, draw.Src)
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("create thumbnail: %v", err)
	}
	defer fh.Close()
	if err := png.Encode(fh, img); err != nil {
		t.Fatalf("encode thumbnail: %v", err)
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
