package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValidShortsProfile(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.Equal(t, 1080, p.Width)
	assert.Equal(t, 1920, p.Height)
	assert.Equal(t, 30, p.FPS)
	assert.Equal(t, 3, p.Timeline.IntroSeconds)
	assert.Equal(t, 5, p.Timeline.OverlaySeconds)
	assert.True(t, p.Timeline.HookConsumesFirstScene)
	assert.Equal(t, uint8(0), p.Overlay.Background.A, "overlay text layer must be transparent")
}

func TestLoad_OverlaysYAMLOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
width: 270
height: 480
scene:
  font_size: 20
  color: "#ff000080"
timeline:
  overlay_caption: "what happened here?"
`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 270, p.Width)
	assert.Equal(t, 480, p.Height)
	assert.Equal(t, 30, p.FPS, "unset fields keep defaults")
	assert.Equal(t, 20.0, p.Scene.FontSize)
	assert.Equal(t, color.RGBA{R: 0x80, A: 0x80}, p.Scene.Color.RGBA)
	assert.Equal(t, "what happened here?", p.Timeline.OverlayCaption)
	assert.Equal(t, 3, p.Timeline.IntroSeconds)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown field": "widht: 10\n",
		"bad color":     "intro:\n  color: \"#zzzzzz\"\n",
		"odd canvas":    "width: 101\n",
		"zero fps":      "fps: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#1a1a1a", color.RGBA{0x1a, 0x1a, 0x1a, 0xff}},
		{"yellow", color.RGBA{0xff, 0xff, 0x00, 0xff}},
		{"transparent", color.RGBA{}},
		{" White ", color.RGBA{0xff, 0xff, 0xff, 0xff}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.RGBA, tt.in)
	}

	for _, bad := range []string{"", "#123", "notacolor"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
