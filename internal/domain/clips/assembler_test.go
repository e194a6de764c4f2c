package clips

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/forPelevin/viralcut/internal/config"
	"github.com/forPelevin/viralcut/internal/domain/textrender"
	"github.com/forPelevin/viralcut/internal/types"
)

func smallProfile() config.Profile {
	p := config.Default()
	p.Width, p.Height = 216, 384
	p.Intro.FontSize, p.Overlay.FontSize, p.Scene.FontSize = 14, 16, 11
	p.Intro.Margin, p.Overlay.Margin, p.Scene.Margin = 20, 20, 20
	return p
}

func newAssembler(p config.Profile) *Assembler {
	return New(p, textrender.New(p.Width, p.Height, []textrender.FontSource{textrender.BundledBold()}, nil))
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestAssemble_OrderKindsAndDurations(t *testing.T) {
	p := smallProfile()
	entries := []types.TimelineEntry{
		{Kind: types.EntryIntro, Duration: 3 * time.Second, Text: "hook"},
		{Kind: types.EntryThumbnailOverlay, Duration: 5 * time.Second, Text: "why?"},
		{Kind: types.EntrySceneText, Duration: 5 * time.Second, Text: "A"},
		{Kind: types.EntrySceneText, Duration: 7 * time.Second, Text: ""},
	}

	clips, err := newAssembler(p).Assemble(entries, solid(64, 36, color.RGBA{0, 0, 0xff, 0xff}))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(clips) != len(entries) {
		t.Fatalf("expected %d clips, got %d", len(entries), len(clips))
	}
	for i, c := range clips {
		if c.Kind != entries[i].Kind || c.Duration != entries[i].Duration {
			t.Fatalf("clip %d = {%s %s}, want {%s %s}", i, c.Kind, c.Duration, entries[i].Kind, entries[i].Duration)
		}
		if c.Frame.Bounds() != image.Rect(0, 0, p.Width, p.Height) {
			t.Fatalf("clip %d has bounds %v", i, c.Frame.Bounds())
		}
	}

	introBG := p.Intro.Background.RGBA
	if got := clips[0].Frame.RGBAAt(0, 0); got != introBG {
		t.Fatalf("intro background = %v, want %v", got, introBG)
	}
	sceneBG := p.Scene.Background.RGBA
	if got := clips[3].Frame.RGBAAt(p.Width/2, p.Height/2); got != sceneBG {
		t.Fatalf("blank scene center = %v, want background %v", got, sceneBG)
	}
}

func TestOverlay_ThumbnailShowsThroughTextLayer(t *testing.T) {
	p := smallProfile()
	blue := color.RGBA{0, 0, 0xff, 0xff}
	frame := newAssembler(p).Overlay(solid(48, 27, blue), "why did this go viral?")

	if got := frame.RGBAAt(0, 0); got != blue {
		t.Fatalf("corner should be thumbnail, got %v", got)
	}
	if got := frame.RGBAAt(p.Width-1, p.Height-1); got != blue {
		t.Fatalf("corner should be thumbnail, got %v", got)
	}
	covered := 0
	b := frame.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if frame.RGBAAt(x, y) != blue {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Fatalf("expected caption pixels over the thumbnail")
	}
	if covered > b.Dx()*b.Dy()/2 {
		t.Fatalf("caption covers too much of the thumbnail: %d px", covered)
	}
}

func TestAssemble_OverlayWithoutThumbnail(t *testing.T) {
	_, err := newAssembler(smallProfile()).Assemble([]types.TimelineEntry{
		{Kind: types.EntryThumbnailOverlay, Duration: 5 * time.Second},
	}, nil)
	if !errors.Is(err, ErrNoThumbnail) {
		t.Fatalf("expected ErrNoThumbnail, got %v", err)
	}
}
