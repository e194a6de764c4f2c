package clips

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/forPelevin/viralcut/internal/config"
	"github.com/forPelevin/viralcut/internal/domain/textrender"
	"github.com/forPelevin/viralcut/internal/types"
)

var ErrNoThumbnail = errors.New("thumbnail overlay entry without a thumbnail image")

// Assembler turns timeline entries into canvas-sized still clips.
type Assembler struct {
	text    *textrender.Renderer
	intro   textrender.Style
	overlay textrender.Style
	scene   textrender.Style
}

func New(p config.Profile, text *textrender.Renderer) *Assembler {
	return &Assembler{
		text:    text,
		intro:   textrender.StyleFrom(p.Intro),
		overlay: textrender.StyleFrom(p.Overlay),
		scene:   textrender.StyleFrom(p.Scene),
	}
}

// Assemble renders one clip per entry, in order, keeping each entry's
// duration as is.
func (a *Assembler) Assemble(entries []types.TimelineEntry, thumbnail image.Image) ([]types.RasterClip, error) {
	out := make([]types.RasterClip, 0, len(entries))
	for i, e := range entries {
		var frame *image.RGBA
		switch e.Kind {
		case types.EntryIntro:
			frame = a.text.Render(e.Text, a.intro)
		case types.EntryThumbnailOverlay:
			if thumbnail == nil {
				return nil, fmt.Errorf("entry %d: %w", i, ErrNoThumbnail)
			}
			frame = a.Overlay(thumbnail, e.Text)
		case types.EntrySceneText:
			frame = a.text.Render(e.Text, a.scene)
		default:
			return nil, fmt.Errorf("entry %d: unknown kind %d", i, e.Kind)
		}
		out = append(out, types.RasterClip{Kind: e.Kind, Frame: frame, Duration: e.Duration})
	}
	return out, nil
}

// Overlay stretches the thumbnail over the whole canvas and composites the
// caption layer on top; the image shows through wherever the text is
// transparent.
func (a *Assembler) Overlay(thumbnail image.Image, caption string) *image.RGBA {
	dst := image.NewRGBA(a.text.Bounds())
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), thumbnail, thumbnail.Bounds(), xdraw.Src, nil)
	layer := a.text.Render(caption, a.overlay)
	xdraw.Draw(dst, dst.Bounds(), layer, image.Point{}, xdraw.Over)
	return dst
}
