// Package textrender rasterizes wrapped, centered text onto a fixed canvas.
package textrender

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/forPelevin/viralcut/internal/config"
)

type Style struct {
	FontSize float64
	LineGap  int
	// Margin is subtracted from MaxWidth to get the wrap limit.
	Margin int
	// MaxWidth defaults to the canvas width when zero.
	MaxWidth int

	Color        color.Color
	Background   color.Color
	ShadowColor  color.Color
	ShadowOffset int
}

func StyleFrom(s config.TextStyle) Style {
	return Style{
		FontSize:     s.FontSize,
		LineGap:      s.LineGap,
		Margin:       s.Margin,
		Color:        s.Color.RGBA,
		Background:   s.Background.RGBA,
		ShadowColor:  s.ShadowColor.RGBA,
		ShadowOffset: s.ShadowOffset,
	}
}

// Line is one laid-out row. X and Y are the top-left of the row on the canvas.
type Line struct {
	Text  string
	X, Y  int
	Width int
}

// Renderer is not safe for concurrent use; faces are cached per size.
type Renderer struct {
	width, height int
	sources       []FontSource
	faces         map[float64]font.Face
	logf          func(format string, args ...any)
}

func New(width, height int, sources []FontSource, logf func(format string, args ...any)) *Renderer {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if len(sources) == 0 {
		sources = Chain()
	}
	return &Renderer{
		width:   width,
		height:  height,
		sources: sources,
		faces:   make(map[float64]font.Face),
		logf:    logf,
	}
}

func (r *Renderer) Bounds() image.Rectangle { return image.Rect(0, 0, r.width, r.height) }

// Face resolves a face for size through the source chain. A missing font is
// logged and the next source is tried; the builtin face is the last resort.
func (r *Renderer) Face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	var face font.Face
	for _, src := range r.sources {
		f, err := src.Face(size)
		if err != nil {
			r.logf("font %s unavailable: %v", src.Name(), err)
			continue
		}
		face = f
		break
	}
	if face == nil {
		r.logf("no usable font in chain, falling back to builtin")
		face, _ = Builtin().Face(size)
	}
	r.faces[size] = face
	return face
}

// Layout wraps text and positions every line. Empty or whitespace-only text
// yields no lines.
func (r *Renderer) Layout(text string, st Style) []Line {
	face := r.Face(st.FontSize)
	measure := func(s string) int { return font.MeasureString(face, s).Ceil() }

	maxWidth := st.MaxWidth
	if maxWidth <= 0 {
		maxWidth = r.width
	}
	rows := Wrap(text, maxWidth-st.Margin, measure)
	if len(rows) == 0 {
		return nil
	}

	lineHeight := int(math.Round(st.FontSize)) + st.LineGap
	top := (r.height - len(rows)*lineHeight) / 2
	out := make([]Line, 0, len(rows))
	for i, row := range rows {
		w := measure(row)
		out = append(out, Line{
			Text:  row,
			X:     (r.width - w) / 2,
			Y:     top + i*lineHeight,
			Width: w,
		})
	}
	return out
}

// Render draws text onto a fresh canvas filled with st.Background. Each line
// gets a shadow copy at +ShadowOffset before the foreground pass.
func (r *Renderer) Render(text string, st Style) *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	bg := st.Background
	if bg == nil {
		bg = color.Transparent
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	lines := r.Layout(text, st)
	if len(lines) == 0 {
		return img
	}

	face := r.Face(st.FontSize)
	ascent := face.Metrics().Ascent.Ceil()
	fg := st.Color
	if fg == nil {
		fg = color.White
	}
	shadow := st.ShadowColor
	if shadow == nil {
		shadow = color.Black
	}
	for _, ln := range lines {
		baseline := ln.Y + ascent
		if st.ShadowOffset > 0 {
			drawString(img, face, ln.Text, ln.X+st.ShadowOffset, baseline+st.ShadowOffset, shadow)
		}
		drawString(img, face, ln.Text, ln.X, baseline, fg)
	}
	return img
}

func drawString(dst draw.Image, face font.Face, s string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
