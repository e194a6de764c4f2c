package textrender

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FontSource yields a face at a pixel size. Sources are tried in order by
// the Renderer; the first one that succeeds is used.
type FontSource interface {
	Name() string
	Face(size float64) (font.Face, error)
}

type fileFont struct{ path string }

// FileFont loads a TrueType/OpenType file from disk.
func FileFont(path string) FontSource { return fileFont{path: path} }

func (f fileFont) Name() string { return f.path }

func (f fileFont) Face(size float64) (font.Face, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	return parseFace(b, size)
}

type bundledFont struct{}

// BundledBold is Go Bold, compiled into the binary.
func BundledBold() FontSource { return bundledFont{} }

func (bundledFont) Name() string { return "go-bold (bundled)" }

func (bundledFont) Face(size float64) (font.Face, error) { return parseFace(gobold.TTF, size) }

type builtinFont struct{}

// Builtin is the 7x13 bitmap face. It ignores size and never fails.
func Builtin() FontSource { return builtinFont{} }

func (builtinFont) Name() string { return "basicfont 7x13 (builtin)" }

func (builtinFont) Face(float64) (font.Face, error) { return basicfont.Face7x13, nil }

// Chain builds the default lookup order: the given files, the bundled bold
// face, then the builtin bitmap face.
func Chain(paths ...string) []FontSource {
	out := make([]FontSource, 0, len(paths)+2)
	for _, p := range paths {
		if p == "" {
			continue
		}
		out = append(out, FileFont(p))
	}
	return append(out, BundledBold(), Builtin())
}

func parseFace(b []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
