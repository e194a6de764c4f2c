package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Color is a color.RGBA that reads from YAML as "#rrggbb", "#rrggbbaa",
// "transparent" or an SVG color name.
type Color struct {
	color.RGBA
}

func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if v == "transparent" || v == "none" {
		return Color{}, nil
	}
	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		if len(hex) == 6 {
			n = n<<8 | 0xff
		}
		return Color{color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}}.premultiplied(), nil
	}
	c, ok := colornames.Map[v]
	if !ok {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	return Color{c}, nil
}

func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// color.RGBA is alpha-premultiplied; hex input is straight alpha.
func (c Color) premultiplied() Color {
	if c.A == 0xff {
		return c
	}
	a := uint32(c.A)
	return Color{color.RGBA{
		R: uint8(uint32(c.R) * a / 0xff),
		G: uint8(uint32(c.G) * a / 0xff),
		B: uint8(uint32(c.B) * a / 0xff),
		A: c.A,
	}}
}

func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	if c.A == 0 {
		return "transparent", nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}
