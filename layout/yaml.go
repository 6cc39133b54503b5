package layout

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BeatGlow/compose"
)

// Position wraps a [compose.Position] read from YAML: an integer or the string "center".
type Position struct {
	compose.Position
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Position) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v int
	if err := unmarshal(&v); err == nil {
		p.Position = compose.Coord(v)
		return nil
	}

	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("position must be an integer or %q", "center")
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre":
		p.Position = compose.Center
		return nil
	default:
		return fmt.Errorf("invalid position %q, expected an integer or %q", s, "center")
	}
}

// Color is a hex color: #rgb, #rrggbb or #rrggbbaa.
type Color struct {
	color.NRGBA
	Valid bool
}

// Or returns c, or def if c was never set.
func (c Color) Or(def color.Color) color.Color {
	if !c.Valid {
		return def
	}
	return c.NRGBA
}

// ParseColor parses a hex color with an optional leading #.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Color{
		NRGBA: color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)},
		Valid: true,
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

