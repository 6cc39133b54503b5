// Package text renders strings into tightly bounded RGBA8 buffers with the freetype rasterizer.
package text

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/compose/pixel"
)

// Errors
var (
	ErrNoFont = errors.New("text: no font")
	ErrSize   = errors.New("text: font size must be positive")
)

// DefaultDPI is used when a Style leaves DPI unset. At 72 DPI one point is one pixel.
const DefaultDPI = 72

// ParseFont parses a TrueType font.
func ParseFont(data []byte) (*truetype.Font, error) {
	return freetype.ParseFont(data)
}

// LoadFont reads and parses the TrueType font file at path.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("text: %s: %w", path, err)
	}
	return f, nil
}

var defaultFont = sync.OnceValues(func() (*truetype.Font, error) {
	return ParseFont(goregular.TTF)
})

// DefaultFont returns the Go Regular font.
func DefaultFont() (*truetype.Font, error) {
	return defaultFont()
}

// Style describes how a string is rendered.
type Style struct {
	// Font face.
	Font *truetype.Font

	// Size in points.
	Size float64

	// DPI resolution, DefaultDPI if zero.
	DPI float64

	// Color of the glyphs, black if nil.
	Color color.Color

	// Hinting mode.
	Hinting font.Hinting
}

func (s Style) dpi() float64 {
	if s.DPI <= 0 {
		return DefaultDPI
	}
	return s.DPI
}

func (s Style) check() error {
	if s.Font == nil {
		return ErrNoFont
	}
	if s.Size <= 0 {
		return ErrSize
	}
	return nil
}

func (s Style) face() font.Face {
	return truetype.NewFace(s.Font, &truetype.Options{
		Size:    s.Size,
		DPI:     s.dpi(),
		Hinting: s.Hinting,
	})
}

// Measure returns the size of the buffer Render produces for str: the advance width of the
// string by the ascent plus descent of the font, both rounded up.
func Measure(str string, style Style) (image.Point, error) {
	if err := style.check(); err != nil {
		return image.Point{}, err
	}
	face := style.face()
	defer func() { _ = face.Close() }()

	return measure(face, str), nil
}

func measure(face font.Face, str string) image.Point {
	if str == "" {
		return image.Point{}
	}
	m := face.Metrics()
	return image.Point{
		X: font.MeasureString(face, str).Ceil(),
		Y: (m.Ascent + m.Descent).Ceil(),
	}
}

// Render draws str on a transparent buffer sized by [Measure], with the baseline at the
// font's ascent. An empty string renders an empty buffer.
func Render(str string, style Style) (*image.NRGBA, error) {
	if err := style.check(); err != nil {
		return nil, err
	}
	face := style.face()
	defer func() { _ = face.Close() }()

	size := measure(face, str)
	dst := pixel.New(size.X, size.Y)
	if size.X == 0 || size.Y == 0 {
		return dst, nil
	}

	c := style.Color
	if c == nil {
		c = color.Black
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(style.dpi())
	ctx.SetFont(style.Font)
	ctx.SetFontSize(style.Size)
	ctx.SetHinting(style.Hinting)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))

	if _, err := ctx.DrawString(str, fixed.Point26_6{Y: face.Metrics().Ascent}); err != nil {
		return nil, fmt.Errorf("text: render %q: %w", str, err)
	}
	return dst, nil
}
