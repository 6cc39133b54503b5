package compose

import (
	"image/color"
	"testing"

	"github.com/BeatGlow/compose/pixel"
)

var (
	testRed   = color.NRGBA{R: 0xff, A: 0xff}
	testGreen = color.NRGBA{G: 0xff, A: 0xff}
	testBlue  = color.NRGBA{B: 0xff, A: 0xff}
)

// testLayer returns a w×h layer filled with c.
func testLayer(t *testing.T, w, h int, c color.Color) *Layer {
	t.Helper()
	l, err := NewLayer(w, h)
	if err != nil {
		t.Fatal(err)
	}
	pixel.Fill(l.Image(), c)
	return l
}

func testCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := NewCanvas(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func testRasterize(t *testing.T, c *Canvas) *Layer {
	t.Helper()
	l, err := c.Rasterize()
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
