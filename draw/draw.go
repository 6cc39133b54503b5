// Package draw provides compositing and shape primitives on top of [image/draw].
package draw

import (
	"image"
	"image/draw"

	"github.com/BeatGlow/compose/pixel"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Overlay paints src over dst with the top-left corner of src at p, blending every pixel
// with [pixel.Over]. Whatever part of src falls outside dst is clipped, so p may be
// negative or put src partially (or entirely) off dst.
func Overlay(dst, src *image.NRGBA, p image.Point) {
	var (
		sb = src.Bounds()
		r  = image.Rectangle{Min: p, Max: p.Add(sb.Size())}.Intersect(dst.Bounds())
	)
	if r.Empty() {
		return
	}

	// Offset from dst coordinates to src coordinates.
	d := sb.Min.Sub(p)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.NRGBAAt(x+d.X, y+d.Y)
			if s.A == 0x00 {
				continue
			}
			dst.SetNRGBA(x, y, pixel.Over(dst.NRGBAAt(x, y), s))
		}
	}
}
