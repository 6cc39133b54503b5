package pixel

import (
	"image"
	"image/color"
	"image/draw"
)

// New returns a blank, fully transparent w×h buffer.
func New(w, h int) *image.NRGBA {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Convert copies any image into a new buffer anchored at the origin.
func Convert(src image.Image) *image.NRGBA {
	var (
		b   = src.Bounds()
		dst = New(b.Dx(), b.Dy())
	)
	if b.Empty() {
		return dst
	}
	if p, ok := src.(*image.NRGBA); ok {
		// Straight copy; going through image/draw would premultiply and lose
		// precision for translucent pixels.
		for y := 0; y < b.Dy(); y++ {
			i := p.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], p.Pix[i:i+b.Dx()*4])
		}
		return dst
	}
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Normalize returns img itself if it is anchored at the origin, or an anchored copy.
func Normalize(img *image.NRGBA) *image.NRGBA {
	if img.Rect.Min == (image.Point{}) {
		return img
	}
	return Convert(img)
}

// Fill the image with a single color.
func Fill(img *image.NRGBA, c color.Color) {
	v := color.NRGBAModel.Convert(c).(color.NRGBA)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, v)
		}
	}
}

// InBounds reports whether (x, y) addresses a pixel of img.
func InBounds(img *image.NRGBA, x, y int) bool {
	return (image.Point{X: x, Y: y}).In(img.Rect)
}
