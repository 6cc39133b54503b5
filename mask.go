package compose

import (
	"image"

	"github.com/BeatGlow/compose/pixel"
)

// ApplyMask cuts layer out by the alpha channel of mask, consuming the layer. The result has
// the mask's size. Every pixel's color and alpha are scaled by the mask alpha at the same
// coordinate; where the layer has no pixel the result is transparent white.
func ApplyMask(layer *Layer, mask image.Image) (*Layer, error) {
	img, err := layer.take()
	if err != nil {
		return nil, err
	}

	var m *image.NRGBA
	switch v := mask.(type) {
	case nil:
		m = pixel.New(0, 0)
	case *image.NRGBA:
		if v == nil {
			m = pixel.New(0, 0)
		} else {
			m = pixel.Normalize(v)
		}
	default:
		m = pixel.Convert(v)
	}
	return &Layer{img: applyMask(img, m)}, nil
}

func applyMask(src, mask *image.NRGBA) *image.NRGBA {
	var (
		size = mask.Rect.Size()
		dst  = pixel.New(size.X, size.Y)
	)
	pixel.Fill(dst, pixel.TransparentWhite)

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			if !pixel.InBounds(src, x, y) {
				continue
			}
			dst.SetNRGBA(x, y, pixel.Scale(src.NRGBAAt(x, y), mask.NRGBAAt(x, y).A))
		}
	}

	log.WithField("size", size).WithField("source", src.Rect.Size()).Debug("applied mask")
	return dst
}
