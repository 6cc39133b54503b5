package compose

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/BeatGlow/compose/codec"
	"github.com/BeatGlow/compose/pixel"
)

// Layer is a single RGBA8 buffer composited as one unit.
type Layer struct {
	img *image.NRGBA
}

// NewLayer returns a blank, fully transparent layer.
func NewLayer(width, height int) (*Layer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: layer of %dx%d", ErrInvalidDimension, width, height)
	}
	return &Layer{img: pixel.New(width, height)}, nil
}

// FromBuffer wraps img without copying it; the layer takes ownership of the buffer.
// A buffer that isn't anchored at the origin is copied.
func FromBuffer(img *image.NRGBA) *Layer {
	if img == nil {
		return &Layer{img: pixel.New(0, 0)}
	}
	return &Layer{img: pixel.Normalize(img)}
}

// FromImage converts img into a new layer.
func FromImage(img image.Image) *Layer {
	return &Layer{img: pixel.Convert(img)}
}

// Open decodes the image file at path into a layer. Failures are reported as *DecodeError.
func Open(path string) (*Layer, error) {
	img, err := codec.Open(path)
	if err != nil {
		return nil, err
	}
	log.WithField("path", path).WithField("size", img.Bounds().Size()).Debug("decoded layer")
	return &Layer{img: img}, nil
}

// Image returns the layer's buffer, or nil once the layer has been consumed.
func (l *Layer) Image() *image.NRGBA {
	if l == nil {
		return nil
	}
	return l.img
}

// Consumed reports whether the layer was handed over to a canvas.
func (l *Layer) Consumed() bool {
	return l == nil || l.img == nil
}

// Bounds of the layer; empty once consumed.
func (l *Layer) Bounds() image.Rectangle {
	if l.Consumed() {
		return image.Rectangle{}
	}
	return l.img.Rect
}

// Width of the layer in pixels.
func (l *Layer) Width() int {
	return l.Bounds().Dx()
}

// Height of the layer in pixels.
func (l *Layer) Height() int {
	return l.Bounds().Dy()
}

// Gaussian is a Gaussian kernel with a standard deviation of half a pixel, cut off three
// pixels from the center. Weights are normalized by the scaler.
var Gaussian = &xdraw.Kernel{
	Support: 3,
	At: func(t float64) float64 {
		return math.Exp(-2 * t * t)
	},
}

// Resize scales the layer to width pixels, keeping its aspect ratio, with the [Gaussian] filter.
func (l *Layer) Resize(width int) error {
	return l.ResizeWith(width, Gaussian)
}

// ResizeWith scales the layer to width pixels with the given interpolator. The new height is
// height*width/oldWidth in integer arithmetic. A layer without width can't be resized.
func (l *Layer) ResizeWith(width int, filter xdraw.Interpolator) error {
	if l.Consumed() {
		return ErrConsumed
	}

	w, h := l.Width(), l.Height()
	if w == 0 || width < 0 {
		return fmt.Errorf("%w: resize %dx%d to width %d", ErrInvalidDimension, w, h, width)
	}

	dst := pixel.New(width, h*width/w)
	if !dst.Rect.Empty() {
		filter.Scale(dst, dst.Bounds(), l.img, l.img.Bounds(), xdraw.Src, nil)
	}
	log.WithField("from", l.img.Bounds().Size()).WithField("to", dst.Bounds().Size()).Debug("resized layer")
	l.img = dst
	return nil
}

// Save encodes the layer to path, picking the format from the file extension. Failures are
// reported as *EncodeError.
func (l *Layer) Save(path string) error {
	if l.Consumed() {
		return ErrConsumed
	}
	return codec.Save(path, l.img)
}

// take hands the buffer over to the caller and marks the layer consumed.
func (l *Layer) take() (*image.NRGBA, error) {
	if l.Consumed() {
		return nil, ErrConsumed
	}
	img := l.img
	l.img = nil
	return img, nil
}

// positionedLayer is a layer buffer bound to a position on each axis.
type positionedLayer struct {
	img  *image.NRGBA
	x, y Position
}

func (pl positionedLayer) size() image.Point {
	return pl.img.Rect.Size()
}
