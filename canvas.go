package compose

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/BeatGlow/compose/draw"
	"github.com/BeatGlow/compose/pixel"
)

// Canvas is a fixed-size compositing root: a blank base, the layers painted on it in order,
// and an optional mask applied to the flattened result.
type Canvas struct {
	base     *image.NRGBA
	layers   []positionedLayer
	mask     *image.NRGBA
	consumed bool
}

// NewCanvas returns a fully transparent canvas of width×height pixels.
func NewCanvas(width, height int) (*Canvas, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: canvas of %dx%d", ErrInvalidDimension, width, height)
	}
	return &Canvas{base: pixel.New(width, height)}, nil
}

// Width of the canvas in pixels.
func (c *Canvas) Width() int {
	if c.consumed {
		return 0
	}
	return c.base.Rect.Dx()
}

// Height of the canvas in pixels.
func (c *Canvas) Height() int {
	if c.consumed {
		return 0
	}
	return c.base.Rect.Dy()
}

// Len is the number of layers painted on top of the base.
func (c *Canvas) Len() int {
	return len(c.layers)
}

// AddLayer appends layer to the canvas, consuming it. A centered axis is resolved against
// the canvas size when the canvas is rasterized.
func (c *Canvas) AddLayer(layer *Layer, x, y Position) error {
	if c.consumed {
		return ErrConsumed
	}
	img, err := layer.take()
	if err != nil {
		return err
	}
	c.layers = append(c.layers, positionedLayer{img: img, x: x, y: y})
	return nil
}

// AddDynamicCanvas absorbs group, consuming it. Every child is re-anchored at an absolute
// coordinate: the group's anchor within the canvas plus the child's anchor within the group.
//
// Both anchors go through [Position.Resolve] with half the free space on that axis, so a
// centered group or child lands at a quarter of the difference between the extents.
func (c *Canvas) AddDynamicCanvas(group *DynamicCanvas, x, y Position) error {
	if c.consumed || group == nil || group.consumed {
		return ErrConsumed
	}

	var (
		width, height = group.Dimensions()
		outerX        = x.Resolve((c.Width() - width) / 2)
		outerY        = y.Resolve((c.Height() - height) / 2)
	)
	for _, pl := range group.layers {
		var (
			size   = pl.size()
			innerX = pl.x.Resolve((width - size.X) / 2)
			innerY = pl.y.Resolve((height - size.Y) / 2)
		)
		c.layers = append(c.layers, positionedLayer{
			img: pl.img,
			x:   Coord(outerX + innerX),
			y:   Coord(outerY + innerY),
		})
	}

	log.WithFields(logrus.Fields{
		"layers": len(group.layers),
		"size":   image.Pt(width, height),
		"at":     image.Pt(outerX, outerY),
	}).Debug("absorbed group")

	group.layers = nil
	group.consumed = true
	return nil
}

// AddCanvas rasterizes child, consuming it, and adds the result as a layer.
func (c *Canvas) AddCanvas(child *Canvas, x, y Position) error {
	if c.consumed || child == nil || child == c {
		return ErrConsumed
	}
	layer, err := child.Rasterize()
	if err != nil {
		return err
	}
	return c.AddLayer(layer, x, y)
}

// SetMask sets the mask applied to the flattened canvas, replacing any previous mask. Only
// the mask's alpha channel is used. A nil mask removes it.
func (c *Canvas) SetMask(mask image.Image) error {
	if c.consumed {
		return ErrConsumed
	}
	switch m := mask.(type) {
	case nil:
		c.mask = nil
	case *image.NRGBA:
		if m == nil {
			c.mask = nil
		} else {
			c.mask = pixel.Normalize(m)
		}
	default:
		c.mask = pixel.Convert(m)
	}
	return nil
}

// Rasterize flattens the canvas into a single layer, consuming the canvas.
//
// Layers are painted over the base in insertion order; a centered axis resolves against the
// base size. Parts of a layer outside the base are clipped. The mask, if any, is applied last.
func (c *Canvas) Rasterize() (*Layer, error) {
	if c.consumed {
		return nil, ErrConsumed
	}

	base := c.base
	log.WithFields(logrus.Fields{
		"size":   base.Rect.Size(),
		"layers": len(c.layers),
		"masked": c.mask != nil,
	}).Debug("rasterize canvas")

	for _, pl := range c.layers {
		size := pl.size()
		at := image.Point{
			X: pl.x.Resolve(base.Rect.Dx() - size.X),
			Y: pl.y.Resolve(base.Rect.Dy() - size.Y),
		}
		draw.Overlay(base, pl.img, at)
	}

	mask := c.mask
	c.base, c.layers, c.mask = nil, nil, nil
	c.consumed = true

	if mask != nil {
		base = applyMask(base, mask)
	}
	return &Layer{img: base}, nil
}
