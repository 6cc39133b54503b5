// Package compose flattens raster image and text layers into a single image.
//
// Layers are placed on a fixed-size [Canvas], either at an absolute coordinate or centered,
// and painted in insertion order with straight alpha-over blending. Layers can be grouped in
// a [DynamicCanvas], whose size follows from its children, and then placed on a Canvas as a
// unit. A Canvas may carry a mask whose alpha channel cuts out the flattened result.
//
// Canvases, groups and layers are consumed by the call that adds or flattens them; any later
// use of the same handle fails with [ErrConsumed].
package compose

import (
	"errors"

	"github.com/BeatGlow/compose/codec"
)

// Errors
var (
	ErrInvalidDimension = errors.New("compose: invalid dimension")
	ErrConsumed         = errors.New("compose: already consumed")
)

// DecodeError is returned when a source image can't be read or parsed.
type DecodeError = codec.DecodeError

// EncodeError is returned when a flattened image can't be written.
type EncodeError = codec.EncodeError
