// Package pixel implements the 8-bit RGBA buffers and color arithmetic used by the compositor.
//
// Buffers are plain [image.NRGBA] values (straight, non-premultiplied alpha) anchored at the
// origin, so they interoperate with Go's native [image.Image] / [draw.Image] interfaces and
// with every encoder and decoder in the standard library and golang.org/x/image.
package pixel
