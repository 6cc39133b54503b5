package pixel

import "image/color"

// Colors with a special meaning to the compositor.
var (
	// Transparent is the color of a blank buffer.
	Transparent = color.NRGBA{}

	// TransparentWhite is the color of pixels a mask does not cover.
	TransparentWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x00}
)

const maxValue = 0xff

// Over composites src over dst using straight alpha.
//
// A fully transparent source leaves dst untouched and a fully opaque source replaces it.
// Otherwise both colors are normalised to [0,1] and combined as
//
//	a = ab + af - ab*af
//	c = (cf*af + cb*ab*(1-af)) / a
//
// with every result scaled back to 8 bits and truncated.
func Over(dst, src color.NRGBA) color.NRGBA {
	switch src.A {
	case 0x00:
		return dst
	case maxValue:
		return src
	}

	var (
		bgA = float32(dst.A) / maxValue
		fgA = float32(src.A) / maxValue
		a   = bgA + fgA - bgA*fgA
	)
	if a == 0 {
		return dst
	}

	mix := func(bg, fg uint8) uint8 {
		var (
			b = float32(bg) / maxValue * bgA
			f = float32(fg) / maxValue * fgA
		)
		return truncate(maxValue * ((f + b*(1-fgA)) / a))
	}

	return color.NRGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: truncate(maxValue * a),
	}
}

// Scale multiplies every channel of c, alpha included, by alpha/255.
func Scale(c color.NRGBA, alpha uint8) color.NRGBA {
	switch alpha {
	case 0x00:
		return color.NRGBA{}
	case maxValue:
		return c
	}

	f := float32(alpha) / maxValue
	return color.NRGBA{
		R: truncate(float32(c.R) * f),
		G: truncate(float32(c.G) * f),
		B: truncate(float32(c.B) * f),
		A: truncate(float32(c.A) * f),
	}
}

// truncate converts v to 8 bits, rounding toward zero. Float error can push an exact
// 255 a hair over the top, so the result is clamped.
func truncate(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= maxValue:
		return maxValue
	default:
		return uint8(v)
	}
}
