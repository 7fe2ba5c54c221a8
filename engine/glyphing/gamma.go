package glyphing

import (
	"image/color"
	"math"
)

// GammaBlend applies a display gamma to a coverage value in [0…1]. The
// result is coverage^(1/gamma). A gamma of 1 leaves coverage unchanged.
func GammaBlend(coverage, gamma float64) float64 {
	if coverage <= 0 {
		return 0
	}
	if coverage >= 1 {
		return 1
	}
	if gamma == 1 || gamma <= 0 {
		return coverage
	}
	return math.Pow(coverage, 1/gamma)
}

// gammaScale is the number of steps of linear intensities per 8-bit value.
const gammaScale = 16

// GammaTable holds precomputed conversions between 8-bit color values and
// linear intensities, for blending colors in linear space.
type GammaTable struct {
	gamma    float64
	forward  [256]uint16
	inverse  [256 * gammaScale]uint8
	coverage [256]uint8
}

// NewGammaTable creates the conversion tables for a display gamma.
// Gamma values ≤ 0 are treated as 1.
func NewGammaTable(gamma float64) *GammaTable {
	if gamma <= 0 {
		gamma = 1
	}
	gt := &GammaTable{gamma: gamma}
	const top = 256*gammaScale - 1
	for i := 0; i < 256; i++ {
		gt.forward[i] = uint16(math.Round(top * math.Pow(float64(i)/255, gamma)))
	}
	for i := 0; i <= top; i++ {
		gt.inverse[i] = uint8(math.Round(255 * math.Pow(float64(i)/top, 1/gamma)))
	}
	for i := 0; i < 256; i++ {
		gt.coverage[i] = uint8(math.Round(255 * GammaBlend(float64(i)/255, gamma)))
	}
	return gt
}

// Gamma returns the gamma of the table.
func (gt *GammaTable) Gamma() float64 {
	return gt.gamma
}

// Coverage applies GammaBlend to an 8-bit coverage value.
func (gt *GammaTable) Coverage(a uint8) uint8 {
	return gt.coverage[a]
}

// Forward converts an 8-bit color value to a linear intensity.
func (gt *GammaTable) Forward(v uint8) uint16 {
	return gt.forward[v]
}

// Inverse converts a linear intensity back to an 8-bit color value.
func (gt *GammaTable) Inverse(v uint16) uint8 {
	if int(v) >= len(gt.inverse) {
		return 255
	}
	return gt.inverse[v]
}

// Blend paints color src with coverage a (0…255) over dst. Color channels
// are mixed in linear space; src is expected to be opaque or premultiplied.
func (gt *GammaTable) Blend(dst, src color.RGBA, a uint8) color.RGBA {
	if a == 0 {
		return dst
	}
	if src.A != 0xff && src.A != 0 {
		a = uint8(uint32(a) * uint32(src.A) / 0xff)
	}
	mix := func(d, s uint8) uint8 {
		sa := uint32(a)
		if src.A != 0 && src.A != 0xff {
			s = uint8(uint32(s) * 0xff / uint32(src.A)) // un-premultiply
		}
		l := (uint32(gt.forward[d])*(0xff-sa) + uint32(gt.forward[s])*sa) / 0xff
		return gt.Inverse(uint16(l))
	}
	return color.RGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: uint8(uint32(dst.A) + (0xff-uint32(dst.A))*uint32(a)/0xff),
	}
}
