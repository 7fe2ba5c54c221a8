/*
Package glyphing places the glyphs of set lines onto the pixel raster of an
output device.

Overview

Layout works with scaled points; output devices work with pixels. A
Positioner converts the glyph positions of lines to 26.6 fixed point pixels
at the device resolution. Each glyph origin is split into an integer pixel
position and a fraction of a pixel, which is quantized to the configured
subpixel precision. The fraction is handed to the font metrics provider, so
that glyph images may be rendered with the correct subpixel offset.

Glyphs are grouped into runs sharing font, size and color. Runs carry
the gamma value the output driver should use for blending glyph coverage.
GammaBlend and GammaTable implement gamma-correct blending.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.glyphing'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.glyphing")
}
