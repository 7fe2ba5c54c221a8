/*
Package gfx streams laid out documents to output drivers.

Layout produces a display list of positioned items. Render walks this list in
paint order, converts glyph positions to device pixels and hands commands to
a Driver. Drivers are interchangeable; package raster paints into an
image.RGBA, the Recorder of this package just remembers what it has been
told to draw.

    result := layout.Layout(doc, viewport, registry, opts)
    pos := glyphing.NewPositioner(registry, opts)
    err := gfx.Render(result, pos, raster.NewDriver(opts.DPI, registry))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gfx

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'xtl.gfx'
func tracer() tracing.Trace {
	return tracing.Select("xtl.gfx")
}
