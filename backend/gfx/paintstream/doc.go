/*
Package paintstream saves the drawing commands of a rendered document and
loads them again.

A Driver records what gfx.Render tells it to draw, just like gfx.Recorder,
and writes the commands as a YAML document: the canvas size, filled and
patterned rectangles, glyph runs with integer pixel origins, subpixel
fractions and display gamma, and images encoded as PNG. Dimensions are
stored in scaled points, so a saved stream reproduces the layout exactly.

Load reads a stream back into a gfx.Recorder, which can replay it to any
other driver, e.g. to rasterize a layout without laying it out again.

    drv := paintstream.NewDriver()
    err := gfx.Render(result, pos, drv)
    err = drv.Save(w)
    ...
    rec, err := paintstream.Load(r)
    err = rec.Replay(raster.NewDriver(dpi, registry))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package paintstream

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'xtl.gfx'
func tracer() tracing.Trace {
	return tracing.Select("xtl.gfx")
}
