package gfx

import (
	"image"
	"image/color"

	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/frame/layout"
	"github.com/npillmayer/xtl/engine/glyphing"
)

// Driver is an output device. Coordinates are canvas coordinates with the
// origin at the top left corner and y growing downwards.
type Driver interface {
	SetCanvasSize(w, h dimen.Dimen)
	DrawGlyphRun(runs []glyphing.GlyphRun) error
	DrawRect(r dimen.Rect, style RectStyle) error
	DrawImage(r dimen.Rect, img image.Image) error
}

// RectStyle tells a driver how to fill a rectangle.
type RectStyle struct {
	Fill    color.RGBA
	Pattern css.BorderStyle // BorderNone and BorderSolid fill the whole rectangle
	Side    int             // border side for patterned fills, frame.Top … frame.Left
}

// Render streams the display list of a layout result to a driver. Text
// items are positioned on the device raster by pos.
//
// Render continues after a driver error and returns the first one.
func Render(result *layout.Result, pos *glyphing.Positioner, drv Driver) error {
	if result == nil {
		return core.Error(core.EINVALID, "cannot render missing layout result")
	}
	drv.SetCanvasSize(result.Width, result.Height)
	var first error
	fail := func(err error, it layout.Item) {
		if err == nil {
			return
		}
		tracer().Errorf("driver cannot draw %s: %v", it, err)
		if first == nil {
			first = core.WrapError(err, core.EINTERNAL, "driver cannot draw %s", it.Kind)
		}
	}
	for _, it := range result.DisplayList {
		switch it.Kind {
		case layout.BackgroundItem:
			fail(drv.DrawRect(it.Rect, RectStyle{Fill: it.Color}), it)
		case layout.BorderItem:
			fail(drv.DrawRect(it.Rect, RectStyle{
				Fill:    it.Color,
				Pattern: it.BorderStyle,
				Side:    it.Side,
			}), it)
		case layout.TextItem:
			if runs := pos.Position(it.Line, it.Origin); len(runs) > 0 {
				fail(drv.DrawGlyphRun(runs), it)
			}
			for _, d := range it.Line.Decorations {
				fail(drv.DrawRect(d.Rect.Translate(it.Origin), RectStyle{Fill: d.Color}), it)
			}
		case layout.ImageItem:
			if it.Image != nil {
				fail(drv.DrawImage(it.Rect, it.Image), it)
			}
		}
	}
	return first
}
