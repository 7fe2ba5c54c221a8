/*
Package raster implements an output driver painting into an RGBA image.

Glyphs are rasterized with OpenType faces at the subpixel offset the
positioner has chosen for them. Coverage of glyph masks is gamma corrected,
and glyph colors are mixed with the canvas in linear space.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/xtl/backend/gfx"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/frame"
	"github.com/npillmayer/xtl/engine/glyphing"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// tracer writes to trace with key 'xtl.gfx'
func tracer() tracing.Trace {
	return tracing.Select("xtl.gfx")
}

// FaceSource supplies typecases for glyph runs. *fontregistry.Registry is
// a FaceSource.
type FaceSource interface {
	TypeCase(ref font.Ref, size dimen.Dimen, dpi int) (*font.TypeCase, error)
}

// Driver paints into an image.RGBA.
type Driver struct {
	Canvas     *image.RGBA
	Background color.RGBA
	dpi        int
	faces      FaceSource
	typecases  map[string]*font.TypeCase
	gammas     map[float64]*glyphing.GammaTable
}

var _ gfx.Driver = &Driver{}

// NewDriver creates a raster driver for a resolution. If faces is nil or
// cannot supply a font, glyphs are drawn with the packaged fallback font.
func NewDriver(dpi int, faces FaceSource) *Driver {
	if dpi <= 0 {
		dpi = 72
	}
	return &Driver{
		Background: color.RGBA{0xff, 0xff, 0xff, 0xff},
		dpi:        dpi,
		faces:      faces,
		typecases:  make(map[string]*font.TypeCase),
		gammas:     make(map[float64]*glyphing.GammaTable),
	}
}

// SetCanvasSize is part of interface gfx.Driver. It allocates a new canvas
// filled with the background color.
func (d *Driver) SetCanvasSize(w, h dimen.Dimen) {
	pw, ph := w.Fixed(d.dpi).Ceil(), h.Fixed(d.dpi).Ceil()
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	d.Canvas = image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(d.Canvas, d.Canvas.Bounds(), image.NewUniform(d.Background), image.Point{}, draw.Src)
	tracer().Debugf("raster canvas is %dx%d px", pw, ph)
}

// DrawRect is part of interface gfx.Driver.
func (d *Driver) DrawRect(r dimen.Rect, style gfx.RectStyle) error {
	if err := d.ready(); err != nil {
		return err
	}
	px := d.pixels(r)
	if px.Empty() || style.Fill.A == 0 {
		return nil
	}
	src := image.NewUniform(style.Fill)
	for _, part := range pattern(px, style) {
		draw.Draw(d.Canvas, part, src, image.Point{}, draw.Over)
	}
	return nil
}

// DrawImage is part of interface gfx.Driver. Images are scaled to r.
func (d *Driver) DrawImage(r dimen.Rect, img image.Image) error {
	if err := d.ready(); err != nil {
		return err
	}
	px := d.pixels(r)
	if px.Empty() || img == nil {
		return nil
	}
	draw.CatmullRom.Scale(d.Canvas, px, img, img.Bounds(), draw.Over, nil)
	return nil
}

// DrawGlyphRun is part of interface gfx.Driver.
func (d *Driver) DrawGlyphRun(runs []glyphing.GlyphRun) error {
	if err := d.ready(); err != nil {
		return err
	}
	for _, run := range runs {
		tc, err := d.typecase(run.Font, run.Size)
		if err != nil {
			return err
		}
		gt := d.gammaTable(run.Gamma)
		for _, g := range run.Glyphs {
			if g.Outline.Notdef {
				d.drawNotdef(g, run)
				continue
			}
			dot := fixed.Point26_6{X: g.Dot(), Y: fixed.I(run.Baseline)}
			dr, mask, maskp, _, ok := tc.Face().Glyph(dot, g.Rune)
			if !ok {
				d.drawNotdef(g, run)
				continue
			}
			d.composite(dr, mask, maskp, run.Color, gt)
		}
	}
	return nil
}

func (d *Driver) ready() error {
	if d.Canvas == nil {
		return core.Error(core.EINTERNAL, "raster canvas has not been sized")
	}
	return nil
}

// pixels converts a rectangle to device pixels, rounding every edge.
func (d *Driver) pixels(r dimen.Rect) image.Rectangle {
	return image.Rect(
		r.TopL.X.Fixed(d.dpi).Round(), r.TopL.Y.Fixed(d.dpi).Round(),
		r.BotR.X.Fixed(d.dpi).Round(), r.BotR.Y.Fixed(d.dpi).Round(),
	)
}

func (d *Driver) typecase(ref font.Ref, size dimen.Dimen) (*font.TypeCase, error) {
	key := fmt.Sprintf("%s-%d", ref.Key(), size)
	if tc, ok := d.typecases[key]; ok {
		return tc, nil
	}
	var tc *font.TypeCase
	if d.faces != nil {
		var err error
		if tc, err = d.faces.TypeCase(ref, size, d.dpi); err != nil {
			tracer().Infof("raster driver: %v", err)
		}
	}
	if tc == nil {
		var err error
		if tc, err = font.FallbackFont().PrepareCase(size, d.dpi); err != nil {
			return nil, err
		}
	}
	d.typecases[key] = tc
	return tc, nil
}

func (d *Driver) gammaTable(gamma float64) *glyphing.GammaTable {
	gt, ok := d.gammas[gamma]
	if !ok {
		gt = glyphing.NewGammaTable(gamma)
		d.gammas[gamma] = gt
	}
	return gt
}

// drawNotdef outlines the .notdef box of a glyph with a 1px stroke.
func (d *Driver) drawNotdef(g glyphing.Glyph, run glyphing.GlyphRun) {
	m := font.Notdef(run.Size)
	w := m.Advance.Fixed(d.dpi).Round()
	h := m.Ascent.Fixed(d.dpi).Round()
	if w < 3 || h < 3 {
		return
	}
	x, y := g.X+1, run.Baseline-h
	box := image.Rect(x, y, x+w-2, run.Baseline)
	src := image.NewUniform(run.Color)
	for _, edge := range []image.Rectangle{
		image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+1),
		image.Rect(box.Min.X, box.Max.Y-1, box.Max.X, box.Max.Y),
		image.Rect(box.Min.X, box.Min.Y, box.Min.X+1, box.Max.Y),
		image.Rect(box.Max.X-1, box.Min.Y, box.Max.X, box.Max.Y),
	} {
		draw.Draw(d.Canvas, edge, src, image.Point{}, draw.Over)
	}
}

// composite paints color c through a glyph mask aligned with dr. Coverage
// is gamma corrected, and colors are mixed in linear space.
func (d *Driver) composite(dr image.Rectangle, mask image.Image, maskp image.Point,
	c color.RGBA, gt *glyphing.GammaTable) {
	//
	clip := dr.Intersect(d.Canvas.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			_, _, _, cov := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
			a := gt.Coverage(uint8(cov >> 8))
			if a == 0 {
				continue
			}
			d.Canvas.SetRGBA(x, y, gt.Blend(d.Canvas.RGBAAt(x, y), c, a))
		}
	}
}

// pattern splits a border strip into the parts to be filled for its style.
func pattern(r image.Rectangle, style gfx.RectStyle) []image.Rectangle {
	horizontal := style.Side == frame.Top || style.Side == frame.Bottom
	thickness := r.Dy()
	length := r.Dx()
	if !horizontal {
		thickness, length = r.Dx(), r.Dy()
	}
	strip := func(from, to int) image.Rectangle {
		if horizontal {
			return image.Rect(r.Min.X+from, r.Min.Y, r.Min.X+to, r.Max.Y)
		}
		return image.Rect(r.Min.X, r.Min.Y+from, r.Max.X, r.Min.Y+to)
	}
	switch style.Pattern {
	case css.BorderDashed, css.BorderDotted:
		dash := thickness
		if style.Pattern == css.BorderDashed {
			dash = 3 * thickness
		}
		if dash < 1 {
			dash = 1
		}
		var parts []image.Rectangle
		for pos := 0; pos < length; pos += 2 * dash {
			end := pos + dash
			if end > length {
				end = length
			}
			parts = append(parts, strip(pos, end))
		}
		return parts
	case css.BorderDouble:
		if thickness < 3 {
			break
		}
		third := (thickness + 1) / 3
		if horizontal {
			return []image.Rectangle{
				image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+third),
				image.Rect(r.Min.X, r.Max.Y-third, r.Max.X, r.Max.Y),
			}
		}
		return []image.Rectangle{
			image.Rect(r.Min.X, r.Min.Y, r.Min.X+third, r.Max.Y),
			image.Rect(r.Max.X-third, r.Min.Y, r.Max.X, r.Max.Y),
		}
	}
	return []image.Rectangle{r}
}
