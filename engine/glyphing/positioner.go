package glyphing

import (
	"fmt"
	"image/color"

	"github.com/npillmayer/xtl/core/config"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"github.com/npillmayer/xtl/engine/frame/inline"
	"golang.org/x/image/math/fixed"
)

// Glyph is a glyph placed on the pixel raster.
type Glyph struct {
	Index    font.GlyphIndex
	Rune     rune
	X        int           // integer pixel position of the glyph origin
	Subpixel fixed.Int26_6 // quantized fraction of a pixel, 0 ≤ Subpixel < 64
	Outline  font.Outline  // as returned by the metrics provider for Subpixel
}

// Dot returns the exact glyph origin in fixed point pixels.
func (g Glyph) Dot() fixed.Int26_6 {
	return fixed.I(g.X) + g.Subpixel
}

// GlyphRun is a sequence of glyphs sharing font, size and color, set on a
// common baseline.
//
// Gamma is the display gamma the run was positioned for. Drivers derive the
// blend coefficient of a coverage value c as GammaBlend(c, Gamma), or look
// it up with GammaTable.Coverage.
type GlyphRun struct {
	Font     font.Ref
	Size     dimen.Dimen
	Color    color.RGBA
	Baseline int     // integer pixel position of the baseline
	Gamma    float64 // display gamma, see GammaBlend and GammaTable
	Glyphs   []Glyph
}

func (run GlyphRun) String() string {
	return fmt.Sprintf("run[%s %v, y=%d, %d glyphs]", run.Font.Key(), run.Size, run.Baseline, len(run.Glyphs))
}

// Positioner converts glyph positions of set lines to device pixels.
type Positioner struct {
	DPI      int     // resolution of the output device
	Subpixel int     // subpixel positions per pixel, 1 places glyphs at whole pixels
	Gamma    float64 // display gamma
	Provider font.MetricsProvider
}

// NewPositioner creates a positioner from layout options.
func NewPositioner(provider font.MetricsProvider, opts config.Options) *Positioner {
	return &Positioner{
		DPI:      opts.DPI,
		Subpixel: opts.SubpixelPrecision,
		Gamma:    opts.Gamma,
		Provider: provider,
	}
}

// Split converts a dimension to fixed point pixels and splits it into an
// integer pixel position and a fraction, quantized to the subpixel
// precision of p. A fraction rounding up to a full pixel moves to the next
// pixel.
func (p *Positioner) Split(d dimen.Dimen) (int, fixed.Int26_6) {
	x := d.Fixed(p.DPI)
	n := p.Subpixel
	if n <= 1 {
		return x.Round(), 0
	}
	if n > 64 {
		n = 64
	}
	pixel := x.Floor()
	frac := int(x - fixed.I(pixel))
	step := 64 / n
	frac = (frac + step/2) / step * step
	if frac >= 64 {
		pixel++
		frac = 0
	}
	return pixel, fixed.Int26_6(frac)
}

// Position places the glyphs of a line. origin is the point on the line's
// baseline where the paragraph's left edge is, in canvas coordinates.
//
// For every glyph the metrics provider is asked for the glyph's outline at
// the subpixel offset it has been placed at. If the provider fails, the
// built-in .notdef outline is used.
func (p *Positioner) Position(line *inline.Line, origin dimen.Point) []GlyphRun {
	if line == nil || len(line.Glyphs) == 0 {
		return nil
	}
	var runs []GlyphRun
	baseline := origin.Y.Fixed(p.DPI).Round()
	var cur *GlyphRun
	for _, g := range line.Glyphs {
		if cur == nil || cur.Font != g.Font || cur.Size != g.Size || cur.Color != g.Color {
			runs = append(runs, GlyphRun{
				Font:     g.Font,
				Size:     g.Size,
				Color:    g.Color,
				Baseline: baseline,
				Gamma:    p.Gamma,
			})
			cur = &runs[len(runs)-1]
		}
		x, frac := p.Split(origin.X + g.X)
		glyph := Glyph{Index: g.Index, Rune: g.Rune, X: x, Subpixel: frac}
		if g.Notdef {
			glyph.Outline = font.Notdef(g.Size).Outline
		} else if m, err := p.Provider.Lookup(g.Font, g.Rune, g.Size, frac); err == nil {
			glyph.Outline = m.Outline
			glyph.Index = m.Glyph
		} else {
			tracer().Debugf("glyph %q lost its font: %v", g.Rune, err)
			glyph.Outline = font.Notdef(g.Size).Outline
		}
		glyph.Outline.Subpixel = frac
		cur.Glyphs = append(cur.Glyphs, glyph)
	}
	return runs
}
