package raster

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/backend/gfx"
	"github.com/npillmayer/xtl/core/config"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"github.com/npillmayer/xtl/core/font/monospace"
	"github.com/npillmayer/xtl/engine/dom/cssom"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/frame"
	"github.com/npillmayer/xtl/engine/frame/layout"
	"github.com/npillmayer/xtl/engine/glyphing"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	red   = color.RGBA{0xff, 0, 0, 0xff}
	black = color.RGBA{0, 0, 0, 0xff}
)

func px(x, y, w, h int) dimen.Rect {
	return dimen.RectWH(dimen.Dimen(x)*dimen.PX, dimen.Dimen(y)*dimen.PX,
		dimen.Dimen(w)*dimen.PX, dimen.Dimen(h)*dimen.PX)
}

func TestCanvas(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.gfx")
	defer teardown()
	//
	d := NewDriver(72, nil)
	if err := d.DrawRect(px(0, 0, 1, 1), gfx.RectStyle{Fill: red}); err == nil {
		t.Errorf("expected drawing on an unsized canvas to fail")
	}
	d.SetCanvasSize(10*dimen.PX, 5*dimen.PX)
	assert.Equal(t, image.Rect(0, 0, 10, 5), d.Canvas.Bounds())
	assert.Equal(t, white, d.Canvas.RGBAAt(9, 4))
}

func TestDrawRect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.gfx")
	defer teardown()
	//
	d := NewDriver(72, nil)
	d.SetCanvasSize(30*dimen.PX, 30*dimen.PX)
	assert.NoError(t, d.DrawRect(px(2, 2, 3, 3), gfx.RectStyle{Fill: red}))
	assert.Equal(t, red, d.Canvas.RGBAAt(3, 3))
	assert.Equal(t, white, d.Canvas.RGBAAt(6, 6))
	// dashed top border, 2px thick: dashes of 6px
	dashed := gfx.RectStyle{Fill: black, Pattern: css.BorderDashed, Side: frame.Top}
	assert.NoError(t, d.DrawRect(px(0, 10, 20, 2), dashed))
	assert.Equal(t, black, d.Canvas.RGBAAt(5, 11))
	assert.Equal(t, white, d.Canvas.RGBAAt(8, 11))
	assert.Equal(t, black, d.Canvas.RGBAAt(12, 10))
	// double left border, 6px thick
	double := gfx.RectStyle{Fill: black, Pattern: css.BorderDouble, Side: frame.Left}
	assert.NoError(t, d.DrawRect(px(0, 20, 6, 5), double))
	assert.Equal(t, black, d.Canvas.RGBAAt(0, 22))
	assert.Equal(t, white, d.Canvas.RGBAAt(3, 22))
	assert.Equal(t, black, d.Canvas.RGBAAt(5, 22))
}

func TestDrawImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.gfx")
	defer teardown()
	//
	d := NewDriver(72, nil)
	d.SetCanvasSize(10*dimen.PX, 10*dimen.PX)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{0, 0, 0xff, 0xff})
		}
	}
	assert.NoError(t, d.DrawImage(px(2, 2, 4, 4), img))
	c := d.Canvas.RGBAAt(3, 3)
	if c.B < 200 || c.R > 50 {
		t.Errorf("expected scaled image to be blue, is %v", c)
	}
	assert.Equal(t, white, d.Canvas.RGBAAt(8, 8))
}

func inked(canvas *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if canvas.RGBAAt(x, y) != white {
				n++
			}
		}
	}
	return n
}

func TestDrawGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.gfx")
	defer teardown()
	//
	d := NewDriver(72, nil)
	d.SetCanvasSize(60*dimen.PX, 30*dimen.PX)
	run := glyphing.GlyphRun{
		Font:     font.Ref{Family: "Go"},
		Size:     20 * dimen.PX,
		Color:    black,
		Baseline: 20,
		Gamma:    1.8,
		Glyphs: []glyphing.Glyph{
			{Rune: 'H', X: 2},
			{Rune: 'x', X: 30, Outline: font.Outline{Notdef: true}},
		},
	}
	assert.NoError(t, d.DrawGlyphRun([]glyphing.GlyphRun{run}))
	if inked(d.Canvas, image.Rect(0, 0, 25, 30)) == 0 {
		t.Errorf("expected glyph H to leave ink on the canvas")
	}
	// .notdef box: 10px wide, 16px high, standing on the baseline
	assert.Equal(t, black, d.Canvas.RGBAAt(31, 19))
	assert.Equal(t, black, d.Canvas.RGBAAt(31, 4))
	assert.Equal(t, white, d.Canvas.RGBAAt(34, 12))
}

func TestGlyphCompositingOnGrey(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.gfx")
	defer teardown()
	//
	grey := color.RGBA{128, 128, 128, 0xff}
	mask := image.NewAlpha(image.Rect(0, 0, 3, 1))
	mask.SetAlpha(1, 0, color.Alpha{A: 128})
	mask.SetAlpha(2, 0, color.Alpha{A: 0xff})
	paint := func(gamma float64) *image.RGBA {
		d := NewDriver(72, nil)
		d.Background = grey
		d.SetCanvasSize(4*dimen.PX, 2*dimen.PX)
		d.composite(image.Rect(1, 1, 4, 2), mask, image.Point{}, black, d.gammaTable(gamma))
		return d.Canvas
	}
	linear, corrected := paint(1.0), paint(2.2)
	for _, c := range []*image.RGBA{linear, corrected} {
		assert.Equal(t, grey, c.RGBAAt(1, 1)) // no coverage
		assert.Equal(t, black, c.RGBAAt(3, 1))
		assert.Equal(t, grey, c.RGBAAt(2, 0))
	}
	// gamma 1 is plain alpha compositing: 128 · (1 - 128/255)
	assert.InDelta(t, 64, int(linear.RGBAAt(2, 1).R), 1)
	// coverage 128 → 186, mixed in linear space
	half := corrected.RGBAAt(2, 1)
	assert.InDelta(t, 71, int(half.R), 1)
	assert.Equal(t, half.R, half.G)
	assert.Equal(t, uint8(0xff), half.A)
}

func TestRenderDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.gfx")
	defer teardown()
	//
	h, err := html.Parse(strings.NewReader(`<html><body>
<p style="border: 1px solid black">The quick brown fox jumps over the lazy dog.</p>
</body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	styled, _ := cssom.NewCSSOM(true).Style(h)
	provider, opts := monospace.NewProvider(), config.Defaults()
	res := layout.Layout(styled, layout.Viewport{Width: 200 * dimen.PX}, provider, opts)
	d := NewDriver(opts.DPI, nil)
	if err := gfx.Render(res, glyphing.NewPositioner(provider, opts), d); err != nil {
		t.Fatal(err)
	}
	if d.Canvas.Bounds().Dx() != 200 {
		t.Errorf("expected canvas to be 200px wide, is %d", d.Canvas.Bounds().Dx())
	}
	assert.True(t, inked(d.Canvas, d.Canvas.Bounds()) > 100)
}
