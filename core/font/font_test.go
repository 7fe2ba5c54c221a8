package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core/dimen"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type sw struct {
	s xfont.Style
	w xfont.Weight
}

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.fonts")
	defer teardown()
	//
	for k, v := range map[string]sw{
		"fonts/Clarendon-bold.ttf":               {xfont.StyleNormal, xfont.WeightBold},
		"Microsoft/Gill Sans MT Bold Italic.ttf": {xfont.StyleItalic, xfont.WeightBold},
		"Cambria Math.ttf":                       {xfont.StyleNormal, xfont.WeightNormal},
	} {
		style, weight := GuessStyleAndWeight(k)
		if style != v.s || weight != v.w {
			t.Errorf("expected different style or weight for %s: %d/%d", k, style, weight)
		}
	}
}

func TestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.fonts")
	defer teardown()
	//
	if !Matches("fonts/Clarendon-bold.ttf", "clarendon", xfont.StyleNormal, xfont.WeightBold) {
		t.Errorf("expected match for Clarendon, haven't")
	}
	if !Matches("Microsoft/Gill Sans MT Bold Italic.ttf", "gill sans", xfont.StyleItalic, xfont.WeightBold) {
		t.Errorf("expected match for Gill, haven't")
	}
	descs := []Descriptor{
		{Family: "Gentium", Variants: []string{"regular", "italic"}},
		{Family: "Gentium Book", Variants: []string{"bold"}},
	}
	d, v, c := ClosestMatch(descs, "gentium", xfont.StyleNormal, xfont.WeightBold)
	if c < HighConfidence || d.Family != "Gentium Book" || v != "bold" {
		t.Errorf("expected Gentium Book bold, is %s %s (%d)", d.Family, v, c)
	}
}

func TestNormalizeFont(t *testing.T) {
	n := NormalizeFontname("Clarendon", xfont.StyleItalic, xfont.WeightBold)
	if n != "clarendon-italic-bold" {
		t.Errorf("expected different normalized name for clarendon: %s", n)
	}
	if WeightFromCSS("700") != xfont.WeightBold || WeightFromCSS("bold") != xfont.WeightBold {
		t.Errorf("expected CSS weight 700 to be bold")
	}
}

func TestTypeCaseCreation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.fonts")
	defer teardown()
	//
	f := FallbackFont()
	tc, err := f.PrepareCase(12*dimen.BP, 72)
	if err != nil {
		t.Fatal(err)
	}
	metrics := tc.Face().Metrics()
	if metrics.Height <= 0 {
		t.Errorf("expected positive interline spacing for %s", f.Fontname)
	}
	ttf, name, ok := PackagedFont("monospace", xfont.StyleNormal, xfont.WeightBold)
	if !ok || name != "Go Mono Bold" || len(ttf) == 0 {
		t.Errorf("expected monospace bold to map to Go Mono Bold, is %q", name)
	}
}

type noGlyphs struct{}

func (noGlyphs) Lookup(ref Ref, r rune, size dimen.Dimen, sub fixed.Int26_6) (GlyphMetrics, error) {
	if ref.Family == "B" && r == 'x' {
		return GlyphMetrics{Glyph: 7, Advance: size}, nil
	}
	return GlyphMetrics{}, NotFound(ref, r)
}

func (noGlyphs) Kerning(Ref, dimen.Dimen, GlyphIndex, GlyphIndex) dimen.Dimen { return 0 }

func TestFallbackChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.fonts")
	defer teardown()
	//
	chain := []Ref{{Family: "A"}, {Family: "B"}}
	fb := ResolveGlyph(noGlyphs{}, chain, 'x', 10*dimen.BP, 16)
	if fb.Index != 1 || fb.Metrics.Glyph != 7 {
		t.Errorf("expected glyph from second font, is %+v", fb)
	}
	fb = ResolveGlyph(noGlyphs{}, chain, 'y', 10*dimen.BP, 16)
	if !fb.IsNotdef() || fb.Metrics.Advance != 5*dimen.BP {
		t.Errorf("expected .notdef of half an em, is %+v", fb)
	}
	if fb.Metrics.Outline.Subpixel != 16 || !fb.Metrics.Outline.Notdef {
		t.Errorf("expected .notdef outline to carry the subpixel offset")
	}
}
