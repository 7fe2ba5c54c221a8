package inline

import (
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/config"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font/monospace"
	"github.com/npillmayer/xtl/core/parameters"
	"github.com/npillmayer/xtl/engine/text"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

const fox = "The quick brown fox jumps over the lazy dog"

// A 10pt monospace font has glyphs of 6pt.
func monoRun(s string, deco text.Decoration) *text.TextRun {
	st := text.DefaultStyle(language.English)
	st.Font.Family = "monospace"
	st.Size = 10 * dimen.PT
	st.Decoration = deco
	run, _ := text.Build([]text.Item{{Text: s, Style: st}}, text.Options{})
	return run
}

func checkLines(t *testing.T, para *Paragraph) {
	for i, l := range para.Lines {
		if !l.Overflow && l.Justified > l.Target {
			t.Errorf("line %d: width %s exceeds target %s without overflow flag", i, l.Justified, l.Target)
		}
		for j := 1; j < len(l.Glyphs); j++ {
			if l.Glyphs[j].X < l.Glyphs[j-1].X {
				t.Errorf("line %d: glyph positions not monotonic at %d: %s", i, j, l.debugString())
				break
			}
		}
	}
}

func TestQuickBrownFox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	shape := RectangularParShape(100 * dimen.PT)
	para, diags := LayoutParagraph(monoRun(fox, 0), shape, monospace.NewProvider(), Options{
		Align: AlignJustify,
	})
	assert.Empty(t, diags)
	if len(para.Lines) < 2 {
		t.Fatalf("expected at least 2 lines, have %d", len(para.Lines))
	}
	assert.Equal(t, 3, len(para.Lines))
	assert.Equal(t, "The quick brown", para.Lines[0].text)
	assert.Equal(t, "fox jumps over", para.Lines[1].text)
	checkLines(t, para)
	for _, l := range para.Lines[:len(para.Lines)-1] {
		if !l.IsJustified || l.Justified != l.Target {
			t.Errorf("expected line to be justified exactly, is %s", l)
		}
	}
	last := para.Lines[len(para.Lines)-1]
	if last.IsJustified || last.Justified != 72*dimen.PT {
		t.Errorf("expected last line to be set at natural width, is %s", last)
	}
	if para.Lines[1].Baseline <= para.Lines[0].Baseline {
		t.Errorf("expected lines to be stacked downwards")
	}
}

func TestOptimalBreaking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	regs := parameters.NewTypesettingRegisters()
	regs.Push(parameters.P_TOLERANCE, 10000)
	shape := RectangularParShape(100 * dimen.PT)
	para, _ := LayoutParagraph(monoRun(fox, 0), shape, monospace.NewProvider(), Options{
		Mode:      config.JustifyOptimal,
		Align:     AlignJustify,
		Registers: regs,
	})
	if len(para.Lines) < 2 {
		t.Fatalf("expected at least 2 lines, have %d", len(para.Lines))
	}
	checkLines(t, para)
	if para.Breakpoints[0].Demerits <= 0 {
		t.Errorf("expected breakpoints with demerits from optimal breaking")
	}
	for i := 1; i < len(para.Breakpoints); i++ {
		if para.Breakpoints[i].Demerits < para.Breakpoints[i-1].Demerits {
			t.Errorf("expected total demerits to accumulate")
		}
	}
	// with the default tolerance there is no feasible solution
	para, _ = LayoutParagraph(monoRun(fox, 0), shape, monospace.NewProvider(), Options{
		Mode:  config.JustifyOptimal,
		Align: AlignJustify,
	})
	assert.Equal(t, 3, len(para.Lines), "expected first fit as a fallback")
}

func TestFloatShapeFollowsLineHeights(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	area := dimen.RectWH(0, 0, 100*dimen.PT, 1000*dimen.PT)
	left := []dimen.Rect{dimen.RectWH(0, 0, 40*dimen.PT, 25*dimen.PT)}
	// lines of a 10pt font are 10pt high, not 30pt
	shape := FloatParShape(area, 30*dimen.PT, left, nil)
	para, _ := LayoutParagraph(monoRun(fox+" "+fox, 0), shape, monospace.NewProvider(), Options{})
	if len(para.Lines) < 4 {
		t.Fatalf("expected at least 4 lines, have %d", len(para.Lines))
	}
	for i, l := range para.Lines[:3] {
		if l.Indent != 40*dimen.PT {
			t.Errorf("expected line %d next to the float to be indented by 40pt, is %s", i, l.Indent)
		}
	}
	assert.Equal(t, dimen.Zero, para.Lines[3].Indent)
	assert.Equal(t, 100*dimen.PT, para.Lines[3].Target)
	checkLines(t, para)
}

func TestForcedBreakLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	shape := RectangularParShape(100 * dimen.PT)
	para, _ := LayoutParagraph(monoRun("foo\u2028bar", 0), shape, monospace.NewProvider(), Options{
		Align: AlignJustify,
	})
	if len(para.Lines) != 2 {
		t.Fatalf("expected 2 lines, have %d", len(para.Lines))
	}
	if para.Lines[0].IsJustified || para.Lines[0].Justified != 18*dimen.PT {
		t.Errorf("expected line before forced break to stay unjustified, is %s", para.Lines[0])
	}
}

func TestOverflowLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	shape := RectangularParShape(100 * dimen.PT)
	para, diags := LayoutParagraph(monoRun("supercalifragilistic is long", 0), shape,
		monospace.NewProvider(), Options{})
	if diags.Count(core.Overflow) != 1 {
		t.Errorf("expected 1 overflow diagnostic, have %d", diags.Count(core.Overflow))
	}
	if len(para.Lines) != 2 || !para.Lines[0].Overflow || para.Lines[1].Overflow {
		t.Errorf("expected first of 2 lines to overflow")
	}
	checkLines(t, para)
}

func TestHyphenatedLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	shape := RectangularParShape(70 * dimen.PT)
	para, _ := LayoutParagraph(monoRun("xxxxxxxxxx\u00ADyyyy", 0), shape, monospace.NewProvider(), Options{})
	if len(para.Lines) != 2 {
		t.Fatalf("expected 2 lines, have %d", len(para.Lines))
	}
	l := para.Lines[0]
	if !l.Hyphenated || l.Glyphs[len(l.Glyphs)-1].Rune != '-' || len(l.Glyphs) != 11 {
		t.Errorf("expected first line to end in a hyphen, is %s", l.debugString())
	}
	if para.Lines[1].Hyphenated || len(para.Lines[1].Glyphs) != 4 {
		t.Errorf("expected second line to hold 4 glyphs, is %s", para.Lines[1].debugString())
	}
}

func TestAlignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	shape := RectangularParShape(100 * dimen.PT)
	p := monospace.NewProvider()
	for _, c := range []struct {
		opts Options
		x0   dimen.Dimen
	}{
		{Options{}, 0},
		{Options{Align: AlignRight}, 82 * dimen.PT},
		{Options{Align: AlignCenter}, 41 * dimen.PT},
		{Options{Align: AlignStart, Indent: 10 * dimen.PT}, 10 * dimen.PT},
		{Options{Align: AlignCenter, Indent: 10 * dimen.PT}, 41 * dimen.PT},
		{Options{Align: AlignJustify, AlignLast: AlignEnd}, 82 * dimen.PT},
	} {
		para, _ := LayoutParagraph(monoRun("foo", 0), shape, p, c.opts)
		if x := para.Lines[0].Glyphs[0].X; x != c.x0 {
			t.Errorf("expected alignment %s to start at %s, starts at %s", c.opts.Align, c.x0, x)
		}
	}
}

func TestBidiReordering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	shape := RectangularParShape(500 * dimen.PT)
	arabic := "\u0645\u0631\u062D\u0628\u0627"
	para, _ := LayoutParagraph(monoRun("abc "+arabic+" def", 0), shape, monospace.NewProvider(), Options{})
	if len(para.Lines) != 1 {
		t.Fatalf("expected a single line, have %d", len(para.Lines))
	}
	checkLines(t, para)
	var visual []rune
	for _, g := range para.Lines[0].Glyphs {
		visual = append(visual, g.Rune)
	}
	expected := []rune("abc\u0627\u0628\u062D\u0631\u0645def")
	if string(visual) != string(expected) {
		t.Errorf("expected right-to-left word to be reversed, visual order is %q", string(visual))
	}
}

func TestLayoutIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	shape := RectangularParShape(100 * dimen.PT)
	opts := Options{Align: AlignJustify, Mode: config.JustifyOptimal}
	run := monoRun(fox, text.Underline)
	p1, _ := LayoutParagraph(run, shape, monospace.NewProvider(), opts)
	p2, _ := LayoutParagraph(run, shape, monospace.NewProvider(), opts)
	if !reflect.DeepEqual(p1.Lines, p2.Lines) {
		t.Errorf("expected identical layouts for identical input")
	}
}

func TestDecorations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	shape := RectangularParShape(100 * dimen.PT)
	para, _ := LayoutParagraph(monoRun("foo bar", text.Underline|text.LineThrough), shape,
		monospace.NewProvider(), Options{})
	decos := para.Lines[0].Decorations
	if len(decos) != 2 {
		t.Fatalf("expected 2 decoration lines, have %d", len(decos))
	}
	for _, d := range decos {
		if d.Rect.Width() != 42*dimen.PT {
			t.Errorf("expected %s line to span 42pt, spans %s", decoName(d.Kind), d.Rect.Width())
		}
	}
}

func decoName(d text.Decoration) string {
	switch d {
	case text.Underline:
		return "underline"
	case text.LineThrough:
		return "line-through"
	}
	return "overline"
}

func TestEmptyParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.frame")
	defer teardown()
	//
	para, diags := LayoutParagraph(monoRun("", 0), RectangularParShape(100*dimen.PT),
		monospace.NewProvider(), Options{})
	assert.Empty(t, diags)
	assert.Empty(t, para.Lines)
	assert.Equal(t, dimen.Zero, para.Height)
}
