package khipu

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"github.com/npillmayer/xtl/core/font/monospace"
	"github.com/npillmayer/xtl/core/parameters"
	"github.com/npillmayer/xtl/engine/text"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

func TestKhipu(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.khipu")
	defer teardown()
	//
	kh := NewKhipu()
	kh.AppendKnot(&Kern{Width: dimen.BP}).AppendKnot(NewGlue(dimen.BP, 0, dimen.BP))
	kh.AppendKnot(&TextBox{Text: "Hello", Width: 5 * dimen.BP})
	t.Logf("khipu = %s\n", kh.String())
	if kh.Length() != 3 {
		t.Errorf("Length of khipu should be 3")
	}
	n := 0
	c := NewCursor(kh)
	for c.Next() {
		n++
		if c.Position() == 2 && c.AsTextBox() == nil {
			t.Errorf("expected knot #2 to be a text box")
		}
	}
	if n != 3 {
		t.Errorf("expected cursor to visit 3 knots, visited %d", n)
	}
	if kh.Text(0, 3) != " Hello" {
		t.Errorf("expected text ' Hello', is %q", kh.Text(0, 3))
	}
}

func build(t *testing.T, s string) *text.TextRun {
	st := text.DefaultStyle(language.English)
	st.Size = 10 * dimen.BP
	run, _ := text.Build([]text.Item{{Text: s, Style: st}}, text.Options{})
	return run
}

func TestEncodeWords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.khipu")
	defer teardown()
	//
	kh, diags := Encode(build(t, "Hello World"), monospace.NewProvider(), nil)
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, have %v", diags)
	}
	if kh.Length() != 6 {
		t.Fatalf("expected 6 knots, have %d: %s", kh.Length(), kh)
	}
	types := []KnotType{KTTextBox, KTPenalty, KTGlue, KTTextBox, KTGlue, KTPenalty}
	for i, kt := range types {
		if kh.At(i).Type() != kt {
			t.Errorf("expected knot #%d to be %s, is %s", i, kt, kh.At(i).Type())
		}
	}
	if kh.At(0).W() != 30*dimen.BP {
		t.Errorf("expected 'Hello' to be 30bp wide, is %s", kh.At(0).W())
	}
	g := kh.At(2).(*Glue)
	if g.Width != 6*dimen.BP || g.Stretch != 3*dimen.BP {
		t.Errorf("expected space glue of 6bp+3bp, is %s", g)
	}
	if !kh.At(5).(*Penalty).IsForced() || !kh.At(4).(*Glue).Fill {
		t.Errorf("expected khipu to end with parfillskip and forced break")
	}
}

func TestEncodeDiscretionary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.khipu")
	defer teardown()
	//
	regs := parameters.NewTypesettingRegisters()
	regs.Push(parameters.P_HYPHENPENALTY, 77)
	kh, _ := Encode(build(t, "hyph\u00ADenation"), monospace.NewProvider(), regs)
	var d *Discretionary
	boxes := 0
	for i := 0; i < kh.Length(); i++ {
		switch k := kh.At(i).(type) {
		case *Discretionary:
			d = k
		case *TextBox:
			boxes++
		}
	}
	if d == nil {
		t.Fatalf("expected a discretionary, khipu = %s", kh)
	}
	if d.Penalty != 77 || d.PreWidth() != 6*dimen.BP || d.Pre.Text != "-" {
		t.Errorf("expected hyphen of 6bp with penalty 77, is %s/%s", d, d.PreWidth())
	}
	if boxes != 2 || kh.Text(0, kh.Length()) != "hyphenation" {
		t.Errorf("expected soft hyphen to vanish, text is %q", kh.Text(0, kh.Length()))
	}
}

func TestEncodeForcedBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.khipu")
	defer teardown()
	//
	kh, _ := Encode(build(t, "foo\u2028bar"), monospace.NewProvider(), nil)
	forced := 0
	for i := 0; i < kh.Length(); i++ {
		if p, ok := kh.At(i).(*Penalty); ok && p.IsForced() {
			forced++
		}
	}
	if forced != 2 {
		t.Errorf("expected 2 forced breaks, have %d: %s", forced, kh)
	}
}

func TestEncodeFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.khipu")
	defer teardown()
	//
	p := monospace.NewProvider(monospace.Missing('x'))
	kh, diags := Encode(build(t, "xax"), p, nil, font.Ref{Family: "Go"})
	if diags.Count(core.FontFallback) != 1 {
		t.Errorf("expected 1 font fallback diagnostic, have %d", diags.Count(core.FontFallback))
	}
	box := kh.At(0).(*TextBox)
	if !box.ContainsNotdef || box.Width != 16*dimen.BP {
		t.Errorf("expected .notdef glyphs of 5bp, box is %s", box)
	}
}

type kerningFont struct{}

func (kerningFont) Lookup(ref font.Ref, r rune, size dimen.Dimen, sub fixed.Int26_6) (font.GlyphMetrics, error) {
	return font.GlyphMetrics{Glyph: font.GlyphIndex(r), Advance: size / 2, Ascent: size, Descent: size / 4}, nil
}

func (kerningFont) Kerning(ref font.Ref, size dimen.Dimen, l, r font.GlyphIndex) dimen.Dimen {
	if l == 'A' && r == 'V' {
		return -dimen.BP
	}
	return 0
}

func TestEncodeKerning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.khipu")
	defer teardown()
	//
	kh, _ := Encode(build(t, "AVA"), kerningFont{}, nil)
	box := kh.At(0).(*TextBox)
	if box.Width != 14*dimen.BP {
		t.Errorf("expected kerned width of 14bp, is %s", box.Width)
	}
	if box.Glyphs[1].Kern != -dimen.BP || box.LetterGaps != 2 {
		t.Errorf("expected kern between A and V, glyphs are %v", box.Glyphs)
	}
	if box.Height != 10*dimen.BP || box.Depth != dimen.BP*10/4 {
		t.Errorf("expected height/depth from font, are %s/%s", box.Height, box.Depth)
	}
}
