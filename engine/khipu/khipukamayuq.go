package khipu

/*
BSD License

Copyright (c) 2017–20, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	params "github.com/npillmayer/xtl/core/parameters"
	"github.com/npillmayer/xtl/engine/text"
)

// A khipukamayuq is a knot-maker. It encodes a text run into a khipu,
// measuring glyphs with a metrics provider.
type khipukamayuq struct {
	run      *text.TextRun
	provider font.MetricsProvider
	regs     *params.TypesettingRegisters
	fallback []font.Ref
	khipu    *Khipu
	box      *TextBox
	diags    core.Diagnostics
	reported map[rune]bool
}

// Encode transforms a text run into a khipu. Words are measured with
// provider p, using the font of their span and, for glyphs missing in it,
// the fallback fonts in order. Glyphs no font can supply are measured as
// .notdef boxes. Every fallback is reported as a FontFallback diagnostic,
// once per character.
//
// Spaces become glue, break opportunities become penalties or
// discretionaries. The khipu is terminated by an infinitely stretchable glue
// and a forced break. If regs is nil, default registers are used.
func Encode(run *text.TextRun, p font.MetricsProvider, regs *params.TypesettingRegisters,
	fallbacks ...font.Ref) (*Khipu, core.Diagnostics) {
	//
	if regs == nil {
		regs = params.NewTypesettingRegisters()
	}
	kk := &khipukamayuq{
		run:      run,
		provider: p,
		regs:     regs,
		fallback: fallbacks,
		khipu:    NewKhipu(),
		reported: make(map[rune]bool),
	}
	if run == nil || len(run.Text) == 0 {
		return kk.khipu, nil
	}
	s := run.Text
	for pos := 0; pos < len(s); {
		r, l := utf8.DecodeRuneInString(s[pos:])
		if pos > 0 {
			kk.breakBefore(pos, run.BreakAt(pos))
		}
		switch {
		case isLineEnd(r) || r == '\r':
			kk.flush()
		case r == text.SoftHyphen:
			// invisible unless the word is broken here
		case r == ' ' || r == '\t' || r == '\u00A0' || r == '\u3000':
			kk.flush()
			kk.glue(pos, r)
		case unicode.IsControl(r):
			// not rendered
		default:
			kk.glyph(pos, r)
		}
		pos += l
	}
	kk.flush()
	kk.khipu.AppendKnot(&Glue{Fill: true, Position: len(s), Span: len(run.Spans) - 1})
	kk.khipu.AppendKnot(&Penalty{Value: ForcedBreak, Position: len(s)})
	tracer().Debugf("khipu = %s", kk.khipu)
	return kk.khipu, kk.diags
}

func isLineEnd(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\u0085', text.LineSeparator, '\u2029':
		return true
	}
	return false
}

func (kk *khipukamayuq) breakBefore(pos int, bc text.BreakClass) {
	if bc == text.BreakForbidden {
		return
	}
	kk.flush()
	switch bc {
	case text.BreakOptional:
		p := 0
		if r, _ := utf8.DecodeLastRuneInString(kk.run.Text[:pos]); r == '-' || r == '\u2010' {
			p = kk.regs.N(params.P_EXHYPHENPENALTY)
		}
		kk.insertBeforeGlue(&Penalty{Value: p, Position: pos})
	case text.BreakHyphen:
		d := &Discretionary{
			Pre:      kk.hyphen(pos),
			Penalty:  kk.regs.N(params.P_HYPHENPENALTY),
			Position: pos,
		}
		kk.khipu.AppendKnot(d)
	case text.BreakMandatory:
		kk.khipu.AppendKnot(&Glue{Fill: true, Position: pos, Span: kk.run.SpanAt(pos - 1)})
		kk.khipu.AppendKnot(&Penalty{Value: ForcedBreak, Position: pos})
	}
}

// insertBeforeGlue inserts a penalty in front of trailing glue. Breaking at
// the penalty leaves the glue at the start of the next line, where it will
// be discarded.
func (kk *khipukamayuq) insertBeforeGlue(p *Penalty) {
	knots := kk.khipu.knots
	j := len(knots)
	for j > 0 {
		if g, ok := knots[j-1].(*Glue); !ok || g.Fill {
			break
		}
		j--
	}
	knots = append(knots, nil)
	copy(knots[j+1:], knots[j:])
	knots[j] = p
	kk.khipu.knots = knots
}

func (kk *khipukamayuq) span(pos int) (int, text.StyledSpan) {
	i := kk.run.SpanAt(pos)
	if i < 0 {
		return 0, text.StyledSpan{Style: text.DefaultStyle(kk.run.Language)}
	}
	return i, kk.run.Spans[i]
}

func (kk *khipukamayuq) chain(ref font.Ref) []font.Ref {
	return append([]font.Ref{ref}, kk.fallback...)
}

func (kk *khipukamayuq) resolve(pos int, r rune, span text.StyledSpan) font.Fallback {
	chain := kk.chain(span.Style.Font)
	fb := font.ResolveGlyph(kk.provider, chain, r, span.Style.Size, 0)
	if fb.Index != 0 && !kk.reported[r] {
		kk.reported[r] = true
		kk.diags.Warnf(core.FontFallback, core.Location{Offset: pos}, "%s",
			font.DescribeFallback(chain, r, fb))
	}
	return fb
}

func (kk *khipukamayuq) glyph(pos int, r rune) {
	i, span := kk.span(pos)
	if kk.box != nil && kk.box.Span != i {
		kk.flush()
	}
	if kk.box == nil {
		kk.box = &TextBox{
			Position: pos,
			Span:     i,
			Level:    span.Level,
			Size:     span.Style.Size,
			Font:     span.Style.Font,
		}
	}
	box := kk.box
	fb := kk.resolve(pos, r, span)
	g := Glyph{
		Rune:    r,
		Index:   fb.Metrics.Glyph,
		Font:    fb.Ref,
		Advance: fb.Metrics.Advance,
		Notdef:  fb.IsNotdef(),
	}
	if n := len(box.Glyphs); n > 0 {
		prev := box.Glyphs[n-1]
		if prev.Font == g.Font && !prev.Notdef && !g.Notdef {
			g.Kern = kk.provider.Kerning(g.Font, span.Style.Size, prev.Index, g.Index)
		}
	}
	box.Glyphs = append(box.Glyphs, g)
	box.Text += string(r)
	box.Width += g.Kern + g.Advance
	box.Height = dimen.Max(box.Height, fb.Metrics.Ascent)
	box.Depth = dimen.Max(box.Depth, fb.Metrics.Descent)
	box.ContainsNotdef = box.ContainsNotdef || g.Notdef
}

// flush closes the current text box and appends it to the khipu.
func (kk *khipukamayuq) flush() {
	if kk.box == nil {
		return
	}
	box := kk.box
	kk.box = nil
	box.LetterGaps = len(box.Glyphs) - 1
	if ls := kk.regs.N(params.P_INTERLETTERSTRETCH); ls > 0 && box.LetterGaps > 0 {
		box.Stretch = box.Size.MulDiv(int64(ls*box.LetterGaps), 1000)
	}
	kk.khipu.AppendKnot(box)
}

func (kk *khipukamayuq) glue(pos int, r rune) {
	i, span := kk.span(pos)
	fb := kk.resolve(pos, r, span)
	w := fb.Metrics.Advance
	g := &Glue{Width: w, Position: pos, Span: i, Level: span.Level}
	if span.Style.WhiteSpace != text.WhiteSpacePre {
		g.Stretch = w.MulDiv(int64(kk.regs.N(params.P_INTERWORDSTRETCH)), 100)
		g.Shrink = w.MulDiv(int64(kk.regs.N(params.P_INTERWORDSHRINK)), 100)
	}
	kk.khipu.AppendKnot(g)
}

// hyphen creates the box for the visible hyphen of a discretionary at pos.
func (kk *khipukamayuq) hyphen(pos int) *TextBox {
	r := rune(kk.regs.N(params.P_HYPHENCHAR))
	if r <= 0 {
		r = '-'
	}
	i, span := kk.span(pos - 1)
	fb := font.ResolveGlyph(kk.provider, kk.chain(span.Style.Font), r, span.Style.Size, 0)
	return &TextBox{
		Text:     string(r),
		Position: pos,
		Span:     i,
		Level:    span.Level,
		Size:     span.Style.Size,
		Font:     span.Style.Font,
		Glyphs: []Glyph{{
			Rune:    r,
			Index:   fb.Metrics.Glyph,
			Font:    fb.Ref,
			Advance: fb.Metrics.Advance,
			Notdef:  fb.IsNotdef(),
		}},
		Width:       fb.Metrics.Advance,
		Height:      fb.Metrics.Ascent,
		Depth:       fb.Metrics.Descent,
		HyphenGlyph: true,
	}
}
