package inline

import (
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/config"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	params "github.com/npillmayer/xtl/core/parameters"
	"github.com/npillmayer/xtl/engine/khipu"
	"github.com/npillmayer/xtl/engine/text"
)

// Options control the layout of a paragraph.
type Options struct {
	Mode       config.JustifyMode
	Align      Alignment
	AlignLast  Alignment   // alignment of the last line, AlignAuto derives it from Align
	Indent     dimen.Dimen // indent of the first line, as of CSS text-indent
	LineHeight dimen.Dimen // minimum height of line boxes, 0 for the font's height
	Registers  *params.TypesettingRegisters
	Fallbacks  []font.Ref // fonts to try for glyphs missing in a span's font
}

func (opts Options) tolerance() dimen.Dimen {
	if opts.Registers == nil {
		return 0
	}
	return opts.Registers.D(params.P_OVERFLOWTOLERANCE)
}

func (opts Options) justified() bool {
	return opts.Align == AlignJustify || opts.Align == AlignJustifyAll
}

// Paragraph is a paragraph of text set into lines.
type Paragraph struct {
	Run         *text.TextRun
	Khipu       *khipu.Khipu
	Breakpoints Breakpoints
	Lines       []*Line
	Height      dimen.Dimen // sum of the heights of the line boxes
}

// Width returns the width of the widest line content.
func (para *Paragraph) Width() dimen.Dimen {
	var w dimen.Dimen
	for _, l := range para.Lines {
		w = dimen.Max(w, l.Justified)
	}
	return w
}

// LayoutParagraph sets a text run into lines of a paragraph shape. Glyphs are
// measured with metrics provider p. Lines are stacked from y = 0 downwards,
// each one at least opts.LineHeight high.
//
// Layout never fails; problems like overflowing lines or missing glyphs are
// reported as diagnostics.
func LayoutParagraph(run *text.TextRun, shape ParShape, p font.MetricsProvider,
	opts Options) (*Paragraph, core.Diagnostics) {
	//
	if opts.Registers == nil {
		opts.Registers = params.NewTypesettingRegisters()
	}
	if shape == nil {
		shape = RectangularParShape(dimen.Infinity / 2)
	}
	para := &Paragraph{Run: run}
	var diags core.Diagnostics
	k, d := khipu.Encode(run, p, opts.Registers, opts.Fallbacks...)
	diags.Add(d...)
	if opts.Indent != 0 && opts.Align != AlignCenter && k.Length() > 0 {
		k = khipu.NewKhipu().AppendKnot(&khipu.Kern{Width: opts.Indent}).AppendKhipu(k)
	}
	para.Khipu = k
	ls := &lineSetter{
		run:   run,
		kh:    k,
		opts:  opts,
		strut: strut(run, p, opts.Fallbacks),
	}
	if run != nil && run.Direction == text.RightToLeft {
		ls.baseLevel = 1
	}
	fp, floating := shape.(floatParShape)
	if floating {
		lo, hi := ls.lineHeights()
		shape = fp.skipping(lo, hi)
	}
	bps, lines, d := ls.setLines(shape)
	if floating && len(lines) > 0 {
		// try again with the positions of the lines just set
		refined := shape.(floatParShape).placing(lines)
		bps2, lines2, d2 := ls.setLines(refined)
		if fits(refined, refined.placing(lines2), len(lines2)) {
			bps, lines, d = bps2, lines2, d2
		}
	}
	diags.Add(d...)
	para.Breakpoints = bps
	para.Lines = lines
	for _, line := range lines {
		para.Height += line.Height
	}
	return para, diags
}

// setLines breaks the khipu into lines of shape and stacks them from y = 0
// downwards.
func (ls *lineSetter) setLines(shape ParShape) (Breakpoints, []*Line, core.Diagnostics) {
	ls.shape = shape
	bps, diags := BreakLines(ls.kh, shape, BreakOptions{
		Mode:      ls.opts.Mode,
		Justified: ls.opts.justified(),
		Registers: ls.opts.Registers,
	})
	lines := make([]*Line, 0, len(bps))
	start := 0
	var y dimen.Dimen
	for _, bp := range bps {
		line := ls.set(start, bp)
		h := line.Ascent + line.Descent
		line.Height = dimen.Max(h, ls.opts.LineHeight)
		line.Baseline = y + (line.Height-h)/2 + line.Ascent
		y += line.Height
		lines = append(lines, line)
		tracer().Debugf("%s", line)
		tracer().Debugf("    %s", line.debugString())
		start = lineStart(ls.kh, bp.Position)
	}
	return bps, lines, diags
}

// lineHeights returns the least and the largest height a line of the
// khipu may have.
func (ls *lineSetter) lineHeights() (dimen.Dimen, dimen.Dimen) {
	asc, desc := ls.strut[0], ls.strut[1]
	lo := dimen.Max(asc+desc, ls.opts.LineHeight)
	for _, kn := range ls.kh.Knots(0, ls.kh.Length()) {
		b, ok := kn.(*khipu.TextBox)
		if d, isdisc := kn.(*khipu.Discretionary); isdisc && d.Pre != nil {
			b, ok = d.Pre, true
		}
		if ok {
			asc, desc = dimen.Max(asc, b.Height), dimen.Max(desc, b.Depth)
		}
	}
	return lo, dimen.Max(asc+desc, ls.opts.LineHeight)
}

// fits is true if lines 0…n-1 get the same horizontal extent in shape,
// which they were broken for, as in the shape of their final positions.
func fits(shape, final floatParShape, n int) bool {
	for l := 0; l < n; l++ {
		x0, x1 := shape.edges(l)
		y0, y1 := final.edges(l)
		if x0 != y0 || x1 != y1 {
			return false
		}
	}
	return true
}

// strut returns the ascent and descent of the paragraph's first font.
func strut(run *text.TextRun, p font.MetricsProvider, fallbacks []font.Ref) [2]dimen.Dimen {
	if run == nil {
		return [2]dimen.Dimen{}
	}
	st := text.DefaultStyle(run.Language)
	if len(run.Spans) > 0 {
		st = run.Spans[0].Style
	}
	chain := append([]font.Ref{st.Font}, fallbacks...)
	fb := font.ResolveGlyph(p, chain, ' ', st.Size, 0)
	return [2]dimen.Dimen{fb.Metrics.Ascent, fb.Metrics.Descent}
}
