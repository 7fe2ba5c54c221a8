package inline

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/engine/khipu"
	"github.com/npillmayer/xtl/engine/text"
)

// Alignment is the horizontal alignment of lines, as of CSS text-align.
type Alignment uint8

// Alignments. Start and end depend on the paragraph's direction.
const (
	AlignAuto Alignment = iota
	AlignStart
	AlignEnd
	AlignLeft
	AlignRight
	AlignCenter
	AlignJustify
	AlignJustifyAll
)

func (a Alignment) String() string {
	return [...]string{"auto", "start", "end", "left", "right", "center",
		"justify", "justify-all"}[a]
}

// PositionedGlyph is a glyph placed on a line. X is the offset of the
// glyph's origin from the left edge of the paragraph.
type PositionedGlyph struct {
	khipu.Glyph
	X     dimen.Dimen
	Size  dimen.Dimen
	Color color.RGBA
	Span  int
}

// Decoration is a line drawn for text decoration. Rect is relative to the
// line's baseline at y = 0, with x measured from the paragraph's left edge.
type Decoration struct {
	Kind  text.Decoration
	Rect  dimen.Rect
	Color color.RGBA
}

// Line is a line of set text. Glyphs are in visual order.
type Line struct {
	Glyphs      []PositionedGlyph
	Decorations []Decoration
	Start, End  int         // byte positions within the paragraph text
	Indent      dimen.Dimen // offset of the line's left edge from the paragraph's left edge
	Width       dimen.Dimen // natural width of the content
	Justified   dimen.Dimen // width of the content after justification
	Target      dimen.Dimen // available width
	Ascent      dimen.Dimen
	Descent     dimen.Dimen
	Baseline    dimen.Dimen // from the top of the paragraph
	Height      dimen.Dimen // of the line box
	IsJustified bool
	Overflow    bool
	Hyphenated  bool
	text        string
}

func (l *Line) String() string {
	return fmt.Sprintf("line[%s/%s] %q", l.Justified, l.Target, l.text)
}

// X0 returns the x position of the first glyph, or the line's indent for
// empty lines.
func (l *Line) X0() dimen.Dimen {
	if len(l.Glyphs) == 0 {
		return l.Indent
	}
	return l.Glyphs[0].X
}

// --- Setting lines ---------------------------------------------------------

// piece is an item of a line, either a text box, a glue or a kern.
type piece struct {
	knot   khipu.Knot
	box    *khipu.TextBox
	level  uint8
	width  dimen.Dimen
	letter []dimen.Dimen // additional space after each glyph
	span   int
}

type lineSetter struct {
	run       *text.TextRun
	kh        *khipu.Khipu
	shape     ParShape
	opts      Options
	baseLevel uint8
	strut     [2]dimen.Dimen // minimum ascent and descent
}

// set sets the knots from start to the breakpoint bp as line #l.
func (ls *lineSetter) set(start int, bp Breakpoint) *Line {
	line := &Line{
		Target:   ls.shape.LineLength(bp.Line),
		Ascent:   ls.strut[0],
		Descent:  ls.strut[1],
		Overflow: bp.Overflow,
	}
	pieces := ls.collect(start, bp, line)
	for _, p := range pieces {
		line.Width += p.width
	}
	align := ls.alignment(bp)
	line.Justified = line.Width
	if align == AlignJustify || align == AlignJustifyAll {
		line.IsJustified = justify(pieces, line.Target-line.Width)
		if line.IsJustified {
			line.Justified = 0
			for _, p := range pieces {
				line.Justified += p.width
			}
		}
	}
	if line.Justified > line.Target+ls.opts.tolerance() {
		line.Overflow = true
	}
	reorder(pieces, ls.baseLevel)
	x := ls.shape.LineIndent(bp.Line) + ls.alignOffset(align, line)
	line.Indent = x
	for _, p := range pieces {
		ls.place(line, p, x)
		x += p.width
	}
	line.text = ls.kh.Text(start, bp.Position)
	return line
}

// collect gathers the pieces of a line in logical order. Trailing glue is
// dropped, a discretionary at the end contributes its hyphen.
func (ls *lineSetter) collect(start int, bp Breakpoint, line *Line) []piece {
	knots := ls.kh.Knots(start, bp.Position)
	end := len(knots)
	for end > 0 && knots[end-1].Type() == khipu.KTGlue {
		end--
	}
	pieces := make([]piece, 0, end+1)
	for _, kn := range knots[:end] {
		switch k := kn.(type) {
		case *khipu.TextBox:
			pieces = append(pieces, ls.boxPiece(k, line))
		case *khipu.Glue:
			pieces = append(pieces, piece{knot: k, level: k.Level, width: k.Width, span: k.Span})
		case *khipu.Kern:
			pieces = append(pieces, piece{knot: k, level: ls.baseLevel, width: k.Width, span: -1})
		}
	}
	if d, ok := ls.kh.At(bp.Position).(*khipu.Discretionary); ok && d.Pre != nil {
		pieces = append(pieces, ls.boxPiece(d.Pre, line))
		line.Hyphenated = true
	}
	line.Start = textPos(knots, 0, ls.run)
	line.End = textPos(ls.kh.Knots(bp.Position, bp.Position+1), 0, ls.run)
	return pieces
}

func textPos(knots []khipu.Knot, i int, run *text.TextRun) int {
	if i >= len(knots) {
		return len(run.Text)
	}
	switch k := knots[i].(type) {
	case *khipu.TextBox:
		return k.Position
	case *khipu.Glue:
		return k.Position
	case *khipu.Penalty:
		return k.Position
	case *khipu.Discretionary:
		return k.Position
	}
	return textPos(knots, i+1, run)
}

func (ls *lineSetter) boxPiece(b *khipu.TextBox, line *Line) piece {
	line.Ascent = dimen.Max(line.Ascent, b.Height)
	line.Descent = dimen.Max(line.Descent, b.Depth)
	return piece{
		knot:   b,
		box:    b,
		level:  b.Level,
		width:  b.Width,
		letter: make([]dimen.Dimen, len(b.Glyphs)),
		span:   b.Span,
	}
}

// alignment returns the effective alignment of a line. The last line and
// lines ended by a forced break use the alignment for last lines.
func (ls *lineSetter) alignment(bp Breakpoint) Alignment {
	align := ls.opts.Align
	if p, ok := ls.kh.At(bp.Position).(*khipu.Penalty); ok && p.IsForced() {
		switch ls.opts.AlignLast {
		case AlignAuto:
			if align == AlignJustify {
				align = AlignStart
			}
		default:
			align = ls.opts.AlignLast
		}
	}
	return align
}

func (ls *lineSetter) alignOffset(align Alignment, line *Line) dimen.Dimen {
	free := line.Target - line.Justified
	if free <= 0 {
		if ls.baseLevel%2 == 1 { // overflow to the left for right-to-left text
			return free
		}
		return 0
	}
	rtl := ls.baseLevel%2 == 1
	switch align {
	case AlignRight:
		return free
	case AlignCenter:
		return free / 2
	case AlignEnd:
		if !rtl {
			return free
		}
	case AlignAuto, AlignStart, AlignJustify, AlignJustifyAll:
		if rtl {
			return free
		}
	}
	return 0
}

// justify distributes slack over the gaps of a line, proportional to their
// stretchability (or shrinkability, for negative slack). The sum of the
// adjustments is exactly the slack, if there is any capacity at all.
// Returns false if the line has no adjustable gaps.
func justify(pieces []piece, slack dimen.Dimen) bool {
	type gap struct {
		piece, letter int // letter < 0 for glue
		capacity      int64
	}
	var gaps []gap
	var total int64
	for i, p := range pieces {
		switch k := p.knot.(type) {
		case *khipu.Glue:
			if k.Fill {
				continue
			}
			c := k.Stretch
			if slack < 0 {
				c = k.Shrink
			}
			if c > 0 {
				gaps = append(gaps, gap{i, -1, int64(c)})
				total += int64(c)
			}
		case *khipu.TextBox:
			if slack < 0 || k.Stretch <= 0 || k.LetterGaps <= 0 {
				continue
			}
			c := int64(k.Stretch) / int64(k.LetterGaps)
			for j := 0; j < k.LetterGaps && c > 0; j++ {
				gaps = append(gaps, gap{i, j, c})
				total += c
			}
		}
	}
	if total == 0 {
		return false
	}
	var cum, assigned int64
	for _, g := range gaps {
		cum += g.capacity
		share := roundDiv(int64(slack)*cum, total) - assigned
		assigned += share
		p := &pieces[g.piece]
		if g.letter < 0 {
			p.width += dimen.Dimen(share)
		} else {
			p.letter[g.letter] += dimen.Dimen(share)
			p.width += dimen.Dimen(share)
		}
	}
	return true
}

func roundDiv(a, b int64) int64 {
	if (a < 0) != (b < 0) {
		return (a - b/2) / b
	}
	return (a + b/2) / b
}

// reorder reverses sequences of pieces according to their embedding levels,
// from the highest level down to the lowest odd level.
func reorder(pieces []piece, base uint8) {
	high, lowOdd := base, uint8(255)
	for _, p := range pieces {
		if p.level > high {
			high = p.level
		}
		if p.level%2 == 1 && p.level < lowOdd {
			lowOdd = p.level
		}
	}
	if lowOdd == 255 {
		return
	}
	for lvl := high; lvl >= lowOdd && lvl > 0; lvl-- {
		for i := 0; i < len(pieces); {
			if pieces[i].level < lvl {
				i++
				continue
			}
			j := i
			for j < len(pieces) && pieces[j].level >= lvl {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				pieces[a], pieces[b] = pieces[b], pieces[a]
			}
			i = j
		}
	}
}

// place appends the glyphs of a piece at x to a line.
func (ls *lineSetter) place(line *Line, p piece, x dimen.Dimen) {
	if p.span >= 0 && p.span < len(ls.run.Spans) {
		ls.decorate(line, p, x)
	}
	if p.box == nil {
		return
	}
	b := p.box
	var st text.Style
	if b.Span >= 0 && b.Span < len(ls.run.Spans) {
		st = ls.run.Spans[b.Span].Style
	}
	offsets := make([]dimen.Dimen, len(b.Glyphs))
	var o dimen.Dimen
	for i, g := range b.Glyphs {
		o += g.Kern
		offsets[i] = o
		o += g.Advance + p.letter[i]
	}
	n := len(b.Glyphs)
	for v := 0; v < n; v++ {
		i, gx := v, dimen.Dimen(0)
		if p.level%2 == 1 {
			i = n - 1 - v
			gx = x + p.width - offsets[i] - b.Glyphs[i].Advance
		} else {
			gx = x + offsets[i]
		}
		line.Glyphs = append(line.Glyphs, PositionedGlyph{
			Glyph: b.Glyphs[i],
			X:     gx,
			Size:  b.Size,
			Color: st.Color,
			Span:  b.Span,
		})
	}
}

// decorate extends or adds decoration lines for a piece.
func (ls *lineSetter) decorate(line *Line, p piece, x dimen.Dimen) {
	st := ls.run.Spans[p.span].Style
	if st.Decoration == text.NoDecoration || p.width <= 0 {
		return
	}
	thickness := dimen.Max(st.Size/16, dimen.SP)
	for _, kind := range []text.Decoration{text.Underline, text.Overline, text.LineThrough} {
		if st.Decoration&kind == 0 {
			continue
		}
		var y dimen.Dimen
		switch kind {
		case text.Underline:
			y = st.Size / 10
		case text.Overline:
			y = -st.Size.MulDiv(4, 5)
		case text.LineThrough:
			y = -st.Size / 4
		}
		extended := false
		for i := range line.Decorations {
			d := &line.Decorations[i]
			if d.Kind == kind && d.Color == st.Color && d.Rect.BotR.X == x && d.Rect.TopL.Y == y {
				d.Rect.BotR.X = x + p.width
				extended = true
			}
		}
		if !extended {
			line.Decorations = append(line.Decorations, Decoration{
				Kind:  kind,
				Rect:  dimen.RectWH(x, y, p.width, thickness),
				Color: st.Color,
			})
		}
	}
}

func (l *Line) debugString() string {
	var b strings.Builder
	for _, g := range l.Glyphs {
		fmt.Fprintf(&b, "%c@%s ", g.Rune, g.X)
	}
	return b.String()
}
