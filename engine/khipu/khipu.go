package khipu

import (
	"fmt"
	"strings"

	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
)

// KnotType is the type of a knot.
type KnotType int8

// Knot types
const (
	KTTextBox KnotType = iota
	KTGlue
	KTKern
	KTPenalty
	KTDiscretionary
)

func (kt KnotType) String() string {
	switch kt {
	case KTTextBox:
		return "box"
	case KTGlue:
		return "glue"
	case KTKern:
		return "kern"
	case KTPenalty:
		return "penalty"
	case KTDiscretionary:
		return "discretionary"
	}
	return "?"
}

// Penalty values at or beyond these limits force or prohibit a break.
const (
	InfinityPenalty = 10000
	ForcedBreak     = -InfinityPenalty
)

// Knot is an item of a khipu.
type Knot interface {
	Type() KnotType
	W() dimen.Dimen    // natural width
	MinW() dimen.Dimen // width minus shrink
	MaxW() dimen.Dimen // width plus stretch
	String() string
}

// Glyph is a measured glyph within a text box.
type Glyph struct {
	Rune    rune
	Index   font.GlyphIndex
	Font    font.Ref    // font the glyph has been taken from
	Advance dimen.Dimen
	Kern    dimen.Dimen // kerning with the preceding glyph
	Notdef  bool
}

// TextBox is a box of glyphs which is never broken, usually a word or a
// part of a word.
type TextBox struct {
	Text           string
	Position       int // byte position within the paragraph text
	Span           int // index of the text run's span
	Glyphs         []Glyph
	Width          dimen.Dimen
	Height, Depth  dimen.Dimen // ascent and descent
	Stretch        dimen.Dimen // inter-letter stretch capacity
	Shrink         dimen.Dimen
	Level          uint8 // bidi embedding level
	LetterGaps     int   // number of gaps between glyphs
	HyphenGlyph    bool  // box is the hyphen of a discretionary
	Size           dimen.Dimen
	Font           font.Ref // requested font
	ContainsNotdef bool
}

// Type is part of interface Knot.
func (b *TextBox) Type() KnotType { return KTTextBox }

// W is part of interface Knot.
func (b *TextBox) W() dimen.Dimen { return b.Width }

// MinW is part of interface Knot.
func (b *TextBox) MinW() dimen.Dimen { return b.Width - b.Shrink }

// MaxW is part of interface Knot.
func (b *TextBox) MaxW() dimen.Dimen { return b.Width + b.Stretch }

func (b *TextBox) String() string {
	return fmt.Sprintf("\\box[%s]{%q}", b.Width, b.Text)
}

// Glue is stretchable space.
type Glue struct {
	Width    dimen.Dimen
	Stretch  dimen.Dimen
	Shrink   dimen.Dimen
	Position int
	Span     int
	Level    uint8
	Fill     bool // infinitely stretchable, as at the end of a paragraph
}

// NewGlue creates a glue item with a natural width, a shrink and a stretch
// component.
func NewGlue(w, shrink, stretch dimen.Dimen) *Glue {
	return &Glue{Width: w, Shrink: shrink, Stretch: stretch}
}

// Type is part of interface Knot.
func (g *Glue) Type() KnotType { return KTGlue }

// W is part of interface Knot.
func (g *Glue) W() dimen.Dimen { return g.Width }

// MinW is part of interface Knot.
func (g *Glue) MinW() dimen.Dimen { return g.Width - g.Shrink }

// MaxW is part of interface Knot.
func (g *Glue) MaxW() dimen.Dimen {
	if g.Fill {
		return dimen.Fil
	}
	return g.Width + g.Stretch
}

func (g *Glue) String() string {
	if g.Fill {
		return "\\glue[fil]"
	}
	return fmt.Sprintf("\\glue[%s-%s+%s]", g.Width, g.Shrink, g.Stretch)
}

// Kern is a fixed space. Kerns are not discarded at line starts.
type Kern struct {
	Width    dimen.Dimen
	Position int
}

// Type is part of interface Knot.
func (k *Kern) Type() KnotType { return KTKern }

// W is part of interface Knot.
func (k *Kern) W() dimen.Dimen { return k.Width }

// MinW is part of interface Knot.
func (k *Kern) MinW() dimen.Dimen { return k.Width }

// MaxW is part of interface Knot.
func (k *Kern) MaxW() dimen.Dimen { return k.Width }

func (k *Kern) String() string {
	return fmt.Sprintf("\\kern[%s]", k.Width)
}

// Penalty marks a possible line break. Negative penalties encourage a
// break, positive ones discourage it.
type Penalty struct {
	Value    int
	Position int // byte position of the break in the paragraph text
}

// Type is part of interface Knot.
func (p *Penalty) Type() KnotType { return KTPenalty }

// W is part of interface Knot.
func (p *Penalty) W() dimen.Dimen { return 0 }

// MinW is part of interface Knot.
func (p *Penalty) MinW() dimen.Dimen { return 0 }

// MaxW is part of interface Knot.
func (p *Penalty) MaxW() dimen.Dimen { return 0 }

func (p *Penalty) String() string {
	return fmt.Sprintf("\\penalty[%d]", p.Value)
}

// IsForced is true for penalties which force a line break.
func (p *Penalty) IsForced() bool {
	return p.Value <= ForcedBreak
}

// Discretionary is a possible break within a word. If the line is broken
// here, the pre-break box (usually a hyphen) is appended to the line.
type Discretionary struct {
	Pre      *TextBox
	Penalty  int
	Position int
}

// Type is part of interface Knot.
func (d *Discretionary) Type() KnotType { return KTDiscretionary }

// W is part of interface Knot. The width of an unbroken discretionary is 0.
func (d *Discretionary) W() dimen.Dimen { return 0 }

// MinW is part of interface Knot.
func (d *Discretionary) MinW() dimen.Dimen { return 0 }

// MaxW is part of interface Knot.
func (d *Discretionary) MaxW() dimen.Dimen { return 0 }

// PreWidth returns the width added to a line broken at d.
func (d *Discretionary) PreWidth() dimen.Dimen {
	if d.Pre == nil {
		return 0
	}
	return d.Pre.Width
}

func (d *Discretionary) String() string {
	return fmt.Sprintf("\\discretionary[%d]", d.Penalty)
}

// IsDiscardable is true for knots which vanish at the start of a line.
func IsDiscardable(k Knot) bool {
	t := k.Type()
	return t == KTGlue || t == KTPenalty || t == KTDiscretionary
}

// IsBreakpoint is true for knots where a line may be broken.
func IsBreakpoint(k Knot) bool {
	switch kn := k.(type) {
	case *Penalty:
		return kn.Value < InfinityPenalty
	case *Discretionary:
		return kn.Penalty < InfinityPenalty
	}
	return false
}

// --- Khipu -----------------------------------------------------------------

// Khipu is a string of knots.
type Khipu struct {
	knots []Knot
}

// NewKhipu creates an empty khipu.
func NewKhipu() *Khipu {
	return &Khipu{knots: make([]Knot, 0, 32)}
}

// AppendKnot appends a knot at the end of the khipu.
func (kh *Khipu) AppendKnot(k Knot) *Khipu {
	kh.knots = append(kh.knots, k)
	return kh
}

// AppendKhipu appends the knots of another khipu.
func (kh *Khipu) AppendKhipu(k *Khipu) *Khipu {
	if k != nil {
		kh.knots = append(kh.knots, k.knots...)
	}
	return kh
}

// Length returns the number of knots.
func (kh *Khipu) Length() int {
	return len(kh.knots)
}

// At returns knot #i.
func (kh *Khipu) At(i int) Knot {
	return kh.knots[i]
}

// Knots returns the knots from position from (incl.) to position to (excl.).
// The result must not be modified.
func (kh *Khipu) Knots(from, to int) []Knot {
	return kh.knots[from:to]
}

// Text returns the text of the boxes between from and to.
func (kh *Khipu) Text(from, to int) string {
	var b strings.Builder
	for _, k := range kh.knots[from:to] {
		switch kn := k.(type) {
		case *TextBox:
			if !kn.HyphenGlyph {
				b.WriteString(kn.Text)
			}
		case *Glue:
			if !kn.Fill {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

func (kh *Khipu) String() string {
	var b strings.Builder
	for _, k := range kh.knots {
		b.WriteString(k.String())
	}
	return b.String()
}

// Cursor iterates over the knots of a khipu.
type Cursor struct {
	khipu *Khipu
	pos   int
}

// NewCursor creates a cursor positioned before the first knot.
func NewCursor(kh *Khipu) *Cursor {
	return &Cursor{khipu: kh, pos: -1}
}

// Next moves to the next knot. It returns false at the end of the khipu.
func (c *Cursor) Next() bool {
	if c.pos+1 >= c.khipu.Length() {
		return false
	}
	c.pos++
	return true
}

// Knot returns the current knot.
func (c *Cursor) Knot() Knot {
	return c.khipu.knots[c.pos]
}

// Position returns the index of the current knot.
func (c *Cursor) Position() int {
	return c.pos
}

// AsTextBox returns the current knot as a text box, or nil.
func (c *Cursor) AsTextBox() *TextBox {
	b, _ := c.khipu.knots[c.pos].(*TextBox)
	return b
}
