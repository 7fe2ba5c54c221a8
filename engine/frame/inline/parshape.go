package inline

import (
	"fmt"

	"github.com/npillmayer/xtl/core/dimen"
)

// ParShape is the shape of a paragraph, i.e. the length and indent of each
// of its lines. Line numbers start at 0.
type ParShape interface {
	LineLength(l int) dimen.Dimen
	LineIndent(l int) dimen.Dimen
}

type rectParShape dimen.Dimen

// RectangularParShape returns a paragraph shape with lines of equal length.
func RectangularParShape(w dimen.Dimen) ParShape {
	return rectParShape(w)
}

func (r rectParShape) LineLength(int) dimen.Dimen { return dimen.Dimen(r) }
func (r rectParShape) LineIndent(int) dimen.Dimen { return 0 }

type varyingParShape struct {
	lengths []dimen.Dimen
	indents []dimen.Dimen
}

// VaryingParShape returns a paragraph shape with individual line lengths
// and indents. For lines past the end of the lists, the last entry is
// repeated, as in TeX's \parshape.
func VaryingParShape(lengths []dimen.Dimen, indents []dimen.Dimen) ParShape {
	return varyingParShape{lengths: lengths, indents: indents}
}

func (vp varyingParShape) LineLength(l int) dimen.Dimen {
	return nth(vp.lengths, l)
}

func (vp varyingParShape) LineIndent(l int) dimen.Dimen {
	return nth(vp.indents, l)
}

func nth(d []dimen.Dimen, l int) dimen.Dimen {
	if len(d) == 0 {
		return 0
	}
	if l >= len(d) {
		return d[len(d)-1]
	}
	return d[l]
}

// --- Floats ----------------------------------------------------------------

// floatParShape is the area of a paragraph minus the areas of floats
// overlapping it. Lines whose vertical position is known occupy the bands
// in placed. Any other line l occupies a band from l·minskip to (l+1)·maxskip
// below the last placed line, which covers every position the line may
// take if line heights vary between minskip and maxskip.
type floatParShape struct {
	area    isoBox
	minskip dimen.Dimen
	maxskip dimen.Dimen
	placed  []isoBox
	left    []isoBox
	right   []isoBox
}

// FloatParShape returns a paragraph shape for a paragraph occupying area,
// narrowed by left- and right-floating boxes. Line l is assumed to occupy
// the vertical band from area.TopL.Y + l·lineskip to the next multiple of
// lineskip. Left floats increase the line's indent, right floats shorten
// the line. Floats are given in the same coordinate system as area.
//
// LayoutParagraph replaces the assumed bands by the heights of the lines it
// actually sets.
func FloatParShape(area dimen.Rect, lineskip dimen.Dimen, left, right []dimen.Rect) ParShape {
	fp := floatParShape{
		area:    rect2box(area),
		minskip: lineskip,
		maxskip: lineskip,
	}
	for _, r := range left {
		fp.left = insertBox(fp.left, rect2box(r))
	}
	for _, r := range right {
		fp.right = insertBox(fp.right, rect2box(r))
	}
	return fp
}

// skipping returns a copy of fp with lines between minskip and maxskip tall.
func (fp floatParShape) skipping(minskip, maxskip dimen.Dimen) floatParShape {
	fp.minskip, fp.maxskip = minskip, dimen.Max(minskip, maxskip)
	fp.placed = nil
	return fp
}

// placing returns a copy of fp with the vertical extent of lines fixed.
// Lines are stacked from the top of the area.
func (fp floatParShape) placing(lines []*Line) floatParShape {
	fp.placed = make([]isoBox, len(lines))
	y := fp.area.TopL.Y
	for i, line := range lines {
		fp.placed[i] = isoBox{
			TopL: dimen.Point{X: fp.area.TopL.X, Y: y},
			BotR: dimen.Point{X: fp.area.BotR.X, Y: y + dimen.Max(line.Height, 1)},
		}
		y += line.Height
	}
	return fp
}

func (fp floatParShape) band(l int) isoBox {
	if l < len(fp.placed) {
		return fp.placed[l]
	}
	top := fp.area.TopL.Y
	if n := len(fp.placed); n > 0 {
		top = fp.placed[n-1].BotR.Y
		l -= n
	}
	return isoBox{
		TopL: dimen.Point{X: fp.area.TopL.X, Y: top + dimen.Dimen(l)*fp.minskip},
		BotR: dimen.Point{X: fp.area.BotR.X, Y: top + dimen.Dimen(l+1)*dimen.Max(fp.maxskip, 1)},
	}
}

// edges returns the horizontal extent left for line l.
func (fp floatParShape) edges(l int) (dimen.Dimen, dimen.Dimen) {
	band := fp.band(l)
	x0, x1 := band.TopL.X, band.BotR.X
	for _, b := range fp.left {
		if x := intersection(band, b); x != nullbox {
			x0 = max(x0, x.BotR.X)
		}
	}
	for _, b := range fp.right {
		if x := intersection(band, b); x != nullbox {
			x1 = min(x1, x.TopL.X)
		}
	}
	return x0, max(x0, x1)
}

// LineLength is part of interface ParShape. It returns the line width for line
// number l.
func (fp floatParShape) LineLength(l int) dimen.Dimen {
	x0, x1 := fp.edges(l)
	return x1 - x0
}

// LineIndent is part of interface ParShape.
func (fp floatParShape) LineIndent(l int) dimen.Dimen {
	x0, _ := fp.edges(l)
	return x0 - fp.area.TopL.X
}

// --- Iso boxes -------------------------------------------------------------

type isoBox struct {
	TopL dimen.Point
	BotR dimen.Point
}

var nullbox = isoBox{
	TopL: dimen.Point{X: 0, Y: 0},
	BotR: dimen.Point{X: 0, Y: 0},
}

func (b isoBox) String() string {
	return fmt.Sprintf("B[(%d,%d) (%d,%d)]", b.TopL.X, b.TopL.Y, b.BotR.X, b.BotR.Y)
}

func rect2box(r dimen.Rect) isoBox {
	return isoBox{TopL: r.TopL, BotR: r.BotR}
}

// insertBox keeps boxes ordered by X.
func insertBox(a []isoBox, b isoBox) []isoBox {
	i := 0
	for _, bb := range a {
		if b.TopL.X <= bb.TopL.X {
			break
		}
		i++
	}
	a = append(a[:i], append([]isoBox{b}, a[i:]...)...)
	return a
}

func intersect(box1, box2 isoBox) bool {
	if box2 == nullbox {
		return false
	}
	return !(box1.TopL.X >= box2.BotR.X ||
		box1.BotR.X <= box2.TopL.X ||
		box1.TopL.Y >= box2.BotR.Y ||
		box1.BotR.Y <= box2.TopL.Y)
}

func intersection(box1, box2 isoBox) isoBox {
	if !intersect(box1, box2) {
		return nullbox
	}
	intersec := isoBox{
		TopL: dimen.Point{
			X: max(box1.TopL.X, box2.TopL.X),
			Y: max(box1.TopL.Y, box2.TopL.Y),
		},
		BotR: dimen.Point{
			X: min(box1.BotR.X, box2.BotR.X),
			Y: min(box1.BotR.Y, box2.BotR.Y),
		},
	}
	return intersec
}

// --- Helpers ----------------------------------------------------------

func min(a, b dimen.Dimen) dimen.Dimen {
	if a < b {
		return a
	}
	return b
}

func max(a, b dimen.Dimen) dimen.Dimen {
	if a > b {
		return a
	}
	return b
}
