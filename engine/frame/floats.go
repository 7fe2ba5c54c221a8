package frame

import (
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/engine/dom/style/css"
)

// FloatList holds the margin boxes of the floats placed within a block
// formatting context, in canvas coordinates.
type FloatList struct {
	left, right []dimen.Rect
}

// Add registers the margin box r of a float.
func (l *FloatList) Add(side css.Float, r dimen.Rect) {
	switch side {
	case css.FloatLeft:
		l.left = append(l.left, r)
	case css.FloatRight:
		l.right = append(l.right, r)
	}
}

// Left returns the left floats placed so far.
func (l *FloatList) Left() []dimen.Rect {
	return l.left
}

// Right returns the right floats placed so far.
func (l *FloatList) Right() []dimen.Rect {
	return l.right
}

// Len returns the number of floats.
func (l *FloatList) Len() int {
	return len(l.left) + len(l.right)
}

// Bottom returns the lowest bottom edge of all floats, or 0.
func (l *FloatList) Bottom() dimen.Dimen {
	return dimen.Max(bottom(l.left), bottom(l.right))
}

// ClearY returns the vertical position a box with property clear has to
// move down to, starting from y.
func (l *FloatList) ClearY(clear css.Clear, y dimen.Dimen) dimen.Dimen {
	if clear&css.ClearLeft != 0 {
		y = dimen.Max(y, bottom(l.left))
	}
	if clear&css.ClearRight != 0 {
		y = dimen.Max(y, bottom(l.right))
	}
	return y
}

// Place finds the top left corner for a new float of size w×h, not higher
// than y, within the horizontal band x0…x1. The float is moved down until
// it fits beside the floats already placed. If it does not fit anywhere, it
// is placed below all other floats.
func (l *FloatList) Place(side css.Float, w, h, y, x0, x1 dimen.Dimen) dimen.Point {
	for {
		left, right := l.Band(y, h, x0, x1)
		if right-left >= w || (left == x0 && right == x1) {
			if side == css.FloatRight {
				return dimen.Point{X: right - w, Y: y}
			}
			return dimen.Point{X: left, Y: y}
		}
		next := l.nextBottom(y)
		if next <= y {
			if side == css.FloatRight {
				return dimen.Point{X: x1 - w, Y: y}
			}
			return dimen.Point{X: x0, Y: y}
		}
		y = next
	}
}

// Band returns the horizontal space left free by floats in the vertical
// band from y to y+h.
func (l *FloatList) Band(y, h, x0, x1 dimen.Dimen) (dimen.Dimen, dimen.Dimen) {
	left, right := x0, x1
	for _, r := range l.left {
		if overlaps(r, y, h) {
			left = dimen.Max(left, r.BotR.X)
		}
	}
	for _, r := range l.right {
		if overlaps(r, y, h) {
			right = dimen.Min(right, r.TopL.X)
		}
	}
	if right < left {
		right = left
	}
	return left, right
}

// nextBottom returns the smallest float bottom edge below y, or y if
// there is none.
func (l *FloatList) nextBottom(y dimen.Dimen) dimen.Dimen {
	next := dimen.Dimen(dimen.Infinity)
	for _, floats := range [][]dimen.Rect{l.left, l.right} {
		for _, r := range floats {
			if r.BotR.Y > y && r.BotR.Y < next {
				next = r.BotR.Y
			}
		}
	}
	if next == dimen.Infinity {
		return y
	}
	return next
}

func overlaps(r dimen.Rect, y, h dimen.Dimen) bool {
	if h <= 0 {
		h = 1
	}
	return r.TopL.Y < y+h && r.BotR.Y > y
}

func bottom(rects []dimen.Rect) dimen.Dimen {
	var b dimen.Dimen
	for _, r := range rects {
		b = dimen.Max(b, r.BotR.Y)
	}
	return b
}
