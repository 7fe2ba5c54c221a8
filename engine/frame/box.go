package frame

/*
BSD License

Copyright (c) 2017–2021, Norbert Pillmayer

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
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/option"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/frame/inline"
)

// For padding, margins, etc. 4-way values always start at the top and travel
// clockwise.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// Box type, following the CSS box model. All dimensions are fixed; they are
// resolved from a Dimensions specification by the layout.
type Box struct {
	Kind        BoxKind
	Path        string         // element path of the generating element, "" for anonymous boxes
	TopL        dimen.Point    // top left corner of the content box, in canvas coordinates
	W, H        dimen.Dimen    // size of the content box
	Padding     [4]dimen.Dimen // inside of border
	BorderWidth [4]dimen.Dimen // thickness of border
	Margins     [4]dimen.Dimen // outside of border
	Style       BoxStyle
	Children    []BoxID
	Text        *inline.Paragraph // leaf inline content, lines relative to TopL
	Marker      *inline.Line      // list item marker
	MarkerAt    dimen.Point       // origin of the marker's baseline
	Image       image.Image       // content of replaced elements
	Overflow    bool              // content exceeds the box
}

// BoxStyle holds the visual styling of a box.
type BoxStyle struct {
	Display     css.Display
	Float       css.Float
	Clear       css.Clear
	Background  color.RGBA // transparent if alpha is 0
	BorderColor [4]color.RGBA
	BorderStyle [4]css.BorderStyle
}

// --- Handling of box dimensions --------------------------------------------

// DebugString returns a textual representation of a box's dimensions.
// Intended for debugging.
func (box *Box) DebugString() string {
	s := fmt.Sprintf("box %s %q {\n   x=%v, y=%v, w=%v, h=%v\n", box.Kind, box.Path,
		box.TopL.X, box.TopL.Y, box.W, box.H)
	s += fmt.Sprintf("   p.top=%v, p.right=%v, p.bottom=%v, p.left=%v\n",
		box.Padding[Top], box.Padding[Right],
		box.Padding[Bottom], box.Padding[Left])
	s += fmt.Sprintf("   b.top=%v, b.right=%v, b.bottom=%v, b.left=%v\n",
		box.BorderWidth[Top], box.BorderWidth[Right],
		box.BorderWidth[Bottom], box.BorderWidth[Left])
	s += fmt.Sprintf("   m.top=%v, m.right=%v, m.bottom=%v, m.left=%v\n",
		box.Margins[Top], box.Margins[Right],
		box.Margins[Bottom], box.Margins[Left])
	s += "}"
	return s
}

// ContentBox returns the content rectangle of a box.
func (box *Box) ContentBox() dimen.Rect {
	return dimen.RectWH(box.TopL.X, box.TopL.Y, box.W, box.H)
}

// PaddingBox returns the content rectangle enlarged by the padding. This is
// the area a background is painted in.
func (box *Box) PaddingBox() dimen.Rect {
	return grow(box.ContentBox(), box.Padding)
}

// BorderBox returns the rectangle of a box including padding and border.
func (box *Box) BorderBox() dimen.Rect {
	return grow(box.PaddingBox(), box.BorderWidth)
}

// MarginBox returns the rectangle of a box including margins.
func (box *Box) MarginBox() dimen.Rect {
	return grow(box.BorderBox(), box.Margins)
}

func grow(r dimen.Rect, by [4]dimen.Dimen) dimen.Rect {
	r.TopL.X -= by[Left]
	r.TopL.Y -= by[Top]
	r.BotR.X += by[Right]
	r.BotR.Y += by[Bottom]
	return r
}

// DecorationWidth returns the cumulated horizontal width of padding and
// border, plus margins if includeMargins is set.
func (box *Box) DecorationWidth(includeMargins bool) dimen.Dimen {
	w := box.Padding[Left] + box.Padding[Right] + box.BorderWidth[Left] + box.BorderWidth[Right]
	if includeMargins {
		w += box.Margins[Left] + box.Margins[Right]
	}
	return w
}

// DecorationHeight is the vertical counterpart of DecorationWidth.
func (box *Box) DecorationHeight(includeMargins bool) dimen.Dimen {
	h := box.Padding[Top] + box.Padding[Bottom] + box.BorderWidth[Top] + box.BorderWidth[Bottom]
	if includeMargins {
		h += box.Margins[Top] + box.Margins[Bottom]
	}
	return h
}

// TotalWidth returns the overall width of a box, including margins.
func (box *Box) TotalWidth() dimen.Dimen {
	return box.W + box.DecorationWidth(true)
}

// TotalHeight returns the overall height of a box, including margins.
func (box *Box) TotalHeight() dimen.Dimen {
	return box.H + box.DecorationHeight(true)
}

// --- Specified dimensions --------------------------------------------------

// Dimensions holds the specified (CSS) dimensions of a box. Values may be
// relative or `auto` and are fixed by FixDimensionsFromEnclosingWidth.
type Dimensions struct {
	W, H        css.DimenT
	MinW, MaxW  css.DimenT
	Padding     [4]css.DimenT
	BorderWidth [4]css.DimenT
	Margins     [4]css.DimenT
	RTL         bool // direction of the containing block, decides over-constrained margins
}

// InitEmptyDimensions initializes padding, border and margins to 0 and W
// and H to auto.
func InitEmptyDimensions(dims *Dimensions) *Dimensions {
	if dims == nil {
		dims = &Dimensions{}
	}
	for dir := Top; dir <= Left; dir++ {
		dims.Padding[dir] = css.SomeDimen(0)
		dims.BorderWidth[dir] = css.SomeDimen(0)
		dims.Margins[dir] = css.SomeDimen(0)
	}
	dims.W = css.AutoDimen()
	dims.H = css.AutoDimen()
	return dims
}

// --- API for constraint width solving --------------------------------------

// ErrUnderspecified is returned if a dimension calculation cannot be completed
// because the input values are underspecified.
var ErrUnderspecified = errors.New("box width dimensions are underspecified")

// FixDimensionsFromEnclosingWidth calculates the horizontal dimensions of a
// box from the width of the enclosing box.
//
// This will distribute space according to the equation (ref. CSS spec):
//
//     margin-left + border-width-left + padding-left + width +
//       padding-right + border-width-right + margin-right = width of containing block
//
// Percentages are resolved against enclosingWidth, font-relative units with
// basis. Vertical padding, borders and margins are fixed as well; a height
// given as a fixed value is copied to box.H.
//
// If shrinkTo is not nil, an `auto` width is not stretched to fill the
// enclosing width, but shrunk to fit the preferred width returned by
// shrinkTo (used for floats and inline-blocks). For these boxes, margins are
// never adjusted to fill the enclosing width.
//
// Negative values for padding and border widths are illegal and replaced by 0.
// An `auto` width never becomes negative. The returned error is non-nil if
// the result had to be corrected.
func FixDimensionsFromEnclosingWidth(box *Box, dims *Dimensions, enclosingWidth dimen.Dimen,
	basis css.Basis, shrinkTo func(available dimen.Dimen) dimen.Dimen) error {
	//
	tracer().Debugf("fix constraint dimensions, enclosing = %v", enclosingWidth)
	basis.Containing = enclosingWidth
	var err error
	for dir := Top; dir <= Left; dir++ {
		box.Padding[dir] = nonNegative(dims.Padding[dir].ResolveOr(basis, 0), &err)
		box.BorderWidth[dir] = nonNegative(dims.BorderWidth[dir].ResolveOr(basis, 0), &err)
		box.Margins[dir] = dims.Margins[dir].ResolveOr(basis, 0) // auto is 0 for now
	}
	inner := box.DecorationWidth(false)
	autoL, autoR := dims.Margins[Left].IsAuto(), dims.Margins[Right].IsAuto()
	w, _ := dims.W.Match(option.Of{
		option.None: nil, // defaults to `auto`
		css.Auto:    nil,
		option.Some: func(interface{}) (interface{}, error) {
			if d, ok := dims.W.Resolve(basis); ok {
				return d, nil
			}
			return nil, nil
		},
	})
	if width, ok := w.(dimen.Dimen); ok {
		box.W = clampWidth(dims, width, basis)
		if shrinkTo == nil { // floats keep their margins, auto ones are 0
			distributeHorizontalMarginSpace(box, enclosingWidth, autoL, autoR, dims.RTL)
		}
		return err
	}
	// Spec: If 'width' is set to 'auto', any other 'auto' values become '0'
	// and 'width' follows from the resulting equality.
	available := enclosingWidth - inner - box.Margins[Left] - box.Margins[Right]
	if available < 0 {
		available = 0
	}
	if shrinkTo != nil {
		box.W = clampWidth(dims, dimen.Min(shrinkTo(available), available), basis)
	} else {
		box.W = clampWidth(dims, available, basis)
	}
	if box.W != available && shrinkTo == nil {
		distributeHorizontalMarginSpace(box, enclosingWidth, autoL, autoR, dims.RTL)
	}
	return err
}

// FixHeight sets box.H from a specified height or, for `auto`, from the
// height of the content.
func FixHeight(box *Box, dims *Dimensions, contentHeight dimen.Dimen, basis css.Basis) {
	// percentages of an auto-height containing block compute to auto
	if d, ok := dims.H.Resolve(basis); ok && !dims.H.IsPercent() {
		box.H = nonNegative(d, nil)
		return
	}
	box.H = contentHeight
}

func clampWidth(dims *Dimensions, w dimen.Dimen, basis css.Basis) dimen.Dimen {
	if hi, ok := dims.MaxW.Resolve(basis); ok && w > hi {
		w = hi
	}
	if lo, ok := dims.MinW.Resolve(basis); ok && w < lo {
		w = lo
	}
	return nonNegative(w, nil)
}

// distributeHorizontalMarginSpace distributes space into left and right margins
// after the border-box has been fixed.
func distributeHorizontalMarginSpace(box *Box, enclosing dimen.Dimen, autoL, autoR, rtl bool) {
	remaining := enclosing - box.W - box.DecorationWidth(false)
	switch {
	case autoL && autoR:
		box.Margins[Left] = remaining / 2
		box.Margins[Right] = remaining - box.Margins[Left]
	case autoL:
		box.Margins[Left] = remaining - box.Margins[Right]
	case autoR:
		box.Margins[Right] = remaining - box.Margins[Left]
	case rtl: // over-constrained
		box.Margins[Left] = remaining - box.Margins[Right]
	default:
		box.Margins[Right] = remaining - box.Margins[Left]
	}
}

func nonNegative(d dimen.Dimen, err *error) dimen.Dimen {
	if d < 0 {
		if err != nil {
			*err = ErrIllegalDimension
		}
		return 0
	}
	return d
}

// ErrIllegalDimension is returned if a box has negative padding or border
// widths.
var ErrIllegalDimension = errors.New("illegal negative dimension replaced by 0")

// --- Margin collapsing -----------------------------------------------------

// CollapseMargins returns the collapsed margin of adjoining vertical margins.
// If all margins are positive, the largest one wins. Otherwise the most
// negative margin is added to the largest positive margin.
func CollapseMargins(margins ...dimen.Dimen) dimen.Dimen {
	var maxPos, minNeg dimen.Dimen
	for _, m := range margins {
		if m > maxPos {
			maxPos = m
		} else if m < minNeg {
			minNeg = m
		}
	}
	return maxPos + minNeg
}

// CanCollapseTop is true if the top margin of a box adjoins the top margin
// of its first in-flow child, i.e. no border or padding separates them.
func (box *Box) CanCollapseTop() bool {
	return box.BorderWidth[Top] == 0 && box.Padding[Top] == 0
}

// CanCollapseBottom is true if the bottom margin of a box adjoins the bottom
// margin of its last in-flow child.
func (box *Box) CanCollapseBottom(dims *Dimensions) bool {
	return box.BorderWidth[Bottom] == 0 && box.Padding[Bottom] == 0 &&
		(dims == nil || dims.H.IsNone() || dims.H.IsAuto())
}
