// Package dimen implements dimensions and units.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Dimen is a fixed-point dimension type.
// Values are in scaled big points (different from TeX), i.e. 1/65536 of a
// big point. All layout arithmetic is done in Dimen, floating point
// values appear only at the boundaries (font files, gamma).
type Dimen int32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled point = BP / 65536
	BP   Dimen = 65536   // big point (PDF) = 1/72 inch
	PX   Dimen = 65536   // CSS pixel, identical to BP at 72 dpi
	PT   Dimen = 65291   // printers point 1/72.27 inch
	MM   Dimen = 185771  // millimeters
	CM   Dimen = 1857710 // centimeters
	IN   Dimen = 4718592 // inch
)

// Infinity is the largest possible dimension
const Infinity = math.MaxInt32

// Some very stretchable dimensions
const Fil Dimen = Infinity - 3
const Fill Dimen = Infinity - 2
const Filll Dimen = Infinity - 1

// Stringer implementation.
func (d Dimen) String() string {
	return fmt.Sprintf("%dsp", int32(d))
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(BP)
}

// FromPoints converts a floating point value in big points to a dimension,
// rounding to the nearest scaled point.
func FromPoints(pts float64) Dimen {
	return Dimen(math.Round(pts * float64(BP)))
}

// MulDiv returns d*num/den, computed in 64 bit and rounded to the nearest
// scaled point. den must not be 0.
func (d Dimen) MulDiv(num, den int64) Dimen {
	x := int64(d) * num
	if (x < 0) != (den < 0) {
		return Dimen((x - den/2) / den)
	}
	return Dimen((x + den/2) / den)
}

// Fixed converts d to 26.6 fixed point pixels (1/64 pixel) for a raster
// with the given resolution in dots per inch. Rounds to the nearest 1/64.
func (d Dimen) Fixed(dpi int) fixed.Int26_6 {
	if dpi <= 0 {
		dpi = 72
	}
	num := int64(d) * 64 * int64(dpi)
	den := int64(72) * int64(BP)
	if num < 0 {
		return fixed.Int26_6((num - den/2) / den)
	}
	return fixed.Int26_6((num + den/2) / den)
}

// FromFixed converts 26.6 fixed point pixels at resolution dpi back to a
// dimension.
func FromFixed(f fixed.Int26_6, dpi int) Dimen {
	if dpi <= 0 {
		dpi = 72
	}
	num := int64(f) * 72 * int64(BP)
	den := int64(64) * int64(dpi)
	if num < 0 {
		return Dimen((num - den/2) / den)
	}
	return Dimen((num + den/2) / den)
}

// Point is a point on a canvas. Y grows downwards.
type Point struct {
	X, Y Dimen
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Rect is a rectangle (on a canvas).
type Rect struct {
	TopL, BotR Point
}

// RectWH creates a rectangle from its top-left corner and its extent.
func RectWH(x, y, w, h Dimen) Rect {
	return Rect{TopL: Point{x, y}, BotR: Point{x + w, y + h}}
}

// Width returns the width of a rectangle, i.e. the difference between x-coordinates
// of bottom-right and top-left corner.
func (r Rect) Width() Dimen {
	return r.BotR.X - r.TopL.X
}

// Height returns the height of a rectangle, i.e. the difference between y-coordinates
// of bottom-right and top-left corner.
func (r Rect) Height() Dimen {
	return r.BotR.Y - r.TopL.Y
}

// Empty is true if r has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Translate moves r by vector v.
func (r Rect) Translate(v Point) Rect {
	return Rect{TopL: r.TopL.Add(v), BotR: r.BotR.Add(v)}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f,%.2f)-(%.2f,%.2f)", r.TopL.X.Points(), r.TopL.Y.Points(),
		r.BotR.X.Points(), r.BotR.Y.Points())
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+))(%|[a-zA-Z]{2})?$`)

// ErrFormat is returned for strings which are not dimensions.
var ErrFormat = errors.New("format error parsing dimension")

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit.
// If a percentage value is given (`80%`), the second return value will be true
// and the dimension holds the percentage as an integer number of scaled points.
//
//     12px   1.5pt   -3mm   80%   0
//
func ParseDimen(s string) (Dimen, bool, error) {
	d := dimenPattern.FindStringSubmatch(strings.TrimSpace(s))
	if len(d) < 2 {
		return 0, false, ErrFormat
	}
	scale := SP
	ispcnt := false
	if len(d) > 2 {
		switch strings.ToLower(d[2]) {
		case "pt":
			scale = PT
		case "mm":
			scale = MM
		case "bp", "px":
			scale = BP
		case "cm":
			scale = CM
		case "in":
			scale = IN
		case "sp", "":
			scale = SP
		case "%":
			scale, ispcnt = 1, true
		default:
			return 0, false, ErrFormat
		}
	}
	f, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, false, ErrFormat
	}
	x := math.Round(f * float64(scale))
	if x > Infinity || x < -Infinity {
		return 0, false, ErrFormat
	}
	return Dimen(x), ispcnt, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}

// Abs returns |d|.
func Abs(d Dimen) Dimen {
	if d < 0 {
		return -d
	}
	return d
}
