package text

import (
	"fmt"
	"image/color"

	"github.com/npillmayer/cords/styled"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"golang.org/x/text/language"
)

// Direction is the direction to typeset text in.
type Direction int8

// Directions to typeset text in. Vertical directions are not supported.
const (
	LeftToRight Direction = iota
	RightToLeft
)

func (dir Direction) String() string {
	if dir == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Decoration is a set of text decoration lines.
type Decoration uint8

// Text decorations as of CSS text-decoration-line.
const (
	Underline Decoration = 1 << iota
	Overline
	LineThrough
	NoDecoration Decoration = 0
)

// WhiteSpace controls the handling of white space as of CSS property
// white-space.
type WhiteSpace uint8

// Supported values for white-space.
const (
	WhiteSpaceNormal WhiteSpace = iota // collapse spaces and newlines, wrap lines
	WhiteSpacePre                      // keep spaces and newlines, do not wrap
	WhiteSpaceNoWrap                   // collapse, but do not wrap
)

// Style is the set of properties which have to be uniform within a span.
// Styles are comparable.
type Style struct {
	Font       font.Ref
	Size       dimen.Dimen
	Color      color.RGBA
	Language   language.Tag
	Direction  Direction
	Decoration Decoration
	WhiteSpace WhiteSpace
	Link       string
}

// DefaultStyle returns a 12pt black sans-serif style for a language.
func DefaultStyle(lang language.Tag) Style {
	return Style{
		Font:     font.Ref{Family: "sans-serif"},
		Size:     12 * dimen.BP,
		Color:    color.RGBA{A: 0xff},
		Language: lang,
	}
}

func (st Style) String() string {
	return fmt.Sprintf("[%s %s %s %s]", st.Font.Key(), st.Size, st.Language, st.Direction)
}

// styleSet wraps a Style to make it usable with styled text.
type styleSet struct {
	style Style
}

// Equals is part of interface cords.styled.Style.
func (set styleSet) Equals(other styled.Style) bool {
	if o, ok := other.(styleSet); ok {
		return o.style == set.style
	}
	return false
}

// String is part of interface cords.styled.Style.
func (set styleSet) String() string {
	return set.style.String()
}

var _ styled.Style = styleSet{}
