package css

import (
	"strconv"
	"strings"

	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"github.com/npillmayer/xtl/engine/dom/style"
)

// Display is an enum type for the CSS display property. Only the outer
// display types the layout engine supports are distinguished.
type Display uint8

// Enum values for type Display.
const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayInlineBlock
	DisplayListItem
	DisplayNone
)

var displayNames = map[string]Display{
	"inline":       DisplayInline,
	"block":        DisplayBlock,
	"inline-block": DisplayInlineBlock,
	"list-item":    DisplayListItem,
	"none":         DisplayNone,
	"flow-root":    DisplayBlock,
	"table":        DisplayBlock,
	"flex":         DisplayBlock,
	"grid":         DisplayBlock,
}

func (d Display) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayInlineBlock:
		return "inline-block"
	case DisplayListItem:
		return "list-item"
	case DisplayNone:
		return "none"
	}
	return "inline"
}

// IsBlockLevel is true for display types which take part in a block
// formatting context.
func (d Display) IsBlockLevel() bool {
	return d == DisplayBlock || d == DisplayListItem
}

// DisplayOf interprets a display property. Display types which the layout
// engine does not support (table, flex, grid, …) are mapped to block,
// unknown values to inline. The second return value is false for unknown
// values.
func DisplayOf(p style.Property) (Display, bool) {
	d, ok := displayNames[keyword(p)]
	return d, ok
}

// Float is an enum type for the CSS float property.
type Float uint8

// Enum values for type Float.
const (
	FloatNone Float = iota
	FloatLeft
	FloatRight
)

func (f Float) String() string {
	switch f {
	case FloatLeft:
		return "left"
	case FloatRight:
		return "right"
	}
	return "none"
}

// FloatOf interprets a float property. `inline-start` and `inline-end` are
// resolved with respect to direction rtl.
func FloatOf(p style.Property, rtl bool) Float {
	switch keyword(p) {
	case "left":
		return FloatLeft
	case "right":
		return FloatRight
	case "inline-start":
		if rtl {
			return FloatRight
		}
		return FloatLeft
	case "inline-end":
		if rtl {
			return FloatLeft
		}
		return FloatRight
	}
	return FloatNone
}

// Clear is an enum type for the CSS clear property.
type Clear uint8

// Enum values for type Clear, usable as flags.
const (
	ClearNone  Clear = 0
	ClearLeft  Clear = 1
	ClearRight Clear = 2
	ClearBoth  Clear = ClearLeft | ClearRight
)

// ClearOf interprets a clear property.
func ClearOf(p style.Property) Clear {
	switch keyword(p) {
	case "left":
		return ClearLeft
	case "right":
		return ClearRight
	case "both":
		return ClearBoth
	}
	return ClearNone
}

// BorderStyle is an enum type for the CSS border-style properties.
// Styles other than solid, dashed, dotted and double are drawn solid.
type BorderStyle uint8

// Enum values for type BorderStyle.
const (
	BorderNone BorderStyle = iota
	BorderSolid
	BorderDashed
	BorderDotted
	BorderDouble
)

func (bs BorderStyle) String() string {
	switch bs {
	case BorderSolid:
		return "solid"
	case BorderDashed:
		return "dashed"
	case BorderDotted:
		return "dotted"
	case BorderDouble:
		return "double"
	}
	return "none"
}

// BorderStyleOf interprets a border style property.
func BorderStyleOf(p style.Property) BorderStyle {
	switch keyword(p) {
	case "", "none", "hidden":
		return BorderNone
	case "dashed":
		return BorderDashed
	case "dotted":
		return BorderDotted
	case "double":
		return BorderDouble
	}
	return BorderSolid
}

// BorderWidth interprets a border width property, including the keywords
// thin, medium and thick.
func BorderWidth(p style.Property) DimenT {
	switch keyword(p) {
	case "thin":
		return SomeDimen(dimen.PX)
	case "medium":
		return SomeDimen(3 * dimen.PX)
	case "thick":
		return SomeDimen(5 * dimen.PX)
	}
	return DimenOption(p)
}

// DefaultFontSize is the size of CSS keyword `medium`.
const DefaultFontSize = 16 * dimen.PX

var fontSizeKeywords = map[string]int64{ // in 1/8 of medium
	"xx-small": 5,
	"x-small":  6,
	"small":    7,
	"medium":   8,
	"large":    9,
	"x-large":  12,
	"xx-large": 16,
}

// FontSize resolves a font-size property against the font size of the
// parent element. Keywords scale DefaultFontSize, `smaller` and `larger`
// scale the parent size. Returns false for unparsable values, together with
// the parent size.
func FontSize(p style.Property, parent, root dimen.Dimen) (dimen.Dimen, bool) {
	k := keyword(p)
	if n, ok := fontSizeKeywords[k]; ok {
		return DefaultFontSize.MulDiv(n, 8), true
	}
	switch k {
	case "smaller":
		return parent.MulDiv(5, 6), true
	case "larger":
		return parent.MulDiv(6, 5), true
	}
	d, err := ParseDimen(k)
	if err != nil {
		return parent, false
	}
	size, _ := d.Resolve(Basis{Containing: parent, FontSize: parent, RootFontSize: root})
	if size <= 0 {
		return parent, false
	}
	return size, true
}

// LineHeight resolves a line-height property. `normal` returns 0 and true,
// meaning that the line height is determined by the fonts. Unitless numbers
// are factors of the font size.
func LineHeight(p style.Property, fontSize dimen.Dimen) (dimen.Dimen, bool) {
	k := keyword(p)
	if k == "normal" || k == "" {
		return 0, true
	}
	if f, err := strconv.ParseFloat(k, 64); err == nil && f >= 0 {
		return fontSize.MulDiv(int64(dimen.FromPoints(f)), int64(dimen.BP)), true
	}
	d, err := ParseDimen(k)
	if err != nil {
		return 0, false
	}
	return d.Resolve(Basis{Containing: fontSize, FontSize: fontSize})
}

// FontRef creates a font reference from the font properties of a styled
// node. Only the first family of a font-family list is used; more
// families are returned as fallbacks.
func FontRef(styles *style.PropertyMap) (font.Ref, []font.Ref) {
	weight := font.WeightFromCSS(string(styles.Property("font-weight")))
	fstyle := font.StyleFromCSS(string(styles.Property("font-style")))
	families := FontFamilies(styles.Property("font-family"))
	if len(families) == 0 {
		families = []string{"serif"}
	}
	ref := font.Ref{Family: families[0], Style: fstyle, Weight: weight}
	var fallbacks []font.Ref
	for _, f := range families[1:] {
		fallbacks = append(fallbacks, font.Ref{Family: f, Style: fstyle, Weight: weight})
	}
	return ref, fallbacks
}

// FontFamilies splits a font-family list, removing quotes.
func FontFamilies(p style.Property) []string {
	var families []string
	for _, f := range strings.Split(string(p), ",") {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		if f != "" {
			families = append(families, f)
		}
	}
	return families
}

func keyword(p style.Property) string {
	return strings.ToLower(strings.TrimSpace(string(p)))
}
