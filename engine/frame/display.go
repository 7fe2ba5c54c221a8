package frame

import "github.com/npillmayer/xtl/engine/dom/style/css"

// BoxKind is the type of a box, derived from CSS property "display".
type BoxKind uint8

// Box kinds. Anonymous boxes are generated for runs of inline content
// between block-level siblings.
const (
	NoKind         BoxKind = iota // unset or error condition
	BlockBox                      // block-level box, establishes or joins a block formatting context
	InlineBox                     // inline box, content goes into a paragraph
	InlineBlockBox                // atomic inline-level box
	ListItemBox                   // block box with a marker
	AnonymousBox                  // anonymous block wrapping inline content
	ReplacedBox                   // image or other replaced content
)

// BoxKindFor returns the box kind for a display mode.
// For display mode "none", NoKind is returned.
func BoxKindFor(d css.Display) BoxKind {
	switch d {
	case css.DisplayBlock:
		return BlockBox
	case css.DisplayListItem:
		return ListItemBox
	case css.DisplayInlineBlock:
		return InlineBlockBox
	case css.DisplayInline:
		return InlineBox
	}
	return NoKind
}

// IsBlockLevel is true for boxes which take part in a block formatting
// context.
func (k BoxKind) IsBlockLevel() bool {
	return k == BlockBox || k == ListItemBox || k == AnonymousBox
}

func (k BoxKind) String() string {
	switch k {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case InlineBlockBox:
		return "inline-block"
	case ListItemBox:
		return "list-item"
	case AnonymousBox:
		return "anonymous"
	case ReplacedBox:
		return "replaced"
	}
	return "none"
}

// Symbol returns a Unicode symbol for a box kind.
func (k BoxKind) Symbol() string {
	switch k {
	case BlockBox:
		return "\u25a9"
	case InlineBox:
		return "\u25ba"
	case InlineBlockBox:
		return "\u25a4"
	case ListItemBox:
		return "\u25a3"
	case AnonymousBox:
		return "\u25a7"
	case ReplacedBox:
		return "\u25f0"
	}
	return "\u2718"
}
