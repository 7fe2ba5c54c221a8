/*
Package frame holds the boxes produced by layout.

A box is a rectangle on the canvas. Every box is generated by an element of
the styled document, except for anonymous boxes, which wrap runs of inline
content between block-level siblings.

Boxes follow the CSS box model: a content box surrounded by padding, border
and margins. Boxes live in an Arena and are referenced by handles of type
BoxID; a box owns its children by handle and has no pointer to its parent.
Leaf inline content is owned by a box as a set of typeset lines (package
frame/inline).

Widths are resolved top-down from the width of the containing block,
heights bottom-up from the content. Vertical margins of adjacent boxes
collapse.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frame

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.frame'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.frame")
}
