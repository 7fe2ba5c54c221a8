/*
Package layout lays out a styled document tree into boxes.

Overview

Layout walks a styled tree in document order and creates boxes in a
frame.Arena. Block-level elements are stacked vertically within block
formatting contexts, with adjoining vertical margins collapsed. Runs of
inline content are set as paragraphs by package inline, with line lengths
narrowed by floats. The result is flattened into a display list in paint
order, which is the input for the glyph positioner and output drivers.

Supported are the CSS properties of package style. Inline-blocks and
images are laid out as blocks, interrupting the surrounding inline content.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.frame'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.frame")
}
