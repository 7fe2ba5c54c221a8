/*
Package inline sets paragraphs of text into lines.

A paragraph is first encoded as a khipu (see package khipu), then broken
into lines, either by a first-fit breaker with lookahead or by a total-fit
breaker in the spirit of Knuth & Plass. Line lengths and indents are
governed by a paragraph shape, which may vary from line to line, e.g. if
floats narrow the available space. Finally every line is set: justified or
aligned, its glyphs positioned and reordered for bidirectional text.

_________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.frame'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.frame")
}
