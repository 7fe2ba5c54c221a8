/*
Package text builds text runs from styled text.

A text run is the input of the paragraph layouter: a paragraph of text,
segmented into spans of uniform style, plus the line-break opportunities
between code-points. Break opportunities are resolved with the Unicode
line breaking algorithm (UAX#14), complemented by soft hyphens and optional
pattern-based hyphenation.

Building a text run never fails. Text in scripts which would need complex
shaping is kept, but the spans are flagged as degraded and a diagnostic is
recorded.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package text

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.text'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.text")
}
