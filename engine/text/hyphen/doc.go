/*
Package hyphen implements hyphenation with Liang patterns.

Patterns are the ones of TeX's \patterns{…} primitive, e.g. "hy3ph". They are
stored in a trie and applied to words as described in Frank Liang's thesis
"Word Hy-phen-a-tion by Com-put-er" (1983).

The package ships a small built-in pattern set for English. Clients may load
complete pattern files with LoadPatterns.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package hyphen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.text'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.text")
}
