/*
Package monospace implements a font metrics provider for fixed-width
output, where every character occupies one or two cells.

Cell widths follow UAX#11 (East Asian Width). The provider is useful for
terminal-like targets and for tests, where metrics should be trivially
predictable.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.fonts")
}
