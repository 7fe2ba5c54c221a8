/*
Package option implements matching on optional values.

Option types are used for CSS values, which may be set, unset, or carry a
special keyword like `auto`. Matching lets clients write decision tables
instead of cascades of if-statements:

    w, err := width.Match(option.Of{
        option.None: containingWidth,
        css.Auto:    containingWidth - margins,
        option.Some: width.Unwrap(),
    })

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package option

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.core'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.core")
}
