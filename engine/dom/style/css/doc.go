/*
Package css interprets raw CSS property values for layout.

Values of style.Property are plain strings. This package turns them into
option types (DimenT for lengths) and enums (display, float, clear, border
styles), which may be matched with package core/option:

    w, _ := css.DimenOption(p).Match(option.Of{
        option.None: "unset",
        css.Auto:    "auto",
        option.Some: "length",
    })

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xtl.style'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.style")
}
