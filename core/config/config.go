/*
Package config holds the configuration surface of the layout pipeline.

Options are plain values. Clients either fill them in directly or load them
from a schuko configuration, where keys live under the prefix "layout.":

    layout.justify-mode        greedy | optimal
    layout.gamma               float, 1.0 = no correction
    layout.subpixel-precision  int, subpixel positions per pixel
    layout.hyphenation         on | off
    layout.language            BCP 47 tag
    layout.tolerance           overflow tolerance, CSS length
    layout.dpi                 raster resolution
    layout.fallback-fonts      comma separated font families

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/parameters"
	"golang.org/x/text/language"
)

// tracer traces with key 'xtl.core'.
func tracer() tracing.Trace {
	return tracing.Select("xtl.core")
}

// JustifyMode selects the line breaking algorithm.
type JustifyMode uint8

// Line breaking algorithms.
const (
	JustifyGreedy  JustifyMode = iota // first fit with lookahead
	JustifyOptimal                    // total-fit, Knuth & Plass
)

func (m JustifyMode) String() string {
	if m == JustifyOptimal {
		return "optimal"
	}
	return "greedy"
}

// Options is the configuration of a layout run.
type Options struct {
	JustifyMode       JustifyMode
	Gamma             float64      // display gamma, 1.0 = no correction
	SubpixelPrecision int          // subpixel positions per pixel, 1 = whole pixels
	Hyphenation       bool         // hyphenate words using patterns
	Language          language.Tag // default language of text
	Tolerance         dimen.Dimen  // lines may exceed the target width by this much
	DPI               int          // resolution of the output raster
	FallbackFonts     []string     // font families tried before the built-in fallback
}

// Defaults returns the default options.
func Defaults() Options {
	return Options{
		JustifyMode:       JustifyGreedy,
		Gamma:             1.0,
		SubpixelPrecision: 4,
		Language:          language.English,
		DPI:               72,
	}
}

// FromConfiguration reads options from a schuko configuration. Missing keys
// keep their defaults, malformed values are reported and keep their
// defaults as well.
func FromConfiguration(conf schuko.Configuration) (Options, core.Diagnostics) {
	opts := Defaults()
	var diags core.Diagnostics
	if conf == nil {
		return opts, diags
	}
	invalid := func(key, value string) {
		diags.Warnf(core.InvalidValue, core.Location{Path: key},
			"configuration value %q for %s is invalid", value, key)
	}
	if s := get(conf, "justify-mode"); s != "" {
		switch strings.ToLower(s) {
		case "greedy":
			opts.JustifyMode = JustifyGreedy
		case "optimal":
			opts.JustifyMode = JustifyOptimal
		default:
			invalid("layout.justify-mode", s)
		}
	}
	if s := get(conf, "gamma"); s != "" {
		if g, err := strconv.ParseFloat(s, 64); err == nil && g > 0 {
			opts.Gamma = g
		} else {
			invalid("layout.gamma", s)
		}
	}
	if s := get(conf, "subpixel-precision"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 64 {
			opts.SubpixelPrecision = n
		} else {
			invalid("layout.subpixel-precision", s)
		}
	}
	if s := get(conf, "hyphenation"); s != "" {
		switch strings.ToLower(s) {
		case "on", "true", "yes", "1":
			opts.Hyphenation = true
		case "off", "false", "no", "0":
			opts.Hyphenation = false
		default:
			invalid("layout.hyphenation", s)
		}
	}
	if s := get(conf, "language"); s != "" {
		if tag, err := language.Parse(s); err == nil {
			opts.Language = tag
		} else {
			invalid("layout.language", s)
		}
	}
	if s := get(conf, "tolerance"); s != "" {
		if d, pcnt, err := dimen.ParseDimen(s); err == nil && !pcnt && d >= 0 {
			opts.Tolerance = d
		} else {
			invalid("layout.tolerance", s)
		}
	}
	if s := get(conf, "dpi"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			opts.DPI = n
		} else {
			invalid("layout.dpi", s)
		}
	}
	if s := get(conf, "fallback-fonts"); s != "" {
		for _, f := range strings.Split(s, ",") {
			if f = strings.TrimSpace(f); f != "" {
				opts.FallbackFonts = append(opts.FallbackFonts, f)
			}
		}
	}
	tracer().Debugf("layout options: %+v", opts)
	return opts, diags
}

func get(conf schuko.Configuration, key string) string {
	return strings.TrimSpace(conf.GetString("layout." + key))
}

// Registers creates typesetting registers initialized from the options.
func (opts Options) Registers() *parameters.TypesettingRegisters {
	regs := parameters.NewTypesettingRegisters()
	regs.Push(parameters.P_LANGUAGE, opts.Language.String())
	regs.Push(parameters.P_HYPHENATE, opts.Hyphenation)
	regs.Push(parameters.P_OVERFLOWTOLERANCE, opts.Tolerance)
	return regs
}
