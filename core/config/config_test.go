package config

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/parameters"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestDefaults(t *testing.T) {
	opts := Defaults()
	assert.Equal(t, JustifyGreedy, opts.JustifyMode)
	assert.Equal(t, 1.0, opts.Gamma)
	assert.Equal(t, language.English, opts.Language)
	assert.False(t, opts.Hyphenation)
}

func TestFromConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.core")
	defer teardown()
	//
	conf := testconfig.Conf{
		"layout.justify-mode":       "optimal",
		"layout.gamma":              "2.2",
		"layout.subpixel-precision": "10",
		"layout.hyphenation":        "on",
		"layout.language":           "de-CH",
		"layout.tolerance":          "2px",
		"layout.fallback-fonts":     "Go Mono, DejaVu Sans",
	}
	opts, diags := FromConfiguration(conf)
	assert.Empty(t, diags)
	assert.Equal(t, JustifyOptimal, opts.JustifyMode)
	assert.Equal(t, 2.2, opts.Gamma)
	assert.Equal(t, 10, opts.SubpixelPrecision)
	assert.True(t, opts.Hyphenation)
	assert.Equal(t, "de-CH", opts.Language.String())
	assert.Equal(t, 2*dimen.PX, opts.Tolerance)
	assert.Equal(t, []string{"Go Mono", "DejaVu Sans"}, opts.FallbackFonts)
	regs := opts.Registers()
	assert.Equal(t, "de-CH", regs.S(parameters.P_LANGUAGE))
	assert.True(t, regs.B(parameters.P_HYPHENATE))
}

func TestInvalidConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.core")
	defer teardown()
	//
	conf := testconfig.Conf{
		"layout.justify-mode": "best",
		"layout.gamma":        "-1",
	}
	opts, diags := FromConfiguration(conf)
	assert.Equal(t, 2, diags.Count(core.InvalidValue))
	assert.Equal(t, JustifyGreedy, opts.JustifyMode)
	assert.Equal(t, 1.0, opts.Gamma)
}
