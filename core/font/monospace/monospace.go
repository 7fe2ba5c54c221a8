package monospace

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"golang.org/x/image/math/fixed"
)

// Provider is a metrics provider with a fixed advance per cell.
// It is immutable and therefore safe for concurrent use.
type Provider struct {
	cell    int64 // advance per cell in 1/1000 em
	context *uax11.Context
	missing map[rune]bool
}

var _ font.MetricsProvider = &Provider{}

// Option configures a provider.
type Option func(*Provider)

// CellWidth sets the advance of a cell in 1/1000 of the font size.
// The default is 600, i.e. a 10pt font advances 6pt per character.
func CellWidth(permille int) Option {
	return func(p *Provider) {
		if permille > 0 {
			p.cell = int64(permille)
		}
	}
}

// Context sets the UAX#11 context for ambiguous-width characters.
func Context(ctx *uax11.Context) Option {
	return func(p *Provider) {
		if ctx != nil {
			p.context = ctx
		}
	}
}

// Missing declares characters the provider reports as not found. This
// lets clients simulate incomplete fonts.
func Missing(runes ...rune) Option {
	return func(p *Provider) {
		for _, r := range runes {
			p.missing[r] = true
		}
	}
}

// NewProvider creates a monospace metrics provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		cell:    600,
		context: uax11.LatinContext,
		missing: make(map[rune]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	grapheme.SetupGraphemeClasses()
	return p
}

// Lookup is part of interface font.MetricsProvider.
func (p *Provider) Lookup(ref font.Ref, r rune, size dimen.Dimen, subpixel fixed.Int26_6) (font.GlyphMetrics, error) {
	if p.missing[r] {
		return font.GlyphMetrics{}, font.NotFound(ref, r)
	}
	cells := p.Cells(r)
	m := font.GlyphMetrics{
		Glyph:   font.GlyphIndex(r & 0xffff),
		Advance: size.MulDiv(p.cell*int64(cells), 1000),
		Ascent:  size.MulDiv(4, 5),
		Descent: size.MulDiv(1, 5),
	}
	m.Outline = font.Outline{Font: ref, Glyph: m.Glyph, Size: size, Subpixel: subpixel}
	return m, nil
}

// Kerning is part of interface font.MetricsProvider. Monospace fonts do
// not kern.
func (p *Provider) Kerning(font.Ref, dimen.Dimen, font.GlyphIndex, font.GlyphIndex) dimen.Dimen {
	return 0
}

// Cells returns the number of cells a character occupies: 0 for combining
// marks and control characters, 2 for wide East Asian characters, 1 otherwise.
func (p *Provider) Cells(r rune) int {
	if unicode.Is(unicode.Mn, r) || unicode.IsControl(r) {
		return 0
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	w := uax11.Width(buf[:n], p.context)
	if w < 0 {
		tracer().Debugf("negative width for %U", r)
		return 0
	}
	return w
}
