package font

import (
	"errors"
	"fmt"

	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Ref references a font by family, style and weight. It is a value type
// and may be used as a map key.
type Ref struct {
	Family string
	Style  xfont.Style
	Weight xfont.Weight
}

// Key returns the normalized name of a font reference.
func (ref Ref) Key() string {
	return NormalizeFontname(ref.Family, ref.Style, ref.Weight)
}

func (ref Ref) String() string {
	return ref.Key()
}

// GlyphIndex is the index of a glyph within a font.
type GlyphIndex uint16

// NotdefGlyph is the glyph every font has and which is displayed for
// missing characters.
const NotdefGlyph GlyphIndex = 0

// Outline is a handle for a glyph outline at a certain size and subpixel
// offset. Output drivers use it to request rasterized glyphs.
type Outline struct {
	Font     Ref
	Glyph    GlyphIndex
	Size     dimen.Dimen
	Subpixel fixed.Int26_6 // horizontal offset, 0 ≤ Subpixel < 64
	Notdef   bool          // built-in box, not from a font
}

// GlyphMetrics is the result of a metrics lookup.
type GlyphMetrics struct {
	Glyph   GlyphIndex
	Advance dimen.Dimen
	Ascent  dimen.Dimen // of the font at the requested size
	Descent dimen.Dimen // positive value below the baseline
	Outline Outline
}

// ErrNotFound is returned by metrics providers if a font or a glyph is not
// available.
var ErrNotFound = errors.New("font or glyph not found")

// MetricsProvider supplies glyph metrics. Providers must be safe for
// concurrent use. A lookup miss may block while a font is loaded.
type MetricsProvider interface {
	// Lookup returns metrics for a code-point in a font. subpixel is the
	// horizontal fraction of a pixel the glyph will be placed at, in 1/64.
	// Returns an error wrapping ErrNotFound if the font does not exist or
	// does not have a glyph for r.
	Lookup(ref Ref, r rune, size dimen.Dimen, subpixel fixed.Int26_6) (GlyphMetrics, error)
	// Kerning returns the kerning adjustment between two glyphs.
	Kerning(ref Ref, size dimen.Dimen, left, right GlyphIndex) dimen.Dimen
}

// NotFound creates an error for a missing font or glyph.
func NotFound(ref Ref, r rune) error {
	if r < 0 {
		return core.WrapError(ErrNotFound, core.EMISSING, "font %s not found", ref.Key())
	}
	return core.WrapError(ErrNotFound, core.EMISSING, "font %s has no glyph for %U", ref.Key(), r)
}

// Notdef returns the metrics of the built-in fallback glyph: an empty
// box half an em wide, sitting on the baseline.
func Notdef(size dimen.Dimen) GlyphMetrics {
	return GlyphMetrics{
		Glyph:   NotdefGlyph,
		Advance: size / 2,
		Ascent:  size.MulDiv(4, 5),
		Descent: size.MulDiv(1, 5),
		Outline: Outline{Glyph: NotdefGlyph, Size: size, Notdef: true},
	}
}

// Fallback is the result of walking a fallback chain.
type Fallback struct {
	Metrics GlyphMetrics
	Ref     Ref
	Index   int // position in the chain, -1 for the built-in .notdef
}

// IsNotdef is true if no font in the chain could supply the glyph.
func (fb Fallback) IsNotdef() bool {
	return fb.Index < 0
}

// ResolveGlyph walks a chain of fonts and returns the metrics from the first
// font which has a glyph for r. The chain is usually the requested font
// followed by the configured fallback fonts. If no font has the glyph, the
// built-in .notdef box is returned. ResolveGlyph never fails.
func ResolveGlyph(p MetricsProvider, chain []Ref, r rune, size dimen.Dimen,
	subpixel fixed.Int26_6) Fallback {
	//
	for i, ref := range chain {
		m, err := p.Lookup(ref, r, size, subpixel)
		if err == nil {
			return Fallback{Metrics: m, Ref: ref, Index: i}
		}
		if !errors.Is(err, ErrNotFound) {
			tracer().Errorf("font lookup for %U in %s: %v", r, ref.Key(), err)
		}
	}
	fb := Fallback{Metrics: Notdef(size), Index: -1}
	if len(chain) > 0 {
		fb.Ref = chain[0]
		fb.Metrics.Outline.Font = chain[0]
	}
	fb.Metrics.Outline.Subpixel = subpixel
	return fb
}

// DescribeFallback creates a message for a fallback result.
func DescribeFallback(chain []Ref, r rune, fb Fallback) string {
	if fb.IsNotdef() {
		return fmt.Sprintf("no font has a glyph for %U, using .notdef", r)
	}
	return fmt.Sprintf("glyph for %U taken from fallback font %s instead of %s",
		r, fb.Ref.Key(), chain[0].Key())
}
