package fontregistry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Locator finds a font for a family, style and weight. Locators return an
// error wrapping font.ErrNotFound if they do not know the font.
type Locator func(family string, style xfont.Style, weight xfont.Weight) (*font.ScalableFont, error)

// Registry is a type for holding information about loaded fonts for a
// typesetter. It implements font.MetricsProvider and is safe for concurrent
// use.
type Registry struct {
	sync.RWMutex
	locators  []Locator
	fonts     map[string]*font.ScalableFont
	missing   map[string]bool
	typecases map[string]*font.TypeCase
	glyphs    map[glyphKey]font.GlyphMetrics
	kerns     map[kernKey]dimen.Dimen
	buffers   sync.Pool
	closed    bool
}

type glyphKey struct {
	font string
	r    rune
	size dimen.Dimen
}

type kernKey struct {
	font        string
	size        dimen.Dimen
	left, right font.GlyphIndex
}

var _ font.MetricsProvider = &Registry{}

// NewRegistry creates a registry. Locators are consulted in order for fonts
// which are not compiled into the binary.
func NewRegistry(locators ...Locator) *Registry {
	fr := &Registry{
		locators:  locators,
		fonts:     make(map[string]*font.ScalableFont),
		missing:   make(map[string]bool),
		typecases: make(map[string]*font.TypeCase),
		glyphs:    make(map[glyphKey]font.GlyphMetrics),
		kerns:     make(map[kernKey]dimen.Dimen),
	}
	fr.buffers.New = func() interface{} { return &sfnt.Buffer{} }
	return fr
}

// Close drops all cached fonts and metrics. A closed registry reports every
// font as missing.
func (fr *Registry) Close() {
	fr.Lock()
	defer fr.Unlock()
	fr.closed = true
	fr.fonts = make(map[string]*font.ScalableFont)
	fr.typecases = make(map[string]*font.TypeCase)
	fr.glyphs = make(map[glyphKey]font.GlyphMetrics)
	fr.kerns = make(map[kernKey]dimen.Dimen)
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name of ref as a key.
// If this key is already associated with a font, that font will not be
// overridden.
func (fr *Registry) StoreFont(ref font.Ref, f *font.ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	key := ref.Key()
	if _, ok := fr.fonts[key]; !ok {
		tracer().Debugf("registry stores font %s as %s", f.Fontname, key)
		fr.fonts[key] = f
		delete(fr.missing, key)
	}
}

// Font returns the scalable font for a reference, loading it if necessary.
func (fr *Registry) Font(ref font.Ref) (*font.ScalableFont, error) {
	key := ref.Key()
	fr.RLock()
	f, ok := fr.fonts[key]
	missing, closed := fr.missing[key], fr.closed
	fr.RUnlock()
	if ok {
		return f, nil
	}
	if missing || closed {
		return nil, font.NotFound(ref, -1)
	}
	f, err := fr.load(ref)
	fr.Lock()
	defer fr.Unlock()
	if err != nil {
		tracer().Infof("registry does not contain font %s: %v", key, err)
		fr.missing[key] = true
		return nil, font.NotFound(ref, -1)
	}
	if existing, ok := fr.fonts[key]; ok { // concurrent load won the race
		return existing, nil
	}
	fr.fonts[key] = f
	return f, nil
}

func (fr *Registry) load(ref font.Ref) (*font.ScalableFont, error) {
	if ttf, name, ok := font.PackagedFont(ref.Family, ref.Style, ref.Weight); ok {
		f, err := font.ParseOpenTypeFont(ttf)
		if err != nil {
			return nil, err
		}
		f.Fontname, f.Filepath = name, "packaged"
		tracer().Debugf("font %s resolved to packaged font %s", ref.Key(), name)
		return f, nil
	}
	for _, locate := range fr.locators {
		if f, err := locate(ref.Family, ref.Style, ref.Weight); err == nil && f != nil {
			tracer().Debugf("font %s located at %s", ref.Key(), f.Filepath)
			return f, nil
		}
	}
	return nil, font.NotFound(ref, -1)
}

// TypeCase returns a concrete typecase with a given font and size for an
// output resolution. Typecases are cached.
func (fr *Registry) TypeCase(ref font.Ref, size dimen.Dimen, dpi int) (*font.TypeCase, error) {
	tname := fmt.Sprintf("%s-%d-%d", ref.Key(), size, dpi)
	fr.RLock()
	t, ok := fr.typecases[tname]
	fr.RUnlock()
	if ok {
		return t, nil
	}
	f, err := fr.Font(ref)
	if err != nil {
		f = font.FallbackFont()
	}
	t, terr := f.PrepareCase(size, dpi)
	if terr != nil {
		return nil, terr
	}
	fr.Lock()
	fr.typecases[tname] = t
	fr.Unlock()
	tracer().Debugf("font registry caches typecase %s", tname)
	return t, err
}

// Lookup is part of interface font.MetricsProvider.
func (fr *Registry) Lookup(ref font.Ref, r rune, size dimen.Dimen, subpixel fixed.Int26_6) (font.GlyphMetrics, error) {
	key := glyphKey{font: ref.Key(), r: r, size: size}
	fr.RLock()
	m, ok := fr.glyphs[key]
	fr.RUnlock()
	if !ok {
		f, err := fr.Font(ref)
		if err != nil {
			return font.GlyphMetrics{}, err
		}
		if m, err = fr.measure(f, ref, r, size); err != nil {
			return font.GlyphMetrics{}, err
		}
		fr.Lock()
		fr.glyphs[key] = m
		fr.Unlock()
	}
	m.Outline.Subpixel = subpixel
	return m, nil
}

func (fr *Registry) measure(f *font.ScalableFont, ref font.Ref, r rune, size dimen.Dimen) (font.GlyphMetrics, error) {
	buf := fr.buffers.Get().(*sfnt.Buffer)
	defer fr.buffers.Put(buf)
	gid, err := f.SFNT.GlyphIndex(buf, r)
	if err != nil {
		return font.GlyphMetrics{}, core.WrapError(err, core.EINVALID, "glyph lookup in %s", f.Fontname)
	}
	if gid == 0 {
		return font.GlyphMetrics{}, font.NotFound(ref, r)
	}
	// measure in font units: with ppem == units per em, sfnt does not scale
	upem := f.SFNT.UnitsPerEm()
	ppem := fixed.Int26_6(upem)
	adv, err := f.SFNT.GlyphAdvance(buf, gid, ppem, xfont.HintingNone)
	if err != nil {
		return font.GlyphMetrics{}, core.WrapError(err, core.EINVALID, "glyph advance in %s", f.Fontname)
	}
	fm, err := f.SFNT.Metrics(buf, ppem, xfont.HintingNone)
	if err != nil {
		return font.GlyphMetrics{}, core.WrapError(err, core.EINVALID, "font metrics of %s", f.Fontname)
	}
	scale := func(units fixed.Int26_6) dimen.Dimen {
		return size.MulDiv(int64(units), int64(upem))
	}
	return font.GlyphMetrics{
		Glyph:   font.GlyphIndex(gid),
		Advance: scale(adv),
		Ascent:  scale(fm.Ascent),
		Descent: scale(fm.Descent),
		Outline: font.Outline{Font: ref, Glyph: font.GlyphIndex(gid), Size: size},
	}, nil
}

// Kerning is part of interface font.MetricsProvider.
func (fr *Registry) Kerning(ref font.Ref, size dimen.Dimen, left, right font.GlyphIndex) dimen.Dimen {
	key := kernKey{font: ref.Key(), size: size, left: left, right: right}
	fr.RLock()
	k, ok := fr.kerns[key]
	fr.RUnlock()
	if ok {
		return k
	}
	f, err := fr.Font(ref)
	if err != nil {
		return 0
	}
	buf := fr.buffers.Get().(*sfnt.Buffer)
	upem := f.SFNT.UnitsPerEm()
	units, err := f.SFNT.Kern(buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right),
		fixed.Int26_6(upem), xfont.HintingNone)
	fr.buffers.Put(buf)
	if err != nil {
		if !errors.Is(err, sfnt.ErrNotFound) {
			tracer().Debugf("kerning in %s: %v", f.Fontname, err)
		}
		units = 0
	}
	k = size.MulDiv(int64(units), int64(upem))
	fr.Lock()
	fr.kerns[key] = k
	fr.Unlock()
	return k
}

// LogFontList is a helper function to dump the list of known fonts and typecases
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.RLock()
	defer fr.RUnlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		tracer().Infof("typecase [%s] = %v", k, v.ScalableFontParent().Fontname)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}
