package resources

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // register decoder
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"github.com/npillmayer/xtl/core/font/fontregistry"
	xfont "golang.org/x/image/font"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	fontResourceType
	imageResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case imageResourceType:
		s = fmt.Sprintf("image not found: %s, loaded placeholder image instead", res)
	case fontResourceType:
		s = fmt.Sprintf("font not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, s)
}

// --- Fonts -----------------------------------------------------------------

// SystemFonts returns a locator for fonts installed on the local system.
// If fontconfig is configured (see FontConfig), its font list is searched
// first, then the platform font directories.
func SystemFonts(conf schuko.Configuration) fontregistry.Locator {
	fc := NewFontConfig(conf)
	return func(family string, style xfont.Style, weight xfont.Weight) (*font.ScalableFont, error) {
		if desc, variant := fc.Find(family, style, weight); desc.Path != "" {
			tracer().Debugf("%s is a fontconfig font, variant %s", family, variant)
			return loadFont(desc.Path, family)
		}
		for _, name := range fontFileCandidates(family, style, weight) {
			fpath, err := findfont.Find(name)
			if err == nil && fpath != "" && font.Matches(fpath, family, style, weight) {
				tracer().Debugf("%s is a system font: %s", family, fpath)
				return loadFont(fpath, family)
			}
		}
		return nil, NotFound(family, fontResourceType)
	}
}

// FontFiles returns a locator which loads fonts from a list of font files.
// The family is matched against the file names.
func FontFiles(paths ...string) fontregistry.Locator {
	return func(family string, style xfont.Style, weight xfont.Weight) (*font.ScalableFont, error) {
		for _, p := range paths {
			if font.Matches(p, family, style, weight) {
				return loadFont(p, family)
			}
		}
		return nil, NotFound(family, fontResourceType)
	}
}

func loadFont(fpath, family string) (*font.ScalableFont, error) {
	f, err := font.LoadOpenTypeFont(fpath)
	if err != nil {
		return nil, err
	}
	f.Fontname = family
	return f, nil
}

func fontFileCandidates(family string, style xfont.Style, weight xfont.Weight) []string {
	base := strings.ReplaceAll(family, " ", "")
	var cands []string
	if weight >= xfont.WeightBold && style != xfont.StyleNormal {
		cands = append(cands, base+"-BoldItalic.ttf")
	} else if weight >= xfont.WeightBold {
		cands = append(cands, base+"-Bold.ttf")
	} else if style != xfont.StyleNormal {
		cands = append(cands, base+"-Italic.ttf")
	}
	return append(cands, base+"-Regular.ttf", base+".ttf", base+".otf")
}

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

// TypeCasePromise is returned by ResolveTypeCase.
type TypeCasePromise interface {
	TypeCase() (*font.TypeCase, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase() (*font.TypeCase, error) {
	return loader.await(context.Background())
}

// ResolveTypeCase resolves a font type case with a given size in the
// background. Fonts not yet present in the registry will be located with
// the registry's locators.
func ResolveTypeCase(reg *fontregistry.Registry, ref font.Ref, size dimen.Dimen, dpi int) TypeCasePromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		result.font, result.err = reg.TypeCase(ref, size, dpi)
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

// --- Images ---------------------------------------------------------------

type imgPlusErr struct {
	img image.Image
	err error
}

// ImagePromise is returned by ResolveImage.
type ImagePromise interface {
	Image() (image.Image, error)
}

type imageLoader struct {
	await func(ctx context.Context) (image.Image, error)
}

func (loader imageLoader) Image() (image.Image, error) {
	return loader.await(context.Background())
}

// ResolveImage loads a PNG or JPEG image file in the background. Relative
// names are resolved against base. If the image cannot be loaded, the
// promise returns a placeholder image together with an error.
func ResolveImage(name string, base string) ImagePromise {
	ch := make(chan imgPlusErr, 1)
	go func(ch chan<- imgPlusErr) {
		result := imgPlusErr{}
		p := name
		if !filepath.IsAbs(p) && base != "" {
			p = filepath.Join(base, p)
		}
		file, err := os.Open(p)
		if err == nil {
			defer file.Close()
			result.img, _, err = image.Decode(file)
		}
		if err != nil {
			tracer().Infof("cannot load image %s: %v", p, err)
			result.img = Placeholder(64, 64)
			result.err = NotFound(name, imageResourceType)
		}
		ch <- result
		close(ch)
	}(ch)
	return imageLoader{
		await: func(ctx context.Context) (image.Image, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.img, r.err
			}
		},
	}
}

// Placeholder creates a light gray image with a darker frame.
func Placeholder(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: 0x99}), image.Point{}, draw.Src)
	inner := img.Bounds().Inset(1)
	draw.Draw(img, inner, image.NewUniform(color.Gray{Y: 0xdd}), image.Point{}, draw.Src)
	return img
}

// EncodePNG is a small helper for writing images, mainly for debugging.
func EncodePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create image file %s", path)
	}
	defer f.Close()
	return png.Encode(f, img)
}
