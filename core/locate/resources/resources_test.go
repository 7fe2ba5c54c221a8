package resources

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	"github.com/npillmayer/xtl/core/font/fontregistry"
	xfont "golang.org/x/image/font"
)

const fcList = `
/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf: DejaVu Sans:style=Bold
/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf: DejaVu Sans:style=Book
/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc: Noto Sans CJK JP:style=Regular
/usr/share/fonts/truetype/gentium/GentiumPlus-I.ttf: Gentium Plus,Gentium Plus Italic:style=Italic
`

func TestParseFontConfigList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.resources")
	defer teardown()
	//
	descs, err := parseFontConfigList(strings.NewReader(fcList))
	if err != nil {
		t.Fatal(err)
	}
	if len(descs) != 3 {
		t.Fatalf("expected 3 font descriptors (TTC skipped), have %d", len(descs))
	}
	if descs[0].Variants[0] != "bold" || descs[1].Variants[0] != "regular" {
		t.Errorf("expected variants bold and regular, are %v and %v", descs[0].Variants, descs[1].Variants)
	}
	if descs[2].Family != "Gentium Plus" || descs[2].Variants[0] != "italic" {
		t.Errorf("expected Gentium Plus italic, is %+v", descs[2])
	}
	d, v, c := font.ClosestMatch(descs, "dejavu sans", xfont.StyleNormal, xfont.WeightBold)
	if c <= font.LowConfidence || v != "bold" || !strings.HasSuffix(d.Path, "DejaVuSans-Bold.ttf") {
		t.Errorf("expected DejaVu Sans bold to match, is %s|%s (%d)", d.Path, v, c)
	}
}

func TestSystemFontsUnconfigured(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.resources")
	defer teardown()
	//
	conf := testconfig.Conf{}
	locate := SystemFonts(conf)
	_, err := locate("No Such Font Qwxyz", xfont.StyleNormal, xfont.WeightNormal)
	if core.Code(err) != core.EMISSING {
		t.Errorf("expected font to be missing, error is %v", err)
	}
	if _, err := CacheDirPath(conf); err == nil {
		t.Errorf("expected cache directory to require an app-key")
	}
	if err := NewFontConfig(conf).Err(); err != nil {
		t.Errorf("expected unconfigured fontconfig not to be an error, is %v", err)
	}
	fc := NewFontConfig(testconfig.Conf{"fontconfig": "fc-list", "app-key": "xtl-test"})
	if core.Code(fc.Err()) != core.EINVALID {
		t.Errorf("expected relative fc-list path to be invalid, error is %v", fc.Err())
	}
}

func TestResolveTypeCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.resources")
	defer teardown()
	//
	reg := fontregistry.NewRegistry(FontFiles("/nonexisting/Foo-Bold.ttf"))
	defer reg.Close()
	tc, err := ResolveTypeCase(reg, font.Ref{Family: "Go"}, 11*dimen.BP, 72).TypeCase()
	if err != nil {
		t.Fatal(err)
	}
	if tc.Size() != 11*dimen.BP {
		t.Errorf("expected type case of 11bp, is %s", tc.Size())
	}
	_, err = ResolveTypeCase(reg, font.Ref{Family: "Foo", Weight: xfont.WeightBold}, 11*dimen.BP, 72).TypeCase()
	if err == nil {
		t.Errorf("expected Foo to fail loading")
	}
}

func TestLoadImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.resources")
	defer teardown()
	//
	img, err := ResolveImage("nonexisting.png", t.TempDir()).Image()
	if core.Code(err) != core.EMISSING {
		t.Errorf("expected error for missing image")
	}
	if img == nil || img.Bounds().Dx() != 64 {
		t.Fatalf("expected placeholder image for missing image")
	}
	path := t.TempDir() + "/placeholder.png"
	if err = EncodePNG(Placeholder(10, 20), path); err != nil {
		t.Fatal(err)
	}
	img, err = ResolveImage(path, "").Image()
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dy() != 20 {
		t.Errorf("expected height of loaded image to be 20, is %d", img.Bounds().Dy())
	}
}
