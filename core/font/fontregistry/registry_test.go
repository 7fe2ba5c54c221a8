package fontregistry

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/font"
	xfont "golang.org/x/image/font"
)

func TestRegistryLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.fonts")
	defer teardown()
	//
	reg := NewRegistry()
	defer reg.Close()
	ref := font.Ref{Family: "sans-serif"}
	m, err := reg.Lookup(ref, 'M', 10*dimen.BP, 0)
	if err != nil {
		t.Fatal(err)
	}
	if m.Advance <= 0 || m.Advance > 10*dimen.BP {
		t.Errorf("expected advance of M to be within (0,1em], is %s", m.Advance)
	}
	if m.Ascent <= 0 || m.Descent <= 0 {
		t.Errorf("expected positive ascent and descent, are %s/%s", m.Ascent, m.Descent)
	}
	m2, _ := reg.Lookup(ref, 'M', 20*dimen.BP, 32)
	if d := m2.Advance - 2*m.Advance; d < -1 || d > 1 {
		t.Errorf("expected advance to scale with size, %s vs %s", m2.Advance, m.Advance)
	}
	if m2.Outline.Subpixel != 32 {
		t.Errorf("expected subpixel offset to be recorded in outline handle")
	}
	_, err = reg.Lookup(ref, '\U0001F600', 10*dimen.BP, 0)
	if !errors.Is(err, font.ErrNotFound) {
		t.Errorf("expected emoji to be missing from Go font, err = %v", err)
	}
}

func TestRegistryLocator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.fonts")
	defer teardown()
	//
	calls := 0
	locator := func(family string, style xfont.Style, weight xfont.Weight) (*font.ScalableFont, error) {
		calls++
		if family == "Special" {
			return font.FallbackFont(), nil
		}
		return nil, font.NotFound(font.Ref{Family: family}, -1)
	}
	reg := NewRegistry(locator)
	if _, err := reg.Font(font.Ref{Family: "Special"}); err != nil {
		t.Errorf("expected locator to supply font, err = %v", err)
	}
	if _, err := reg.Font(font.Ref{Family: "Nonexisting"}); !errors.Is(err, font.ErrNotFound) {
		t.Errorf("expected not found error, is %v", err)
	}
	if _, err := reg.Font(font.Ref{Family: "Nonexisting"}); err == nil {
		t.Errorf("expected missing font to stay missing")
	}
	if calls != 2 {
		t.Errorf("expected locator to be called twice, was called %d times", calls)
	}
}

func TestRegistryConcurrentReads(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.fonts")
	defer teardown()
	//
	reg := NewRegistry()
	ref := font.Ref{Family: "Go", Weight: xfont.WeightBold}
	want, err := reg.Lookup(ref, 'g', 12*dimen.BP, 0)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, r := range "glyph metrics" {
				m, err := reg.Lookup(ref, r, 12*dimen.BP, 0)
				if err != nil {
					errs <- err.Error()
					return
				}
				if r == 'g' && m.Advance != want.Advance {
					errs <- "inconsistent advance"
					return
				}
				reg.Kerning(ref, 12*dimen.BP, m.Glyph, m.Glyph)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
