package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/config"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a.css", "b.css"}, splitList(" a.css, ,b.css"))
	assert.Nil(t, splitList(""))
}

func TestRenderDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.cli")
	defer teardown()
	//
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.html")
	sheet := filepath.Join(dir, "extra.css")
	err := os.WriteFile(doc, []byte(`<html><body>
<h1>Title</h1>
<p class="x">The quick brown fox jumps over the lazy dog.</p>
<div><span>unclosed</div>
</body></html>`), 0o644)
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(sheet, []byte(`p.x { color: navy; foo: bar }`), 0o644))
	r := &renderer{
		opts:   config.Defaults(),
		conf:   testconfig.Conf{},
		sheets: []string{sheet},
		width:  300 * dimen.PX,
		base:   dir,
	}
	var diags core.Diagnostics
	img, result, err := r.render(doc, &diags)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.True(t, result.Arena.Len() > 3)
	assert.Equal(t, 1, diags.Count(core.SkippedSubtree))
	assert.Equal(t, 1, diags.Count(core.UnsupportedProperty))
	assert.NoError(t, writeDot(result, filepath.Join(dir, "boxes.dot")))
	_, _, err = r.render(filepath.Join(dir, "missing.html"), &diags)
	assert.Error(t, err)
}

func TestStreamAndReplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.cli")
	defer teardown()
	//
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.html")
	err := os.WriteFile(doc, []byte(`<html><body><p style="border: 1px solid red">Hello</p></body></html>`), 0o644)
	assert.NoError(t, err)
	r := &renderer{
		opts:   config.Defaults(),
		conf:   testconfig.Conf{},
		width:  200 * dimen.PX,
		base:   dir,
		stream: filepath.Join(dir, "doc.yaml"),
	}
	var diags core.Diagnostics
	img, _, err := r.render(doc, &diags)
	if err != nil {
		t.Fatal(err)
	}
	replayed, err := r.replay(r.stream)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, img.Bounds(), replayed.Bounds())
	assert.Equal(t, img.(*image.RGBA).Pix, replayed.(*image.RGBA).Pix)
	_, err = r.replay(doc)
	assert.Error(t, err)
}
