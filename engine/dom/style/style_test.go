package style

import (
	"image/color"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestPropertyMap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.style")
	defer teardown()
	//
	var pmap PropertyMap
	pmap.Set("Color", " red ")
	if p := pmap.Property("color"); p != "red" {
		t.Errorf("expected color to be red, is %q", p)
	}
	pmap.Set("color", NullStyle)
	if _, ok := pmap.Get("color"); ok {
		t.Errorf("expected color to be removed")
	}
	var nilmap *PropertyMap
	assert.Equal(t, 0, nilmap.Len())
	assert.Equal(t, NullStyle, nilmap.Property("color"))
}

func TestColors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.style")
	defer teardown()
	//
	for p, c := range map[Property]color.RGBA{
		"red":                {0xff, 0, 0, 0xff},
		"#0f0":               {0, 0xff, 0, 0xff},
		"#102030":            {0x10, 0x20, 0x30, 0xff},
		"rgb(0, 0, 255)":     {0, 0, 0xff, 0xff},
		"rgb(100%, 0%, 0%)":  {0xff, 0, 0, 0xff},
		"rgba(255,255,255,0)": {0, 0, 0, 0},
		"transparent":        {0, 0, 0, 0},
	} {
		x, ok := p.Color()
		if !ok || x != c {
			t.Errorf("expected %q to be %v, is %v (%v)", p, c, x, ok)
		}
	}
	for _, p := range []Property{"currentcolor", "#12", "rgb(1,2)", "nocolor"} {
		if _, ok := p.Color(); ok {
			t.Errorf("expected %q not to be a color", p)
		}
	}
}

func TestShorthands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.style")
	defer teardown()
	//
	kvs, ok := ExpandShorthand("margin", "1px 2px 3px")
	if !ok || len(kvs) != 4 {
		t.Fatalf("expected margin to expand to 4 longhands, have %v", kvs)
	}
	assert.Equal(t, KeyValue{"margin-left", "2px"}, kvs[3])
	assert.Equal(t, KeyValue{"margin-bottom", "3px"}, kvs[2])
	kvs, _ = ExpandShorthand("border", "1px solid red")
	if len(kvs) != 12 {
		t.Fatalf("expected border to expand to 12 longhands, have %d", len(kvs))
	}
	for _, kv := range kvs {
		if !IsSupported(kv.Key) {
			t.Errorf("expected expanded property %s to be supported", kv.Key)
		}
	}
	kvs, _ = ExpandShorthand("border-style", "dashed")
	assert.Equal(t, KeyValue{"border-right-style", "dashed"}, kvs[1])
	if _, ok := ExpandShorthand("color", "red"); ok {
		t.Errorf("expected color not to be a shorthand")
	}
}

func TestComputeStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.style")
	defer teardown()
	//
	root := NewPropertyMap(4)
	root.Set("color", "blue")
	root.Set("margin-top", "10px")
	root.Set("text-decoration", "underline")
	rootStyles := ComputeStyles(nil, root)
	if rootStyles.Len() != len(SupportedProperties()) {
		t.Errorf("expected all supported properties to be set")
	}
	child := NewPropertyMap(4)
	child.Set("text-decoration", "line-through")
	child.Set("margin-bottom", "inherit")
	childStyles := ComputeStyles(rootStyles, child)
	assert.Equal(t, Property("blue"), childStyles.Property("color"))
	assert.Equal(t, Property("0"), childStyles.Property("margin-top"))
	assert.Equal(t, Property("0"), childStyles.Property("margin-bottom"))
	assert.Equal(t, Property("underline line-through"), childStyles.Property("text-decoration"))
}
