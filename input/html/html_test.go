package html

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/engine/dom/cssom"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func parse(t *testing.T, doc string) (*html.Node, core.Diagnostics) {
	root, diags, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	return root, diags
}

// elements returns the tags of the element children of n.
func elements(n *html.Node) []string {
	var tags []string
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			tags = append(tags, ch.Data)
		}
	}
	return tags
}

func body(t *testing.T, doc *html.Node) *html.Node {
	root := child(doc, "html")
	if root == nil {
		t.Fatalf("expected document to have an html element")
	}
	b := child(root, "body")
	if b == nil {
		t.Fatalf("expected document to have a body element")
	}
	return b
}

func TestWellFormed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.input")
	defer teardown()
	//
	doc, diags := parse(t, `<!DOCTYPE html>
<html><head><title>T</title></head>
<body><div><p>one</p><p>two</p></div></body></html>`)
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, have %v", diags)
	}
	assert.Equal(t, []string{"head", "body"}, elements(child(doc, "html")))
	div := child(body(t, doc), "div")
	if assert.NotNil(t, div) {
		assert.Equal(t, []string{"p", "p"}, elements(div))
	}
}

func TestFragmentGetsWrappers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.input")
	defer teardown()
	//
	doc, diags := parse(t, `<p>Hello</p>`)
	assert.Equal(t, 0, len(diags))
	p := child(body(t, doc), "p")
	if assert.NotNil(t, p) && assert.NotNil(t, p.FirstChild) {
		assert.Equal(t, "Hello", p.FirstChild.Data)
	}
	doc, _ = parse(t, `just text`)
	if b := body(t, doc); assert.NotNil(t, b.FirstChild) {
		assert.Equal(t, html.TextNode, b.FirstChild.Type)
	}
	doc, _ = parse(t, ``)
	body(t, doc)
}

func TestUnclosedElementIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.input")
	defer teardown()
	//
	doc, diags := parse(t, `<html><body>
<div><span>bad</div>
<p>ok</p>
</body></html>`)
	if n := diags.Count(core.SkippedSubtree); n != 1 {
		t.Fatalf("expected 1 skipped subtree, have %d", n)
	}
	d := diags[0]
	assert.Equal(t, core.SeverityError, d.Severity)
	assert.Equal(t, 2, d.Location.Line)
	assert.Equal(t, 6, d.Location.Column)
	assert.Equal(t, "html/body/div/span", d.Location.Path)
	b := body(t, doc)
	assert.Equal(t, []string{"div", "p"}, elements(b))
	assert.Nil(t, child(b, "div").FirstChild)
}

func TestUnclosedAtEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.input")
	defer teardown()
	//
	doc, diags := parse(t, `<p>kept</p><div>text`)
	assert.Equal(t, 1, diags.Count(core.SkippedSubtree))
	assert.Equal(t, "html/body/div", diags[0].Location.Path)
	assert.Equal(t, []string{"p"}, elements(body(t, doc)))
}

func TestImpliedEndTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.input")
	defer teardown()
	//
	doc, diags := parse(t, `<ul><li>one<li>two</ul><p>a<p>b<dl><dt>x<dd>y</dl>`)
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, have %v", diags)
	}
	b := body(t, doc)
	assert.Equal(t, []string{"ul", "p", "p", "dl"}, elements(b))
	assert.Equal(t, []string{"li", "li"}, elements(child(b, "ul")))
	assert.Equal(t, []string{"dt", "dd"}, elements(child(b, "dl")))
}

func TestStrayEndTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.input")
	defer teardown()
	//
	doc, diags := parse(t, `<p>x</span>y</p>`)
	if assert.Equal(t, 1, len(diags)) {
		assert.Equal(t, core.SeverityWarning, diags[0].Severity)
		assert.Equal(t, "html/body/p", diags[0].Location.Path)
	}
	p := child(body(t, doc), "p")
	if assert.NotNil(t, p) && assert.NotNil(t, p.FirstChild) {
		assert.Equal(t, "xy", p.FirstChild.Data)
	}
}

func TestVoidAndSelfClosing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.input")
	defer teardown()
	//
	doc, diags := parse(t, `<p>a<br>b<br/>c<img src="x.png"></p><div/><p>after</p>`)
	assert.Equal(t, 0, len(diags))
	b := body(t, doc)
	assert.Equal(t, []string{"p", "div", "p"}, elements(b))
	assert.Equal(t, []string{"br", "br", "img"}, elements(child(b, "p")))
}

func TestStyledPaths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.input")
	defer teardown()
	//
	doc, _ := parse(t, `<style>p { color: red }</style><p>one</p><p>two</p>`)
	styled, diags := cssom.NewCSSOM(true).Style(doc)
	assert.Equal(t, 0, len(diags))
	if assert.NotNil(t, styled) {
		assert.NotNil(t, styled.Find("html/body/p[2]"))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestReadError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.input")
	defer teardown()
	//
	_, _, err := Parse(failingReader{})
	assert.Error(t, err)
}
