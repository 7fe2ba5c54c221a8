package html

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/xtl/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads a document from r. It returns the document node, diagnostics
// for the parts of the input which had to be skipped, and an error if r
// could not be read.
func Parse(r io.Reader) (*html.Node, core.Diagnostics, error) {
	b := newBuilder()
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, b.diags, core.WrapError(err, core.EINVALID, "cannot read document")
			}
			break
		}
		loc := core.Location{Line: b.line, Column: b.col}
		b.advance(z.Raw())
		tok := z.Token()
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			b.startTag(tok, loc, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			b.endTag(tok.Data, loc)
		case html.TextToken:
			b.text(tok.Data)
		}
	}
	b.finish()
	tracer().Debugf("parsed document with %d diagnostics", len(b.diags))
	return b.doc, b.diags, nil
}

// openElement is an entry on the stack of open elements.
type openElement struct {
	node   *html.Node
	path   string
	loc    core.Location
	counts map[string]int // element children per tag, for paths
}

type builder struct {
	doc       *html.Node
	open      []*openElement
	diags     core.Diagnostics
	line, col int
}

func newBuilder() *builder {
	doc := &html.Node{Type: html.DocumentNode}
	return &builder{
		doc:  doc,
		open: []*openElement{{node: doc, counts: make(map[string]int)}},
		line: 1,
		col:  1,
	}
}

// advance moves the input position over raw token bytes.
func (b *builder) advance(raw []byte) {
	for len(raw) > 0 {
		i := bytes.IndexByte(raw, '\n')
		if i < 0 {
			b.col += utf8.RuneCount(raw)
			return
		}
		b.line++
		b.col = 1
		raw = raw[i+1:]
	}
}

func (b *builder) top() *openElement {
	return b.open[len(b.open)-1]
}

func (b *builder) push(tag string, attrs []html.Attribute, loc core.Location) *openElement {
	parent := b.top()
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
	parent.node.AppendChild(n)
	parent.counts[tag]++
	path := tag
	if parent.path != "" {
		path = parent.path + "/" + tag
	}
	if k := parent.counts[tag]; k > 1 {
		path += "[" + strconv.Itoa(k) + "]"
	}
	el := &openElement{node: n, path: path, loc: loc, counts: make(map[string]int)}
	el.loc.Path = path
	b.open = append(b.open, el)
	return el
}

func (b *builder) pop() {
	b.open = b.open[:len(b.open)-1]
}

// ensureContext opens the html and body elements a tag needs as ancestors.
func (b *builder) ensureContext(tag string) {
	if len(b.open) == 1 {
		if tag == "html" {
			return
		}
		if b.doc.LastChild != nil && b.doc.LastChild.Type == html.ElementNode {
			// content after </html>
			b.reopen(b.doc.LastChild)
		} else {
			b.push("html", nil, core.Location{})
		}
	}
	if len(b.open) == 3 && b.top().node.Data == "head" && !inHead(tag) {
		b.pop()
	}
	if len(b.open) == 2 && tag != "head" && tag != "body" {
		root := b.top().node
		body := child(root, "body")
		switch {
		case body != nil:
			b.reopen(body)
		case inHead(tag) && child(root, "head") == nil:
			b.push("head", nil, core.Location{})
		case inHead(tag):
			b.reopen(child(root, "head"))
		default:
			b.push("body", nil, core.Location{})
		}
	}
}

// reopen puts a closed element back onto the stack.
func (b *builder) reopen(n *html.Node) {
	parent := b.top()
	path := n.Data
	if parent.path != "" {
		path = parent.path + "/" + n.Data
	}
	counts := make(map[string]int)
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			counts[ch.Data]++
		}
	}
	b.open = append(b.open, &openElement{node: n, path: path, counts: counts})
}

func (b *builder) startTag(tok html.Token, loc core.Location, selfClosing bool) {
	tag := tok.Data
	b.ensureContext(tag)
	if tag == "html" && len(b.open) > 1 || tag == "body" && child(b.open[1].node, "body") != nil {
		b.diags.Warnf(core.SkippedSubtree, core.Location{Line: loc.Line, Column: loc.Column, Path: b.top().path},
			"duplicate <%s> ignored", tag)
		return
	}
	b.closeImplied(tag)
	b.push(tag, tok.Attr, loc)
	if selfClosing || isVoid(tag) {
		b.pop()
	}
}

// closeImplied closes elements which end implicitly when tag starts.
func (b *builder) closeImplied(tag string) {
	var closes, scope []string
	switch {
	case tag == "li":
		closes, scope = []string{"li"}, []string{"ul", "ol"}
	case tag == "dt" || tag == "dd":
		closes, scope = []string{"dt", "dd"}, []string{"dl"}
	case tag == "tr":
		closes, scope = []string{"tr", "td", "th"}, []string{"table", "thead", "tbody", "tfoot"}
	case tag == "td" || tag == "th":
		closes, scope = []string{"td", "th"}, []string{"tr", "table"}
	case tag == "body":
		closes = []string{"head"}
	}
	if isBlock(tag) {
		b.closeOpenP()
	}
	if closes == nil {
		return
	}
	for i := len(b.open) - 1; i >= 2; i-- {
		name := b.open[i].node.Data
		if contains(scope, name) {
			return
		}
		if contains(closes, name) {
			b.closeTo(i)
			return
		}
		if !optionalEnd(name) {
			return
		}
	}
}

// closeOpenP closes a paragraph when a block-level element starts within it.
func (b *builder) closeOpenP() {
	if len(b.open) > 2 && b.top().node.Data == "p" {
		b.pop()
	}
}

func (b *builder) endTag(tag string, loc core.Location) {
	for i := len(b.open) - 1; i >= 1; i-- {
		if b.open[i].node.Data == tag {
			b.closeTo(i)
			return
		}
	}
	if tag == "p" {
		// </p> without <p> is an empty paragraph in HTML
		b.ensureContext(tag)
		b.push("p", nil, loc)
		b.pop()
		return
	}
	if isVoid(tag) {
		return
	}
	b.diags.Warnf(core.SkippedSubtree, core.Location{Line: loc.Line, Column: loc.Column, Path: b.top().path},
		"end tag </%s> without start tag ignored", tag)
}

// closeTo closes all elements above and including the one at stack index i.
// Elements which require an end tag are removed from the document.
func (b *builder) closeTo(i int) {
	closing := b.open[i].node.Data
	for j := len(b.open) - 1; j > i; j-- {
		b.skipUnclosed(b.open[j], "</"+closing+">")
	}
	b.open = b.open[:i]
}

func (b *builder) skipUnclosed(el *openElement, at string) {
	if optionalEnd(el.node.Data) {
		return
	}
	if el.node.Parent != nil {
		el.node.Parent.RemoveChild(el.node)
	}
	b.diags.Errorf(core.SkippedSubtree, el.loc, "element <%s> not closed before %s, skipped", el.node.Data, at)
}

func (b *builder) text(s string) {
	if s == "" {
		return
	}
	if len(b.open) <= 2 {
		if strings.TrimSpace(s) == "" {
			return
		}
		b.ensureContext("")
	}
	parent := b.top().node
	if last := parent.LastChild; last != nil && last.Type == html.TextNode {
		last.Data += s
		return
	}
	parent.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// finish closes open elements at the end of input and completes the
// html/body structure.
func (b *builder) finish() {
	for j := len(b.open) - 1; j >= 1; j-- {
		b.skipUnclosed(b.open[j], "end of input")
	}
	b.open = b.open[:1]
	root := child(b.doc, "html")
	if root == nil {
		b.push("html", nil, core.Location{})
		b.pop()
		root = b.doc.LastChild
	}
	if child(root, "body") == nil {
		root.AppendChild(&html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	}
}

func child(n *html.Node, tag string) *html.Node {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode && ch.Data == tag {
			return ch
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func isVoid(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input", "link",
		"meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// optionalEnd is true for elements whose end tag may be omitted.
func optionalEnd(tag string) bool {
	switch tag {
	case "html", "head", "body", "p", "li", "dt", "dd", "option", "optgroup",
		"tr", "td", "th", "thead", "tbody", "tfoot", "colgroup", "rt", "rp":
		return true
	}
	return false
}

// isBlock is true for elements which close an open paragraph.
func isBlock(tag string) bool {
	switch tag {
	case "address", "article", "aside", "blockquote", "details", "dialog",
		"dd", "div", "dl", "dt", "fieldset", "figcaption", "figure",
		"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hgroup", "hr", "li", "main", "nav", "ol",
		"p", "pre", "section", "table", "ul":
		return true
	}
	return false
}

// inHead is true for elements which belong to the head of a document.
func inHead(tag string) bool {
	switch tag {
	case "base", "link", "meta", "noscript", "script", "style", "template", "title":
		return true
	}
	return false
}
