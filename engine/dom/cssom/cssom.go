package cssom

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/engine/dom/style"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/dom/styledtree"
	"golang.org/x/net/html"
)

// Origin is the origin of a style rule.
type Origin uint8

// Origins, in ascending priority for normal declarations.
const (
	UserAgent Origin = iota
	Author
	Inline // style attribute
)

func (o Origin) String() string {
	switch o {
	case UserAgent:
		return "user-agent"
	case Author:
		return "author"
	}
	return "inline"
}

type rule struct {
	selector    cascadia.Selector
	text        string
	specificity int
	order       int
	origin      Origin
	decls       []*douceur.Declaration
}

// CSSOM is a CSS object model, holding the style rules of all stylesheets
// for a document. Create with NewCSSOM.
type CSSOM struct {
	rules []*rule
	order int
}

// NewCSSOM creates an empty CSSOM. If userAgent is true, the built-in
// default stylesheet is loaded.
func NewCSSOM(userAgent bool) *CSSOM {
	cssom := &CSSOM{}
	if userAgent {
		if diags := cssom.AddStylesFromString(defaultUserAgentSheet, UserAgent); len(diags) > 0 {
			panic(fmt.Sprintf("user-agent stylesheet is broken: %v", diags))
		}
	}
	return cssom
}

// AddStylesFromString parses a stylesheet and adds its rules. Rules which
// cannot be parsed or whose selectors are not supported are dropped and
// reported.
func (cssom *CSSOM) AddStylesFromString(sheet string, origin Origin) core.Diagnostics {
	var diags core.Diagnostics
	stylesheet, err := parser.Parse(sheet)
	if err != nil {
		diags.Warnf(core.InvalidValue, core.Location{}, "cannot parse stylesheet: %v", err)
		return diags
	}
	for _, r := range stylesheet.Rules {
		if r.Kind != douceur.QualifiedRule {
			tracer().Infof("ignoring CSS at-rule %s", r.Name)
			continue
		}
		for _, sel := range r.Selectors {
			compiled, err := cascadia.Compile(sel)
			if err != nil {
				diags.Warnf(core.InvalidValue, core.Location{}, "selector %q not supported: %v", sel, err)
				continue
			}
			cssom.rules = append(cssom.rules, &rule{
				selector:    compiled,
				text:        sel,
				specificity: Specificity(sel),
				order:       cssom.order,
				origin:      origin,
				decls:       r.Declarations,
			})
			cssom.order++
		}
	}
	tracer().Debugf("CSSOM has %d rules", len(cssom.rules))
	return diags
}

// RuleCount returns the number of selector/declaration-block pairs.
func (cssom *CSSOM) RuleCount() int {
	return len(cssom.rules)
}

// --- Cascade ---------------------------------------------------------------

type matchedDecl struct {
	decl        *douceur.Declaration
	origin      Origin
	specificity int
	order       int
}

// priority orders declarations by importance and origin, as of CSS 2.1 §6.4.1.
func (m matchedDecl) priority() int {
	p := int(m.origin)
	if m.decl.Important {
		p += 3
	}
	return p
}

// styler walks a document and holds state for a single styling run.
type styler struct {
	cssom    *CSSOM
	reported map[*douceur.Declaration]bool
	rootSize dimen.Dimen
	diags    core.Diagnostics
}

// Style computes the styles of a document, returning the styled tree of its
// root element. Stylesheets from <style> elements of the document are added
// to the CSSOM before styling. Style never fails; problems are reported
// as diagnostics. If doc contains no element, nil is returned.
func (cssom *CSSOM) Style(doc *html.Node) (*styledtree.Node, core.Diagnostics) {
	s := &styler{
		cssom:    cssom,
		reported: make(map[*douceur.Declaration]bool),
		rootSize: css.DefaultFontSize,
	}
	s.diags.Add(cssom.collectStyleElements(doc)...)
	root := rootElement(doc)
	if root == nil {
		return nil, s.diags
	}
	rootNode := s.styleElement(root, nil, strings.ToLower(root.Data))
	return rootNode, s.diags
}

// collectStyleElements adds stylesheets of all <style> elements.
func (cssom *CSSOM) collectStyleElements(n *html.Node) core.Diagnostics {
	var diags core.Diagnostics
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "style") {
		if t := attr(n, "type"); t == "" || strings.EqualFold(t, "text/css") {
			var b strings.Builder
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				if ch.Type == html.TextNode {
					b.WriteString(ch.Data)
				}
			}
			diags.Add(cssom.AddStylesFromString(b.String(), Author)...)
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		diags.Add(cssom.collectStyleElements(ch)...)
	}
	return diags
}

func rootElement(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	if doc.Type == html.ElementNode {
		return doc
	}
	for ch := doc.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			return ch
		}
	}
	return nil
}

func (s *styler) styleElement(h *html.Node, parent *style.PropertyMap, path string) *styledtree.Node {
	sn := styledtree.NewNodeForHTMLNode(h, path)
	specified := s.specifiedStyles(h, path)
	computed := style.ComputeStyles(parent, specified)
	s.resolveFontSize(computed, parent, path)
	if parent == nil {
		s.rootSize, _ = css.FontSize(computed.Property("font-size"), css.DefaultFontSize, css.DefaultFontSize)
	}
	sn.SetStyles(computed)
	counts := make(map[string]int)
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		switch ch.Type {
		case html.ElementNode:
			tag := strings.ToLower(ch.Data)
			counts[tag]++
			chpath := path + "/" + tag
			if k := counts[tag]; k > 1 {
				chpath += "[" + strconv.Itoa(k) + "]"
			}
			sn.AddChild(s.styleElement(ch, computed, chpath))
		case html.TextNode:
			tn := styledtree.NewNodeForHTMLNode(ch, path)
			tn.SetStyles(computed)
			sn.AddChild(tn)
		}
	}
	return sn
}

// specifiedStyles collects all declarations which apply to an element and
// applies them in cascade order.
func (s *styler) specifiedStyles(h *html.Node, path string) *style.PropertyMap {
	var matched []matchedDecl
	for _, r := range s.cssom.rules {
		if !r.selector.Match(h) {
			continue
		}
		for _, d := range r.decls {
			matched = append(matched, matchedDecl{decl: d, origin: r.origin, specificity: r.specificity, order: r.order})
		}
	}
	if attrStyle := attr(h, "style"); strings.TrimSpace(attrStyle) != "" {
		// the declaration parser is strict about the final semicolon
		if !strings.HasSuffix(strings.TrimSpace(attrStyle), ";") {
			attrStyle += ";"
		}
		decls, err := parser.ParseDeclarations(attrStyle)
		if err != nil {
			s.diags.Warnf(core.InvalidValue, core.Location{Path: path}, "cannot parse style attribute: %v", err)
		}
		for _, d := range decls {
			matched = append(matched, matchedDecl{decl: d, origin: Inline})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		mi, mj := matched[i], matched[j]
		if mi.priority() != mj.priority() {
			return mi.priority() < mj.priority()
		}
		if mi.specificity != mj.specificity {
			return mi.specificity < mj.specificity
		}
		return mi.order < mj.order
	})
	specified := style.NewPropertyMap(len(matched))
	for _, m := range matched {
		s.apply(specified, m.decl, path)
	}
	return specified
}

func (s *styler) apply(specified *style.PropertyMap, d *douceur.Declaration, path string) {
	key := strings.ToLower(strings.TrimSpace(d.Property))
	value := style.Property(d.Value)
	if kvs, ok := style.ExpandShorthand(key, value); ok {
		if len(kvs) == 0 {
			s.diags.Warnf(core.InvalidValue, core.Location{Path: path}, "cannot expand %s: %s", key, value)
		}
		for _, kv := range kvs {
			specified.Set(kv.Key, kv.Value)
		}
		return
	}
	if !style.IsSupported(key) {
		if !s.reported[d] {
			s.reported[d] = true
			s.diags.Warnf(core.UnsupportedProperty, core.Location{Path: path}, "property %q not supported", key)
		}
		return
	}
	specified.Set(key, value)
}

// resolveFontSize makes the computed font size absolute, as children inherit
// the size, not the expression.
func (s *styler) resolveFontSize(computed, parent *style.PropertyMap, path string) {
	parentSize := css.DefaultFontSize
	if parent != nil {
		parentSize, _ = css.FontSize(parent.Property("font-size"), css.DefaultFontSize, s.rootSize)
	}
	p := computed.Property("font-size")
	size, ok := css.FontSize(p, parentSize, s.rootSize)
	if !ok {
		s.diags.Warnf(core.InvalidValue, core.Location{Path: path}, "illegal font-size %q", p)
	}
	computed.Set("font-size", FormatDimen(size))
}

// FormatDimen formats a dimension in CSS pixels, suitable as a property value.
func FormatDimen(d dimen.Dimen) style.Property {
	return style.Property(strconv.FormatFloat(d.Points(), 'f', -1, 64) + "px")
}

func attr(h *html.Node, key string) string {
	for _, a := range h.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
