package layout

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/dimen"
	params "github.com/npillmayer/xtl/core/parameters"
	"github.com/npillmayer/xtl/engine/dom/style"
	"github.com/npillmayer/xtl/engine/dom/style/css"
	"github.com/npillmayer/xtl/engine/dom/styledtree"
	"github.com/npillmayer/xtl/engine/frame"
	"github.com/npillmayer/xtl/engine/frame/inline"
	"github.com/npillmayer/xtl/engine/text"
	"golang.org/x/text/language"
)

// level is the role of a node within its parent's formatting context.
type level uint8

const (
	skipLevel     level = iota // generates no box
	inlineLevel                // text and inline elements
	blockLevel                 // block-level elements, inline-blocks and blockified inlines
	floatLevel                 // floating elements
	replacedLevel              // images
)

var skippedTags = map[string]bool{
	"head": true, "script": true, "style": true, "title": true, "template": true,
}

func classify(n *styledtree.Node) level {
	if n.IsText() {
		return inlineLevel
	}
	tag := n.Tag()
	if tag == "" || skippedTags[tag] {
		return skipLevel
	}
	styles := n.Styles()
	disp, _ := css.DisplayOf(styles.Property("display"))
	if disp == css.DisplayNone {
		return skipLevel
	}
	if css.FloatOf(styles.Property("float"), false) != css.FloatNone {
		return floatLevel
	}
	if tag == "img" {
		return replacedLevel
	}
	if disp == css.DisplayInline && !containsBlock(n) {
		return inlineLevel
	}
	return blockLevel
}

// containsBlock is true if an inline element has content which cannot be
// part of a paragraph. Such elements are laid out as blocks.
func containsBlock(n *styledtree.Node) bool {
	for _, ch := range n.Children() {
		switch classify(ch) {
		case blockLevel, floatLevel, replacedLevel:
			return true
		}
	}
	return false
}

// layoutInlineContent sets inline content as the paragraph of the block box
// parent. It has to be the only content of parent.
func (l *layouter) layoutInlineContent(parent frame.BoxID, owner *styledtree.Node,
	run []*styledtree.Node, f *flow) {
	//
	if onlyCollapsibleSpace(run) {
		return
	}
	box := l.arena.Box(parent)
	para := l.setParagraph(owner, run, f)
	if para == nil {
		return
	}
	box.Text = para
	box.Overflow = box.Overflow || overflowing(para)
	f.y += para.Height
}

// layoutAnonymous wraps inline content between block-level siblings into an
// anonymous block box. Returns false if the content is collapsible white
// space only.
func (l *layouter) layoutAnonymous(parent frame.BoxID, owner *styledtree.Node,
	run []*styledtree.Node, f *flow) bool {
	//
	if onlyCollapsibleSpace(run) {
		return false
	}
	f.flushMargins()
	para := l.setParagraph(owner, run, f)
	if para == nil {
		return false
	}
	id := l.arena.New(frame.AnonymousBox, "")
	box := l.arena.Box(id)
	box.TopL = dimen.Point{X: f.x0, Y: f.y}
	box.W = f.x1 - f.x0
	box.H = para.Height
	box.Text = para
	box.Overflow = overflowing(para)
	f.y += para.Height
	l.arena.AppendChild(parent, id)
	return true
}

// setParagraph sets a run of inline nodes into lines, using the paragraph
// styles of their block container owner. If f is nil, lines are only broken
// at mandatory breaks, which is used for measuring content.
func (l *layouter) setParagraph(owner *styledtree.Node, run []*styledtree.Node, f *flow) *inline.Paragraph {
	if f == nil {
		l.quiet++
		defer func() { l.quiet-- }()
	}
	var items []text.Item
	for _, n := range run {
		l.collectItems(n, "", &items)
	}
	if len(items) == 0 {
		return nil
	}
	styles := owner.Styles()
	dir := text.LeftToRight
	if isRTL(styles) {
		dir = text.RightToLeft
	}
	textrun, d := text.Build(items, text.Options{
		Language:        l.language(),
		Direction:       dir,
		Hyphenate:       l.regs.B(params.P_HYPHENATE),
		MinHyphenLength: l.regs.N(params.P_MINHYPHENLENGTH),
	})
	if len(textrun.Text) == 0 {
		return nil
	}
	l.addDiagnostics(owner.Path(), d)
	size := l.fontSize(styles)
	lh, ok := css.LineHeight(styles.Property("line-height"), size)
	if !ok {
		l.warnf(core.InvalidValue, owner.Path(), "invalid line-height %q", styles.Property("line-height"))
	}
	_, fallbacks := css.FontRef(styles)
	opts := inline.Options{
		Mode:       l.cfg.JustifyMode,
		Align:      alignment(styles.Property("text-align")),
		AlignLast:  alignment(styles.Property("text-align-last")),
		LineHeight: lh,
		Registers:  l.regs,
		Fallbacks:  append(fallbacks, l.fallbacks...),
	}
	var shape inline.ParShape
	if f == nil {
		shape = inline.RectangularParShape(dimen.Infinity / 2)
		opts.Align, opts.AlignLast = inline.AlignLeft, inline.AlignLeft
	} else {
		w := f.x1 - f.x0
		basis := l.basis(styles)
		basis.Containing = w
		opts.Indent = css.DimenOption(styles.Property("text-indent")).ResolveOr(basis, 0)
		if f.floats.Len() == 0 {
			shape = inline.RectangularParShape(w)
		} else {
			lineskip := dimen.Max(lh, size.MulDiv(6, 5))
			area := dimen.Rect{
				TopL: dimen.Point{X: f.x0, Y: f.y},
				BotR: dimen.Point{X: f.x1, Y: f.y},
			}
			shape = inline.FloatParShape(area, lineskip, f.floats.Left(), f.floats.Right())
		}
	}
	para, d := inline.LayoutParagraph(textrun, shape, l.provider, opts)
	l.addDiagnostics(owner.Path(), d)
	return para
}

// collectItems appends the styled text of an inline node and its
// descendants to items.
func (l *layouter) collectItems(n *styledtree.Node, link string, items *[]text.Item) {
	if n.IsText() {
		*items = append(*items, text.Item{Text: n.Text(), Style: l.textStyle(n.Styles(), link)})
		return
	}
	if classify(n) != inlineLevel {
		return
	}
	l.regs.Begingroup()
	defer l.regs.Endgroup()
	l.enterElement(n)
	switch n.Tag() {
	case "br":
		*items = append(*items, text.Item{
			Text:  string(text.LineSeparator),
			Style: l.textStyle(n.Styles(), link),
		})
		return
	case "a":
		if href, ok := n.Attr("href"); ok {
			link = href
		}
	}
	for _, ch := range n.Children() {
		l.collectItems(ch, link, items)
	}
}

// enterElement pushes the language and hyphenation settings of an element
// to the typesetting registers. Callers have to open a group.
func (l *layouter) enterElement(n *styledtree.Node) {
	if lang, ok := n.Attr("lang"); ok {
		if tag, err := language.Parse(lang); err == nil {
			l.regs.Push(params.P_LANGUAGE, tag.String())
		} else {
			l.warnf(core.InvalidValue, n.Path(), "invalid language tag %q", lang)
		}
	}
	switch keyword(n.Styles().Property("hyphens")) {
	case "auto":
		l.regs.Push(params.P_HYPHENATE, true)
	case "none":
		l.regs.Push(params.P_HYPHENATE, false)
	}
}

func (l *layouter) textStyle(styles *style.PropertyMap, link string) text.Style {
	ref, _ := css.FontRef(styles)
	c, ok := styles.Property("color").Color()
	if !ok {
		c = color.RGBA{A: 0xff}
	}
	st := text.Style{
		Font:     ref,
		Size:     l.fontSize(styles),
		Color:    c,
		Language: l.language(),
		Link:     link,
	}
	if isRTL(styles) {
		st.Direction = text.RightToLeft
	}
	for _, deco := range strings.Fields(keyword(styles.Property("text-decoration"))) {
		switch deco {
		case "underline":
			st.Decoration |= text.Underline
		case "overline":
			st.Decoration |= text.Overline
		case "line-through":
			st.Decoration |= text.LineThrough
		}
	}
	switch keyword(styles.Property("white-space")) {
	case "pre", "pre-wrap":
		st.WhiteSpace = text.WhiteSpacePre
	case "nowrap":
		st.WhiteSpace = text.WhiteSpaceNoWrap
	}
	return st
}

// setMarker creates the marker of a list item, a bullet or the item's
// number for ordered lists. The marker is placed outside the content box
// on the start side, at the baseline of the item's first line.
func (l *layouter) setMarker(id frame.BoxID, n *styledtree.Node, ordinal int) {
	box := l.arena.Box(id)
	label := "\u2022"
	if ordinal > 0 {
		label = strconv.Itoa(ordinal) + "."
	}
	st := l.textStyle(n.Styles(), "")
	rtl := st.Direction == text.RightToLeft
	st.Direction = text.LeftToRight
	st.Decoration = text.NoDecoration
	run, _ := text.Build([]text.Item{{Text: label, Style: st}}, text.Options{Language: st.Language})
	para, d := inline.LayoutParagraph(run, nil, l.provider, inline.Options{
		Align:     inline.AlignLeft,
		Registers: l.regs,
		Fallbacks: l.fallbacks,
	})
	l.addDiagnostics(n.Path(), d)
	if len(para.Lines) == 0 {
		return
	}
	line := para.Lines[0]
	gap := st.Size / 2
	baseline, ok := l.firstBaseline(id)
	if !ok {
		baseline = box.TopL.Y + line.Ascent
	}
	x := box.TopL.X - gap - line.Width
	if rtl {
		x = box.TopL.X + box.W + gap
	}
	box.Marker = line
	box.MarkerAt = dimen.Point{X: x, Y: baseline}
}

// firstBaseline returns the baseline of the first line of text within a box.
func (l *layouter) firstBaseline(id frame.BoxID) (dimen.Dimen, bool) {
	var y dimen.Dimen
	found := false
	l.arena.Walk(id, func(_ frame.BoxID, box *frame.Box, _ int) bool {
		if found {
			return false
		}
		if box.Text != nil && len(box.Text.Lines) > 0 {
			y = box.TopL.Y + box.Text.Lines[0].Baseline
			found = true
			return false
		}
		return true
	})
	return y, found
}

// --- Helpers ---------------------------------------------------------------

func (l *layouter) language() language.Tag {
	tag, err := language.Parse(l.regs.S(params.P_LANGUAGE))
	if err != nil {
		return l.cfg.Language
	}
	return tag
}

func (l *layouter) fontSize(styles *style.PropertyMap) dimen.Dimen {
	size, _ := css.FontSize(styles.Property("font-size"), css.DefaultFontSize, l.rootSize)
	return size
}

func (l *layouter) basis(styles *style.PropertyMap) css.Basis {
	return css.Basis{FontSize: l.fontSize(styles), RootFontSize: l.rootSize}
}

func (l *layouter) warnf(k core.DiagnosticKind, path string, format string, v ...interface{}) {
	if l.quiet == 0 {
		l.diags.Warnf(k, core.Location{Path: path}, format, v...)
	}
}

func alignment(p style.Property) inline.Alignment {
	switch keyword(p) {
	case "auto":
		return inline.AlignAuto
	case "end":
		return inline.AlignEnd
	case "left":
		return inline.AlignLeft
	case "right":
		return inline.AlignRight
	case "center":
		return inline.AlignCenter
	case "justify":
		return inline.AlignJustify
	case "justify-all":
		return inline.AlignJustifyAll
	}
	return inline.AlignStart
}

func overflowing(para *inline.Paragraph) bool {
	for _, line := range para.Lines {
		if line.Overflow {
			return true
		}
	}
	return false
}

func isRTL(styles *style.PropertyMap) bool {
	return keyword(styles.Property("direction")) == "rtl"
}

func isCollapsibleSpace(n *styledtree.Node) bool {
	if ws := keyword(n.Styles().Property("white-space")); ws == "pre" || ws == "pre-wrap" {
		return false
	}
	return strings.Trim(n.Text(), " \t\n\r\f") == ""
}

func onlyCollapsibleSpace(run []*styledtree.Node) bool {
	for _, n := range run {
		if !n.IsText() || !isCollapsibleSpace(n) {
			return false
		}
	}
	return true
}

func keyword(p style.Property) string {
	return strings.ToLower(strings.TrimSpace(string(p)))
}
