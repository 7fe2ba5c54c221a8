package text

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Item is a piece of input text with its style.
type Item struct {
	Text  string
	Style Style
}

// StyledSpan is a maximal run of text with uniform style and a single
// resolved direction. Spans are immutable.
type StyledSpan struct {
	Start, End int // byte positions within the paragraph text
	Style      Style
	Level      uint8           // bidi embedding level, odd levels are right-to-left
	Script     language.Script // script of the span's letters, if detected
	Degraded   bool            // script would need complex shaping
}

// Direction returns the resolved direction of a span.
func (span StyledSpan) Direction() Direction {
	if span.Level%2 == 1 {
		return RightToLeft
	}
	return LeftToRight
}

func (span StyledSpan) String() string {
	d := ""
	if span.Degraded {
		d = " degraded"
	}
	return fmt.Sprintf("span[%d:%d %s L%d%s]", span.Start, span.End, span.Style, span.Level, d)
}

// BreakClass classifies a line break opportunity.
type BreakClass uint8

// Break classes. Positions without a break are forbidden for breaking.
const (
	BreakForbidden BreakClass = iota
	BreakOptional             // line may be broken here
	BreakHyphen               // line may be broken here, with a visible hyphen
	BreakMandatory            // line must be broken here
)

func (bc BreakClass) String() string {
	switch bc {
	case BreakOptional:
		return "optional"
	case BreakHyphen:
		return "hyphen"
	case BreakMandatory:
		return "mandatory"
	}
	return "forbidden"
}

// Break is a line break opportunity before the byte at Pos.
type Break struct {
	Pos   int
	Class BreakClass
}

// TextRun is a paragraph of text, segmented into spans, together with its
// line break opportunities. Breaks are sorted by position. A text run is
// read-only after it has been built.
type TextRun struct {
	Text      string
	Spans     []StyledSpan
	Breaks    []Break
	Language  language.Tag
	Direction Direction // base direction of the paragraph
}

// BreakAt returns the break class for position pos.
func (run *TextRun) BreakAt(pos int) BreakClass {
	i := sort.Search(len(run.Breaks), func(i int) bool {
		return run.Breaks[i].Pos >= pos
	})
	if i < len(run.Breaks) && run.Breaks[i].Pos == pos {
		return run.Breaks[i].Class
	}
	return BreakForbidden
}

// SpanAt returns the index of the span containing position pos, or -1.
func (run *TextRun) SpanAt(pos int) int {
	i := sort.Search(len(run.Spans), func(i int) bool {
		return run.Spans[i].End > pos
	})
	if i < len(run.Spans) && run.Spans[i].Start <= pos {
		return i
	}
	return -1
}

// SpanText returns the text of span i.
func (run *TextRun) SpanText(i int) string {
	return run.Text[run.Spans[i].Start:run.Spans[i].End]
}

func (run *TextRun) String() string {
	var b strings.Builder
	for i := range run.Spans {
		fmt.Fprintf(&b, "%s %q\n", run.Spans[i], run.SpanText(i))
	}
	for _, br := range run.Breaks {
		fmt.Fprintf(&b, "%d:%s ", br.Pos, br.Class)
	}
	return b.String()
}
