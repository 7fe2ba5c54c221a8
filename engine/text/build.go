package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/cords/styled"
	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/engine/text/hyphen"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Special code-points.
const (
	SoftHyphen    rune = '\u00AD'
	LineSeparator rune = '\u2028' // used for forced line breaks, e.g. <br/>
)

// Options control the building of a text run.
type Options struct {
	Language        language.Tag       // default language, if a style has none
	Direction       Direction          // base direction of the paragraph
	Hyphenate       bool               // find hyphenation opportunities in words
	MinHyphenLength int                // minimum word length (in letters) for hyphenation
	Dictionary      *hyphen.Dictionary // overrides the dictionary for the language
}

type styleRange struct {
	from, to int
	style    Style
}

// Build creates a text run from a sequence of styled text items.
//
// Input text is NFC-normalized and white space is collapsed according to
// the items' white-space styles. Adjacent items with equal styles end up in
// a single span; spans are further split where the direction or the script
// of the text changes. Build is a pure function and never fails: problems
// are reported as diagnostics.
func Build(items []Item, opts Options) (*TextRun, core.Diagnostics) {
	var diags core.Diagnostics
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	if opts.MinHyphenLength <= 0 {
		opts.MinHyphenLength = 5
	}
	text, ranges := collectText(items)
	run := &TextRun{
		Text:      text,
		Language:  opts.Language,
		Direction: opts.Direction,
	}
	if len(text) == 0 {
		return run, diags
	}
	runs := styleRuns(text, ranges)
	run.Spans = splitSpans(text, runs, opts.Direction, &diags)
	run.Breaks = findBreaks(text, runs, opts)
	tracer().Debugf("text run with %d spans and %d breaks", len(run.Spans), len(run.Breaks))
	return run, diags
}

// collectText concatenates the items' texts, applying white-space rules.
func collectText(items []Item) (string, []styleRange) {
	var b strings.Builder
	ranges := make([]styleRange, 0, len(items))
	collapsed := -1 // position of last collapsed space
	atLineStart := true
	for _, item := range items {
		s := norm.NFC.String(item.Text)
		from := b.Len()
		for _, r := range s {
			if item.Style.WhiteSpace == WhiteSpacePre {
				if r == '\r' {
					continue
				} else if r == '\t' {
					r = ' '
				}
				b.WriteRune(r)
				atLineStart = r == '\n' || r == LineSeparator
				continue
			}
			if isCollapsible(r) {
				if !atLineStart && collapsed != b.Len()-1 {
					collapsed = b.Len()
					b.WriteByte(' ')
				}
				continue
			}
			if r == LineSeparator && collapsed >= 0 && collapsed == b.Len()-1 {
				// drop space in front of a forced break
				str := b.String()[:collapsed]
				b.Reset()
				b.WriteString(str)
				if collapsed < from {
					ranges = truncateRanges(ranges, collapsed)
					from = collapsed
				}
				collapsed = -1
			}
			b.WriteRune(r)
			atLineStart = r == LineSeparator
		}
		if b.Len() > from {
			ranges = append(ranges, styleRange{from: from, to: b.Len(), style: item.Style})
		}
	}
	text := b.String()
	if collapsed >= 0 && collapsed == len(text)-1 { // drop trailing space
		text = text[:collapsed]
		ranges = truncateRanges(ranges, len(text))
	}
	return text, ranges
}

// truncateRanges cuts style ranges at position end.
func truncateRanges(ranges []styleRange, end int) []styleRange {
	for len(ranges) > 0 && ranges[len(ranges)-1].to > end {
		last := &ranges[len(ranges)-1]
		last.to = end
		if last.from >= last.to {
			ranges = ranges[:len(ranges)-1]
		}
	}
	return ranges
}

func isCollapsible(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// styleRuns merges adjacent ranges of equal style. We put the text into a
// styled text and let it report the style runs.
func styleRuns(text string, ranges []styleRange) []styleRange {
	txt := styled.TextFromString(text)
	for _, rg := range ranges {
		txt.Style(styleSet{style: rg.style}, uint64(rg.from), uint64(rg.to))
	}
	runs := make([]styleRange, 0, len(ranges))
	err := txt.EachStyleRun(func(content string, sty styled.Style, pos uint64) error {
		set, ok := sty.(styleSet)
		if !ok {
			return core.Error(core.EINTERNAL, "style run without text style at %d", pos)
		}
		runs = appendRun(runs, styleRange{from: int(pos), to: int(pos) + len(content), style: set.style})
		return nil
	})
	if err != nil || !coversText(runs, len(text)) {
		tracer().Errorf("cannot iterate over style runs, merging ranges directly: %v", err)
		runs = runs[:0]
		for _, rg := range ranges {
			runs = appendRun(runs, rg)
		}
	}
	return runs
}

func appendRun(runs []styleRange, rg styleRange) []styleRange {
	if n := len(runs); n > 0 && runs[n-1].to == rg.from && runs[n-1].style == rg.style {
		runs[n-1].to = rg.to
		return runs
	}
	return append(runs, rg)
}

func coversText(runs []styleRange, length int) bool {
	pos := 0
	for _, rg := range runs {
		if rg.from != pos {
			return false
		}
		pos = rg.to
	}
	return pos == length
}

// --- Spans -----------------------------------------------------------------

type spanAttrs struct {
	level    uint8
	degraded bool
	script   string
}

// splitSpans cuts style runs at changes of direction or of script.
// Neutral characters (spaces, punctuation) continue the current span.
func splitSpans(text string, runs []styleRange, base Direction, diags *core.Diagnostics) []StyledSpan {
	spans := make([]StyledSpan, 0, len(runs))
	baseLevel := uint8(0)
	if base == RightToLeft {
		baseLevel = 1
	}
	cur := spanAttrs{level: baseLevel}
	reported := make(map[string]bool)
	emit := func(from, to int, style Style, a spanAttrs) {
		span := StyledSpan{Start: from, End: to, Style: style, Level: a.level, Degraded: a.degraded}
		if a.script != "" {
			span.Script, _ = language.ParseScript(a.script)
		}
		spans = append(spans, span)
	}
	for _, rg := range runs {
		start := rg.from
		for i, r := range text[rg.from:rg.to] {
			pos := rg.from + i
			a := classifyRune(r, cur, baseLevel)
			if a != cur && pos > start {
				emit(start, pos, rg.style, cur)
				start = pos
			}
			if a.degraded && !reported[a.script] {
				reported[a.script] = true
				diags.Warnf(core.DegradedShaping, core.Location{Offset: pos},
					"script %s needs complex shaping; text is set without shaping", a.script)
			}
			cur = a
		}
		emit(start, rg.to, rg.style, cur)
	}
	return spans
}

func classifyRune(r rune, cur spanAttrs, baseLevel uint8) spanAttrs {
	a := cur
	switch strongDirection(r) {
	case strongRTL:
		a.level = baseLevel | 1
	case strongLTR:
		a.level = (baseLevel + 1) &^ 1
	}
	if code, ok := complexScript(r); ok {
		a.degraded, a.script = true, code
	} else if unicode.IsLetter(r) {
		a.degraded, a.script = false, ""
	}
	return a
}

// --- Breaks ----------------------------------------------------------------

// findBreaks collects all break opportunities of a paragraph.
func findBreaks(text string, runs []styleRange, opts Options) []Break {
	classes := make(map[int]BreakClass)
	for pos, class := range uaxBreaks(text) {
		classes[pos] = class
	}
	// Guard against breaks inside words and make sure explicit line ends
	// and inter-word spaces are breakable.
	prev := rune(-1)
	for i, r := range text {
		if prev >= 0 {
			switch {
			case isMandatoryBreak(prev, r):
				classes[i] = BreakMandatory
			case classes[i] == BreakMandatory:
				classes[i] = BreakOptional
			case classes[i] == BreakOptional && !plausibleBreak(prev, r):
				delete(classes, i)
			case prev == ' ' && (unicode.IsLetter(r) || unicode.IsDigit(r)):
				classes[i] = BreakOptional
			}
			if prev == SoftHyphen {
				classes[i] = BreakHyphen
			}
		}
		prev = r
	}
	if opts.Hyphenate {
		hyphenate(text, runs, opts, classes)
	}
	for _, rg := range runs { // no wrapping for nowrap and pre
		if rg.style.WhiteSpace == WhiteSpaceNormal {
			continue
		}
		for pos := rg.from + 1; pos < rg.to; pos++ {
			if c, ok := classes[pos]; ok && c != BreakMandatory {
				delete(classes, pos)
			}
		}
	}
	breaks := make([]Break, 0, len(classes))
	for pos := 1; pos < len(text); pos++ {
		if c, ok := classes[pos]; ok && c != BreakForbidden {
			breaks = append(breaks, Break{Pos: pos, Class: c})
		}
	}
	return breaks
}

func isMandatoryBreak(prev, next rune) bool {
	switch prev {
	case '\n', LineSeparator, '\u2029', '\v', '\f', '\u0085':
		return true
	case '\r':
		return next != '\n'
	}
	return false
}

// plausibleBreak is false for positions between two letters or digits of
// an alphabetic script, where UAX#14 never allows a break.
func plausibleBreak(prev, next rune) bool {
	if !isAlnum(prev) || !isAlnum(next) {
		return true
	}
	return isIdeographic(prev) || isIdeographic(next)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isIdeographic(r rune) bool {
	return unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r)
}

// hyphenate adds hyphenation opportunities for the words of a paragraph.
func hyphenate(text string, runs []styleRange, opts Options, classes map[int]BreakClass) {
	for _, rg := range runs {
		dict := opts.Dictionary
		if dict == nil {
			lang := rg.style.Language
			if lang == language.Und {
				lang = opts.Language
			}
			dict = hyphen.ForLanguage(lang)
		}
		if dict == nil {
			continue
		}
		eachWord(text[rg.from:rg.to], func(word string, at int) {
			if utf8.RuneCountInString(word) < opts.MinHyphenLength {
				return
			}
			points := dict.Points(word)
			i := 0
			for off := range word {
				if i > 0 && points[i]%2 == 1 {
					pos := rg.from + at + off
					if classes[pos] == BreakForbidden {
						classes[pos] = BreakHyphen
					}
				}
				i++
			}
		})
	}
}
