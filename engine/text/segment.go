package text

import (
	"strings"
	"unicode"

	"github.com/npillmayer/uax"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
	"github.com/npillmayer/uax/uax29"
	xbidi "golang.org/x/text/unicode/bidi"
)

// uaxBreaks finds line break opportunities with the UAX#14 line breaking
// algorithm. The map contains optional and mandatory breaks by byte
// position; the end of text is not included.
func uaxBreaks(text string) map[int]BreakClass {
	breaks := make(map[int]BreakClass)
	linewrap := uax14.NewLineWrap()
	seg := segment.NewSegmenter(linewrap)
	seg.Init(strings.NewReader(text))
	pos := 0
	for seg.Next() {
		pos += len(seg.Bytes())
		if pos >= len(text) {
			break
		}
		p1, _ := seg.Penalties()
		switch {
		case p1 <= -uax.InfinitePenalty/2:
			breaks[pos] = BreakMandatory
		case p1 < uax.InfinitePenalty/2:
			breaks[pos] = BreakOptional
		}
	}
	return breaks
}

// eachWord calls f for every word of s, i.e. maximal sequences of letters,
// together with the byte position of the word. Words are found with the
// UAX#29 word breaker; adjacent letter segments are joined.
func eachWord(s string, f func(word string, at int)) {
	words := segment.NewSegmenter(uax29.NewWordBreaker(1))
	words.BreakOnZero(true, false)
	words.Init(strings.NewReader(s))
	start, pos := -1, 0
	flush := func() {
		if start >= 0 {
			f(s[start:pos], start)
			start = -1
		}
	}
	for words.Next() {
		l := len(words.Bytes())
		if isWord(s[pos : pos+l]) {
			if start < 0 {
				start = pos
			}
		} else {
			flush()
		}
		pos += l
	}
	flush()
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			return false
		}
	}
	return true
}

type strongDir uint8

const (
	neutral strongDir = iota
	strongLTR
	strongRTL
)

// strongDirection returns the bidi class of r, reduced to the information
// we use for splitting spans. Numbers are treated as left-to-right.
func strongDirection(r rune) strongDir {
	props, _ := xbidi.LookupRune(r)
	switch props.Class() {
	case xbidi.R, xbidi.AL:
		return strongRTL
	case xbidi.L, xbidi.EN, xbidi.AN:
		return strongLTR
	}
	return neutral
}

// Scripts we cannot set correctly without a shaping engine, with their
// ISO 15924 codes.
var complexScripts = []struct {
	code  string
	table *unicode.RangeTable
}{
	{"Arab", unicode.Arabic},
	{"Syrc", unicode.Syriac},
	{"Thaa", unicode.Thaana},
	{"Nkoo", unicode.Nko},
	{"Deva", unicode.Devanagari},
	{"Beng", unicode.Bengali},
	{"Guru", unicode.Gurmukhi},
	{"Gujr", unicode.Gujarati},
	{"Orya", unicode.Oriya},
	{"Taml", unicode.Tamil},
	{"Telu", unicode.Telugu},
	{"Knda", unicode.Kannada},
	{"Mlym", unicode.Malayalam},
	{"Sinh", unicode.Sinhala},
	{"Thai", unicode.Thai},
	{"Laoo", unicode.Lao},
	{"Tibt", unicode.Tibetan},
	{"Mymr", unicode.Myanmar},
	{"Khmr", unicode.Khmer},
	{"Mong", unicode.Mongolian},
}

func complexScript(r rune) (string, bool) {
	if r < 0x0600 { // fast path for Latin, Greek, Cyrillic, Hebrew, …
		return "", false
	}
	for _, s := range complexScripts {
		if unicode.Is(s.table, r) {
			return s.code, true
		}
	}
	return "", false
}
