package hyphen

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/derekparker/trie"
	"github.com/npillmayer/xtl/core"
	"golang.org/x/text/language"
)

// Dictionary holds hyphenation patterns and exceptions for a language.
// After loading, a dictionary is read-only and may be shared.
type Dictionary struct {
	Identifier string
	patterns   *trie.Trie
	exceptions map[string][]string
	maxlen     int // length of longest pattern in runes
	LeftMin    int // minimum number of letters before the first hyphen
	RightMin   int // minimum number of letters after the last hyphen
}

func newDictionary(id string) *Dictionary {
	return &Dictionary{
		Identifier: id,
		patterns:   trie.New(),
		exceptions: make(map[string][]string),
		LeftMin:    2,
		RightMin:   3,
	}
}

// LoadPatterns reads a TeX pattern file. The file contains a \patterns{…}
// section and optionally a \hyphenation{…} section with exceptions. Lines
// starting with '%' are comments.
func LoadPatterns(id string, r io.Reader) (*Dictionary, error) {
	dict := newDictionary(id)
	scanner := bufio.NewScanner(r)
	section := ""
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '%'); i >= 0 {
			line = line[:i]
		}
		for _, field := range strings.Fields(line) {
			switch {
			case strings.HasPrefix(field, `\patterns{`):
				section = "p"
				field = strings.TrimPrefix(field, `\patterns{`)
			case strings.HasPrefix(field, `\hyphenation{`):
				section = "h"
				field = strings.TrimPrefix(field, `\hyphenation{`)
			}
			closing := strings.HasSuffix(field, "}")
			field = strings.TrimSuffix(field, "}")
			if field != "" {
				switch section {
				case "p":
					dict.AddPattern(field)
				case "h":
					dict.AddException(field)
				}
			}
			if closing {
				section = ""
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read hyphenation patterns for %s", id)
	}
	tracer().Infof("loaded hyphenation dictionary %s", id)
	return dict, nil
}

// AddPattern adds a single Liang pattern like "hy3ph" or ".ach4".
func (dict *Dictionary) AddPattern(pattern string) {
	var letters strings.Builder
	values := []int{0}
	for _, r := range pattern {
		if r >= '0' && r <= '9' {
			values[len(values)-1] = int(r - '0')
			continue
		}
		letters.WriteRune(unicode.ToLower(r))
		values = append(values, 0)
	}
	key := letters.String()
	if key == "" {
		return
	}
	dict.patterns.Add(key, values)
	if n := len(values) - 1; n > dict.maxlen {
		dict.maxlen = n
	}
}

// AddException adds a word with explicit hyphens, like "ta-ble".
func (dict *Dictionary) AddException(word string) {
	syllables := strings.Split(word, "-")
	dict.exceptions[strings.ToLower(strings.Join(syllables, ""))] = syllables
}

// Hyphenate splits a word into syllables. Words which cannot be hyphenated
// are returned as a single syllable.
func (dict *Dictionary) Hyphenate(word string) []string {
	if dict == nil || word == "" {
		return []string{word}
	}
	if exc, ok := dict.exceptions[strings.ToLower(word)]; ok {
		return reapply(word, exc)
	}
	points := dict.Points(word)
	runes := []rune(word)
	syllables := make([]string, 0, 3)
	start := 0
	for i := 1; i < len(runes); i++ {
		if points[i]%2 == 1 {
			syllables = append(syllables, string(runes[start:i]))
			start = i
		}
	}
	return append(syllables, string(runes[start:]))
}

// Points returns the Liang values between the letters of a word. Index i
// holds the value for a hyphen before rune i; odd values allow hyphenation.
// Values violating LeftMin or RightMin are cleared.
func (dict *Dictionary) Points(word string) []int {
	runes := []rune(strings.ToLower(word))
	work := make([]rune, 0, len(runes)+2)
	work = append(work, '.')
	work = append(work, runes...)
	work = append(work, '.')
	points := make([]int, len(work)+1)
	for i := 0; i < len(work); i++ {
		for j := i + 1; j <= len(work) && j-i <= dict.maxlen; j++ {
			node, ok := dict.patterns.Find(string(work[i:j]))
			if !ok {
				continue
			}
			values := node.Meta().([]int)
			for k, v := range values {
				if v > points[i+k] {
					points[i+k] = v
				}
			}
		}
	}
	result := points[1 : len(runes)+1] // result[i] is before runes[i]
	for i := range result {
		if i < dict.LeftMin || i > len(runes)-dict.RightMin {
			result[i] = 0
		}
	}
	return result
}

// reapply transfers the syllable lengths of an exception to the original
// spelling of word, thus keeping its capitalization.
func reapply(word string, exc []string) []string {
	runes := []rune(word)
	syllables := make([]string, 0, len(exc))
	pos := 0
	for _, s := range exc {
		n := len([]rune(s))
		if pos+n > len(runes) {
			n = len(runes) - pos
		}
		syllables = append(syllables, string(runes[pos:pos+n]))
		pos += n
	}
	return syllables
}

// --- Built-in dictionaries ----------------------------------------------

var dictionaries = struct {
	sync.Mutex
	m map[string]*Dictionary
}{m: make(map[string]*Dictionary)}

// ForLanguage returns the hyphenation dictionary for a language, or nil if
// none is available. Dictionaries are loaded once and shared.
func ForLanguage(lang language.Tag) *Dictionary {
	base, _ := lang.Base()
	id := base.String()
	dictionaries.Lock()
	defer dictionaries.Unlock()
	if dict, ok := dictionaries.m[id]; ok {
		return dict
	}
	var dict *Dictionary
	switch id {
	case "en":
		dict, _ = LoadPatterns("en", strings.NewReader(englishPatterns))
	default:
		tracer().Infof("no hyphenation patterns for language %q", id)
	}
	dictionaries.m[id] = dict
	return dict
}

// Register makes a dictionary available for a language, replacing a
// built-in one.
func Register(lang language.Tag, dict *Dictionary) {
	base, _ := lang.Base()
	dictionaries.Lock()
	defer dictionaries.Unlock()
	dictionaries.m[base.String()] = dict
}
