package hyphen

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/text/language"
)

const liangExample = `
\patterns{ % from Liang's thesis
hy3ph he2n hena4 hen5at 1na n2at 1tio 2io o2n
}
\hyphenation{ ta-ble }
`

func TestLiangExample(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.text")
	defer teardown()
	//
	dict, err := LoadPatterns("test", strings.NewReader(liangExample))
	if err != nil {
		t.Fatal(err)
	}
	syllables := dict.Hyphenate("hyphenation")
	if strings.Join(syllables, "-") != "hy-phen-ation" {
		t.Errorf("expected hy-phen-ation, is %v", syllables)
	}
	syllables = dict.Hyphenate("Table")
	if strings.Join(syllables, "-") != "Ta-ble" {
		t.Errorf("expected exception Ta-ble, is %v", syllables)
	}
	if len(dict.Hyphenate("on")) != 1 {
		t.Errorf("expected short word not to be hyphenated")
	}
}

func TestBuiltinEnglish(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xtl.text")
	defer teardown()
	//
	dict := ForLanguage(language.AmericanEnglish)
	if dict == nil {
		t.Fatalf("expected built-in dictionary for English")
	}
	if ForLanguage(language.English) != dict {
		t.Errorf("expected dictionaries to be shared between regional variants")
	}
	for _, w := range []string{"hyphenation", "typesetting", "table"} {
		syllables := dict.Hyphenate(w)
		if strings.Join(syllables, "") != w {
			t.Errorf("expected syllables of %q to re-join to the word, are %v", w, syllables)
		}
	}
	if ForLanguage(language.Japanese) != nil {
		t.Errorf("expected no dictionary for Japanese")
	}
}
