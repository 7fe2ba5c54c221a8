/*
Package parameters holds typesetting registers, i.e. the numeric and textual
parameters steering line breaking and hyphenation.

Registers are organized in groups, similar to TeX: a group is opened when
layout enters an element and closed when it leaves it. Values pushed within
a group are forgotten at the end of the group.

    regs := parameters.NewTypesettingRegisters()
    regs.Begingroup()
    regs.Push(parameters.P_LANGUAGE, "de")
    …
    regs.Endgroup()   // language is back to its previous value

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"fmt"

	"github.com/npillmayer/xtl/core/dimen"
)

// TypesettingParameter is the key of a register.
type TypesettingParameter int

// Typesetting registers. Penalties and demerits follow TeX's conventions.
// Stretch and shrink ratios are given in percent of the natural width of
// a gap.
const (
	none                    TypesettingParameter = iota
	P_LANGUAGE                                   // string, BCP 47
	P_HYPHENATE                                  // bool
	P_HYPHENCHAR                                 // int (rune)
	P_MINHYPHENLENGTH                            // int, # of runes of a word
	P_HYPHENPENALTY                              // int
	P_EXHYPHENPENALTY                            // int, penalty for explicit hyphens
	P_LINEPENALTY                                // int
	P_TOLERANCE                                  // int, max badness for optimal fit
	P_DOUBLEHYPHENDEMERITS                       // int
	P_ADJDEMERITS                                // int, fitness classes differ by more than 1
	P_FITNESSDEMERITS                            // int, fitness classes differ
	P_INTERWORDSTRETCH                           // int, percent of space width
	P_INTERWORDSHRINK                            // int, percent of space width
	P_INTERLETTERSTRETCH                         // int, per mille of font size
	P_OVERFLOWTOLERANCE                          // dimen.Dimen
	P_STOPPER
)

var parameterNames = [...]string{
	"none", "language", "hyphenate", "hyphenchar", "minhyphenlength", "hyphenpenalty",
	"exhyphenpenalty", "linepenalty", "tolerance", "doublehyphendemerits",
	"adjdemerits", "fitnessdemerits", "interwordstretch", "interwordshrink",
	"interletterstretch", "overflowtolerance",
}

func (p TypesettingParameter) String() string {
	if p > none && p < P_STOPPER {
		return parameterNames[p]
	}
	return fmt.Sprintf("P_%d", int(p))
}

// ParameterGroup is a level of parameter values.
type ParameterGroup struct {
	params map[TypesettingParameter]interface{}
	level  int
	next   *ParameterGroup
}

// TypesettingRegisters holds a base set of parameter values plus a stack
// of groups. Not safe for concurrent use; every layout run owns its registers.
type TypesettingRegisters struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

// NewTypesettingRegisters creates registers with default values.
func NewTypesettingRegisters() *TypesettingRegisters {
	regs := &TypesettingRegisters{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_LANGUAGE] = "en"
	p[P_HYPHENATE] = false
	p[P_HYPHENCHAR] = int('-')
	p[P_MINHYPHENLENGTH] = 5
	p[P_HYPHENPENALTY] = 50
	p[P_EXHYPHENPENALTY] = 50
	p[P_LINEPENALTY] = 10
	p[P_TOLERANCE] = 200
	p[P_DOUBLEHYPHENDEMERITS] = 10000
	p[P_ADJDEMERITS] = 10000
	p[P_FITNESSDEMERITS] = 5000
	p[P_INTERWORDSTRETCH] = 50
	p[P_INTERWORDSHRINK] = 33
	p[P_INTERLETTERSTRETCH] = 0
	p[P_OVERFLOWTOLERANCE] = dimen.Zero
}

// Begingroup opens a new group.
func (regs *TypesettingRegisters) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes the innermost group and drops all values pushed within it.
func (regs *TypesettingRegisters) Endgroup() {
	if regs.grouplevel == 0 {
		return
	}
	if regs.groups != nil && regs.groups.level == regs.grouplevel {
		regs.groups = regs.groups.next
	}
	regs.grouplevel--
}

// Push sets a parameter for the current group (or the base set if no group
// is open).
func (regs *TypesettingRegisters) Push(key TypesettingParameter, value interface{}) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of typesetting parameters")
	}
	if regs.grouplevel == 0 {
		regs.base[key] = value
		return
	}
	var g *ParameterGroup
	if regs.groups == nil || regs.groups.level < regs.grouplevel {
		g = &ParameterGroup{
			params: make(map[TypesettingParameter]interface{}),
			level:  regs.grouplevel,
			next:   regs.groups,
		}
		regs.groups = g
	} else {
		g = regs.groups
	}
	g.params[key] = value
}

// Get returns the innermost value of a parameter.
func (regs *TypesettingRegisters) Get(key TypesettingParameter) interface{} {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of typesetting parameters")
	}
	for g := regs.groups; g != nil; g = g.next {
		if value, ok := g.params[key]; ok {
			return value
		}
	}
	return regs.base[key]
}

// S returns a string parameter.
func (regs *TypesettingRegisters) S(key TypesettingParameter) string {
	return regs.Get(key).(string)
}

// N returns an integer parameter.
func (regs *TypesettingRegisters) N(key TypesettingParameter) int {
	return regs.Get(key).(int)
}

// B returns a boolean parameter.
func (regs *TypesettingRegisters) B(key TypesettingParameter) bool {
	return regs.Get(key).(bool)
}

// D returns a dimension parameter.
func (regs *TypesettingRegisters) D(key TypesettingParameter) dimen.Dimen {
	return regs.Get(key).(dimen.Dimen)
}

// Level returns the current group nesting level.
func (regs *TypesettingRegisters) Level() int {
	return regs.grouplevel
}
