package css

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/xtl/core/dimen"
	"github.com/npillmayer/xtl/core/option"
	"github.com/npillmayer/xtl/core/percent"
	"github.com/npillmayer/xtl/engine/dom/style"
)

// PropertyType is a helper type for special values of properties, e.g.:
//
//     auto
//     initial
//     inherit
//
type PropertyType int

// Auto, Inherit and Initial are constant values for options-matching.
// Use with
//     option.Of{
//          css.Auto: …   // will match a CSS property option-type with value "auto"
//     }
const (
	Auto       PropertyType = 1 // for option matching
	Inherit    PropertyType = 2 // for option matching
	Initial    PropertyType = 3 // for option matching
	FontScaled PropertyType = 4 // for option matching: dimension is font-dependent
	Percentage PropertyType = 5 // for option matching: dimension depends on containing block
	NoneValue  PropertyType = 6 // for option matching: CSS keyword "none", e.g. for max-width
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	dimenKeyNone  uint32 = 0x0005
	keywordMask   uint32 = 0x000f

	dimenEM      uint32 = 0x0100
	dimenEX      uint32 = 0x0200
	dimenCH      uint32 = 0x0300
	dimenREM     uint32 = 0x0400
	dimenPRCNT   uint32 = 0x0900
	relativeMask uint32 = 0x0f00
)

// --- DimenT-----------------------------------------------------------------

// DimenT is an option type for CSS dimensions.
//
// Relative dimensions hold their factor as a fixed point number, with
// dimen.BP representing 1.0: `1.5em` is stored as 1.5*BP, `80%` as 80*BP.
type DimenT struct {
	d     dimen.Dimen
	flags uint32
}

// SomeDimen creates an optional dimen with an initial value of x.
func SomeDimen(x dimen.Dimen) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Dimen creates an optional dimen without an initial value.
func Dimen() DimenT {
	return DimenT{d: 0, flags: dimenNone}
}

// AutoDimen creates an optional dimen with value `auto`.
func AutoDimen() DimenT {
	return DimenT{flags: dimenAuto}
}

// Match is part of interface option.Type.
func (o DimenT) Match(choices interface{}) (value interface{}, err error) {
	return option.Match(o, choices)
}

// Equals is part of interface option.Type.
func (o DimenT) Equals(other interface{}) bool {
	tracer().Debugf("Dimen EQUALS %v ? %v", o, other)
	switch i := other.(type) {
	case DimenT:
		return o.d == i.d && o.flags == i.flags
	case dimen.Dimen:
		return o.IsAbsolute() && o.Unwrap() == i
	case int:
		return o.IsAbsolute() && o.Unwrap() == dimen.Dimen(i)
	case PropertyType:
		switch i {
		case Auto:
			return o.flags&keywordMask == dimenAuto
		case Initial:
			return o.flags&keywordMask == dimenInitial
		case Inherit:
			return o.flags&keywordMask == dimenInherit
		case NoneValue:
			return o.flags&keywordMask == dimenKeyNone
		case FontScaled:
			rel := o.flags & relativeMask
			return rel == dimenEM || rel == dimenEX || rel == dimenCH || rel == dimenREM
		case Percentage:
			return o.flags&relativeMask == dimenPRCNT
		}
	case string:
		switch i {
		case "%":
			return o.flags&relativeMask == dimenPRCNT
		}
	}
	return false
}

// Unwrap returns the underlying dimension of o. For relative dimensions this
// is the factor, with dimen.BP representing 1.0.
func (o DimenT) Unwrap() dimen.Dimen {
	return o.d
}

// IsNone returns true if o is unset.
func (o DimenT) IsNone() bool {
	return o.flags == dimenNone
}

// IsAuto returns true if o has value `auto`.
func (o DimenT) IsAuto() bool {
	return o.flags&keywordMask == dimenAuto
}

// IsRelative returns true if o represents a valid relative dimension (`%`, `em`, etc.).
func (o DimenT) IsRelative() bool {
	return o.flags&relativeMask > 0
}

// IsPercent returns true if o is a percentage.
func (o DimenT) IsPercent() bool {
	return o.flags&relativeMask == dimenPRCNT
}

// IsAbsolute returns true if o represents a valid absolute dimension.
func (o DimenT) IsAbsolute() bool {
	return o.flags == dimenAbsolute
}

func (o DimenT) String() string {
	if o.IsNone() {
		return "DimenT.None"
	}
	switch o.flags & keywordMask {
	case dimenAuto:
		return "auto"
	case dimenInitial:
		return "initial"
	case dimenInherit:
		return "inherit"
	case dimenKeyNone:
		return "none"
	}
	if o.IsRelative() {
		if unit, ok := relUnitMap[o.flags&relativeMask]; ok {
			return strconv.FormatFloat(o.d.Points(), 'f', -1, 64) + unit
		}
	}
	return fmt.Sprintf("%dsp", o.d)
}

var relUnitMap = map[uint32]string{
	dimenEM:    "em",
	dimenEX:    "ex",
	dimenCH:    "ch",
	dimenREM:   "rem",
	dimenPRCNT: "%",
}

var relUnitStringMap = map[string]uint32{
	"em":  dimenEM,
	"ex":  dimenEX,
	"ch":  dimenCH,
	"rem": dimenREM,
	"%":   dimenPRCNT,
}

// Basis holds the reference dimensions relative dimensions are resolved
// against.
type Basis struct {
	Containing   dimen.Dimen // width of the containing block, for percentages
	FontSize     dimen.Dimen // for em, ex and ch
	RootFontSize dimen.Dimen // for rem
}

// Resolve returns the absolute value of o. If o is unset or a keyword,
// Resolve returns false.
func (o DimenT) Resolve(basis Basis) (dimen.Dimen, bool) {
	if o.IsAbsolute() {
		return o.d, true
	}
	switch o.flags & relativeMask {
	case dimenEM:
		return basis.FontSize.MulDiv(int64(o.d), int64(dimen.BP)), true
	case dimenEX, dimenCH:
		return basis.FontSize.MulDiv(int64(o.d), 2*int64(dimen.BP)), true
	case dimenREM:
		return basis.RootFontSize.MulDiv(int64(o.d), int64(dimen.BP)), true
	case dimenPRCNT:
		if o.d%dimen.BP == 0 && o.d >= 0 && o.d <= 100*dimen.BP {
			return percent.FromInt(int(o.d / dimen.BP)).Of(basis.Containing), true
		}
		return basis.Containing.MulDiv(int64(o.d), 100*int64(dimen.BP)), true
	}
	return 0, false
}

// ResolveOr is like Resolve, but returns a default value for unset values and
// keywords.
func (o DimenT) ResolveOr(basis Basis, dflt dimen.Dimen) dimen.Dimen {
	if d, ok := o.Resolve(basis); ok {
		return d
	}
	return dflt
}

// DimenOption returns an optional dimension type from a property string.
// It will never return an error, even with illegal input, but instead will then
// return an unset dimension.
func DimenOption(p style.Property) DimenT {
	switch strings.ToLower(strings.TrimSpace(string(p))) {
	case "":
		return Dimen()
	case "auto":
		return DimenT{flags: dimenAuto}
	case "initial":
		return DimenT{flags: dimenInitial}
	case "inherit":
		return DimenT{flags: dimenInherit}
	case "none":
		return DimenT{flags: dimenKeyNone}
	}
	d, err := ParseDimen(string(p))
	if err != nil {
		return Dimen()
	}
	return d
}

var relDimenPattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+))(%|em|ex|ch|rem)$`)

// ErrDimenFormat is returned for values which are not CSS dimensions.
var ErrDimenFormat = errors.New("format error parsing dimension")

// ParseDimen parses a string to return an optional dimension. Syntax is CSS Unit.
// Valid dimensions are
//
//     15px
//     80%
//     -0.5em
//     0
//
// Numbers other than 0 must carry a unit.
func ParseDimen(s string) (DimenT, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m := relDimenPattern.FindStringSubmatch(s); len(m) == 3 {
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil || math.Abs(f) > 30000 {
			return Dimen(), ErrDimenFormat
		}
		return DimenT{d: dimen.FromPoints(f), flags: relUnitStringMap[m[2]]}, nil
	}
	d, _, err := dimen.ParseDimen(s)
	if err != nil {
		return Dimen(), ErrDimenFormat
	}
	if d != 0 && strings.IndexFunc(s, isUnitLetter) < 0 {
		return Dimen(), ErrDimenFormat
	}
	return SomeDimen(d), nil
}

func isUnitLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// MaxDimen returns the greater of two dimensions.
func MaxDimen(d1, d2 DimenT) DimenT {
	m, _ := d1.Match(option.Maybe{
		option.None: d2,
		option.Some: option.Safe(d2.Match(option.Maybe{
			option.None: d1,
			option.Some: SomeDimen(dimen.Max(d1.Unwrap(), d2.Unwrap())),
		})),
	})
	return m.(DimenT)
}

// MinDimen returns the lesser of two dimensions.
func MinDimen(d1, d2 DimenT) DimenT {
	m, _ := d1.Match(option.Maybe{
		option.None: d2,
		option.Some: option.Safe(d2.Match(option.Maybe{
			option.None: d1,
			option.Some: SomeDimen(dimen.Min(d1.Unwrap(), d2.Unwrap())),
		})),
	})
	return m.(DimenT)
}
