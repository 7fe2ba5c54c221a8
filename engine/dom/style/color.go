package style

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color interprets p as a CSS color. It understands the CSS named colors,
// `transparent`, hex notation (#rgb, #rgba, #rrggbb, #rrggbbaa) and the
// functional notations rgb() and rgba(). `currentcolor` is not resolved here
// and returns false, as do unparsable values.
func (p Property) Color() (color.RGBA, bool) {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	switch {
	case s == "":
		return color.RGBA{}, false
	case s == "transparent":
		return color.RGBA{}, true
	case strings.HasPrefix(s, "#"):
		return hexColor(s[1:])
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return rgbFunction(s)
	}
	c, ok := colornames.Map[s]
	return c, ok
}

// IsCurrentColor is true for the CSS keyword `currentcolor`.
func (p Property) IsCurrentColor() bool {
	return strings.EqualFold(strings.TrimSpace(string(p)), "currentcolor")
}

func hexColor(h string) (color.RGBA, bool) {
	var digits []uint8
	for _, c := range h {
		d, err := strconv.ParseUint(string(c), 16, 8)
		if err != nil {
			return color.RGBA{}, false
		}
		digits = append(digits, uint8(d))
	}
	switch len(digits) {
	case 3, 4:
		c := color.RGBA{digits[0] * 17, digits[1] * 17, digits[2] * 17, 0xff}
		if len(digits) == 4 {
			c.A = digits[3] * 17
		}
		return premultiply(c), true
	case 6, 8:
		c := color.RGBA{
			digits[0]<<4 | digits[1],
			digits[2]<<4 | digits[3],
			digits[4]<<4 | digits[5],
			0xff,
		}
		if len(digits) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
		return premultiply(c), true
	}
	return color.RGBA{}, false
}

func rgbFunction(s string) (color.RGBA, bool) {
	lp, rp := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if lp < 0 || rp < lp {
		return color.RGBA{}, false
	}
	args := strings.FieldsFunc(s[lp+1:rp], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return color.RGBA{}, false
	}
	var rgba [4]uint8
	rgba[3] = 0xff
	for i, arg := range args {
		v, err := channel(arg, i == 3)
		if err != nil {
			return color.RGBA{}, false
		}
		rgba[i] = v
	}
	return premultiply(color.RGBA{rgba[0], rgba[1], rgba[2], rgba[3]}), true
}

// channel parses a color channel: 0…255, a percentage, or 0…1 for alpha.
func channel(arg string, alpha bool) (uint8, error) {
	pcnt := strings.HasSuffix(arg, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
	if err != nil {
		return 0, err
	}
	switch {
	case pcnt:
		f = f * 255 / 100
	case alpha:
		f *= 255
	}
	if f < 0 {
		f = 0
	} else if f > 255 {
		f = 255
	}
	return uint8(f + 0.5), nil
}

// image/color expects alpha-premultiplied values.
func premultiply(c color.RGBA) color.RGBA {
	if c.A == 0xff {
		return c
	}
	a := uint32(c.A)
	c.R = uint8(uint32(c.R) * a / 0xff)
	c.G = uint8(uint32(c.G) * a / 0xff)
	c.B = uint8(uint32(c.B) * a / 0xff)
	return c
}
