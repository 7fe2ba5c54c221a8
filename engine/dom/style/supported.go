package style

import (
	"sort"
	"strings"
)

type propertyDef struct {
	initial   Property
	inherited bool
}

// supported lists all properties the layout engine understands, with their
// initial values.
var supported = map[string]propertyDef{
	"display":             {"inline", false},
	"float":               {"none", false},
	"clear":               {"none", false},
	"width":               {"auto", false},
	"height":              {"auto", false},
	"min-width":           {"0", false},
	"max-width":           {"none", false},
	"margin-top":          {"0", false},
	"margin-right":        {"0", false},
	"margin-bottom":       {"0", false},
	"margin-left":         {"0", false},
	"padding-top":         {"0", false},
	"padding-right":       {"0", false},
	"padding-bottom":      {"0", false},
	"padding-left":        {"0", false},
	"border-top-width":    {"medium", false},
	"border-right-width":  {"medium", false},
	"border-bottom-width": {"medium", false},
	"border-left-width":   {"medium", false},
	"border-top-color":    {"currentcolor", false},
	"border-right-color":  {"currentcolor", false},
	"border-bottom-color": {"currentcolor", false},
	"border-left-color":   {"currentcolor", false},
	"border-top-style":    {"none", false},
	"border-right-style":  {"none", false},
	"border-bottom-style": {"none", false},
	"border-left-style":   {"none", false},
	"background-color":    {"transparent", false},
	"color":               {"black", true},
	"font-family":         {"serif", true},
	"font-size":           {"medium", true},
	"font-style":          {"normal", true},
	"font-weight":         {"normal", true},
	"font-variant":        {"normal", true},
	"line-height":         {"normal", true},
	"text-align":          {"start", true},
	"text-align-last":     {"auto", true},
	"text-indent":         {"0", true},
	"direction":           {"ltr", true},
	"text-decoration":     {"none", false}, // propagated, see ComputeStyles
	"hyphens":             {"manual", true},
	"white-space":         {"normal", true},
}

// IsSupported is true if the layout engine understands property key.
// Shorthand properties are not included.
func IsSupported(key string) bool {
	_, ok := supported[key]
	return ok
}

// IsInherited is true for properties which are inherited by default.
func IsInherited(key string) bool {
	return supported[key].inherited
}

// InitialValue returns the initial value of a supported property, or NullStyle.
func InitialValue(key string) Property {
	return supported[key].initial
}

// SupportedProperties returns the keys of all supported properties.
func SupportedProperties() []string {
	keys := make([]string, 0, len(supported))
	for k := range supported {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ComputeStyles computes the styles of a node from its specified properties
// and the computed styles of its parent. parent may be nil for the root node.
// Every supported property is set in the result.
//
// text-decoration is not inherited, but propagated: decorations of ancestors
// are drawn across their descendants, so they are merged into the result.
func ComputeStyles(parent, specified *PropertyMap) *PropertyMap {
	computed := NewPropertyMap(len(supported))
	for key, def := range supported {
		p, ok := specified.Get(key)
		switch {
		case ok && p.IsInherit():
			if p, ok = parent.Get(key); !ok {
				p = def.initial
			}
		case ok && p.IsInitial():
			p = def.initial
		case ok:
		case def.inherited && parent.Len() > 0:
			if p, ok = parent.Get(key); !ok {
				p = def.initial
			}
		default:
			p = def.initial
		}
		computed.props[key] = p
	}
	if parent != nil {
		deco := mergeDecorations(parent.Property("text-decoration"), computed.Property("text-decoration"))
		computed.props["text-decoration"] = deco
	}
	tracer().Debugf("computed styles = %s", computed)
	return computed
}

var decorationOrder = []string{"underline", "overline", "line-through"}

func mergeDecorations(p1, p2 Property) Property {
	var decos []string
	has := func(p Property, d string) bool {
		for _, f := range strings.Fields(strings.ToLower(string(p))) {
			if f == d {
				return true
			}
		}
		return false
	}
	for _, d := range decorationOrder {
		if has(p1, d) || has(p2, d) {
			decos = append(decos, d)
		}
	}
	if len(decos) == 0 {
		return "none"
	}
	return Property(strings.Join(decos, " "))
}

// --- Shorthands ------------------------------------------------------------

var sides = [4]string{"top", "right", "bottom", "left"}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "solid": true, "dotted": true, "dashed": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

// ExpandShorthand expands a shorthand property into longhand properties.
// If key is not a shorthand property, ExpandShorthand returns false.
//
//     padding: 1px 2px 3px     →  top 1px, right 2px, bottom 3px, left 2px
//     border: 1px solid red    →  12 longhands for width, style and color
//
func ExpandShorthand(key string, value Property) ([]KeyValue, bool) {
	switch key {
	case "margin", "padding":
		return expandSides(key+"-%s", value), true
	case "border-width", "border-style", "border-color":
		return expandSides("border-%s-"+strings.TrimPrefix(key, "border-"), value), true
	case "border":
		var kvs []KeyValue
		for _, side := range sides {
			kvs = append(kvs, expandBorderSide("border-"+side, value)...)
		}
		return kvs, true
	case "border-top", "border-right", "border-bottom", "border-left":
		return expandBorderSide(key, value), true
	case "background":
		if _, ok := value.Color(); ok {
			return []KeyValue{{"background-color", value}}, true
		}
	}
	return nil, false
}

func expandSides(pattern string, value Property) []KeyValue {
	parts := strings.Fields(string(value))
	var v [4]string
	switch len(parts) {
	case 1:
		v = [4]string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		v = [4]string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		v = [4]string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		v = [4]string{parts[0], parts[1], parts[2], parts[3]}
	default:
		tracer().Debugf("cannot expand %q into 4 sides", value)
		return nil
	}
	kvs := make([]KeyValue, 4)
	for i, side := range sides {
		kvs[i] = KeyValue{Key: strings.Replace(pattern, "%s", side, 1), Value: Property(v[i])}
	}
	return kvs
}

// expandBorderSide expands `border-top: 1px solid red`. Values omitted are set
// to their initial values, as the CSS rules for shorthands demand.
func expandBorderSide(prefix string, value Property) []KeyValue {
	width, bstyle, color := Property("medium"), Property("none"), Property("currentcolor")
	for _, part := range strings.Fields(string(value)) {
		lower := strings.ToLower(part)
		switch {
		case borderStyles[lower]:
			bstyle = Property(lower)
		case lower == "thin" || lower == "medium" || lower == "thick" || startsNumeric(lower):
			width = Property(lower)
		default:
			color = Property(part)
		}
	}
	return []KeyValue{
		{prefix + "-width", width},
		{prefix + "-style", bstyle},
		{prefix + "-color", color},
	}
}

func startsNumeric(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+'
}
