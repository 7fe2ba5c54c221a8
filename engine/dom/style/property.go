package style

import (
	"fmt"
	"sort"
	"strings"
)

// Property is a raw value for a CSS property. For example, with
//
//     color: black
//
// a property value of "black" is set.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsEmpty checks if p is unset.
func (p Property) IsEmpty() bool {
	return strings.TrimSpace(string(p)) == ""
}

// IsInherit is true for the CSS keyword `inherit`.
func (p Property) IsInherit() bool {
	return strings.EqualFold(strings.TrimSpace(string(p)), "inherit")
}

// IsInitial is true for the CSS keyword `initial`.
func (p Property) IsInitial() bool {
	return strings.EqualFold(strings.TrimSpace(string(p)), "initial")
}

// KeyValue is a property key together with its value.
type KeyValue struct {
	Key   string
	Value Property
}

func (kv KeyValue) String() string {
	return fmt.Sprintf("%s: %s", kv.Key, kv.Value)
}

// PropertyMap holds CSS properties of a node. The zero value is an empty map
// ready to use. Keys are lowercase property names.
type PropertyMap struct {
	props map[string]Property
}

// NewPropertyMap creates an empty property map.
func NewPropertyMap(capacity int) *PropertyMap {
	return &PropertyMap{props: make(map[string]Property, capacity)}
}

// Set sets a property. Setting NullStyle removes the property.
func (pmap *PropertyMap) Set(key string, p Property) {
	key = strings.ToLower(strings.TrimSpace(key))
	if p == NullStyle {
		delete(pmap.props, key)
		return
	}
	if pmap.props == nil {
		pmap.props = make(map[string]Property)
	}
	pmap.props[key] = Property(strings.TrimSpace(string(p)))
}

// Get returns a property and true, or NullStyle and false if the property is
// not set. Get is safe to call on a nil map.
func (pmap *PropertyMap) Get(key string) (Property, bool) {
	if pmap == nil || pmap.props == nil {
		return NullStyle, false
	}
	p, ok := pmap.props[key]
	return p, ok
}

// Property returns a property or NullStyle.
func (pmap *PropertyMap) Property(key string) Property {
	p, _ := pmap.Get(key)
	return p
}

// Len returns the number of properties set.
func (pmap *PropertyMap) Len() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.props)
}

// Keys returns the keys of all properties set, sorted.
func (pmap *PropertyMap) Keys() []string {
	if pmap == nil {
		return nil
	}
	keys := make([]string, 0, len(pmap.props))
	for k := range pmap.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Copy returns a shallow copy of pmap.
func (pmap *PropertyMap) Copy() *PropertyMap {
	c := NewPropertyMap(pmap.Len())
	if pmap != nil {
		for k, v := range pmap.props {
			c.props[k] = v
		}
	}
	return c
}

func (pmap *PropertyMap) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range pmap.Keys() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(string(pmap.props[k]))
	}
	b.WriteByte('}')
	return b.String()
}
