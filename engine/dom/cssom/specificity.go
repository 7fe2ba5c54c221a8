package cssom

// Specificity calculates the specificity of a single (non-grouped) CSS
// selector, as a number a·10000 + b·100 + c, where a counts ID selectors,
// b counts class, attribute and pseudo-class selectors, and c counts type
// selectors and pseudo-elements. Counts are capped at 99.
func Specificity(selector string) int {
	a, b, c := 0, 0, 0
	compoundStart := true
	i, n := 0, len(selector)
	for i < n {
		ch := selector[i]
		switch {
		case ch == '#':
			a++
			i = skipIdent(selector, i+1)
			compoundStart = false
		case ch == '.':
			b++
			i = skipIdent(selector, i+1)
			compoundStart = false
		case ch == '[':
			b++
			i = skipTo(selector, i+1, ']')
			compoundStart = false
		case ch == ':':
			if i+1 < n && selector[i+1] == ':' {
				c++
				i = skipIdent(selector, i+2)
			} else {
				b++
				i = skipIdent(selector, i+1)
				if i < n && selector[i] == '(' {
					i = skipTo(selector, i+1, ')')
				}
			}
			compoundStart = false
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '>' || ch == '+' || ch == '~':
			compoundStart = true
			i++
		case ch == '*':
			compoundStart = false
			i++
		case isIdentChar(ch):
			if compoundStart {
				c++
			}
			i = skipIdent(selector, i)
			compoundStart = false
		default:
			i++
		}
	}
	return capped(a)*10000 + capped(b)*100 + capped(c)
}

func capped(n int) int {
	if n > 99 {
		return 99
	}
	return n
}

func isIdentChar(ch byte) bool {
	return ch == '-' || ch == '_' || ch >= 0x80 ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func skipIdent(s string, i int) int {
	for i < len(s) && (isIdentChar(s[i]) || s[i] == '\\') {
		if s[i] == '\\' {
			i++
		}
		i++
	}
	return i
}

// skipTo skips to the position after the closing character, respecting
// nesting of the opening character.
func skipTo(s string, i int, closing byte) int {
	opening := byte('[')
	if closing == ')' {
		opening = '('
	}
	depth := 1
	for ; i < len(s); i++ {
		switch s[i] {
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return i
}
