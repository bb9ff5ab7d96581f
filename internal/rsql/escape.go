package rsql

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s the way ECMAScript encodeURIComponent
// does: ASCII letters, digits and - _ . ! ~ * ' ( ) pass through, every
// other byte of the UTF-8 encoding becomes %XX.
//
// url.QueryEscape differs (space becomes "+", and ! ' ( ) * are escaped),
// which would change the bytes the data explorer receives.
func EscapeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// UnescapeComponent reverses EscapeComponent. "+" is kept as a literal plus.
func UnescapeComponent(s string) (string, error) {
	return url.PathUnescape(s)
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
