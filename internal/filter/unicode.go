package filter

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// UnicodeForm selects an optional Unicode normalization for filter values.
type UnicodeForm string

const (
	// UnicodeAsIs leaves values byte for byte as given.
	UnicodeAsIs UnicodeForm = "none"
	// UnicodeNFC composes values (e + U+0301 becomes é).
	UnicodeNFC UnicodeForm = "nfc"
	// UnicodeNFD decomposes values.
	UnicodeNFD UnicodeForm = "nfd"
)

// ParseUnicodeForm validates a configured form. Empty selects UnicodeAsIs.
func ParseUnicodeForm(s string) (UnicodeForm, error) {
	switch UnicodeForm(s) {
	case "", UnicodeAsIs:
		return UnicodeAsIs, nil
	case UnicodeNFC, UnicodeNFD:
		return UnicodeForm(s), nil
	default:
		return "", fmt.Errorf("invalid unicode form %q: must be %q, %q or %q", s, UnicodeAsIs, UnicodeNFC, UnicodeNFD)
	}
}

// InForm returns a copy of s with every non-null value normalized to form.
// UnicodeAsIs and the empty form return an unchanged copy.
func (s *Set) InForm(form UnicodeForm) *Set {
	var f norm.Form
	switch form {
	case UnicodeNFC:
		f = norm.NFC
	case UnicodeNFD:
		f = norm.NFD
	default:
		return s.Select(func(Entry) bool { return true })
	}

	out := &Set{}
	for _, e := range s.Entries() {
		if e.Value != nil {
			e.Value = Str(f.String(*e.Value))
		}
		_ = out.Add(e.Field, e.Value)
	}
	return out
}
