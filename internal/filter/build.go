package filter

import "strings"

// Normalize prepares a raw input value for fragment construction.
//
// The value is trimmed, every ", " becomes ",", and a single trailing comma
// is removed. Other bytes are kept as given:
//
//	"Australia, New Zealand," → "Australia,New Zealand"
func Normalize(raw string) string {
	v := strings.TrimSpace(raw)
	v = strings.ReplaceAll(v, ", ", ",")
	return strings.TrimSuffix(v, ",")
}

// Build converts a stripped Set into fragments, one per entry, in order.
//
// The Set must not hold null entries (see Strip). Empty values, empty list
// members and values containing ";" are rejected with a *Error.
func Build(s *Set) ([]Fragment, error) {
	fragments := make([]Fragment, 0, s.Len())
	for _, e := range s.Entries() {
		f, err := buildFragment(e)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, f)
	}
	return fragments, nil
}

// BuildFrom strips s and builds its fragments.
func BuildFrom(s *Set) ([]Fragment, error) {
	return Build(s.Strip())
}

func buildFragment(e Entry) (Fragment, error) {
	if e.Value == nil {
		return nil, newError(ErrCodeNullValue, e.Field, "", "null value must be stripped before building")
	}

	raw := *e.Value
	value := Normalize(raw)
	if value == "" {
		return nil, newError(ErrCodeEmptyValue, e.Field, raw, "value %q is empty after normalization", raw)
	}
	if strings.Contains(value, ";") {
		return nil, newError(ErrCodeReservedChar, e.Field, raw, "value %q contains the clause separator \";\"", raw)
	}

	var members []string
	if strings.Contains(value, ",") {
		members = strings.Split(value, ",")
		for _, m := range members {
			if m == "" {
				return nil, newError(ErrCodeEmptyMember, e.Field, raw, "value %q has an empty list member", raw)
			}
		}
	}

	if IsDotted(e.Field) {
		if members == nil {
			return Query{Field: e.Field, Value: value}, nil
		}
		queries := make([]Query, len(members))
		for i, m := range members {
			queries[i] = Query{Field: e.Field, Value: m}
		}
		return AnyOf{Queries: queries}, nil
	}

	if members == nil {
		return Equals{Field: e.Field, Value: value}, nil
	}
	return In{Field: e.Field, Values: members}, nil
}
