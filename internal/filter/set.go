package filter

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// reservedFieldChars cannot appear in a field name; they delimit operators,
// lists and clauses in the rendered query.
const reservedFieldChars = "=;,()!<>\"'"

// Entry is one field/value pair of a Set. A nil Value is a null entry.
type Entry struct {
	Field string
	Value *string
}

// Str returns a pointer to s, for building entries inline.
func Str(s string) *string {
	return &s
}

// IsBlank reports whether the entry is null or holds the empty string.
func (e Entry) IsBlank() bool {
	return e.Value == nil || *e.Value == ""
}

// Set is an ordered mapping from field name to raw input value.
//
// Entries keep insertion order. Field names are unique and validated when
// added. The zero value is an empty Set ready to use.
type Set struct {
	entries []Entry
	index   map[string]int
}

// NewSet builds a Set from entries, in order.
func NewSet(entries ...Entry) (*Set, error) {
	s := &Set{}
	for _, e := range entries {
		if err := s.Add(e.Field, e.Value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSet is like NewSet but panics on error. Intended for tests and
// package-level literals.
func MustSet(entries ...Entry) *Set {
	s, err := NewSet(entries...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add appends a field. A nil value records a null entry.
func (s *Set) Add(field string, value *string) error {
	if err := validateField(field); err != nil {
		return err
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[field]; ok {
		return newError(ErrCodeDuplicateField, field, "", "field %q appears more than once", field)
	}
	var v *string
	if value != nil {
		v = Str(*value)
	}
	s.index[field] = len(s.entries)
	s.entries = append(s.entries, Entry{Field: field, Value: v})
	return nil
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns a copy of the entries in order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = Entry{Field: e.Field}
		if e.Value != nil {
			out[i].Value = Str(*e.Value)
		}
	}
	return out
}

// Fields returns the field names in order.
func (s *Set) Fields() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Field
	}
	return out
}

// Get returns the value for field and whether the field is present.
func (s *Set) Get(field string) (*string, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[field]
	if !ok {
		return nil, false
	}
	return s.entries[i].Value, true
}

// Select returns a new Set holding the entries for which keep returns true.
// The receiver is not modified.
func (s *Set) Select(keep func(Entry) bool) *Set {
	out := &Set{}
	if s == nil {
		return out
	}
	for _, e := range s.Entries() {
		if keep(e) {
			// Entries already passed validation when added to s.
			_ = out.Add(e.Field, e.Value)
		}
	}
	return out
}

// Merge returns a new Set with the entries of s followed by those of o
// whose fields s lacks. Where both hold a field, o's value wins and s's
// position is kept. Neither input is modified.
func (s *Set) Merge(o *Set) *Set {
	out := &Set{}
	for _, e := range s.Entries() {
		if v, ok := o.Get(e.Field); ok {
			e.Value = v
		}
		_ = out.Add(e.Field, e.Value)
	}
	for _, e := range o.Entries() {
		if _, ok := out.Get(e.Field); !ok {
			_ = out.Add(e.Field, e.Value)
		}
	}
	return out
}

// Strip returns a new Set without null or empty entries.
//
// Stripping never mutates the receiver and is idempotent.
func (s *Set) Strip() *Set {
	return s.Select(func(e Entry) bool { return !e.IsBlank() })
}

// String renders the set as field=value pairs, with null shown as <null>.
func (s *Set) String() string {
	parts := make([]string, 0, s.Len())
	for _, e := range s.Entries() {
		if e.Value == nil {
			parts = append(parts, e.Field+"=<null>")
			continue
		}
		parts = append(parts, e.Field+"="+*e.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParsePairs builds a Set from field=value arguments. The value is
// everything after the first "="; "field=" gives an empty value.
func ParsePairs(args []string) (*Set, error) {
	s := &Set{}
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, newError(ErrCodeInvalidPair, "", arg, "argument %q is not field=value", arg)
		}
		if err := s.Add(strings.TrimSpace(field), Str(value)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ParseQuery builds a Set from a raw URL query string, keeping the order
// in which parameters appear on the wire. A parameter without "=" gives an
// empty value.
func ParseQuery(rawQuery string) (*Set, error) {
	s := &Set{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("parse query key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("parse query value for %q: %w", key, err)
		}
		if err := s.Add(key, Str(value)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// UnmarshalYAML decodes a YAML mapping into the Set, preserving key order.
//
// Scalars become string values, null becomes a null entry and a sequence of
// scalars becomes a comma-separated list.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: filters must be a mapping", node.Line)
	}
	*s = Set{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		value, err := yamlValue(val)
		if err != nil {
			return fmt.Errorf("line %d: field %q: %w", val.Line, key.Value, err)
		}
		if err := s.Add(key.Value, value); err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}
	}
	return nil
}

func yamlValue(node *yaml.Node) (*string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil, nil
		}
		return Str(node.Value), nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.ShortTag() == "!!null" {
				return nil, fmt.Errorf("list items must be scalars")
			}
			items = append(items, item.Value)
		}
		return Str(strings.Join(items, ",")), nil
	default:
		return nil, fmt.Errorf("value must be a scalar or a list of scalars")
	}
}

func validateField(field string) error {
	if field == "" {
		return newError(ErrCodeInvalidField, "", "", "field name is empty")
	}
	if strings.ContainsAny(field, reservedFieldChars) {
		return newError(ErrCodeInvalidField, field, "", "field name contains one of %q", reservedFieldChars)
	}
	if strings.IndexFunc(field, unicode.IsSpace) >= 0 {
		return newError(ErrCodeInvalidField, field, "", "field name contains whitespace")
	}
	if strings.HasPrefix(field, ".") || strings.HasSuffix(field, ".") || strings.Contains(field, "..") {
		return newError(ErrCodeInvalidField, field, "", "field name has an empty path segment")
	}
	return nil
}

