package filter

import "strings"

// Fragment is one query clause for a single field.
//
// This is a sealed interface - only types in this package implement it.
// Compilers switch over the concrete types:
//   - Equals: field==value
//   - In: field=in=(v1,v2)
//   - Query: field=q=value
//   - AnyOf: (field=q=v1,field=q=v2)
type Fragment interface {
	fragmentNode()

	// FieldName returns the field the fragment constrains.
	FieldName() string
}

// Equals matches a flat field against a single value.
type Equals struct {
	Field string
	Value string
}

func (Equals) fragmentNode() {}

// FieldName implements Fragment.
func (e Equals) FieldName() string { return e.Field }

// In matches a flat field against any of several values.
type In struct {
	Field  string
	Values []string
}

func (In) fragmentNode() {}

// FieldName implements Fragment.
func (in In) FieldName() string { return in.Field }

// Query matches a dotted (nested or indexed) field against a value.
type Query struct {
	Field string
	Value string
}

func (Query) fragmentNode() {}

// FieldName implements Fragment.
func (q Query) FieldName() string { return q.Field }

// AnyOf is a disjunction of Query fragments on the same dotted field.
// It renders as a single parenthesized group.
type AnyOf struct {
	Queries []Query
}

func (AnyOf) fragmentNode() {}

// FieldName implements Fragment. An empty group has no field.
func (a AnyOf) FieldName() string {
	if len(a.Queries) == 0 {
		return ""
	}
	return a.Queries[0].Field
}

// IsDotted reports whether field names a nested or indexed attribute.
func IsDotted(field string) bool {
	return strings.Contains(field, ".")
}
