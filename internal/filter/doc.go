// Package filter provides the Filter Set and Filter Fragment types used to
// build data-explorer filter queries from user input.
//
// A Filter Set is an ordered mapping from field name to raw input value.
// Values may be null (nil) or empty while the set is being assembled from
// form state, CLI arguments or a URL query string; Strip removes those
// entries before the set is turned into fragments.
//
// PIPELINE:
//
//	[Set] → Strip → [Set] → Build → [Fragment...] → rsql.Compiler → [string...]
//
// FRAGMENTS:
//
// Fragment is a sealed interface. Only types in this package implement it,
// so compilers can switch over it exhaustively:
//
//	Equals   field==value
//	In       field=in=(v1,v2)
//	Query    field=q=value
//	AnyOf    (field=q=v1,field=q=v2)
//
// Flat fields produce Equals or In. Dotted fields (e.g. "sample.origin")
// refer to nested or indexed attributes and produce Query or AnyOf.
//
// Value normalization happens in Build: NFC normalization, surrounding
// whitespace trim, ", " collapsed to "," and one trailing comma dropped.
// A value that is empty after normalization is an EMPTY_VALUE error; it is
// never rendered as a broken fragment.
package filter
