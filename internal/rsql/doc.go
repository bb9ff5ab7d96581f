// Package rsql renders filter fragments in the data explorer's RSQL dialect
// and percent-encodes them for use in URLs.
//
// The membership parentheses have two historical forms, literal
// "field=in=(a,b)" and pre-encoded "field=in=%28a,b%29". They are not
// byte-identical on the wire, so a Compiler is bound to one ParenStyle and
// uses it for every fragment it renders. ParensLiteral is the default.
package rsql
