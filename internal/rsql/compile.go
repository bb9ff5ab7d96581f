package rsql

import (
	"fmt"
	"strings"

	"github.com/roach88/dxlink/internal/filter"
)

// Separator joins clauses into a single filter string (logical AND).
const Separator = ";"

// ParenStyle selects how membership parentheses are written.
type ParenStyle string

const (
	// ParensLiteral writes field=in=(a,b).
	ParensLiteral ParenStyle = "literal"

	// ParensEncoded writes field=in=%28a,b%29.
	ParensEncoded ParenStyle = "encoded"
)

// ParseParenStyle validates a configured paren style. Empty selects
// ParensLiteral.
func ParseParenStyle(s string) (ParenStyle, error) {
	switch ParenStyle(s) {
	case "", ParensLiteral:
		return ParensLiteral, nil
	case ParensEncoded:
		return ParensEncoded, nil
	default:
		return "", fmt.Errorf("invalid paren style %q: must be %q or %q", s, ParensLiteral, ParensEncoded)
	}
}

// Compiler renders filter fragments to RSQL clause strings.
type Compiler struct {
	Parens ParenStyle
}

// NewCompiler creates a Compiler bound to style.
func NewCompiler(style ParenStyle) *Compiler {
	return &Compiler{Parens: style}
}

// Compile renders a single fragment.
func (c *Compiler) Compile(f filter.Fragment) (string, error) {
	if f == nil {
		return "", fmt.Errorf("cannot compile nil fragment")
	}

	switch frag := f.(type) {
	case filter.Equals:
		return compileEquals(frag), nil
	case *filter.Equals:
		return compileEquals(*frag), nil
	case filter.In:
		return c.compileIn(frag)
	case *filter.In:
		return c.compileIn(*frag)
	case filter.Query:
		return compileQuery(frag), nil
	case *filter.Query:
		return compileQuery(*frag), nil
	case filter.AnyOf:
		return compileAnyOf(frag)
	case *filter.AnyOf:
		return compileAnyOf(*frag)
	default:
		return "", fmt.Errorf("unsupported fragment type: %T", f)
	}
}

// CompileAll renders fragments in order.
func (c *Compiler) CompileAll(fragments []filter.Fragment) ([]string, error) {
	parts := make([]string, 0, len(fragments))
	for i, f := range fragments {
		part, err := c.Compile(f)
		if err != nil {
			return nil, fmt.Errorf("fragment %d: %w", i, err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// Join combines rendered clauses into one filter string.
func Join(parts []string) string {
	return strings.Join(parts, Separator)
}

// Split is the inverse of Join. An empty string yields no clauses.
func Split(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, Separator)
}

// compileEquals renders "field==value".
func compileEquals(eq filter.Equals) string {
	return eq.Field + "==" + eq.Value
}

// compileQuery renders "field=q=value".
func compileQuery(q filter.Query) string {
	return q.Field + "=q=" + q.Value
}

// compileIn renders "field=in=(v1,v2)" in the compiler's paren style.
func (c *Compiler) compileIn(in filter.In) (string, error) {
	if len(in.Values) == 0 {
		return "", fmt.Errorf("membership on %q has no values", in.Field)
	}

	lparen, rparen := "(", ")"
	if c.Parens == ParensEncoded {
		lparen, rparen = "%28", "%29"
	}
	return in.Field + "=in=" + lparen + strings.Join(in.Values, ",") + rparen, nil
}

// compileAnyOf renders "(field=q=v1,field=q=v2)". The group parens are
// always literal; "," is the RSQL OR operator.
func compileAnyOf(group filter.AnyOf) (string, error) {
	if len(group.Queries) == 0 {
		return "", fmt.Errorf("disjunction has no clauses")
	}

	parts := make([]string, len(group.Queries))
	for i, q := range group.Queries {
		parts[i] = compileQuery(q)
	}
	return "(" + strings.Join(parts, ",") + ")", nil
}
