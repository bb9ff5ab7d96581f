package explorer

import (
	"fmt"

	"github.com/roach88/dxlink/internal/filter"
	"github.com/roach88/dxlink/internal/rsql"
)

// Linker runs the full pipeline from a raw Filter Set to a link:
// strip, build fragments, compile clauses, construct the URL.
type Linker struct {
	Builder  *Builder
	Compiler *rsql.Compiler

	// Unicode normalizes values before building. The zero value keeps
	// them as given.
	Unicode filter.UnicodeForm
}

// NewLinker creates a Linker.
func NewLinker(b *Builder, c *rsql.Compiler) *Linker {
	return &Linker{Builder: b, Compiler: c}
}

// Clauses strips set and renders its clauses in order.
func (l *Linker) Clauses(set *filter.Set) ([]string, error) {
	fragments, err := filter.BuildFrom(set.InForm(l.Unicode))
	if err != nil {
		return nil, err
	}
	clauses, err := l.Compiler.CompileAll(fragments)
	if err != nil {
		return nil, fmt.Errorf("compile filters: %w", err)
	}
	return clauses, nil
}

// Table builds the filtered table link for set.
func (l *Linker) Table(entity string, set *filter.Set) (string, error) {
	clauses, err := l.Clauses(set)
	if err != nil {
		return "", err
	}
	return l.Builder.TableURL(entity, clauses)
}

// Rows builds the REST API rows link for set.
func (l *Linker) Rows(entity string, set *filter.Set, num int) (string, error) {
	clauses, err := l.Clauses(set)
	if err != nil {
		return "", err
	}
	return l.Builder.RowsURL(entity, clauses, num)
}

// Search builds the search-all link for term.
func (l *Linker) Search(entity, term string) (string, error) {
	return l.Builder.SearchAllURL(entity, term)
}
