package explorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dxlink/internal/filter"
	"github.com/roach88/dxlink/internal/rsql"
)

func TestLinker_Table_StripsAndRoundTrips(t *testing.T) {
	l := NewLinker(NewBuilder(""), rsql.NewCompiler(rsql.ParensLiteral))

	set := filter.MustSet(
		filter.Entry{Field: "gender", Value: filter.Str("female")},
		filter.Entry{Field: "age", Value: nil},
		filter.Entry{Field: "country", Value: filter.Str("Netherlands")},
		filter.Entry{Field: "group", Value: filter.Str("")},
	)

	link, err := l.Table("cosas_patients", set)
	require.NoError(t, err)

	clauses, err := DecodeFilter(link)
	require.NoError(t, err)
	assert.Equal(t, []string{"gender==female", "country==Netherlands"}, clauses)

	// The caller's set is untouched.
	assert.Equal(t, 4, set.Len())
}

func TestLinker_Table_PropagatesFilterErrors(t *testing.T) {
	l := NewLinker(NewBuilder(""), rsql.NewCompiler(rsql.ParensLiteral))

	set := filter.MustSet(filter.Entry{Field: "country", Value: filter.Str(" , ")})

	_, err := l.Table("cosas_patients", set)
	require.Error(t, err)
	assert.True(t, filter.IsCode(err, filter.ErrCodeEmptyValue))
}

func TestLinker_Table_EmptySetHasEmptyFilter(t *testing.T) {
	l := NewLinker(NewBuilder(""), rsql.NewCompiler(rsql.ParensLiteral))

	link, err := l.Table("cosas_patients", filter.MustSet(filter.Entry{Field: "a", Value: nil}))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(link, "&filter="), link)

	clauses, err := DecodeFilter(link)
	require.NoError(t, err)
	assert.Empty(t, clauses)
}

func TestLinker_UnicodeForm(t *testing.T) {
	set := filter.MustSet(filter.Entry{Field: "city", Value: filter.Str("Café")})

	l := NewLinker(NewBuilder(""), rsql.NewCompiler(rsql.ParensLiteral))
	clauses, err := l.Clauses(set)
	require.NoError(t, err)
	assert.Equal(t, []string{"city==Café"}, clauses)

	l.Unicode = filter.UnicodeNFC
	clauses, err = l.Clauses(set)
	require.NoError(t, err)
	assert.Equal(t, []string{"city==Cafe\u0301"}, clauses)

	link, err := l.Table("umdm_sample", set)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(link, "&filter=city%3D%3DCaf%C3%A9"), link)
}
