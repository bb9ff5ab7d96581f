package explorer

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dxlink/internal/filter"
	"github.com/roach88/dxlink/internal/rsql"
)

func TestParseEntity(t *testing.T) {
	valid := []string{"variantdb_variant", "cosas_patients", "sys_sec_User", "umdm_lab2_samples"}
	for _, name := range valid {
		e, err := ParseEntity(name)
		require.NoError(t, err, name)
		assert.Equal(t, Entity(name), e)
	}

	invalid := []string{"", "variants", "_variant", "variantdb_", "a__b", "a_b&mod=x", "a_b c", "a/b_c"}
	for _, name := range invalid {
		_, err := ParseEntity(name)
		require.Error(t, err, name)
		assert.True(t, IsCode(err, ErrCodeInvalidEntity), name)
	}
}

func TestTableURL(t *testing.T) {
	b := NewBuilder("")

	link, err := b.TableURL("cosas_patients", []string{"gender==female", "country=in=(Australia,New Zealand)"})
	require.NoError(t, err)

	assert.Equal(t,
		"/menu/plugins/dataexplorer?entity=cosas_patients&mod=data&hideselect=true"+
			"&filter=gender%3D%3Dfemale%3Bcountry%3Din%3D(Australia%2CNew%20Zealand)",
		link)
}

func TestTableURL_NoClauses(t *testing.T) {
	link, err := NewBuilder("").TableURL("cosas_patients", nil)
	require.NoError(t, err)

	assert.Equal(t, "/menu/plugins/dataexplorer?entity=cosas_patients&mod=data&hideselect=true&filter=", link)
}

func TestTableURL_BaseURLAndPath(t *testing.T) {
	b := &Builder{BaseURL: "https://molgenis.example.org/", Path: "/plugin/dataexplorer"}

	link, err := b.TableURL("cosas_patients", []string{"a==1"})
	require.NoError(t, err)
	assert.Equal(t, "https://molgenis.example.org/plugin/dataexplorer?entity=cosas_patients&mod=data&hideselect=true&filter=a%3D%3D1", link)
}

func TestTableURL_InvalidEntity(t *testing.T) {
	_, err := NewBuilder("").TableURL("nounderscore", []string{"a==1"})
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidEntity))
}

func TestSearchAllURL(t *testing.T) {
	link, err := NewBuilder("").SearchAllURL("variantdb_variant", "test")
	require.NoError(t, err)

	assert.Equal(t,
		"/menu/plugins/dataexplorer?entity=variantdb_variant&mod=data&hideselect=true"+
			"&query%5Bq%5D%5B0%5D%5Boperator%5D=SEARCH&query%5Bq%5D%5B0%5D%5Bvalue%5D=test",
		link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	query, err := url.ParseQuery(u.RawQuery)
	require.NoError(t, err)

	assert.Equal(t, "SEARCH", query.Get("query[q][0][operator]"))
	assert.Equal(t, "test", query.Get("query[q][0][value]"))
	assert.Equal(t, "variantdb_variant", query.Get("entity"))
	assert.Equal(t, "data", query.Get("mod"))
	assert.Equal(t, "true", query.Get("hideselect"))
}

func TestSearchAllURL_EncodesTerm(t *testing.T) {
	link, err := NewBuilder("").SearchAllURL("variantdb_variant", "a&b c")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(link, "%5Bvalue%5D=a%26b%20c"), link)
}

func TestSearchAllURL_BlankTerm(t *testing.T) {
	for _, term := range []string{"", "   "} {
		_, err := NewBuilder("").SearchAllURL("variantdb_variant", term)
		require.Error(t, err)
		assert.True(t, IsCode(err, ErrCodeEmptyTerm))
	}
}

func TestRowsURL(t *testing.T) {
	b := NewBuilder("https://molgenis.example.org")

	link, err := b.RowsURL("cosas_patients", []string{"gender==female"}, 25)
	require.NoError(t, err)
	assert.Equal(t, "https://molgenis.example.org/api/v2/cosas_patients?q=gender%3D%3Dfemale&num=25", link)

	link, err = b.RowsURL("cosas_patients", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "https://molgenis.example.org/api/v2/cosas_patients", link)
}

func TestAbsolute(t *testing.T) {
	b := &Builder{Host: "https://host.example.org/"}

	got, err := b.Absolute("/menu/plugins/dataexplorer?entity=a_b")
	require.NoError(t, err)
	assert.Equal(t, "https://host.example.org/menu/plugins/dataexplorer?entity=a_b", got)

	got, err = b.Absolute("https://other.example.org/x")
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.org/x", got)

	b.BaseURL = "https://base.example.org"
	got, err = b.Absolute("/x")
	require.NoError(t, err)
	assert.Equal(t, "https://base.example.org/x", got)

	_, err = (&Builder{}).Absolute("/x")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeInvalidURL))
}

func TestDecodeFilter_RoundTrip(t *testing.T) {
	cases := [][]string{
		{"gender==female"},
		{"gender==female", "country=in=(Australia,New Zealand)"},
		{"country=in=%28Australia,New Zealand%29", "(sample.origin=q=blood,sample.origin=q=saliva)"},
		{"name==a+b", "city==Zürich", "note==100%"},
	}

	b := NewBuilder("https://molgenis.example.org")
	for _, clauses := range cases {
		link, err := b.TableURL("cosas_patients", clauses)
		require.NoError(t, err)

		got, err := DecodeFilter(link)
		require.NoError(t, err)
		assert.Equal(t, clauses, got, link)
	}
}

func TestDecodeFilter_EmptyRoundTrip(t *testing.T) {
	link, err := NewBuilder("").TableURL("umdm_sample", nil)
	require.NoError(t, err)

	got, err := DecodeFilter(link)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestDecodeFilter_PlusIsLiteral(t *testing.T) {
	got, err := DecodeFilter("/menu/plugins/dataexplorer?entity=umdm_sample&filter=name%3D%3Da+b")
	require.NoError(t, err)
	assert.Equal(t, []string{"name==a+b"}, got)
}

func TestDecodeFilter_Missing(t *testing.T) {
	link, err := NewBuilder("").SearchAllURL("variantdb_variant", "x")
	require.NoError(t, err)

	_, err = DecodeFilter(link)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeMissingFilter))
}

func TestDecodeEntity(t *testing.T) {
	link, err := NewBuilder("").TableURL("cosas_patients", []string{"a==1"})
	require.NoError(t, err)

	e, err := DecodeEntity(link)
	require.NoError(t, err)
	assert.Equal(t, Entity("cosas_patients"), e)
}

func TestLinks_Golden(t *testing.T) {
	set := filter.MustSet(
		filter.Entry{Field: "gender", Value: filter.Str("female")},
		filter.Entry{Field: "age", Value: nil},
		filter.Entry{Field: "country", Value: filter.Str("Australia, New Zealand")},
		filter.Entry{Field: "sample.origin", Value: filter.Str("blood,saliva")},
	)
	b := NewBuilder("https://diagnostics.example.org")

	literal := NewLinker(b, rsql.NewCompiler(rsql.ParensLiteral))
	encoded := NewLinker(b, rsql.NewCompiler(rsql.ParensEncoded))

	var out strings.Builder
	write := func(label string, link string, err error) {
		require.NoError(t, err)
		fmt.Fprintf(&out, "%s: %s\n", label, link)
	}

	link, err := literal.Table("cosas_patients", set)
	write("table literal", link, err)
	link, err = encoded.Table("cosas_patients", set)
	write("table encoded", link, err)
	link, err = literal.Search("variantdb_variant", "BRCA1 c.68_69del")
	write("search", link, err)
	link, err = literal.Rows("cosas_patients", set, 10)
	write("rows", link, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "links", []byte(out.String()))
}
