package explorer

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/roach88/dxlink/internal/rsql"
)

// DefaultPath is the data-browsing page of the data explorer.
const DefaultPath = "/menu/plugins/dataexplorer"

// Fixed query conventions understood by the data explorer.
const (
	paramEntity = "entity"
	paramFilter = "filter"
	fixedParams = "&mod=data&hideselect=true"

	searchAllParams = "&query%5Bq%5D%5B0%5D%5Boperator%5D=SEARCH&query%5Bq%5D%5B0%5D%5Bvalue%5D="
)

// Builder constructs data-explorer and REST API links. It performs no I/O.
type Builder struct {
	// BaseURL prefixes every generated link. Empty gives host-relative
	// links, which is what a page served by the data explorer itself uses.
	BaseURL string

	// Host resolves host-relative links when BaseURL is empty.
	Host string

	// Path overrides DefaultPath.
	Path string
}

// NewBuilder creates a Builder that prefixes links with baseURL.
func NewBuilder(baseURL string) *Builder {
	return &Builder{BaseURL: baseURL}
}

// TableURL builds the filtered table link for entity. The clauses are
// joined with ";" and percent-encoded once as the filter parameter, which
// is always present and empty when there are no clauses.
func (b *Builder) TableURL(entity string, clauses []string) (string, error) {
	e, err := ParseEntity(entity)
	if err != nil {
		return "", err
	}

	return b.explorerBase(e) + "&" + paramFilter + "=" + rsql.EscapeComponent(rsql.Join(clauses)), nil
}

// SearchAllURL builds the free-text search link for entity.
func (b *Builder) SearchAllURL(entity, term string) (string, error) {
	e, err := ParseEntity(entity)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(term) == "" {
		return "", newError(ErrCodeEmptyTerm, "search term is empty")
	}

	return b.explorerBase(e) + searchAllParams + rsql.EscapeComponent(term), nil
}

// RowsURL builds a REST API v2 query for entity rows matching clauses.
// num limits the number of rows; zero or less leaves it to the server.
func (b *Builder) RowsURL(entity string, clauses []string, num int) (string, error) {
	e, err := ParseEntity(entity)
	if err != nil {
		return "", err
	}

	var params []string
	if len(clauses) > 0 {
		params = append(params, "q="+rsql.EscapeComponent(rsql.Join(clauses)))
	}
	if num > 0 {
		params = append(params, "num="+strconv.Itoa(num))
	}

	link := b.prefix() + "/api/v2/" + string(e)
	if len(params) > 0 {
		link += "?" + strings.Join(params, "&")
	}
	return link, nil
}

// Absolute resolves link against BaseURL, or Host when BaseURL is empty.
// Absolute links are returned unchanged.
func (b *Builder) Absolute(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", newError(ErrCodeInvalidURL, "parse %q: %v", link, err)
	}
	if u.IsAbs() {
		return link, nil
	}

	base := b.BaseURL
	if base == "" {
		base = b.Host
	}
	if base == "" {
		return "", newError(ErrCodeInvalidURL, "cannot resolve relative link %q without a base URL or host", link)
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(link, "/"), nil
}

func (b *Builder) explorerBase(e Entity) string {
	path := b.Path
	if path == "" {
		path = DefaultPath
	}
	return b.prefix() + path + "?" + paramEntity + "=" + string(e) + fixedParams
}

func (b *Builder) prefix() string {
	return strings.TrimRight(b.BaseURL, "/")
}
