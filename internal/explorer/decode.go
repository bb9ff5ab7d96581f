package explorer

import (
	"net/url"
	"strings"

	"github.com/roach88/dxlink/internal/rsql"
)

// DecodeFilter extracts the ordered clause list from a table link built by
// TableURL. It is the inverse of TableURL for the filter parameter: an
// empty filter gives an empty list, a missing one is ErrCodeMissingFilter.
func DecodeFilter(link string) ([]string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, newError(ErrCodeInvalidURL, "parse %q: %v", link, err)
	}

	for _, pair := range strings.Split(u.RawQuery, "&") {
		key, raw, _ := strings.Cut(pair, "=")
		if key != paramFilter {
			continue
		}
		joined, err := rsql.UnescapeComponent(raw)
		if err != nil {
			return nil, newError(ErrCodeInvalidURL, "decode %s of %q: %v", paramFilter, link, err)
		}
		clauses := rsql.Split(joined)
		if clauses == nil {
			clauses = []string{}
		}
		return clauses, nil
	}
	return nil, newError(ErrCodeMissingFilter, "link has no %s parameter", paramFilter)
}

// DecodeEntity returns the entity parameter of a data-explorer link.
func DecodeEntity(link string) (Entity, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", newError(ErrCodeInvalidURL, "parse %q: %v", link, err)
	}
	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", newError(ErrCodeInvalidURL, "parse query of %q: %v", link, err)
	}
	return ParseEntity(query.Get(paramEntity))
}
