package explorer

import "regexp"

var entityPattern = regexp.MustCompile(`^[A-Za-z0-9]+(?:_[A-Za-z0-9]+)+$`)

// Entity identifies a data-explorer table as <package>_<entity>, for
// example "variantdb_variant".
type Entity string

// ParseEntity validates an entity id. Ids go into URLs unescaped, so only
// ASCII letters, digits and underscores are accepted.
func ParseEntity(s string) (Entity, error) {
	if s == "" {
		return "", newError(ErrCodeInvalidEntity, "entity is empty")
	}
	if !entityPattern.MatchString(s) {
		return "", newError(ErrCodeInvalidEntity, "entity %q is not <package>_<entity>", s)
	}
	return Entity(s), nil
}
