// Package slug derives and validates URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
)

var (
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	separators    = regexp.MustCompile(`[\s_]+`)
	validSlug     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify derives a URL-safe slug from a title. Camel-case boundaries and
// whitespace/underscore runs become hyphens, the result is lowercased.
func Slugify(s string) string {
	s = camelBoundary.ReplaceAllString(s, "$1-$2")
	s = separators.ReplaceAllString(s, "-")
	return strings.ToLower(s)
}

// IsValid reports whether value matches the canonical slug pattern:
// lowercase alphanumeric runs joined by single hyphens.
func IsValid(value string) bool {
	return validSlug.MatchString(value)
}
