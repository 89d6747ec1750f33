package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumericRegex     = regexp.MustCompile(`[^a-z0-9]+`)
	multipleUnderscoresRegex = regexp.MustCompile(`_+`)
)

// Generate normalizes a human-entered list name into a list ID the
// server understands: lowercase, underscore-separated, alphanumeric.
// "Trip Planning" becomes "trip_planning".
func Generate(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))

	slug = nonAlphanumericRegex.ReplaceAllString(slug, "_")
	slug = multipleUnderscoresRegex.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_")

	if len(slug) > 50 {
		slug = strings.TrimRight(slug[:50], "_")
	}

	return slug
}
