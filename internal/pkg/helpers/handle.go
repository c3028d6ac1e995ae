package helpers

import "regexp"

// Handles are lowercase slugs used in URLs: alphanumeric segments joined by
// single hyphens, no leading or trailing hyphen.
var handleRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const (
	MinHandleLength = 3
	MaxHandleLength = 40
)

// IsValidHandle reports whether s is an acceptable community handle.
func IsValidHandle(s string) bool {
	if len(s) < MinHandleLength || len(s) > MaxHandleLength {
		return false
	}
	return handleRegex.MatchString(s)
}
