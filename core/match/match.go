// Package match implements the exact-or-wildcard matcher used for
// origin, destination and carrier patterns. It is deliberately not a
// regex engine: a pattern either is the wildcard token or must equal
// the value, compared case-insensitively after trimming.
package match

import "strings"

// Wildcard is the token matching any value
const Wildcard = "*"

// Value reports whether pattern matches value. The empty pattern
// matches nothing; use Optional for fields where empty means any.
func Value(pattern, value string) bool {
	p := strings.TrimSpace(pattern)
	if p == Wildcard {
		return true
	}
	if p == "" {
		return false
	}
	return strings.EqualFold(p, strings.TrimSpace(value))
}

// Optional reports whether pattern matches value, treating the empty
// pattern as a wildcard. Used for carrier patterns.
func Optional(pattern, value string) bool {
	if strings.TrimSpace(pattern) == "" {
		return true
	}
	return Value(pattern, value)
}
