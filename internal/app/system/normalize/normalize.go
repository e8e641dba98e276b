// internal/app/system/normalize/normalize.go

// Package normalize provides input canonicalization helpers used before
// validation and storage. Keeping these in one place ensures the same value
// always normalizes the same way (e.g., emails are compared case-insensitively
// everywhere).
package normalize

import "strings"

// Email trims whitespace and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace and collapses internal runs of spaces, preserving
// case.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Role trims whitespace and lowercases a role string so role comparisons are
// case-insensitive.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims whitespace from a query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
