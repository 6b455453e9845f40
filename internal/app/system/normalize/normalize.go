// Package normalize holds small canonicalization helpers applied before
// values are persisted or compared.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are unique
// case-insensitively, so every store write and lookup goes through this.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Keyword trims one keyword; empty results should be dropped by callers.
func Keyword(s string) string {
	return strings.TrimSpace(s)
}
