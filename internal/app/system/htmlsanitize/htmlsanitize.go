// Package htmlsanitize strips markup from user-submitted text fields.
//
// Manuscript metadata (title, abstract, keywords) is echoed back to other
// users in API responses, so anything that looks like HTML is removed on
// the way in rather than escaped on the way out.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML elements and attributes from s and trims the
// result. Plain text passes through unchanged.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// TextSlice sanitizes each element, dropping any that come back empty.
func TextSlice(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if clean := Text(s); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
