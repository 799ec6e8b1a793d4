// Package sanitize strips markup from user-supplied free text before it is
// persisted. Task titles, descriptions, and submission remarks are rendered
// verbatim by the SPA, so anything that survives here reaches the browser.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// ResourceMap sanitizes the labels of a resources map. URL values are left
// alone; they are validated, not rewritten.
func ResourceMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[Text(k)] = strings.TrimSpace(v)
	}
	return out
}
