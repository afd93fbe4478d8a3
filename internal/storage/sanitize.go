package storage

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy removes every tag; it is safe for concurrent use once built.
var strictPolicy = bluemonday.StrictPolicy()

// cleanText strips markup from user supplied text before it is stored. The policy
// entity-encodes what it keeps, so the result is unescaped again: templates escape
// on output and stored text must not be encoded twice.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
