// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ugc allows the usual user-generated-content tags (bold, links,
	// lists) while stripping scripts and event handlers.
	ugc = bluemonday.UGCPolicy()

	// strict removes all markup entirely.
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans a fragment of user-supplied HTML, keeping safe
// formatting tags and dropping anything executable.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Strip removes every tag from s, returning plain text. Use this for
// values that are never rendered as HTML, like file names.
func Strip(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
