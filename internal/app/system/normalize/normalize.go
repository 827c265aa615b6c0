// Package normalize trims and canonicalizes user-supplied identity
// fields before they are stored or compared.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name. Case is preserved; the folded companion
// field (full_name_ci / name_ci) carries the searchable form.
func Name(s string) string {
	return strings.TrimSpace(s)
}
