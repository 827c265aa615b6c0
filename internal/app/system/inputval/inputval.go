// internal/app/system/inputval/inputval.go
//
// Package inputval validates user-supplied request fields before they
// reach the service layer. Validation errors here map to 400 responses.
package inputval

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/filehaven/filehaven/internal/app/system/htmlsanitize"
	"github.com/filehaven/filehaven/internal/domain/models"
)

// MaxFileNameLen caps the length of a display name for a file.
const MaxFileNameLen = 200

// IsValidEmail reports whether s parses as a single RFC 5322 address.
func IsValidEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// CleanFileName strips markup and surrounding whitespace from a
// user-supplied file name and enforces the length cap.
func CleanFileName(name string) (string, error) {
	name = htmlsanitize.Strip(name)
	if name == "" {
		return "", fmt.Errorf("file name is required")
	}
	if len(name) > MaxFileNameLen {
		return "", fmt.Errorf("file name exceeds %d characters", MaxFileNameLen)
	}
	return name, nil
}

// CheckFileKind verifies kind is one of the supported file kinds.
func CheckFileKind(kind string) error {
	if !models.IsValidFileKind(kind) {
		return fmt.Errorf("unsupported file kind %q (valid: %s)",
			kind, strings.Join(models.FileKinds, ", "))
	}
	return nil
}
