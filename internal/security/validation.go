package security

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MaxProjectNameLength bounds the name of a project declared in the import document.
const MaxProjectNameLength = 500

// ErrEmptyProjectName is returned when a new project name is blank.
var ErrEmptyProjectName = errors.New("project name cannot be empty")

// ValidateStringLength validates that a string is within allowed length.
func ValidateStringLength(s string, maxLen int, fieldName string) error {
	if len(s) > maxLen {
		return fmt.Errorf("%s exceeds maximum length of %d bytes", fieldName, maxLen)
	}
	return nil
}

// ValidateProjectName ensures a new project name is non-blank, bounded and
// free of control characters.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyProjectName
	}

	if err := ValidateStringLength(name, MaxProjectNameLength, "project name"); err != nil {
		return err
	}

	if strings.ContainsFunc(name, isControl) {
		return fmt.Errorf("project name contains control characters")
	}

	return nil
}

// isControl matches control characters and the BOM.
func isControl(r rune) bool {
	return unicode.IsControl(r) || r == '\ufeff'
}
