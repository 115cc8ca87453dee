package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateFilename validates an artifact file name for safety.
// It ensures the name is a simple basename ending in .png without path components.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 200 characters
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No hidden files (leading dot)
//   - Must end in ".png"
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFilename, "file name cannot be empty")
	}

	const maxFilenameLength = 200
	if len(name) > maxFilenameLength {
		return New(ErrCodeInvalidFilename, "file name too long (max %d characters)", maxFilenameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFilename, "file name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidFilename, "file name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidFilename, "file name cannot contain path traversal sequences (..)")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidFilename, "file name cannot be a hidden file")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".png") {
		return New(ErrCodeInvalidFilename, "file name must end in .png: %q", name)
	}

	return nil
}

// panelIDRegex matches catalog panel identifiers such as "slide-3" or "sleeve/art".
var panelIDRegex = regexp.MustCompile(`^[a-z0-9]+(?:[-/][a-z0-9]+)*$`)

// ValidatePanelID validates a layout provider panel identifier.
func ValidatePanelID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "panel id cannot be empty")
	}
	if !panelIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid panel id: %q", id)
	}
	return nil
}
