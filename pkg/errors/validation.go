package errors

import (
	"strings"
	"unicode"
)

// Scale factor bounds. The scale factor multiplies an image's nominal inch
// size before page fitting; values outside this range either produce
// unreadable thumbnails or are meaningless upscales.
const (
	MinScale = 0.1
	MaxScale = 1.0
)

// ValidateScale validates a user-supplied scaling factor.
// The layout engine assumes a valid factor, so every entry point must call
// this before handing the value to the sizer.
func ValidateScale(scale float64) error {
	if scale < MinScale || scale > MaxScale {
		return New(ErrCodeInvalidScale, "scale factor %.2f out of range [%.1f, %.1f]", scale, MinScale, MaxScale)
	}
	return nil
}

// ValidateSpacing validates the inter-image vertical spacing in inches.
func ValidateSpacing(spacing float64) error {
	if spacing < 0 {
		return New(ErrCodeInvalidSpacing, "spacing must not be negative: %.2f", spacing)
	}
	return nil
}

// ValidateDocumentName validates the output document name (without extension).
// It rejects names that could be used for path traversal or that would break
// downstream tooling.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "document name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "document name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "document name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "document name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "document name cannot contain path traversal sequences (..)")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "document name cannot be a hidden file")
	}

	return nil
}
