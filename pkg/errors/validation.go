package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateLength checks that a geometric length is finite and non-negative.
// name is used in the error message (e.g. "section 2 item 5 height").
func ValidateLength(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidGeometry, "%s must be finite", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidGeometry, "%s must not be negative (got %g)", name, v)
	}
	return nil
}

// ValidateCoordinate checks that a coordinate is finite. Coordinates may be
// negative.
func ValidateCoordinate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidGeometry, "%s must be finite", name)
	}
	return nil
}

// ValidateCount checks that a count is non-negative and at most limit.
// A limit of 0 disables the upper bound.
func ValidateCount(name string, n, limit int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative (got %d)", name, n)
	}
	if limit > 0 && n > limit {
		return New(ErrCodeInvalidInput, "%s too large (max %d, got %d)", name, limit, n)
	}
	return nil
}

// ValidatePath validates a document path given on the command line or in a
// request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFilename validates a bare file name, rejecting path separators and
// hidden files.
func ValidateFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}
	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}
	return nil
}
