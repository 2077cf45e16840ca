package errors

import (
	"strings"
	"unicode"
)

const (
	maxInstanceName = 256
	maxGraphPath    = 4096
)

// Instance names end up in report rows, cache keys and store documents,
// so anything that reads as a path component is refused.
var forbiddenInName = []string{"..", "//", "\\"}

// ValidateInstanceName checks a run label, usually a graph file's base
// name. Empty names, names over 256 bytes, control characters and path
// separators that could escape a directory are rejected with
// ErrCodeInvalidInput.
func ValidateInstanceName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidInput, "instance name cannot be empty")
	case len(name) > maxInstanceName:
		return New(ErrCodeInvalidInput, "instance name longer than %d bytes", maxInstanceName)
	case hasControl(name):
		return New(ErrCodeInvalidInput, "instance name %q contains control characters", name)
	}
	for _, s := range forbiddenInName {
		if strings.Contains(name, s) {
			return New(ErrCodeInvalidInput, "instance name %q contains %q", name, s)
		}
	}
	return nil
}

// ValidateGraphPath checks a user-supplied graph file path for emptiness,
// length and control characters. It does not touch the filesystem.
func ValidateGraphPath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "graph path cannot be empty")
	case len(path) > maxGraphPath:
		return New(ErrCodeInvalidPath, "graph path longer than %d bytes", maxGraphPath)
	case hasControl(path):
		return New(ErrCodeInvalidPath, "graph path contains control characters")
	}
	return nil
}

// ValidatePositive fails with ErrCodeInvalidInput when v < 1.
func ValidatePositive(name string, v int) error {
	if v >= 1 {
		return nil
	}
	return New(ErrCodeInvalidInput, "%s must be a positive integer, got %d", name, v)
}

// ValidateNonNegative fails with ErrCodeInvalidInput when v < 0.
func ValidateNonNegative(name string, v int) error {
	if v >= 0 {
		return nil
	}
	return New(ErrCodeInvalidInput, "%s must not be negative, got %d", name, v)
}

// hasControl reports whether s holds a control rune; NUL counts.
func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}
