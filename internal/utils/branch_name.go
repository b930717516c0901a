package utils

import (
	"regexp"
	"strings"
)

const (
	// MaxBranchNameByteLength is the maximum length for a branch name.
	// Git refs have a max length of 256 bytes, minus room for "refs/heads/".
	MaxBranchNameByteLength = 244
)

var (
	// BranchNameReplaceRegex matches characters that are not valid in branch names
	// Valid characters: letters, numbers, -, _, /, .
	BranchNameReplaceRegex = regexp.MustCompile(`[^-_/.a-zA-Z0-9]+`)

	// BranchNameIgnoreRegex matches trailing slashes and dots that should be removed
	BranchNameIgnoreRegex = regexp.MustCompile(`[/.]*$`)

	hyphenRegex = regexp.MustCompile(`-+`)
)

// IsValidBranchName reports whether name is safe to interpolate into a git
// argument list. It enforces the git ref-naming rules: non-empty, no
// consecutive or leading/trailing slashes, no segment starting with "." or
// ending with ".lock", no trailing ".", no "..", no "@{", and none of the
// characters git reserves (whitespace, control characters, :, ?, *, [, \, ^, ~).
//
// Every mutating operation (delete, checkout, push, merge-base) must pass
// its branch names through this check before any subprocess is invoked.
func IsValidBranchName(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return false
	}
	if strings.Contains(name, "//") {
		return false
	}
	if strings.HasSuffix(name, ".") {
		return false
	}
	if strings.Contains(name, "..") || strings.Contains(name, "@{") {
		return false
	}

	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return false
		}
		switch r {
		case ' ', '\t', ':', '?', '*', '[', '\\', '^', '~':
			return false
		}
	}

	for _, segment := range strings.Split(name, "/") {
		if strings.HasPrefix(segment, ".") {
			return false
		}
		if strings.HasSuffix(segment, ".lock") {
			return false
		}
	}

	return true
}

// SanitizeBranchName sanitizes a branch name by replacing invalid characters.
// Used to derive tag-safe slugs from branch names (e.g. for backup tags).
func SanitizeBranchName(name string) string {
	// Remove trailing slashes and dots
	name = BranchNameIgnoreRegex.ReplaceAllString(name, "")

	// Replace invalid characters with hyphens
	name = BranchNameReplaceRegex.ReplaceAllString(name, "-")

	// Slashes are valid in branch names but not wanted in slugs
	name = strings.ReplaceAll(name, "/", "-")

	// Remove multiple consecutive hyphens
	name = hyphenRegex.ReplaceAllString(name, "-")

	// Trim leading/trailing hyphens
	name = strings.Trim(name, "-")

	// Limit length
	if len(name) > MaxBranchNameByteLength {
		name = name[:MaxBranchNameByteLength]
		name = strings.TrimSuffix(name, "-")
	}

	return name
}
