package util

import (
	"errors"
	"strings"
	"unicode"
)

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes an upload name safe to forward as a multipart file
// name: separators and control characters become underscores. The bare
// directory names "." and ".." are rejected.
func SanitizeFileName(name string) (string, error) {
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return '_'
		default:
			return r
		}
	}, strings.TrimSpace(name))
	if s == "" || s == "." || s == ".." {
		return "", errInvalidFileName
	}
	return s, nil
}
