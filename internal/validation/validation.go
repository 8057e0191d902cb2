package validation

import (
	"errors"
	"strings"
)

// ErrQueryTooLong is returned when a query exceeds the configured maximum.
var ErrQueryTooLong = errors.New("query is too long")

// SanitizeQuery prepares raw form text for use as a single process argument.
// NUL bytes cannot be carried in argv and are removed; every other byte,
// including quotes and shell metacharacters, is passed through untouched.
// A maxBytes of zero or less disables the length check.
func SanitizeQuery(raw string, maxBytes int) (string, error) {
	query := strings.ReplaceAll(raw, "\x00", "")
	if maxBytes > 0 && len(query) > maxBytes {
		return "", ErrQueryTooLong
	}
	return query, nil
}
