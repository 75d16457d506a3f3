// Package sqlutil provides MySQL identifier helpers for the key-value medium.
package sqlutil

import (
	"regexp"
	"strings"
)

// QuoteIdentifier wraps a MySQL identifier in backticks, doubling any
// embedded backticks.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// identifierPattern restricts configurable table names to a conservative
// subset of what MySQL accepts, capped at MySQL's 64-character limit.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,64}$`)

// IsValidIdentifier reports whether name may be used as a table name.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// QuoteIdentifierSafe validates name and returns it quoted.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must be 1-64 letters, digits, or underscores)"
}
