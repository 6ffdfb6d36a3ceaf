// Package match expands wildcard sheet-name patterns against a workbook.
package match

import (
	"strings"

	"github.com/ryanuber/go-glob"
)

// Wildcard is the token that turns a sheet entry into a pattern.
const Wildcard = "*"

// HasWildcard reports whether pattern must be expanded rather than used literally.
func HasWildcard(pattern string) bool {
	return strings.Contains(pattern, Wildcard)
}

// SheetNames returns the names matching pattern, in workbook order.
func SheetNames(names []string, pattern string) []string {
	var matched []string
	for _, name := range names {
		if glob.Glob(pattern, name) {
			matched = append(matched, name)
		}
	}
	return matched
}
