// Package format converts raw, loosely-typed product and cart input into the
// canonical shapes pushed to the data layer: normalized text, comma-joined
// categories, derived discount fields, and defaulted optionals.
package format

import "strings"

// Normalize canonicalizes a free-text analytics value: lowercase, trimmed,
// pipes treated as separators, and whitespace runs collapsed to single
// hyphens. An empty input returns "".
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(input string) string {
	if input == "" {
		return ""
	}

	cleaned := strings.ToLower(input)
	cleaned = strings.ReplaceAll(cleaned, "|", " ")

	// Fields both trims and collapses interior whitespace runs.
	return strings.Join(strings.Fields(cleaned), "-")
}
