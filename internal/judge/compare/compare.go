// Package compare decides whether a solution's output matches the expected answer.
package compare

import (
	"strings"

	"golang.org/x/text/cases"
)

// Mode selects the comparison strategy.
type Mode string

// ModeExact is the only supported mode.
const ModeExact Mode = "exact"

// Policy is the configured comparison behavior.
type Policy struct {
	Mode          Mode
	CaseSensitive bool
}

// ResolveMode maps any configured value to a supported mode.
// Only exact matching exists today, so every value resolves to ModeExact.
func ResolveMode(string) Mode {
	return ModeExact
}

// Equal compares expected and actual under the policy. Mode is not consulted
// because every mode resolves to exact matching.
// Both inputs must already be newline-normalized.
func (p Policy) Equal(expected, actual string) bool {
	return Compare(expected, actual, p.CaseSensitive)
}

// Compare reports whether actual matches expected exactly, or after case
// folding when caseSensitive is false. Whitespace is significant.
func Compare(expected, actual string, caseSensitive bool) bool {
	if caseSensitive {
		return expected == actual
	}
	if strings.EqualFold(expected, actual) {
		return true
	}
	folder := cases.Fold()
	return folder.String(expected) == folder.String(actual)
}
