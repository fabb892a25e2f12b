// Package testcase stores and discovers numbered input/expected-output pairs.
package testcase

import "strings"

var lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeLineEndings rewrites CRLF and lone CR to LF. Nothing else changes.
func NormalizeLineEndings(value string) string {
	if !strings.Contains(value, "\r") {
		return value
	}
	return lineEndingReplacer.Replace(value)
}
