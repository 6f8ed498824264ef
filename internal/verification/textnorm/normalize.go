// Package textnorm cleans raw OCR text before name extraction.
//
// Casing and diacritics are preserved: case folding happens at comparison time
// and Portuguese documents rely on accented Latin letters.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize composes the text to NFC, collapses every run of whitespace
// (line breaks included) to a single space and trims the result.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFC.String(raw)), " ")
}

// NormalizeLines is Normalize applied line by line. Line breaks survive so that
// line-anchored extraction rules keep working; blank lines are dropped.
func NormalizeLines(raw string) string {
	if raw == "" {
		return ""
	}
	lines := strings.FieldsFunc(norm.NFC.String(raw), func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\v' || r == '\f' || r == '\u2028' || r == '\u2029'
	})

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if collapsed := strings.Join(strings.Fields(line), " "); collapsed != "" {
			out = append(out, collapsed)
		}
	}
	return strings.Join(out, "\n")
}
