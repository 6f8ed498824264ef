package names

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"idcheck/internal/verification/textnorm"
)

// ExtractedName is a canonical person name. The zero value means no candidate
// was found, which is a valid outcome and not an error.
type ExtractedName struct {
	value string
}

// NewExtractedName builds a name from caller-supplied text: whitespace is
// collapsed and each token title-cased. Blank input yields the zero value.
func NewExtractedName(s string) ExtractedName {
	normalized := textnorm.Normalize(s)
	if normalized == "" {
		return ExtractedName{}
	}
	return ExtractedName{value: titleCase(normalized)}
}

// Found reports whether a name is present.
func (n ExtractedName) Found() bool {
	return n.value != ""
}

func (n ExtractedName) String() string {
	return n.value
}

// MarshalText renders the name, or an empty string when not found.
func (n ExtractedName) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// titleCase upper-cases the first letter of every token and lower-cases the
// rest. Casers keep state, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}
