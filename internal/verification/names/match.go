package names

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"idcheck/internal/verification/textnorm"
)

// Comparison is the graded outcome of comparing two names.
type Comparison string

const (
	// Missing means at least one side had no name.
	Missing Comparison = "missing"
	// Exact means the names are equal ignoring case and spacing.
	Exact Comparison = "exact"
	// PartialMatch means first and last tokens agree but the middle differs.
	PartialMatch Comparison = "partial_match"
	Mismatch     Comparison = "mismatch"
)

// Passed reports whether the comparison satisfies the name gate.
func (c Comparison) Passed() bool {
	return c == Exact || c == PartialMatch
}

func (c Comparison) String() string {
	return string(c)
}

// Compare grades how well a and b denote the same person. It is symmetric and
// every found name compares Exact to itself.
func Compare(a, b ExtractedName) Comparison {
	if !a.Found() || !b.Found() {
		return Missing
	}

	left := comparisonTokens(a.value)
	right := comparisonTokens(b.value)

	if slices.Equal(left, right) {
		return Exact
	}
	if len(left) >= 2 && len(right) >= 2 &&
		left[0] == right[0] &&
		left[len(left)-1] == right[len(right)-1] {
		return PartialMatch
	}
	return Mismatch
}

// comparisonTokens folds case, collapses whitespace and drops one trailing
// "<particle> <surname>" pair, as long as two tokens are left afterwards.
func comparisonTokens(name string) []string {
	tokens := strings.Fields(cases.Fold().String(textnorm.Normalize(name)))
	if n := len(tokens); n >= 4 && isParticle(tokens[n-2]) {
		tokens = tokens[:n-2]
	}
	return tokens
}
