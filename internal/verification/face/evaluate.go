// Package face grades a face-similarity score against the configured threshold.
package face

import (
	"fmt"
	"math"
)

// DefaultThreshold is the similarity percentage required by default.
const DefaultThreshold = 90.0

// MatchVerdict keeps the similarity for display whatever the outcome.
type MatchVerdict struct {
	Passed     bool    `json:"passed"`
	Similarity float64 `json:"similarity"`
	Threshold  float64 `json:"threshold"`
}

// Evaluate passes when similarity >= threshold. Scores are not clamped; a
// missing comparison is expected to arrive as zero.
func Evaluate(similarity, threshold float64) MatchVerdict {
	return MatchVerdict{
		Passed:     similarity >= threshold,
		Similarity: similarity,
		Threshold:  threshold,
	}
}

// ValidateThreshold rejects thresholds outside [0,100].
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 100 {
		return fmt.Errorf("face threshold must be within [0,100], got %v", threshold)
	}
	return nil
}
