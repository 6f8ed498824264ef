package handler

import (
	"time"

	"idcheck/internal/verification"
	"idcheck/internal/verification/face"
	"idcheck/internal/verification/liveness"
	"idcheck/internal/verification/names"
)

// VerificationResponse is the body of a POST /verifications reply.
type VerificationResponse struct {
	ID          string            `json:"id"`
	Success     bool              `json:"success"`
	FailedGates []string          `json:"failed_gates"`
	Face        face.MatchVerdict `json:"face"`
	Names       NamesResponse     `json:"names"`
	Liveness    LivenessResponse  `json:"liveness"`
	Evidence    EvidenceResponse  `json:"evidence"`
	EvaluatedAt time.Time         `json:"evaluated_at"`
}

type NamesResponse struct {
	Comparison   string  `json:"comparison"`
	Passed       bool    `json:"passed"`
	DocumentName *string `json:"document_name"`
	BillName     *string `json:"bill_name"`
	DocumentRule string  `json:"document_rule,omitempty"`
	BillRule     string  `json:"bill_rule,omitempty"`
}

type LivenessResponse struct {
	liveness.Verdict
	liveness.Attributes
}

// EvidenceResponse exposes the raw upstream evidence for diagnostics.
type EvidenceResponse struct {
	DocumentText string           `json:"document_text"`
	BillText     string           `json:"bill_text"`
	Degraded     []string         `json:"degraded"`
	LatencyMS    map[string]int64 `json:"latency_ms"`
}

// FromResult converts a service result to its HTTP form.
func FromResult(result *verification.Result) *VerificationResponse {
	v := result.Verdict

	failed := make([]string, 0, len(v.FailedGates))
	for _, g := range v.FailedGates {
		failed = append(failed, string(g))
	}
	degraded := result.Evidence.Degraded
	if degraded == nil {
		degraded = []string{}
	}
	lat := result.Evidence.Latencies

	return &VerificationResponse{
		ID:          result.ID.String(),
		Success:     v.Success,
		FailedGates: failed,
		Face:        v.Face,
		Names: NamesResponse{
			Comparison:   v.Names.String(),
			Passed:       v.NamePass,
			DocumentName: nameOrNil(result.DocumentName),
			BillName:     nameOrNil(result.BillName),
			DocumentRule: result.DocumentRule,
			BillRule:     result.BillRule,
		},
		Liveness: LivenessResponse{
			Verdict:    v.Liveness,
			Attributes: result.Evidence.Attributes,
		},
		Evidence: EvidenceResponse{
			DocumentText: result.Evidence.DocumentText,
			BillText:     result.Evidence.BillText,
			Degraded:     degraded,
			LatencyMS: map[string]int64{
				verification.SourceFaceCompare: lat.FaceCompare.Milliseconds(),
				verification.SourceOCRDocument: lat.OCRDocument.Milliseconds(),
				verification.SourceOCRBill:     lat.OCRBill.Milliseconds(),
				verification.SourceFaceDetect:  lat.FaceDetect.Milliseconds(),
			},
		},
		EvaluatedAt: result.EvaluatedAt,
	}
}

// ExtractResponse is the body of a POST /names/extract reply.
type ExtractResponse struct {
	Kind  string  `json:"kind"`
	Found bool    `json:"found"`
	Name  *string `json:"name"`
	Rule  string  `json:"rule,omitempty"`
}

// CompareResponse is the body of a POST /names/compare reply.
type CompareResponse struct {
	Comparison string  `json:"comparison"`
	Passed     bool    `json:"passed"`
	A          *string `json:"a"`
	B          *string `json:"b"`
}

func nameOrNil(n names.ExtractedName) *string {
	if !n.Found() {
		return nil
	}
	s := n.String()
	return &s
}
