package verification

import (
	"time"

	"github.com/google/uuid"

	"idcheck/internal/verification/liveness"
	"idcheck/internal/verification/names"
	"idcheck/internal/verification/verdict"
)

// Evidence sources, used as log fields and metric labels.
const (
	SourceFaceCompare = "face_compare"
	SourceOCRDocument = "ocr_document"
	SourceOCRBill     = "ocr_bill"
	SourceFaceDetect  = "face_detect"
)

// Threshold override bounds accepted per request.
const (
	MinRequestThreshold = 70.0
	MaxRequestThreshold = 100.0
)

// Request carries the three images of one validation run.
type Request struct {
	Selfie   []byte
	Document []byte
	Bill     []byte

	// Threshold overrides the configured face threshold when set.
	Threshold *float64
}

// Evidence is the resolved upstream evidence. Failed sources carry the weakest
// value (empty text, zero similarity, no face) and are listed in Degraded.
type Evidence struct {
	Similarity   float64
	DocumentText string
	BillText     string
	Attributes   liveness.Attributes
	Degraded     []string
	Latencies    Latencies
}

// Latencies per evidence source.
type Latencies struct {
	FaceCompare time.Duration
	OCRDocument time.Duration
	OCRBill     time.Duration
	FaceDetect  time.Duration
}

// Outcome is the engine output for one run of evidence.
type Outcome struct {
	Verdict      verdict.Overall
	DocumentName names.ExtractedName
	BillName     names.ExtractedName
	DocumentRule string
	BillRule     string
}

// Result is what the service returns to the transport layer.
type Result struct {
	ID uuid.UUID
	Outcome
	Evidence    Evidence
	EvaluatedAt time.Time
}
