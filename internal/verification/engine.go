package verification

import (
	"idcheck/internal/verification/face"
	"idcheck/internal/verification/liveness"
	"idcheck/internal/verification/names"
	"idcheck/internal/verification/verdict"
)

// Engine turns resolved evidence into a verdict. It performs no I/O and holds
// no mutable state, so one instance serves all requests.
type Engine struct {
	extractor *names.Extractor
}

// NewEngine builds an engine around a name extractor. A nil extractor uses the
// built-in stop words.
func NewEngine(extractor *names.Extractor) *Engine {
	if extractor == nil {
		extractor = names.NewExtractor()
	}
	return &Engine{extractor: extractor}
}

// Evaluate extracts both names, grades the three gates and fuses them. The
// result is the same whatever order the evidence arrived in.
func (e *Engine) Evaluate(ev Evidence, threshold float64) Outcome {
	docName, docRule := e.extractor.ExtractWithRule(ev.DocumentText, names.KindIdentity)
	billName, billRule := e.extractor.ExtractWithRule(ev.BillText, names.KindBilling)

	overall := verdict.Fuse(
		face.Evaluate(ev.Similarity, threshold),
		names.Compare(docName, billName),
		liveness.Evaluate(ev.Attributes),
	)

	return Outcome{
		Verdict:      overall,
		DocumentName: docName,
		BillName:     billName,
		DocumentRule: docRule,
		BillRule:     billRule,
	}
}
