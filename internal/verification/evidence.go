package verification

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"idcheck/internal/verification/liveness"
	"idcheck/internal/verification/ports"
)

// gatherEvidence fetches the four independent evidence items in parallel under
// a shared timeout. Collaborator failures never abort the group: each one is
// replaced by the weakest evidence for its source and recorded as degraded.
func (s *Service) gatherEvidence(ctx context.Context, req Request, threshold float64) *Evidence {
	ctx, span := s.tracer.Start(ctx, "verification.gatherEvidence")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.evidenceTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	evidence := &Evidence{Attributes: liveness.NoFace()}
	var mu sync.Mutex
	degrade := func(source string, err error) {
		mu.Lock()
		evidence.Degraded = append(evidence.Degraded, source)
		mu.Unlock()
		s.recordEvidenceFailure(ctx, source, err)
	}

	g.Go(func() error {
		start := time.Now()
		cmp, err := s.comparer.CompareFaces(ctx, req.Document, req.Selfie, threshold)
		evidence.Latencies.FaceCompare = time.Since(start)
		s.metrics.ObserveEvidenceLatency(SourceFaceCompare, evidence.Latencies.FaceCompare)

		if err != nil || cmp == nil {
			degrade(SourceFaceCompare, orMissing(err))
			return nil
		}
		evidence.Similarity = sanitizeSimilarity(cmp.Similarity)
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		text, err := s.ocr.ExtractText(ctx, req.Document)
		evidence.Latencies.OCRDocument = time.Since(start)
		s.metrics.ObserveEvidenceLatency(SourceOCRDocument, evidence.Latencies.OCRDocument)

		if err != nil {
			degrade(SourceOCRDocument, err)
			return nil
		}
		evidence.DocumentText = text
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		text, err := s.ocr.ExtractText(ctx, req.Bill)
		evidence.Latencies.OCRBill = time.Since(start)
		s.metrics.ObserveEvidenceLatency(SourceOCRBill, evidence.Latencies.OCRBill)

		if err != nil {
			degrade(SourceOCRBill, err)
			return nil
		}
		evidence.BillText = text
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		det, err := s.detector.DetectFaces(ctx, req.Selfie)
		evidence.Latencies.FaceDetect = time.Since(start)
		s.metrics.ObserveEvidenceLatency(SourceFaceDetect, evidence.Latencies.FaceDetect)

		if err != nil || det == nil {
			degrade(SourceFaceDetect, orMissing(err))
			return nil
		}
		if det.FaceDetected {
			evidence.Attributes = liveness.Attributes{
				FaceDetected: true,
				EyesOpen:     det.EyesOpen,
				Smiling:      det.Smiling,
			}
		}
		return nil
	})

	// Goroutines never return errors; Wait only joins them.
	_ = g.Wait()
	slices.Sort(evidence.Degraded)
	span.SetAttributes(attribute.StringSlice("verification.degraded", evidence.Degraded))

	return evidence
}

var errEmptyResponse = errors.New("empty response")

func orMissing(err error) error {
	if err != nil {
		return err
	}
	return errEmptyResponse
}

// sanitizeSimilarity maps undefined or negative scores to zero.
func sanitizeSimilarity(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func (s *Service) recordEvidenceFailure(ctx context.Context, source string, err error) {
	category := ports.Category(err)
	if errors.Is(err, context.DeadlineExceeded) {
		category = ports.ErrorTimeout
	}
	s.metrics.IncrementEvidenceFailure(source, string(category))
	s.logger.WarnContext(ctx, "evidence unavailable, using weakest value",
		"source", source,
		"category", category,
		"error", err,
	)
}
