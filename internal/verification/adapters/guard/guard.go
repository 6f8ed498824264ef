// Package guard puts a circuit breaker in front of each evidence port so a
// failing provider is skipped quickly instead of burning the evidence timeout.
package guard

import (
	"context"
	"fmt"
	"log/slog"

	"idcheck/internal/verification/ports"
	"idcheck/pkg/platform/circuit"
	"idcheck/pkg/platform/sentinel"
)

type guard struct {
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func call[T any](ctx context.Context, g guard, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if !g.breaker.Allow() {
		return zero, ports.NewEvidenceError(ports.ErrorProviderOutage, g.breaker.Name(), "circuit open",
			fmt.Errorf("%s: %w", g.breaker.Name(), sentinel.ErrUnavailable))
	}

	res, err := fn(ctx)
	if err != nil {
		// Unreadable input says nothing about provider health.
		if ports.Category(err) == ports.ErrorBadData {
			return zero, err
		}
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "circuit opened", "breaker", g.breaker.Name(), "error", err)
		}
		return zero, err
	}

	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "circuit closed", "breaker", g.breaker.Name())
	}
	return res, nil
}

// OCR guards a ports.OCR.
type OCR struct {
	inner ports.OCR
	guard
}

func NewOCR(inner ports.OCR, breaker *circuit.Breaker, logger *slog.Logger) *OCR {
	return &OCR{inner: inner, guard: guard{breaker: breaker, logger: logger}}
}

func (o *OCR) ExtractText(ctx context.Context, image []byte) (string, error) {
	return call(ctx, o.guard, func(ctx context.Context) (string, error) {
		return o.inner.ExtractText(ctx, image)
	})
}

// Faces guards the comparer and detector, which share one provider and
// therefore one breaker.
type Faces struct {
	comparer ports.FaceComparer
	detector ports.FaceDetector
	guard
}

func NewFaces(comparer ports.FaceComparer, detector ports.FaceDetector, breaker *circuit.Breaker, logger *slog.Logger) *Faces {
	return &Faces{comparer: comparer, detector: detector, guard: guard{breaker: breaker, logger: logger}}
}

func (f *Faces) CompareFaces(ctx context.Context, source, target []byte, threshold float64) (*ports.FaceComparison, error) {
	return call(ctx, f.guard, func(ctx context.Context) (*ports.FaceComparison, error) {
		return f.comparer.CompareFaces(ctx, source, target, threshold)
	})
}

func (f *Faces) DetectFaces(ctx context.Context, image []byte) (*ports.FaceDetection, error) {
	return call(ctx, f.guard, func(ctx context.Context) (*ports.FaceDetection, error) {
		return f.detector.DetectFaces(ctx, image)
	})
}

var (
	_ ports.OCR          = (*OCR)(nil)
	_ ports.FaceComparer = (*Faces)(nil)
	_ ports.FaceDetector = (*Faces)(nil)
)
