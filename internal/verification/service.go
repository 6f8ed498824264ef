// Package verification validates a person from a selfie, an identity document
// and a billing document. The service gathers upstream evidence through ports
// and hands the resolved values to the pure engine packages.
package verification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"idcheck/internal/verification/face"
	"idcheck/internal/verification/metrics"
	"idcheck/internal/verification/names"
	"idcheck/internal/verification/ports"
	dErrors "idcheck/pkg/domain-errors"
	"idcheck/pkg/requestcontext"
)

const defaultEvidenceTimeout = 20 * time.Second

// Service runs validation requests.
type Service struct {
	ocr      ports.OCR
	comparer ports.FaceComparer
	detector ports.FaceDetector
	engine   *Engine

	threshold       float64
	evidenceTimeout time.Duration

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithThreshold sets the default face similarity threshold.
func WithThreshold(t float64) Option {
	return func(s *Service) {
		s.threshold = t
	}
}

func WithEvidenceTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.evidenceTimeout = d
		}
	}
}

func WithExtractor(e *names.Extractor) Option {
	return func(s *Service) {
		s.engine = NewEngine(e)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates a Service. The threshold must already be validated by the
// configuration layer.
func New(ocr ports.OCR, comparer ports.FaceComparer, detector ports.FaceDetector, opts ...Option) *Service {
	s := &Service{
		ocr:             ocr,
		comparer:        comparer,
		detector:        detector,
		engine:          NewEngine(nil),
		threshold:       face.DefaultThreshold,
		evidenceTimeout: defaultEvidenceTimeout,
		logger:          slog.Default(),
		tracer:          otel.Tracer("idcheck/verification"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the default face threshold.
func (s *Service) Threshold() float64 {
	return s.threshold
}

// Verify gathers evidence for req and returns the fused verdict. Upstream
// failures degrade evidence instead of failing the request; only an invalid
// request or a cancelled caller produce an error.
func (s *Service) Verify(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	threshold, err := s.resolveThreshold(req)
	if err != nil {
		return nil, err
	}
	if len(req.Selfie) == 0 || len(req.Document) == 0 || len(req.Bill) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "selfie, document and bill images are required")
	}

	id := uuid.New()
	ctx, span := s.tracer.Start(ctx, "verification.Verify", trace.WithAttributes(
		attribute.String("verification.id", id.String()),
		attribute.Float64("verification.threshold", threshold),
	))
	defer span.End()

	evidence := s.gatherEvidence(ctx, req, threshold)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("verification cancelled: %w", err)
	}

	outcome := s.engine.Evaluate(*evidence, threshold)

	failed := make([]string, 0, len(outcome.Verdict.FailedGates))
	for _, g := range outcome.Verdict.FailedGates {
		failed = append(failed, string(g))
	}
	s.metrics.IncrementVerdict(outcome.Verdict.Success, failed)
	s.metrics.IncrementNameComparison(outcome.Verdict.Names.String())
	s.metrics.ObserveVerifyLatency(time.Since(start))

	span.SetAttributes(
		attribute.Bool("verification.success", outcome.Verdict.Success),
		attribute.StringSlice("verification.failed_gates", failed),
	)

	s.logger.InfoContext(ctx, "verification evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"verification_id", id,
		"success", outcome.Verdict.Success,
		"failed_gates", failed,
		"name_comparison", outcome.Verdict.Names,
		"similarity", evidence.Similarity,
		"degraded", evidence.Degraded,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Result{
		ID:          id,
		Outcome:     outcome,
		Evidence:    *evidence,
		EvaluatedAt: requestcontext.Now(ctx),
	}, nil
}

func (s *Service) resolveThreshold(req Request) (float64, error) {
	if req.Threshold == nil {
		return s.threshold, nil
	}
	t := *req.Threshold
	if !(t >= MinRequestThreshold && t <= MaxRequestThreshold) {
		return 0, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("threshold must be between %g and %g", MinRequestThreshold, MaxRequestThreshold))
	}
	return t, nil
}
