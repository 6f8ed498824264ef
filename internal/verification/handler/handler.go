package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"idcheck/internal/verification"
	"idcheck/internal/verification/names"
	"idcheck/pkg/platform/httputil"
	"idcheck/pkg/requestcontext"
)

// Service runs a full validation.
//
//go:generate mockgen -source=handler.go -destination=mocks/service.go -package=mocks Service
type Service interface {
	Verify(ctx context.Context, req verification.Request) (*verification.Result, error)
}

// Handler wires verification and name diagnostics endpoints.
type Handler struct {
	service        Service
	extractor      *names.Extractor
	logger         *slog.Logger
	maxUploadBytes int64
}

// New constructs a handler. extractor must be the one the service uses so the
// diagnostic endpoints agree with real verifications.
func New(service Service, extractor *names.Extractor, logger *slog.Logger, maxUploadBytes int64) *Handler {
	if extractor == nil {
		extractor = names.NewExtractor()
	}
	return &Handler{
		service:        service,
		extractor:      extractor,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verifications", h.HandleVerify)
	r.Post("/names/extract", h.HandleExtract)
	r.Post("/names/compare", h.HandleCompare)
}

// HandleVerify handles POST /verifications.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, err := parseVerifyForm(w, r, h.maxUploadBytes)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid verification upload",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Verify(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"request_id", requestID,
			"subject", requestcontext.Subject(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification completed",
		"request_id", requestID,
		"verification_id", result.ID,
		"subject", requestcontext.Subject(ctx),
		"client_ip", requestcontext.ClientIP(ctx),
		"success", result.Verdict.Success,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleExtract handles POST /names/extract.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ExtractRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	name, rule := h.extractor.ExtractWithRule(req.Text, req.ParsedKind())
	h.logger.DebugContext(ctx, "name extracted",
		"request_id", requestID,
		"kind", req.ParsedKind(),
		"found", name.Found(),
		"rule", rule,
	)
	httputil.WriteJSON(w, http.StatusOK, &ExtractResponse{
		Kind:  req.ParsedKind().String(),
		Found: name.Found(),
		Name:  nameOrNil(name),
		Rule:  rule,
	})
}

// HandleCompare handles POST /names/compare.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CompareRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	a := names.NewExtractedName(req.A)
	b := names.NewExtractedName(req.B)
	cmp := names.Compare(a, b)
	httputil.WriteJSON(w, http.StatusOK, &CompareResponse{
		Comparison: cmp.String(),
		Passed:     cmp.Passed(),
		A:          nameOrNil(a),
		B:          nameOrNil(b),
	})
}
