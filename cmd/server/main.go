package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/prometheus/client_golang/prometheus"

	jwttoken "idcheck/internal/jwt_token"
	"idcheck/internal/platform/config"
	"idcheck/internal/platform/httpserver"
	"idcheck/internal/platform/logger"
	platformmetrics "idcheck/internal/platform/metrics"
	platformredis "idcheck/internal/platform/redis"
	httptransport "idcheck/internal/transport/http"
	"idcheck/internal/verification"
	"idcheck/internal/verification/adapters/guard"
	"idcheck/internal/verification/adapters/ocrcache"
	"idcheck/internal/verification/adapters/rekognition"
	"idcheck/internal/verification/adapters/textract"
	verificationhandler "idcheck/internal/verification/handler"
	"idcheck/internal/verification/metrics"
	"idcheck/internal/verification/names"
	"idcheck/internal/verification/ports"
	"idcheck/pkg/platform/circuit"
	authmw "idcheck/pkg/platform/middleware/auth"
)

// main wires configuration, AWS collaborators and the HTTP surface. Business
// logic lives in internal/verification.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return err
	}

	breakerOpts := []circuit.Option{
		circuit.WithFailureThreshold(cfg.Breaker.FailureThreshold),
		circuit.WithSuccessThreshold(cfg.Breaker.SuccessThreshold),
		circuit.WithCooldown(cfg.Breaker.Cooldown),
	}

	var ocr ports.OCR = guard.NewOCR(textract.NewFromConfig(awsCfg), circuit.New("textract", breakerOpts...), log)

	checks := map[string]httptransport.HealthChecker{}
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		ocr = ocrcache.New(ocr, redisClient.Client, ocrcache.WithTTL(cfg.Redis.OCRCacheTTL), ocrcache.WithLogger(log))
		checks["ocr_cache"] = redisClient
		log.Info("ocr cache enabled", "ttl", cfg.Redis.OCRCacheTTL)
	}

	rek := rekognition.NewFromConfig(awsCfg)
	faces := guard.NewFaces(rek, rek, circuit.New("rekognition", breakerOpts...), log)

	extractor := names.NewExtractor(cfg.Verification.ExtraStopWords...)
	service := verification.New(ocr, faces, faces,
		verification.WithThreshold(cfg.Verification.FaceThreshold),
		verification.WithEvidenceTimeout(cfg.Verification.EvidenceTimeout),
		verification.WithExtractor(extractor),
		verification.WithLogger(log),
		verification.WithMetrics(metrics.New()),
	)

	var validator authmw.Validator
	if cfg.Server.JWTSigningKey != "" {
		validator = jwttoken.NewMiddlewareValidator(jwttoken.NewJWTService(cfg.Server.JWTSigningKey, "idcheck"))
	} else {
		log.Warn("JWT_SIGNING_KEY not set, API is unauthenticated")
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  platformmetrics.New(),
		Gatherer: prometheus.DefaultGatherer,
		Auth:     validator,
		Checks:   checks,
		API: []httptransport.Registrar{
			verificationhandler.New(service, extractor, log, cfg.Server.MaxUploadBytes),
		},
	})

	srv := httpserver.New(cfg.Server.Addr, router, cfg.Verification.EvidenceTimeout)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting idcheck",
			"addr", cfg.Server.Addr,
			"region", cfg.AWS.Region,
			"face_threshold", service.Threshold(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
