// Package ocrcache memoizes OCR results in Redis keyed by image digest, so a
// resubmitted document does not pay for a second Textract call.
package ocrcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"idcheck/internal/verification/ports"
)

var lookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "idcheck_ocr_cache_lookups_total",
	Help: "OCR cache lookups by result (hit, miss, error)",
}, []string{"result"})

const keyPrefix = "idcheck:ocr:"

// DefaultTTL bounds how long extracted document text is retained.
const DefaultTTL = 15 * time.Minute

// Cache decorates an OCR port. Redis failures are logged and bypassed; they
// never fail the extraction.
type Cache struct {
	inner  ports.OCR
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(inner ports.OCR, client redis.Cmdable, opts ...Option) *Cache {
	c := &Cache{
		inner:  inner,
		client: client,
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the cache key for an image.
func Key(image []byte) string {
	sum := sha256.Sum256(image)
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (c *Cache) ExtractText(ctx context.Context, image []byte) (string, error) {
	key := Key(image)

	text, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		lookups.WithLabelValues("hit").Inc()
		return text, nil
	case errors.Is(err, redis.Nil):
		lookups.WithLabelValues("miss").Inc()
	default:
		lookups.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "ocr cache read failed", "error", err)
	}

	text, err = c.inner.ExtractText(ctx, image)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, text, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "ocr cache write failed", "error", err)
	}
	return text, nil
}

var _ ports.OCR = (*Cache)(nil)
