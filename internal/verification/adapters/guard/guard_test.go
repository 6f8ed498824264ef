package guard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"idcheck/internal/verification/ports"
	"idcheck/internal/verification/ports/mocks"
	"idcheck/pkg/platform/circuit"
	"idcheck/pkg/platform/sentinel"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestOCR_OpensAfterConsecutiveFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockOCR(ctrl)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("textract",
		circuit.WithFailureThreshold(2),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	ocr := NewOCR(inner, breaker, discard)

	outage := ports.NewEvidenceError(ports.ErrorProviderOutage, "textract", "down", nil)
	inner.EXPECT().ExtractText(gomock.Any(), gomock.Any()).Return("", outage).Times(2)

	for range 2 {
		_, err := ocr.ExtractText(context.Background(), []byte("img"))
		require.Error(t, err)
	}
	require.True(t, breaker.IsOpen())

	// Open: the provider is not called.
	_, err := ocr.ExtractText(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	assert.Equal(t, ports.ErrorProviderOutage, ports.Category(err))

	// After the cooldown a successful probe closes it again.
	now = now.Add(time.Minute)
	inner.EXPECT().ExtractText(gomock.Any(), gomock.Any()).Return("TEXT", nil)

	text, err := ocr.ExtractText(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "TEXT", text)
	assert.False(t, breaker.IsOpen())
}

func TestFaces_BadDataDoesNotTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	comparer := mocks.NewMockFaceComparer(ctrl)
	detector := mocks.NewMockFaceDetector(ctrl)
	breaker := circuit.New("rekognition", circuit.WithFailureThreshold(1))
	faces := NewFaces(comparer, detector, breaker, discard)

	badImage := ports.NewEvidenceError(ports.ErrorBadData, "rekognition", "invalid image", nil)
	comparer.EXPECT().CompareFaces(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, badImage)

	_, err := faces.CompareFaces(context.Background(), []byte("a"), []byte("b"), 90)
	require.Error(t, err)
	assert.False(t, breaker.IsOpen())

	detector.EXPECT().DetectFaces(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
	_, err = faces.DetectFaces(context.Background(), []byte("a"))
	require.Error(t, err)
	assert.True(t, breaker.IsOpen(), "comparer and detector share one breaker")
}
