package ocrcache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"idcheck/internal/verification/ports/mocks"
)

func TestKey(t *testing.T) {
	k1 := Key([]byte("document"))
	k2 := Key([]byte("document"))
	k3 := Key([]byte("bill"))

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.True(t, strings.HasPrefix(k1, keyPrefix))
	assert.Len(t, strings.TrimPrefix(k1, keyPrefix), 64)
}

// unreachable returns a client whose every command fails fast.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestExtractText_RedisDownFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockOCR(ctrl)
	inner.EXPECT().ExtractText(gomock.Any(), []byte("img")).Return("JOAO DA SILVA", nil)

	cache := New(inner, unreachable(t), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	text, err := cache.ExtractText(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "JOAO DA SILVA", text)
}

func TestExtractText_InnerErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockOCR(ctrl)
	boom := errors.New("textract down")
	inner.EXPECT().ExtractText(gomock.Any(), gomock.Any()).Return("", boom)

	cache := New(inner, unreachable(t), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	_, err := cache.ExtractText(context.Background(), []byte("img"))
	assert.ErrorIs(t, err, boom)
}
