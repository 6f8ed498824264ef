package ports

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvidenceError(t *testing.T) {
	timeout := NewEvidenceError(ErrorTimeout, "ocr", "deadline exceeded", context.DeadlineExceeded)
	wrapped := fmt.Errorf("gather: %w", timeout)

	assert.True(t, IsRetryable(wrapped))
	assert.Equal(t, ErrorTimeout, Category(wrapped))
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)
	assert.Contains(t, timeout.Error(), "evidence ocr [timeout]")

	bad := NewEvidenceError(ErrorBadData, "face_compare", "invalid image", nil)
	assert.False(t, IsRetryable(bad))
	assert.Equal(t, "evidence face_compare [bad_data]: invalid image", bad.Error())

	assert.Equal(t, ErrorInternal, Category(errors.New("plain")))
	assert.False(t, IsRetryable(errors.New("plain")))
}
