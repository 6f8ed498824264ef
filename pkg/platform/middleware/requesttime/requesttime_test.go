package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"idcheck/pkg/requestcontext"
)

func TestMiddlewareWithClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 9, 30, 0, 0, time.FixedZone("BRT", -3*3600))

	var got time.Time
	handler := MiddlewareWithClock(func() time.Time { return fixed })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = requestcontext.Now(r.Context())
		}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, fixed.Equal(got))
	assert.Equal(t, time.UTC, got.Location())
}
