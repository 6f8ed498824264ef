package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"idcheck/pkg/requestcontext"
	"idcheck/pkg/testutil"
)

type stubValidator struct {
	claims *Claims
	err    error
	got    string
}

func (s *stubValidator) ValidateToken(token string) (*Claims, error) {
	s.got = token
	return s.claims, s.err
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var subject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = requestcontext.Subject(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	testutil.Given(t, "a valid bearer token", func(t *testing.T) {
		v := &stubValidator{claims: &Claims{Subject: "kiosk-7"}}
		req := testutil.NewRequest(t, http.MethodPost, "/verifications")
		req.Header.Set("Authorization", "Bearer good")

		rr := testutil.DoRequest(RequireAuth(v, logger)(next), req)

		testutil.Then(t, "the subject reaches the handler", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusNoContent)
			assert.Equal(t, "good", v.got)
			assert.Equal(t, "kiosk-7", subject)
		})
	})

	testutil.Given(t, "no Authorization header", func(t *testing.T) {
		rr := testutil.DoRequest(RequireAuth(&stubValidator{}, logger)(next),
			testutil.NewRequest(t, http.MethodPost, "/verifications"))

		testutil.Then(t, "the request is rejected", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
		})
	})

	testutil.Given(t, "a non-bearer scheme", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPost, "/verifications")
		req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		rr := testutil.DoRequest(RequireAuth(&stubValidator{}, logger)(next), req)

		testutil.Then(t, "the request is rejected", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
		})
	})

	testutil.Given(t, "a token the validator refuses", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPost, "/verifications")
		req.Header.Set("Authorization", "Bearer expired")
		rr := testutil.DoRequest(RequireAuth(&stubValidator{err: errors.New("expired")}, logger)(next), req)

		testutil.Then(t, "the request is rejected", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
		})
	})
}
