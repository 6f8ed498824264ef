package testutil

import (
	"net/http"

	"idcheck/pkg/requestcontext"
)

// WithSubject marks the request as authenticated for the given caller, the way
// the auth middleware does after validating a bearer token.
func WithSubject(req *http.Request, subject string) *http.Request {
	return req.WithContext(requestcontext.WithSubject(req.Context(), subject))
}

// WithRequestID sets the request ID normally assigned by middleware.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
