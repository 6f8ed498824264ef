package auth

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "idcheck/pkg/domain-errors"
	"idcheck/pkg/platform/httputil"
	request "idcheck/pkg/platform/middleware/request"
	"idcheck/pkg/requestcontext"
)

// Validator validates bearer tokens.
type Validator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims are the token facts the middleware needs.
type Claims struct {
	Subject string
	TokenID string
}

// RequireAuth rejects requests without a valid bearer token and records the
// token subject in the request context.
func RequireAuth(validator Validator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := request.GetRequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithSubject(ctx, claims.Subject)))
		})
	}
}
