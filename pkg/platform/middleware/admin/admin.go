package admin

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"whitelabel/pkg/platform/httputil"
	request "whitelabel/pkg/platform/middleware/request"
)

type contextKeyActorID struct{}

// GetActorID returns the operator identifier supplied with X-Admin-Actor-ID,
// or "" when absent. Domain events carry it for attribution.
func GetActorID(ctx context.Context) string {
	if actorID, ok := ctx.Value(contextKeyActorID{}).(string); ok {
		return actorID
	}
	return ""
}

// WithActorID stores an operator identifier in the context.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, contextKeyActorID{}, actorID)
}

// RequireAdminToken guards operator endpoints with a shared X-Admin-Token.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := r.Header.Get("X-Admin-Token")
			if expectedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", request.GetRequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
					Error:       "unauthorized",
					Description: "admin token required",
				})
				return
			}

			if actorID := r.Header.Get("X-Admin-Actor-ID"); actorID != "" {
				ctx = WithActorID(ctx, actorID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
