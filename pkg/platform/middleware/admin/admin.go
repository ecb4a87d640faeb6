package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	request "moncomptepro/pkg/platform/middleware/request"
	"moncomptepro/pkg/requestcontext"
)

// HeaderActor optionally names the moderator behind an admin call; it ends up
// in audit events.
const HeaderActor = "X-Moderator"

// RequireAdminToken guards moderator endpoints with a shared token. An empty
// expected token rejects every request.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := r.Header.Get("X-Admin-Token")
			if expectedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", request.GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}

			actor := r.Header.Get(HeaderActor)
			if actor == "" {
				actor = "admin-token"
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithActor(ctx, actor)))
		})
	}
}
