// Package requesttime pins a single "now" per HTTP request so that moderation
// cases, membership links and audit events created by one join share a
// timestamp.
package requesttime

import (
	"net/http"
	"time"

	"moncomptepro/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
