// Package request assigns correlation ids to incoming requests.
package request

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"moncomptepro/pkg/requestcontext"
)

// HeaderRequestID is read from upstream proxies and echoed on responses.
const HeaderRequestID = "X-Request-ID"

// RequestID reuses the inbound X-Request-ID when present, otherwise mints a
// UUID, and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request id from the context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
