package testutil

import (
	"net/http"

	"moncomptepro/pkg/requestcontext"
)

// WithUserID marks the request as authenticated for userID, as the auth
// middleware would. Non-positive ids leave the request anonymous.
func WithUserID(req *http.Request, userID int64) *http.Request {
	if userID <= 0 {
		return req
	}
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// WithActor sets the moderator behind an admin request.
func WithActor(req *http.Request, actor string) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), actor))
}
