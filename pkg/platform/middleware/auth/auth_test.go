package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"moncomptepro/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return s.claims, s.err
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var userID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID = requestcontext.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		wantStatus int
		wantUserID int64
	}{
		{"missing header", "", stubValidator{}, http.StatusUnauthorized, 0},
		{"wrong scheme", "Basic abc", stubValidator{}, http.StatusUnauthorized, 0},
		{"invalid token", "Bearer abc", stubValidator{err: errors.New("expired")}, http.StatusUnauthorized, 0},
		{"token without user", "Bearer abc", stubValidator{claims: &JWTClaims{}}, http.StatusUnauthorized, 0},
		{"valid token", "Bearer abc", stubValidator{claims: &JWTClaims{UserID: 7}}, http.StatusOK, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID = 0
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			RequireAuth(tt.validator, logger)(next).ServeHTTP(w, r)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUserID, userID)
		})
	}
}
