package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"moncomptepro/pkg/requestcontext"
)

func TestRequireAdminToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var actor string
	h := RequireAdminToken("s3cret", logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = requestcontext.Actor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("rejects a wrong token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/admin", nil)
		r.Header.Set("X-Admin-Token", "nope")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("passes the moderator through", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/admin", nil)
		r.Header.Set("X-Admin-Token", "s3cret")
		r.Header.Set(HeaderActor, "moderator@beta.gouv.fr")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "moderator@beta.gouv.fr", actor)
	})

	t.Run("empty configured token locks the endpoint", func(t *testing.T) {
		locked := RequireAdminToken("", logger)(http.NotFoundHandler())
		r := httptest.NewRequest(http.MethodPost, "/admin", nil)
		w := httptest.NewRecorder()
		locked.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
