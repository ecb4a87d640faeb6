package notification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendGridPayload struct {
	TemplateID       string `json:"template_id"`
	Personalizations []struct {
		To []struct {
			Email string `json:"email"`
		} `json:"to"`
		DynamicTemplateData map[string]string `json:"dynamic_template_data"`
	} `json:"personalizations"`
}

func newTestNotifier(url string, retries uint) *SendGridNotifier {
	return NewSendGridNotifier("sg-key", "d-123", "moncomptepro@beta.gouv.fr", "MonComptePro",
		WithHost(url),
		WithMaxRetries(retries),
		WithInitialInterval(time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestSendGridNotifier_SendUnableToAutoJoin(t *testing.T) {
	t.Run("retries transient failures and returns the message id", func(t *testing.T) {
		var calls atomic.Int32
		var payload sendGridPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3/mail/send", r.URL.Path)
			assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.Header().Set("X-Message-Id", "msg-42")
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		ref, err := newTestNotifier(srv.URL, 2).SendUnableToAutoJoin(context.Background(), "jean@acme.example", "ACME")
		require.NoError(t, err)
		assert.Equal(t, "msg-42", ref)
		assert.Equal(t, int32(2), calls.Load())

		assert.Equal(t, "d-123", payload.TemplateID)
		require.Len(t, payload.Personalizations, 1)
		assert.Equal(t, "jean@acme.example", payload.Personalizations[0].To[0].Email)
		assert.Equal(t, "ACME", payload.Personalizations[0].DynamicTemplateData["libelle"])
		assert.Equal(t, "[MonComptePro] Demande pour rejoindre ACME", payload.Personalizations[0].DynamicTemplateData["subject"])
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		_, err := newTestNotifier(srv.URL, 3).SendUnableToAutoJoin(context.Background(), "jean@acme.example", "ACME")
		assert.ErrorIs(t, err, ErrRejected)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := newTestNotifier(srv.URL, 2).SendUnableToAutoJoin(context.Background(), "jean@acme.example", "ACME")
		assert.Error(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestLogNotifier(t *testing.T) {
	ref, err := NewLogNotifier(slog.New(slog.NewTextHandler(io.Discard, nil))).
		SendUnableToAutoJoin(context.Background(), "jean@acme.example", "ACME")
	require.NoError(t, err)
	assert.Regexp(t, `^dry-run-[0-9a-f-]{36}$`, ref)
}

func TestUnableToAutoJoinSubject(t *testing.T) {
	assert.Equal(t, "[MonComptePro] Demande pour rejoindre 21340172201787", UnableToAutoJoinSubject("21340172201787"))
}
