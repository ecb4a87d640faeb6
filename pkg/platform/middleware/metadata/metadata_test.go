package metadata

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moncomptepro/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded for chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:443", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.4 "}, "10.0.0.2:443", "198.51.100.4"},
		{"remote ipv4", nil, "192.0.2.1:51234", "192.0.2.1"},
		{"remote ipv6", nil, "[::1]:51234", "::1"},
		{"remote without port", nil, "192.0.2.1", "192.0.2.1"},
		{"nothing", nil, "", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(req))
		})
	}
}

func TestClientMetadataAndAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var seenIP, seenUA string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenIP = GetClientIP(r.Context())
		seenUA = GetUserAgent(r.Context())
		w.WriteHeader(http.StatusAccepted)
	})
	h := ClientMetadata(AccessLog(logger)(inner))

	req := httptest.NewRequest(http.MethodPost, "/organizations/join", http.NoBody)
	req.RemoteAddr = "192.0.2.1:4000"
	req.Header.Set("User-Agent", "curl/8.0")
	req = req.WithContext(requestcontext.WithRequestID(req.Context(), "req-1"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "192.0.2.1", seenIP)
	assert.Equal(t, "curl/8.0", seenUA)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, float64(http.StatusAccepted), line["status"])
	assert.Equal(t, "192.0.2.1", line["client_ip"])
}
