// Package httpapi assembles the HTTP surface: operational endpoints, the
// authenticated user routes and the moderator routes.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"moncomptepro/internal/organization/join/handler"
	"moncomptepro/internal/platform/metrics"
	"moncomptepro/pkg/platform/httputil"
	"moncomptepro/pkg/platform/middleware/admin"
	"moncomptepro/pkg/platform/middleware/auth"
	"moncomptepro/pkg/platform/middleware/metadata"
	"moncomptepro/pkg/platform/middleware/request"
	"moncomptepro/pkg/platform/middleware/requesttime"
)

// HealthCheck reports whether a backing service answers.
type HealthCheck func(ctx context.Context) error

type Config struct {
	Join         *handler.Handler
	JWTValidator auth.JWTValidator
	// AdminToken guards moderator routes. Empty leaves them unmounted.
	AdminToken     string
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	HealthChecks   map[string]HealthCheck
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(metadata.AccessLog(logger))
	r.Use(metrics.Middleware(cfg.Metrics))
	r.Use(requesttime.Middleware)

	r.Get("/health", healthHandler(cfg.HealthChecks, logger))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(timeout))
		r.Use(auth.RequireAuth(cfg.JWTValidator, logger))
		cfg.Join.Register(r)
	})

	if cfg.AdminToken != "" {
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(timeout))
			r.Use(admin.RequireAdminToken(cfg.AdminToken, logger))
			cfg.Join.RegisterAdmin(r)
		})
	}
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
		status := http.StatusOK
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					"request_id", request.GetRequestID(ctx),
					"check", name,
					"error", err,
				)
				resp.Checks[name] = "down"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "up"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
