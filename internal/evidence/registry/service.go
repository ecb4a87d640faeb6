// Package registry fetches organization snapshots from the business registry.
//
// Registry failures are always returned to the caller. The circuit breaker
// only tracks upstream health for logs and metrics.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"moncomptepro/internal/evidence/registry/metrics"
	"moncomptepro/internal/evidence/registry/providers"
	"moncomptepro/internal/evidence/registry/store"
	"moncomptepro/internal/organization/models"
	"moncomptepro/pkg/platform/circuit"
	"moncomptepro/pkg/platform/sentinel"
)

var (
	// ErrInvalidIdentifier: the SIRET is malformed or unknown to the registry.
	ErrInvalidIdentifier = errors.New("invalid siret")
	// ErrUpstreamUnavailable: the registry could not answer. Safe to retry.
	ErrUpstreamUnavailable = fmt.Errorf("registry unavailable: %w", sentinel.ErrUnavailable)
)

// Provider is an upstream registry client.
type Provider interface {
	Lookup(ctx context.Context, siret string) (*models.OrganizationInfo, error)
}

// Cache stores snapshots for at most their freshness window.
type Cache interface {
	Find(ctx context.Context, siret string) (*store.Entry, error)
	Save(ctx context.Context, info *models.OrganizationInfo) error
}

type Gateway struct {
	provider Provider
	cache    Cache
	cacheTTL time.Duration
	timeout  time.Duration
	breaker  *circuit.Breaker
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Gateway)

// WithCache serves entries younger than ttl without calling the provider.
// A zero ttl disables the cache.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(g *Gateway) {
		g.cache = cache
		g.cacheTTL = ttl
	}
}

func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(g *Gateway) { g.breaker = b }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

func NewGateway(provider Provider, opts ...Option) *Gateway {
	g := &Gateway{
		provider: provider,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ValidateSiret checks the 14 digit syntax.
func ValidateSiret(siret string) error {
	return validation.Validate(siret,
		validation.Required,
		validation.Length(14, 14),
		is.Digit,
	)
}

// FetchOrganizationInfo returns the registry snapshot for siret.
//
// Errors wrap ErrInvalidIdentifier or ErrUpstreamUnavailable; the provider's
// *providers.ProviderError stays in the chain. Only retryable provider
// failures are ErrUpstreamUnavailable.
func (g *Gateway) FetchOrganizationInfo(ctx context.Context, siret string) (*models.OrganizationInfo, error) {
	if err := ValidateSiret(siret); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
	}

	if g.cacheEnabled() {
		if entry := g.lookupCache(ctx, siret); entry != nil && entry.Age(g.now()) < g.cacheTTL {
			g.metrics.IncrementCache("hit")
			info := entry.Info
			return &info, nil
		}
		g.metrics.IncrementCache("miss")
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	info, err := g.provider.Lookup(callCtx, siret)
	if err != nil {
		g.metrics.ObserveLookup(string(providers.GetCategory(err)), time.Since(start))
		return nil, g.handleFailure(ctx, err)
	}
	g.metrics.ObserveLookup("ok", time.Since(start))

	if g.breaker != nil {
		if _, change := g.breaker.RecordSuccess(); change.Closed {
			g.logger.InfoContext(ctx, "registry circuit closed", "breaker", g.breaker.Name())
			g.metrics.SetCircuitOpen(false)
		}
	}
	if g.cacheEnabled() {
		if err := g.cache.Save(ctx, info); err != nil {
			g.logger.WarnContext(ctx, "failed to cache registry snapshot", "siret", siret, "error", err)
		}
	}
	return info, nil
}

func (g *Gateway) cacheEnabled() bool {
	return g.cache != nil && g.cacheTTL > 0
}

func (g *Gateway) lookupCache(ctx context.Context, siret string) *store.Entry {
	entry, err := g.cache.Find(ctx, siret)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			g.logger.WarnContext(ctx, "registry cache lookup failed", "siret", siret, "error", err)
		}
		return nil
	}
	return entry
}

// handleFailure classifies a provider error. Anything the registry might
// answer on retry is ErrUpstreamUnavailable and counts against the breaker;
// every other failure means the SIRET cannot be resolved.
func (g *Gateway) handleFailure(ctx context.Context, err error) error {
	if !providers.IsRetryable(err) {
		return fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
	}
	if g.breaker != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "registry circuit opened", "breaker", g.breaker.Name(), "error", err)
			g.metrics.SetCircuitOpen(true)
		}
	}
	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}
