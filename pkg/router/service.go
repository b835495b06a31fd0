// Package router implements the payment-rail routing core: eligibility
// filtering, multi-factor scoring, the intent lifecycle and execution
// orchestration with fallback across rails.
package router

import (
	"fmt"
	"time"

	"github.com/railpath-hq/railrouter/pkg/adapters"
	"github.com/railpath-hq/railrouter/pkg/circuitbreaker"
	"github.com/railpath-hq/railrouter/pkg/compliance"
	"github.com/railpath-hq/railrouter/pkg/events"
	"github.com/railpath-hq/railrouter/pkg/liquidity"
	"github.com/railpath-hq/railrouter/pkg/logger"
	"github.com/railpath-hq/railrouter/pkg/rails"
	"github.com/railpath-hq/railrouter/pkg/storage"
)

const (
	// DefaultIntentTTL is the validity horizon of a created intent.
	DefaultIntentTTL = 5 * time.Minute

	// DefaultAttemptTimeout bounds a single rail transfer attempt.
	DefaultAttemptTimeout = 30 * time.Second

	// maxFallbackRails caps the fallback chain computed at creation.
	maxFallbackRails = 2
)

// Params are the collaborators and tunables a Service is built from. The
// surrounding service's composition root constructs exactly one Service and
// owns its lifetime; there is no package-level instance.
type Params struct {
	Catalog   *rails.Catalog
	Gate      compliance.Gate
	Liquidity liquidity.Provider
	Adapters  map[string]adapters.RailAdapter
	Breakers  *circuitbreaker.Registry
	Repo      storage.IntentRepository
	Publisher events.Publisher
	Weights   Weights
	Logger    logger.Logger

	// AttemptTimeout and IntentTTL fall back to the defaults when zero.
	AttemptTimeout time.Duration
	IntentTTL      time.Duration
}

// Service is the routing core. It is safe for concurrent use; the only
// shared mutable state across intents is the breaker registry, which
// synchronizes internally.
type Service struct {
	catalog        *rails.Catalog
	gate           compliance.Gate
	liquidity      liquidity.Provider
	adapters       map[string]adapters.RailAdapter
	breakers       *circuitbreaker.Registry
	repo           storage.IntentRepository
	publisher      events.Publisher
	weights        Weights
	logger         logger.Logger
	attemptTimeout time.Duration
	intentTTL      time.Duration
	now            func() time.Time
}

// NewService validates the wiring and returns a ready routing service.
func NewService(p Params) (*Service, error) {
	if p.Catalog == nil || p.Catalog.Len() == 0 {
		return nil, fmt.Errorf("a non-empty rail catalog is required")
	}
	if p.Gate == nil {
		return nil, fmt.Errorf("a compliance gate is required")
	}
	if p.Repo == nil {
		return nil, fmt.Errorf("an intent repository is required")
	}
	if err := p.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring weights: %w", err)
	}
	// A rail without an adapter is a deployment defect; catch it at
	// startup rather than mid-execution.
	for _, r := range p.Catalog.Rails() {
		if _, ok := p.Adapters[r.ID]; !ok {
			return nil, fmt.Errorf("no adapter configured for rail %s", r.ID)
		}
	}

	if p.Liquidity == nil {
		p.Liquidity = liquidity.NewStaticProvider()
	}
	if p.Breakers == nil {
		p.Breakers = circuitbreaker.NewRegistry(circuitbreaker.DefaultFailureThreshold, circuitbreaker.DefaultCooldown)
	}
	if p.Publisher == nil {
		p.Publisher = events.NoopPublisher{}
	}
	if p.Logger == nil {
		p.Logger = &logger.EmptyLogger{}
	}
	if p.AttemptTimeout <= 0 {
		p.AttemptTimeout = DefaultAttemptTimeout
	}
	if p.IntentTTL <= 0 {
		p.IntentTTL = DefaultIntentTTL
	}

	return &Service{
		catalog:        p.Catalog,
		gate:           p.Gate,
		liquidity:      p.Liquidity,
		adapters:       p.Adapters,
		breakers:       p.Breakers,
		repo:           p.Repo,
		publisher:      p.Publisher,
		weights:        p.Weights,
		logger:         p.Logger,
		attemptTimeout: p.AttemptTimeout,
		intentTTL:      p.IntentTTL,
		now:            time.Now,
	}, nil
}

// Breakers exposes the breaker registry for the admin surface.
func (s *Service) Breakers() *circuitbreaker.Registry {
	return s.breakers
}

// Catalog exposes the rail catalog for the admin surface.
func (s *Service) Catalog() *rails.Catalog {
	return s.catalog
}
