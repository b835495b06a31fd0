// Package liquidity defines the external settlement-liquidity signal
// consumed by the scoring engine. The router incorporates the estimate; it
// never computes one itself.
package liquidity

import "context"

// DefaultScore is the conservative estimate used when no signal is
// available for a rail.
const DefaultScore = 0.5

// Provider supplies an available-liquidity estimate in [0,1] for a rail.
type Provider interface {
	Estimate(ctx context.Context, railID string) (float64, error)
}

// StaticProvider is a Provider backed by a fixed table.
type StaticProvider struct {
	Scores  map[string]float64
	Default float64
}

var _ Provider = (*StaticProvider)(nil)

// NewStaticProvider returns a provider answering DefaultScore for every
// rail.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{Default: DefaultScore}
}

func (p *StaticProvider) Estimate(_ context.Context, railID string) (float64, error) {
	if score, ok := p.Scores[railID]; ok {
		return score, nil
	}
	return p.Default, nil
}
