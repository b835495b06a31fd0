package compliance

import (
	"context"

	"github.com/railpath-hq/railrouter/pkg/models"
)

// StaticGate is an in-process Gate with fixed answers, for development and
// tests.
type StaticGate struct {
	Score  float64
	Denied map[string]bool
}

var _ Gate = (*StaticGate)(nil)

// NewStaticGate returns a gate that allows every rail with the given policy
// score.
func NewStaticGate(score float64) *StaticGate {
	return &StaticGate{Score: score}
}

// Deny marks a rail as denied for all transactions.
func (g *StaticGate) Deny(railID string) *StaticGate {
	if g.Denied == nil {
		g.Denied = make(map[string]bool)
	}
	g.Denied[railID] = true
	return g
}

func (g *StaticGate) Evaluate(_ context.Context, railID string, _ models.TransactionParams) (Decision, error) {
	if g.Denied[railID] {
		return Decision{Allowed: false}, nil
	}
	return Decision{Allowed: true, PolicyScore: g.Score}, nil
}
