// Package compliance defines the gate consulted once per rail per
// transaction during eligibility filtering.
package compliance

import (
	"context"

	"github.com/railpath-hq/railrouter/pkg/models"
)

// Decision is the gate's answer for one rail. PolicyScore is in [0,1] and is
// reused by the scoring engine so eligibility and scoring share a single
// compliance evaluation.
type Decision struct {
	Allowed     bool    `json:"allowed"`
	PolicyScore float64 `json:"policy_score"`
}

// Gate evaluates whether a rail may carry a given transaction.
type Gate interface {
	Evaluate(ctx context.Context, railID string, params models.TransactionParams) (Decision, error)
}
